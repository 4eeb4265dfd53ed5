package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/AbdulWasayUl/country-explorer/internal/explore"
	"github.com/AbdulWasayUl/country-explorer/internal/format"
	"github.com/AbdulWasayUl/country-explorer/models"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// formatCountryList writes one row per record.
func formatCountryList(out io.Writer, records []models.CountryRecord) {
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tREGION\tCAPITAL\tPOPULATION\tAREA")
	_, _ = fmt.Fprintln(w, "----\t----\t------\t-------\t----------\t----")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CCA3,
			truncate(r.Name.Common, 32),
			orNA(r.Region),
			r.PrimaryCapital(),
			format.Number(r.Population),
			format.Area(r.Area),
		)
	}
	_ = w.Flush()
}

// formatCountryDetail writes the overview of one record. borders maps border
// codes to common names; codes missing from it are printed as is.
func formatCountryDetail(out io.Writer, r models.CountryRecord, borders map[string]string, favorite bool) {
	w := newTable(out)
	star := ""
	if favorite {
		star = " ★"
	}
	_, _ = fmt.Fprintf(w, "%s (%s)%s\n", r.Name.Common, r.CCA3, star)
	_, _ = fmt.Fprintf(w, "Official name:\t%s\n", r.Name.Official)
	if native := nativeNames(r.Name); native != "" {
		_, _ = fmt.Fprintf(w, "Native names:\t%s\n", native)
	}
	_, _ = fmt.Fprintf(w, "Capital:\t%s\n", r.PrimaryCapital())
	_, _ = fmt.Fprintf(w, "Region:\t%s\n", orNA(joinNonEmpty(" / ", r.Region, r.Subregion)))
	_, _ = fmt.Fprintf(w, "Population:\t%s (%s)\n", format.Number(r.Population), format.PopulationCategory(r.PopulationOrZero()))
	_, _ = fmt.Fprintf(w, "Area:\t%s\n", format.Area(r.Area))
	_, _ = fmt.Fprintf(w, "Density:\t%s\n", format.Density(r))
	if r.LatLng != nil {
		_, _ = fmt.Fprintf(w, "Coordinates:\t%.2f, %.2f\n", r.LatLng.Lat, r.LatLng.Lng)
	}
	_, _ = fmt.Fprintf(w, "Languages:\t%s\n", listOrNA(r.LanguageNames()))
	_, _ = fmt.Fprintf(w, "Currencies:\t%s\n", listOrNA(currencyLabels(r)))
	_, _ = fmt.Fprintf(w, "Timezones:\t%s\n", listOrNA(r.Timezones))

	names := make([]string, 0, len(r.Borders))
	for _, code := range r.Borders {
		if name, ok := borders[code]; ok {
			names = append(names, name)
		} else {
			names = append(names, code)
		}
	}
	_, _ = fmt.Fprintf(w, "Borders:\t%s\n", listOrNA(names))
	if r.FlagURL != "" {
		_, _ = fmt.Fprintf(w, "Flag:\t%s\n", r.FlagURL)
	}
	_ = w.Flush()
}

// formatEconomy writes the GDP bundle and the latest economic indicators.
func formatEconomy(out io.Writer, gdp models.GDPData, indicators map[string]models.IndicatorValue) {
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "\nEconomy")
	_, _ = fmt.Fprintf(w, "GDP:\t%s\n", seriesValue(gdp.GDP, format.GDP))
	_, _ = fmt.Fprintf(w, "GDP per capita:\t%s\n", seriesValue(gdp.GDPPerCapita, format.GDPPerCapita))
	_, _ = fmt.Fprintf(w, "GDP growth:\t%s\n", seriesValue(gdp.GDPGrowth, format.GrowthRate))
	_, _ = fmt.Fprintf(w, "Inflation:\t%s\n", indicatorValue(indicators["inflation"], format.Percent))
	_, _ = fmt.Fprintf(w, "Unemployment:\t%s\n", indicatorValue(indicators["unemployment"], format.Percent))
	_, _ = fmt.Fprintf(w, "Trade balance:\t%s\n", indicatorValue(indicators["tradeBalance"], format.GDP))
	_, _ = fmt.Fprintf(w, "Population (WB):\t%s\n", indicatorValue(indicators["population"], wholeNumber))
	_ = w.Flush()

	if len(gdp.GDP.History) > 0 {
		formatHistory(out, gdp.GDP, format.GDP)
	}
}

// formatHistory writes one row per observation, oldest first.
func formatHistory(out io.Writer, s models.IndicatorSeries, render func(*float64) string) {
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "YEAR\tVALUE")
	for _, o := range s.History {
		v := o.Value
		_, _ = fmt.Fprintf(w, "%d\t%s\n", o.Year, render(&v))
	}
	_ = w.Flush()
}

// formatComparison writes the selected records side by side.
func formatComparison(out io.Writer, records []models.CountryRecord, gdp map[string]models.GDPData) {
	w := newTable(out)

	row := func(label string, cell func(models.CountryRecord) string) {
		cells := make([]string, 0, len(records)+1)
		cells = append(cells, label)
		for _, r := range records {
			cells = append(cells, cell(r))
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	row("", func(r models.CountryRecord) string { return r.Name.Common })
	row("Capital", func(r models.CountryRecord) string { return r.PrimaryCapital() })
	row("Region", func(r models.CountryRecord) string { return orNA(r.Region) })
	row("Population", func(r models.CountryRecord) string { return format.Number(r.Population) })
	row("Area", func(r models.CountryRecord) string { return format.Area(r.Area) })
	row("Density", format.Density)
	row("Languages", func(r models.CountryRecord) string { return listOrNA(r.LanguageNames()) })
	row("Currencies", func(r models.CountryRecord) string { return listOrNA(r.CurrencyNames()) })
	row("GDP", func(r models.CountryRecord) string { return seriesValue(gdp[r.CCA3].GDP, format.GDP) })
	row("GDP per capita", func(r models.CountryRecord) string {
		return seriesValue(gdp[r.CCA3].GDPPerCapita, format.GDPPerCapita)
	})
	row("GDP growth", func(r models.CountryRecord) string {
		return seriesValue(gdp[r.CCA3].GDPGrowth, format.GrowthRate)
	})
	_ = w.Flush()
}

// formatSummary writes the global statistics.
func formatSummary(out io.Writer, s explore.Summary) {
	w := newTable(out)
	_, _ = fmt.Fprintf(w, "Countries:\t%s\n", format.Integer(int64(s.TotalCountries)))
	_, _ = fmt.Fprintf(w, "Total population:\t%s\n", format.Integer(s.TotalPopulation))
	_, _ = fmt.Fprintf(w, "Total area:\t%s\n", format.Area(&s.TotalArea))

	regions := make([]string, 0, len(s.RegionCounts))
	for region := range s.RegionCounts {
		regions = append(regions, region)
	}
	slices.Sort(regions)
	_, _ = fmt.Fprintln(w, "\nREGION\tCOUNTRIES")
	for _, region := range regions {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", region, s.RegionCounts[region])
	}

	_, _ = fmt.Fprintln(w, "\nMOST POPULOUS\tPOPULATION")
	for i, r := range s.TopByPopulation {
		_, _ = fmt.Fprintf(w, "%2d. %s\t%s\n", i+1, r.Name.Common, format.Number(r.Population))
	}
	_, _ = fmt.Fprintln(w, "\nLARGEST\tAREA")
	for i, r := range s.TopByArea {
		_, _ = fmt.Fprintf(w, "%2d. %s\t%s\n", i+1, r.Name.Common, format.Area(r.Area))
	}
	_ = w.Flush()
}

// formatFeatured writes the featured records with their GDP.
func formatFeatured(out io.Writer, records []models.CountryRecord, gdp map[string]float64) {
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tREGION\tGDP\tPOPULATION")
	for _, r := range records {
		var value *float64
		if v, ok := gdp[r.CCA3]; ok {
			value = &v
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.CCA3, r.Name.Common, orNA(r.Region), format.GDP(value), format.Number(r.Population))
	}
	_ = w.Flush()
}

func seriesValue(s models.IndicatorSeries, render func(*float64) string) string {
	if !s.Available() {
		return models.NotAvailable
	}
	if s.CurrentYear > 0 {
		return fmt.Sprintf("%s (%d)", render(s.Current), s.CurrentYear)
	}
	return render(s.Current)
}

func indicatorValue(v models.IndicatorValue, render func(*float64) string) string {
	if v.Err != "" || v.Value == nil {
		return models.NotAvailable
	}
	if v.Year > 0 {
		return fmt.Sprintf("%s (%d)", render(v.Value), v.Year)
	}
	return render(v.Value)
}

func wholeNumber(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	return format.Integer(int64(*v))
}

func currencyLabels(r models.CountryRecord) []string {
	out := make([]string, 0, len(r.Currencies))
	for code, c := range r.Currencies {
		label := fmt.Sprintf("%s (%s", c.Name, code)
		if c.Symbol != "" {
			label += ", " + c.Symbol
		}
		out = append(out, label+")")
	}
	slices.Sort(out)
	return out
}

func nativeNames(n models.CountryName) string {
	names := make([]string, 0, len(n.Native))
	for _, nn := range n.Native {
		if nn.Common != "" && nn.Common != n.Common {
			names = append(names, nn.Common)
		}
	}
	slices.Sort(names)
	return strings.Join(slices.Compact(names), ", ")
}

func listOrNA(items []string) string {
	if len(items) == 0 {
		return models.NotAvailable
	}
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	return strings.Join(sorted, ", ")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func orNA(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
