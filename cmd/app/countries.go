package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/internal/explore"
	"github.com/AbdulWasayUl/country-explorer/internal/format"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// -- list --

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List countries with filters and sorting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		criteria, limit, err := criteriaFromFlags(cmd)
		if err != nil {
			return err
		}

		records, err := data.FetchAllCountries(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "list")
		}

		result := explore.Apply(records, criteria)
		total := len(result)
		if limit > 0 && len(result) > limit {
			result = result[:limit]
		}
		formatCountryList(cmd.OutOrStdout(), result)
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d countries\n", total, len(records))
		return nil
	},
}

// -- show --

var showCmd = &cobra.Command{
	Use:   "show <code|name>",
	Short: "Show one country and record it as recently viewed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		record, err := resolveCountry(ctx, query)
		if err != nil {
			return err
		}

		borders := map[string]string{}
		if len(record.Borders) > 0 {
			neighbours, err := data.FetchCountriesByCodes(ctx, record.Borders)
			if err != nil {
				logger.Warn("Could not resolve borders of %s: %v", record.CCA3, err)
			}
			for _, n := range neighbours {
				borders[n.CCA3] = n.Name.Common
			}
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		if err := store.AddToRecentlyViewed(ctx, record); err != nil {
			logger.Warn("Could not record %s as recently viewed: %v", record.CCA3, err)
		}

		out := cmd.OutOrStdout()
		formatCountryDetail(out, record, borders, store.IsFavorite(record.CCA3))

		if economy, _ := cmd.Flags().GetBool("economy"); economy {
			gdp := data.FetchGDP(ctx, record.CCA3)
			indicators := data.FetchEconomicIndicators(ctx, record.CCA3)
			formatEconomy(out, gdp, indicators)
		}
		return nil
	},
}

// -- compare --

var compareCmd = &cobra.Command{
	Use:   "compare <code>...",
	Short: fmt.Sprintf("Compare up to %d countries side by side", explore.MaxComparison),
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		records, err := data.FetchCountriesByCodes(ctx, args)
		if err != nil {
			return eris.Wrap(err, "compare")
		}
		byCode := make(map[string]models.CountryRecord, len(records))
		for _, r := range records {
			byCode[r.CCA3] = r
			byCode[r.CCA2] = r
		}

		selection := explore.NewSelection()
		for _, code := range args {
			r, ok := byCode[strings.ToUpper(code)]
			if !ok {
				logger.Warn("Unknown country code %s, skipping", code)
				continue
			}
			next, err := selection.Add(r)
			if errors.Is(err, errs.ErrCapacity) {
				logger.Warn("Comparison holds at most %d countries, ignoring %s", explore.MaxComparison, r.CCA3)
				continue
			}
			selection = next
		}
		if selection.Len() == 0 {
			return eris.New("compare: no known countries given")
		}

		selected := selection.Records()
		codes := make([]string, len(selected))
		for i, r := range selected {
			codes[i] = r.CCA3
		}
		formatComparison(cmd.OutOrStdout(), selected, data.GDPDataByCode(ctx, codes))

		if query, _ := cmd.Flags().GetString("candidates"); query != "" && !selection.Full() {
			all, err := data.FetchAllCountries(ctx)
			if err != nil {
				return eris.Wrap(err, "compare candidates")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nAlso matching:")
			for _, r := range explore.CompareCandidates(all, query, selection, 10) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.CCA3, r.Name.Common)
			}
		}
		return nil
	},
}

// -- stats --

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show global statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := data.FetchAllCountries(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "stats")
		}
		formatSummary(cmd.OutOrStdout(), explore.Summarize(records))
		return nil
	},
}

// -- regions --

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions countries can be filtered by",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := data.FetchAllCountries(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "regions")
		}
		for _, region := range explore.Regions(records) {
			fmt.Fprintln(cmd.OutOrStdout(), region)
		}
		return nil
	},
}

// -- featured --

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Rank the largest economies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		region, _ := cmd.Flags().GetString("region")
		n, _ := cmd.Flags().GetInt("n")
		candidates, _ := cmd.Flags().GetInt("candidates")

		records, err := data.FetchAllCountries(ctx)
		if err != nil {
			return eris.Wrap(err, "featured")
		}

		pool := explore.SortRecords(explore.FilterByRegion(records, region), explore.SortByPopulation)
		if len(pool) > candidates {
			pool = pool[:candidates]
		}
		codes := make([]string, len(pool))
		for i, r := range pool {
			codes[i] = r.CCA3
		}

		gdp := data.GDPByCode(ctx, codes)
		formatFeatured(cmd.OutOrStdout(), explore.Featured(pool, gdp, region, n), gdp)
		return nil
	},
}

// -- suggest --

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Suggest countries matching a partial name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		records, err := data.FetchAllCountries(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "suggest")
		}
		for _, r := range explore.Suggest(records, strings.Join(args, " "), limit) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.CCA3, r.Name.Common)
		}
		return nil
	},
}

// -- indicator --

var indicatorCmd = &cobra.Command{
	Use:   "indicator <code> <indicator>",
	Short: "Show the history of one World Bank indicator",
	Long:  "The indicator is a World Bank id such as NY.GDP.MKTP.CD or one of: " + strings.Join(indicatorAliasNames(), ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		years, _ := cmd.Flags().GetInt("years")
		id := resolveIndicator(args[1])

		s := data.FetchIndicatorSeries(cmd.Context(), strings.ToUpper(args[0]), id, years)
		if s.Err != "" {
			return eris.Errorf("indicator %s for %s unavailable: %s", id, args[0], s.Err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", s.CountryName, id)
		formatHistory(out, s, indicatorRenderer(id))
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("query", "q", "", "match common or official name")
	listCmd.Flags().String("region", "", "exact region, e.g. Europe")
	listCmd.Flags().String("population", "", "population preset: "+strings.Join(populationLabels(), ", "))
	listCmd.Flags().Int64("min-population", -1, "lower population bound (overrides --population)")
	listCmd.Flags().Int64("max-population", -1, "upper population bound (overrides --population)")
	listCmd.Flags().String("language", "", "match a language name")
	listCmd.Flags().String("currency", "", "match a currency name")
	listCmd.Flags().String("sort", "name", "sort by name, population or area")
	listCmd.Flags().Int("limit", 0, "max rows to print (0 = all)")

	showCmd.Flags().Bool("economy", false, "include GDP and economic indicators")

	compareCmd.Flags().String("candidates", "", "also list countries matching this name that could join the comparison")

	featuredCmd.Flags().String("region", "", "restrict to a region")
	featuredCmd.Flags().Int("n", 4, "number of countries to show")
	featuredCmd.Flags().Int("candidates", 20, "most populous countries to fetch GDP for")

	suggestCmd.Flags().Int("limit", 5, "max suggestions")

	indicatorCmd.Flags().Int("years", 0, "years of history (0 = INDICATOR_YEARS)")

	rootCmd.AddCommand(listCmd, showCmd, compareCmd, statsCmd, regionsCmd, featuredCmd, suggestCmd, indicatorCmd)
}

// criteriaFromFlags builds the explore criteria and the row limit.
func criteriaFromFlags(cmd *cobra.Command) (explore.Criteria, int, error) {
	flags := cmd.Flags()
	c := explore.DefaultCriteria()
	c.Query, _ = flags.GetString("query")
	c.Region, _ = flags.GetString("region")
	c.Language, _ = flags.GetString("language")
	c.Currency, _ = flags.GetString("currency")

	sortKey, _ := flags.GetString("sort")
	key, err := explore.ParseSortKey(sortKey)
	if err != nil {
		return c, 0, err
	}
	c.SortBy = key

	preset, _ := flags.GetString("population")
	minPop, _ := flags.GetInt64("min-population")
	maxPop, _ := flags.GetInt64("max-population")
	c.Population, err = parsePopulationRange(preset, minPop, maxPop)
	if err != nil {
		return c, 0, err
	}

	limit, _ := flags.GetInt("limit")
	return c, limit, nil
}

// parsePopulationRange resolves a preset label, then applies explicit
// bounds; a negative bound means "not given".
func parsePopulationRange(preset string, min, max int64) (explore.PopulationRange, error) {
	r := explore.AnyPopulation
	if preset != "" {
		p, ok := explore.FindPopulationRange(preset)
		if !ok {
			return r, eris.Errorf("unknown population preset %q (want one of %s)", preset, strings.Join(populationLabels(), ", "))
		}
		r = p
	}
	if min >= 0 {
		r.Min = min
		r.Label = ""
	}
	if max >= 0 {
		r.Max = max
		r.Label = ""
	}
	if r.Min > r.Max {
		return r, eris.Errorf("population range is empty: min %d > max %d", r.Min, r.Max)
	}
	return r, nil
}

func populationLabels() []string {
	labels := make([]string, len(explore.PopulationRanges))
	for i, r := range explore.PopulationRanges {
		labels[i] = strconv.Quote(r.Label)
	}
	return labels
}

// resolveCountry looks query up as a code first and then as a name.
func resolveCountry(ctx context.Context, query string) (models.CountryRecord, error) {
	query = strings.TrimSpace(query)
	if looksLikeCode(query) {
		r, err := data.FetchCountryByCode(ctx, query)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return models.CountryRecord{}, err
		}
	}

	matches, err := data.SearchCountries(ctx, query)
	if err != nil {
		return models.CountryRecord{}, eris.Wrapf(err, "search %q", query)
	}
	if r, ok := explore.FindByName(matches, query); ok {
		return r, nil
	}
	if len(matches) > 0 {
		return matches[0], nil
	}
	return models.CountryRecord{}, eris.Wrapf(errs.ErrNotFound, "%q", query)
}

func looksLikeCode(s string) bool {
	if len(s) != 2 && len(s) != 3 {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

var indicatorAliases = map[string]string{
	"gdp":            models.IndicatorGDP,
	"gdp-per-capita": models.IndicatorGDPPerCapita,
	"gdp-growth":     models.IndicatorGDPGrowth,
	"inflation":      models.IndicatorInflation,
	"unemployment":   models.IndicatorUnemployment,
	"trade-balance":  models.IndicatorTradeBalance,
	"population":     models.IndicatorPopulation,
}

func indicatorAliasNames() []string {
	return []string{"gdp", "gdp-per-capita", "gdp-growth", "inflation", "unemployment", "trade-balance", "population"}
}

func resolveIndicator(s string) string {
	if id, ok := indicatorAliases[strings.ToLower(s)]; ok {
		return id
	}
	return strings.ToUpper(s)
}

func indicatorRenderer(id string) func(*float64) string {
	switch id {
	case models.IndicatorGDP, models.IndicatorTradeBalance:
		return format.GDP
	case models.IndicatorGDPPerCapita:
		return format.GDPPerCapita
	case models.IndicatorGDPGrowth:
		return format.GrowthRate
	case models.IndicatorInflation, models.IndicatorUnemployment:
		return format.Percent
	case models.IndicatorPopulation:
		return wholeNumber
	}
	return func(v *float64) string {
		if v == nil {
			return models.NotAvailable
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
}
