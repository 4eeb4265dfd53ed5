package country

import (
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
)

// Normalize converts provider entries into records. Entries without a cca3
// are dropped, duplicates keep the first occurrence, and absent optional
// fields stay nil rather than becoming zero.
func Normalize(resp RestCountriesAPIResponse) []models.CountryRecord {
	records := make([]models.CountryRecord, 0, len(resp))
	seen := make(map[string]struct{}, len(resp))

	for i := range resp {
		rec, ok := toRecord(&resp[i])
		if !ok {
			logger.Warn("dropping country entry %d without cca3 (name %q)", i, resp[i].Name.Common)
			continue
		}
		if _, dup := seen[rec.CCA3]; dup {
			logger.Warn("dropping duplicate country entry %s", rec.CCA3)
			continue
		}
		seen[rec.CCA3] = struct{}{}
		records = append(records, rec)
	}
	return records
}

func toRecord(r *RestCountriesCountry) (models.CountryRecord, bool) {
	cca3 := strings.ToUpper(strings.TrimSpace(r.CCA3))
	if cca3 == "" {
		return models.CountryRecord{}, false
	}

	rec := models.CountryRecord{
		CCA2: strings.ToUpper(strings.TrimSpace(r.CCA2)),
		CCA3: cca3,
		Name: models.CountryName{
			Common:   strings.TrimSpace(r.Name.Common),
			Official: strings.TrimSpace(r.Name.Official),
		},
		Region:     r.Region,
		Subregion:  r.Subregion,
		Capital:    nonNil(r.Capital),
		UnMember:   r.UnMember,
		Landlocked: r.Landlocked,
		Borders:    nonNil(r.Borders),
		Continents: nonNil(r.Continents),
		Timezones:  nonNil(r.Timezones),
		Currencies: make(map[string]models.Currency, len(r.Currencies)),
		Languages:  make(map[string]string, len(r.Languages)),
		FlagURL:    r.Flags.SVG,
	}
	if rec.Name.Official == "" {
		rec.Name.Official = rec.Name.Common
	}
	if rec.FlagURL == "" {
		rec.FlagURL = r.Flags.PNG
	}
	rec.CoatOfArmsURL = r.CoatOfArms.SVG
	if rec.CoatOfArmsURL == "" {
		rec.CoatOfArmsURL = r.CoatOfArms.PNG
	}
	if r.Independent != nil {
		rec.Independent = *r.Independent
	}

	if r.Population != nil && *r.Population >= 0 {
		p := *r.Population
		rec.Population = &p
	}
	if r.Area != nil && *r.Area >= 0 {
		a := *r.Area
		rec.Area = &a
	}
	if len(r.LatLng) == 2 {
		rec.LatLng = &models.LatLng{Lat: r.LatLng[0], Lng: r.LatLng[1]}
	}

	if len(r.Name.NativeName) > 0 {
		rec.Name.Native = make(map[string]models.NativeName, len(r.Name.NativeName))
		for lang, n := range r.Name.NativeName {
			rec.Name.Native[lang] = models.NativeName{Official: n.Official, Common: n.Common}
		}
	}
	for code, c := range r.Currencies {
		rec.Currencies[code] = models.Currency{Name: c.Name, Symbol: c.Symbol}
	}
	for code, name := range r.Languages {
		rec.Languages[code] = name
	}
	return rec, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
