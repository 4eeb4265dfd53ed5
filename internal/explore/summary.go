package explore

import (
	"slices"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/models"
)

// Summary is the global statistics view.
type Summary struct {
	TotalCountries  int
	TotalPopulation int64
	TotalArea       float64
	RegionCounts    map[string]int
	TopByPopulation []models.CountryRecord
	TopByArea       []models.CountryRecord
}

const topN = 10

// Summarize totals population and area (missing values count as 0), counts
// records per region ("Unknown" when empty) and lists the ten largest by
// population and by area.
func Summarize(records []models.CountryRecord) Summary {
	s := Summary{
		TotalCountries: len(records),
		RegionCounts:   make(map[string]int),
	}
	for _, r := range records {
		s.TotalPopulation += r.PopulationOrZero()
		s.TotalArea += r.AreaOrZero()
		region := r.Region
		if region == "" {
			region = "Unknown"
		}
		s.RegionCounts[region]++
	}
	s.TopByPopulation = head(SortRecords(records, SortByPopulation), topN)
	s.TopByArea = head(SortRecords(records, SortByArea), topN)
	return s
}

// Regions lists the distinct non-empty regions in first-seen order.
func Regions(records []models.CountryRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if r.Region == "" {
			continue
		}
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		out = append(out, r.Region)
	}
	return out
}

// Suggest returns the first limit text matches, for search-as-you-type.
func Suggest(records []models.CountryRecord, query string, limit int) []models.CountryRecord {
	if query == "" {
		return []models.CountryRecord{}
	}
	return head(FilterByText(records, query), limit)
}

// FindByName returns the first record whose common name contains query.
func FindByName(records []models.CountryRecord, query string) (models.CountryRecord, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.CountryRecord{}, false
	}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name.Common), q) {
			return r, true
		}
	}
	return models.CountryRecord{}, false
}

// FindByCode matches cca3 or cca2, case-insensitively.
func FindByCode(records []models.CountryRecord, code string) (models.CountryRecord, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range records {
		if r.CCA3 == code || r.CCA2 == code {
			return r, true
		}
	}
	return models.CountryRecord{}, false
}

// Featured ranks the records that have a GDP value by that value, highest
// first, optionally restricted to region, and keeps the first n.
func Featured(records []models.CountryRecord, gdp map[string]float64, region string, n int) []models.CountryRecord {
	candidates := FilterByRegion(records, region)
	withGDP := filter(candidates, func(r models.CountryRecord) bool {
		_, ok := gdp[r.CCA3]
		return ok
	})
	slices.SortStableFunc(withGDP, func(a, b models.CountryRecord) int {
		ga, gb := gdp[a.CCA3], gdp[b.CCA3]
		switch {
		case ga > gb:
			return -1
		case ga < gb:
			return 1
		}
		return 0
	})
	return head(withGDP, n)
}

func head(records []models.CountryRecord, n int) []models.CountryRecord {
	if n < 0 {
		n = 0
	}
	if len(records) > n {
		records = records[:n]
	}
	out := make([]models.CountryRecord, len(records))
	copy(out, records)
	return out
}
