// Package explore holds the pure filter, sort and comparison operations over
// in-memory country records. Nothing here performs I/O and no input slice is
// modified; every derived view is a new slice.
package explore

import (
	"math"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/models"
)

// NoUpperBound is the open end of a population range.
const NoUpperBound int64 = math.MaxInt64

// PopulationRange is inclusive on both ends.
type PopulationRange struct {
	Label string
	Min   int64
	Max   int64
}

// AnyPopulation matches every record.
var AnyPopulation = PopulationRange{Label: "All", Min: 0, Max: NoUpperBound}

// PopulationRanges are the preset ranges offered by the filter panel.
var PopulationRanges = []PopulationRange{
	AnyPopulation,
	{Label: "< 1M", Min: 0, Max: 1_000_000},
	{Label: "1M - 10M", Min: 1_000_000, Max: 10_000_000},
	{Label: "10M - 50M", Min: 10_000_000, Max: 50_000_000},
	{Label: "50M - 100M", Min: 50_000_000, Max: 100_000_000},
	{Label: "> 100M", Min: 100_000_000, Max: NoUpperBound},
}

// FindPopulationRange looks a preset up by label.
func FindPopulationRange(label string) (PopulationRange, bool) {
	for _, r := range PopulationRanges {
		if strings.EqualFold(r.Label, strings.TrimSpace(label)) {
			return r, true
		}
	}
	return PopulationRange{}, false
}

// FilterByText keeps records whose common or official name contains query,
// case-insensitively. An empty query returns records unchanged.
func FilterByText(records []models.CountryRecord, query string) []models.CountryRecord {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	return filter(records, func(r models.CountryRecord) bool {
		return strings.Contains(strings.ToLower(r.Name.Common), q) ||
			strings.Contains(strings.ToLower(r.Name.Official), q)
	})
}

// FilterByRegion keeps records in region. An empty region returns records unchanged.
func FilterByRegion(records []models.CountryRecord, region string) []models.CountryRecord {
	if region == "" {
		return records
	}
	return filter(records, func(r models.CountryRecord) bool {
		return r.Region == region
	})
}

// FilterByPopulationRange keeps records with min <= population <= max,
// counting a missing population as 0. It always runs, even for AnyPopulation.
func FilterByPopulationRange(records []models.CountryRecord, min, max int64) []models.CountryRecord {
	return filter(records, func(r models.CountryRecord) bool {
		p := r.PopulationOrZero()
		return p >= min && p <= max
	})
}

// FilterByLanguageSubstring matches text against language display names.
func FilterByLanguageSubstring(records []models.CountryRecord, text string) []models.CountryRecord {
	if text == "" {
		return records
	}
	q := strings.ToLower(text)
	return filter(records, func(r models.CountryRecord) bool {
		for _, name := range r.Languages {
			if strings.Contains(strings.ToLower(name), q) {
				return true
			}
		}
		return false
	})
}

// FilterByCurrencySubstring matches text against currency display names.
func FilterByCurrencySubstring(records []models.CountryRecord, text string) []models.CountryRecord {
	if text == "" {
		return records
	}
	q := strings.ToLower(text)
	return filter(records, func(r models.CountryRecord) bool {
		for _, c := range r.Currencies {
			if strings.Contains(strings.ToLower(c.Name), q) {
				return true
			}
		}
		return false
	})
}

func filter(records []models.CountryRecord, keep func(models.CountryRecord) bool) []models.CountryRecord {
	out := make([]models.CountryRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
