package explore

import "github.com/AbdulWasayUl/country-explorer/models"

// Criteria is everything the explore view filters and sorts by.
type Criteria struct {
	Query      string
	Region     string
	Population PopulationRange
	Language   string
	Currency   string
	SortBy     SortKey
}

// DefaultCriteria matches every record and sorts by name.
func DefaultCriteria() Criteria {
	return Criteria{Population: AnyPopulation, SortBy: SortByName}
}

// Apply filters text, region, population range, language and currency in
// that order, then sorts. A zero Population means AnyPopulation.
func Apply(records []models.CountryRecord, c Criteria) []models.CountryRecord {
	pop := c.Population
	if pop == (PopulationRange{}) {
		pop = AnyPopulation
	}

	out := FilterByText(records, c.Query)
	out = FilterByRegion(out, c.Region)
	out = FilterByPopulationRange(out, pop.Min, pop.Max)
	out = FilterByLanguageSubstring(out, c.Language)
	out = FilterByCurrencySubstring(out, c.Currency)
	return SortRecords(out, c.SortBy)
}
