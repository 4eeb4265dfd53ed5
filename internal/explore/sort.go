package explore

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPopulation SortKey = "population"
	SortByArea       SortKey = "area"
)

// ParseSortKey accepts name, population or area.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByPopulation, SortByArea:
		return k, nil
	case "":
		return SortByName, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, population or area)", s)
	}
}

// SortRecords returns a stably sorted copy. Names sort ascending with
// locale-aware collation; population and area sort descending with missing
// values as 0, so unknowns come last. An unknown key keeps input order.
func SortRecords(records []models.CountryRecord, key SortKey) []models.CountryRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []models.CountryRecord{}
	}

	switch key {
	case SortByName:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.CountryRecord) int {
			return col.CompareString(a.Name.Common, b.Name.Common)
		})
	case SortByPopulation:
		slices.SortStableFunc(out, func(a, b models.CountryRecord) int {
			pa, pb := a.PopulationOrZero(), b.PopulationOrZero()
			switch {
			case pa > pb:
				return -1
			case pa < pb:
				return 1
			}
			return 0
		})
	case SortByArea:
		slices.SortStableFunc(out, func(a, b models.CountryRecord) int {
			aa, ab := a.AreaOrZero(), b.AreaOrZero()
			switch {
			case aa > ab:
				return -1
			case aa < ab:
				return 1
			}
			return 0
		})
	}
	return out
}
