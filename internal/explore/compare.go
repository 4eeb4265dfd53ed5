package explore

import (
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/models"
)

// MaxComparison is the size limit of a comparison selection.
const MaxComparison = 3

// Selection is an ordered set of at most MaxComparison records, unique by
// CCA3. Add and Remove return a new Selection and leave the receiver as is.
type Selection struct {
	items []models.CountryRecord
}

// NewSelection starts an empty comparison.
func NewSelection() Selection {
	return Selection{}
}

// Add appends record. It is a no-op when the record is already selected and
// returns errs.ErrCapacity, with the selection unchanged, when full.
func (s Selection) Add(record models.CountryRecord) (Selection, error) {
	if s.Contains(record.CCA3) {
		return s, nil
	}
	if len(s.items) >= MaxComparison {
		return s, errs.ErrCapacity
	}
	items := make([]models.CountryRecord, len(s.items), len(s.items)+1)
	copy(items, s.items)
	return Selection{items: append(items, record)}, nil
}

// Remove drops the record with cca3, if present.
func (s Selection) Remove(cca3 string) Selection {
	items := make([]models.CountryRecord, 0, len(s.items))
	for _, r := range s.items {
		if r.CCA3 != cca3 {
			items = append(items, r)
		}
	}
	return Selection{items: items}
}

func (s Selection) Contains(cca3 string) bool {
	for _, r := range s.items {
		if r.CCA3 == cca3 {
			return true
		}
	}
	return false
}

func (s Selection) Len() int { return len(s.items) }

func (s Selection) Full() bool { return len(s.items) >= MaxComparison }

// Records returns a copy of the selection in insertion order.
func (s Selection) Records() []models.CountryRecord {
	out := make([]models.CountryRecord, len(s.items))
	copy(out, s.items)
	return out
}

// AddToComparison is Add with the capacity error swallowed.
func AddToComparison(s Selection, record models.CountryRecord) Selection {
	next, _ := s.Add(record)
	return next
}

// RemoveFromComparison is Remove as a function.
func RemoveFromComparison(s Selection, cca3 string) Selection {
	return s.Remove(cca3)
}

// CompareCandidates lists records whose common name contains query and that
// are not already selected, up to limit. A negative limit yields none.
func CompareCandidates(records []models.CountryRecord, query string, s Selection, limit int) []models.CountryRecord {
	if limit < 0 {
		limit = 0
	}
	q := strings.ToLower(query)
	out := make([]models.CountryRecord, 0, limit)
	for _, r := range records {
		if len(out) >= limit {
			break
		}
		if s.Contains(r.CCA3) {
			continue
		}
		if strings.Contains(strings.ToLower(r.Name.Common), q) {
			out = append(out, r)
		}
	}
	return out
}
