package userstate

import (
	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// snapshotVersion is written into every envelope; older readers ignore it.
const snapshotVersion = 0

type envelope struct {
	State   models.UserState `json:"state"`
	Version int              `json:"version"`
}

// Encode serializes state in the {"state":...,"version":0} envelope.
func Encode(state models.UserState) ([]byte, error) {
	data, err := json.Marshal(envelope{State: normalize(state), Version: snapshotVersion})
	if err != nil {
		return nil, eris.Wrap(err, "userstate: encode")
	}
	return data, nil
}

// Decode parses a stored snapshot. Malformed JSON, a missing state object or
// an unknown theme all yield errs.ErrStorageCorrupt.
func Decode(data []byte) (models.UserState, error) {
	var raw struct {
		State   *models.UserState `json:"state"`
		Version int               `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.UserState{}, eris.Wrapf(errs.ErrStorageCorrupt, "decode: %v", err)
	}
	if raw.State == nil {
		return models.UserState{}, eris.Wrap(errs.ErrStorageCorrupt, "snapshot has no state")
	}

	state := *raw.State
	switch state.Theme {
	case models.ThemeLight, models.ThemeDark:
	case "":
		state.Theme = models.ThemeLight
	default:
		return models.UserState{}, eris.Wrapf(errs.ErrStorageCorrupt, "unknown theme %q", state.Theme)
	}
	return normalize(state), nil
}

// normalize drops records without a code, repeated codes and anything past
// the recently-viewed bound, so a hand-edited slot still honors the invariants.
func normalize(state models.UserState) models.UserState {
	state.Favorites = uniqueByCode(state.Favorites)
	state.RecentlyViewed = uniqueByCode(state.RecentlyViewed)
	if len(state.RecentlyViewed) > models.MaxRecentlyViewed {
		state.RecentlyViewed = state.RecentlyViewed[:models.MaxRecentlyViewed]
	}
	if state.Theme == "" {
		state.Theme = models.ThemeLight
	}
	return state
}

func uniqueByCode(records []models.CountryRecord) []models.CountryRecord {
	out := make([]models.CountryRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.CCA3 == "" {
			continue
		}
		if _, ok := seen[r.CCA3]; ok {
			continue
		}
		seen[r.CCA3] = struct{}{}
		out = append(out, r)
	}
	return out
}
