// Package userstate keeps the user's favorites, recently viewed countries and
// theme, persisting the whole snapshot to a durable Backend on every change.
package userstate

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/rotisserie/eris"
)

// ErrMissingCode rejects a record that cannot be keyed by its cca3.
var ErrMissingCode = errors.New("userstate: record has no cca3 code")

// Store is safe for concurrent use. A mutation is applied in memory only
// after its snapshot has been saved, and memory holds exactly what was saved.
type Store struct {
	mu      sync.Mutex
	backend Backend
	key     string
	state   models.UserState
}

// Open loads the snapshot under key (DefaultKey when empty). An absent or
// corrupt snapshot starts from models.DefaultUserState; only backend I/O
// failures are returned.
func Open(ctx context.Context, backend Backend, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{backend: backend, key: key, state: models.DefaultUserState()}

	data, err := backend.Load(ctx, key)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		logger.Debug("No saved user state under %s, starting fresh", key)
		return s, nil
	case err != nil:
		return nil, eris.Wrap(err, "userstate: open")
	}

	state, err := Decode(data)
	if err != nil {
		logger.Warn("Discarding unreadable user state under %s: %v", key, err)
		return s, nil
	}
	s.state = state
	return s, nil
}

// AddFavorite adds record unless a favorite with the same cca3 exists.
func (s *Store) AddFavorite(ctx context.Context, record models.CountryRecord) error {
	if record.CCA3 == "" {
		return eris.Wrapf(ErrMissingCode, "favorite %q", record.Name.Common)
	}
	return s.update(ctx, func(st *models.UserState) {
		if indexOf(st.Favorites, record.CCA3) >= 0 {
			return
		}
		st.Favorites = append(st.Favorites, record)
	})
}

// RemoveFavorite removes the favorite with cca3, if any.
func (s *Store) RemoveFavorite(ctx context.Context, cca3 string) error {
	return s.update(ctx, func(st *models.UserState) {
		st.Favorites = slices.DeleteFunc(st.Favorites, func(r models.CountryRecord) bool {
			return r.CCA3 == cca3
		})
	})
}

func (s *Store) IsFavorite(cca3 string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.state.Favorites, cca3) >= 0
}

// AddToRecentlyViewed moves record to the front, dropping any older entry
// for the same country and anything past models.MaxRecentlyViewed.
func (s *Store) AddToRecentlyViewed(ctx context.Context, record models.CountryRecord) error {
	if record.CCA3 == "" {
		return eris.Wrapf(ErrMissingCode, "recently viewed %q", record.Name.Common)
	}
	return s.update(ctx, func(st *models.UserState) {
		rest := slices.DeleteFunc(st.RecentlyViewed, func(r models.CountryRecord) bool {
			return r.CCA3 == record.CCA3
		})
		st.RecentlyViewed = append([]models.CountryRecord{record}, rest...)
		if len(st.RecentlyViewed) > models.MaxRecentlyViewed {
			st.RecentlyViewed = st.RecentlyViewed[:models.MaxRecentlyViewed]
		}
	})
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (models.Theme, error) {
	var next models.Theme
	err := s.update(ctx, func(st *models.UserState) {
		if st.Theme == models.ThemeDark {
			st.Theme = models.ThemeLight
		} else {
			st.Theme = models.ThemeDark
		}
		next = st.Theme
	})
	if err != nil {
		return s.Theme(), err
	}
	return next, nil
}

func (s *Store) Favorites() []models.CountryRecord {
	return s.Snapshot().Favorites
}

func (s *Store) RecentlyViewed() []models.CountryRecord {
	return s.Snapshot().RecentlyViewed
}

func (s *Store) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.state)
}

// Close releases the backend.
func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}

func (s *Store) update(ctx context.Context, mutate func(*models.UserState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.state)
	mutate(&next)
	next = normalize(next)

	data, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		return eris.Wrap(err, "userstate: persist")
	}
	s.state = next
	return nil
}

func clone(st models.UserState) models.UserState {
	return models.UserState{
		Favorites:      slices.Clone(st.Favorites),
		RecentlyViewed: slices.Clone(st.RecentlyViewed),
		Theme:          st.Theme,
	}
}

func indexOf(records []models.CountryRecord, cca3 string) int {
	return slices.IndexFunc(records, func(r models.CountryRecord) bool {
		return r.CCA3 == cca3
	})
}
