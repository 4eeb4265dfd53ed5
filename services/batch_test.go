package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/userstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// worldServer serves three countries and GDP figures for USA and FRA only.
func worldServer(t *testing.T, countryHits, indicatorHits *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v3.1/all":
			atomic.AddInt32(countryHits, 1)
			fmt.Fprint(w, `[
				{"name":{"common":"United States"},"cca3":"USA","population":331000000},
				{"name":{"common":"France"},"cca3":"FRA","population":68000000},
				{"name":{"common":"Tuvalu"},"cca3":"TUV","population":11000}
			]`)
		case strings.HasPrefix(r.URL.Path, "/v2/country/"):
			atomic.AddInt32(indicatorHits, 1)
			code := strings.Split(r.URL.Path, "/")[3]
			switch code {
			case "USA":
				fmt.Fprint(w, `[{"page":1},[{"country":{"value":"United States"},"date":"2023","value":2.7e13}]]`)
			case "FRA":
				fmt.Fprint(w, `[{"page":1},[{"country":{"value":"France"},"date":"2023","value":3.0e12}]]`)
			default:
				http.Error(w, "boom", http.StatusInternalServerError)
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestDataAccess_GDPByCode(t *testing.T) {
	var countryHits, indicatorHits int32
	ts := worldServer(t, &countryHits, &indicatorHits)

	cfg := testConfig(ts.URL)
	cfg.WorkerCount = 2
	da := NewDataAccess(cfg)

	got := da.GDPByCode(context.Background(), []string{"USA", "FRA", "TUV"})
	assert.Equal(t, map[string]float64{"USA": 2.7e13, "FRA": 3.0e12}, got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&indicatorHits))

	again := da.GDPByCode(context.Background(), []string{"USA", "FRA"})
	assert.Len(t, again, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&indicatorHits), "served from cache")

	assert.Empty(t, da.GDPByCode(context.Background(), nil))
}

func TestDataAccess_GDPDataByCode(t *testing.T) {
	var countryHits, indicatorHits int32
	ts := worldServer(t, &countryHits, &indicatorHits)
	da := NewDataAccess(testConfig(ts.URL))

	got := da.GDPDataByCode(context.Background(), []string{"FRA", "TUV"})
	require.Len(t, got, 2)
	assert.Equal(t, "France", got["FRA"].CountryName)
	assert.True(t, got["FRA"].GDP.Available())
	assert.False(t, got["TUV"].GDP.Available())
	assert.NotEmpty(t, got["TUV"].GDP.Err)
}

// deadlineFetcher answers every indicator request and records whether its
// context carried a deadline.
type deadlineFetcher struct {
	mu        sync.Mutex
	deadlines []bool
}

func (f *deadlineFetcher) Do(ctx context.Context, url string, _ map[string]string) ([]byte, error) {
	_, ok := ctx.Deadline()
	f.mu.Lock()
	f.deadlines = append(f.deadlines, ok)
	f.mu.Unlock()
	return []byte(`[{"page":1},[{"country":{"value":"France"},"date":"2023","value":1.5}]]`), nil
}

func TestDataAccess_InteractiveBatchesHaveNoDeadline(t *testing.T) {
	tests := []struct {
		name string
		run  func(ctx context.Context, da *DataAccess)
	}{
		{name: "gdp bundle", run: func(ctx context.Context, da *DataAccess) {
			da.GDPDataByCode(ctx, []string{"USA", "FRA", "DEU"})
		}},
		{name: "latest gdp", run: func(ctx context.Context, da *DataAccess) {
			da.GDPByCode(ctx, []string{"USA", "FRA", "DEU"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &deadlineFetcher{}
			tt.run(context.Background(), NewDataAccessWithFetcher(testConfig("http://unused"), f))

			f.mu.Lock()
			defer f.mu.Unlock()
			require.NotEmpty(t, f.deadlines)
			for _, has := range f.deadlines {
				assert.False(t, has)
			}
		})
	}
}

func TestDataAccess_RefreshGDPByCodeTimeout(t *testing.T) {
	f := &deadlineFetcher{}
	da := NewDataAccessWithFetcher(testConfig("http://unused"), f)

	got := da.RefreshGDPByCode(context.Background(), []string{"FRA"}, 30*time.Second)
	assert.Equal(t, map[string]float64{"FRA": 1.5}, got)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, []bool{true}, f.deadlines)
}

func TestCacheWarmer_RunBatchJob(t *testing.T) {
	var countryHits, indicatorHits int32
	ts := worldServer(t, &countryHits, &indicatorHits)
	da := NewDataAccess(testConfig(ts.URL))
	w := NewCacheWarmer(da, 2, 0)
	ctx := context.Background()

	require.NoError(t, w.RunBatchJob(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&countryHits))
	assert.Equal(t, int32(2), atomic.LoadInt32(&indicatorHits), "only the two most populous")

	require.NoError(t, w.RunBatchJob(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&countryHits), "country list is refetched every run")
	assert.Equal(t, int32(4), atomic.LoadInt32(&indicatorHits), "gdp is refetched every run")

	_, err := da.FetchAllCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&countryHits), "readers are served the warmed entry")
	assert.Len(t, da.GDPByCode(ctx, []string{"USA", "FRA"}), 2)
	assert.Equal(t, int32(4), atomic.LoadInt32(&indicatorHits))
}

func TestCacheWarmer_FailedRefreshKeepsEntries(t *testing.T) {
	var failing atomic.Bool
	var countryHits, indicatorHits int32
	world := worldServer(t, &countryHits, &indicatorHits)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		world.Config.Handler.ServeHTTP(w, r)
	}))
	defer ts.Close()

	da := NewDataAccess(testConfig(ts.URL))
	w := NewCacheWarmer(da, 2, 0)
	ctx := context.Background()
	require.NoError(t, w.RunBatchJob(ctx))

	failing.Store(true)
	require.Error(t, w.RunBatchJob(ctx))

	records, err := da.FetchAllCountries(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, int32(1), atomic.LoadInt32(&countryHits))
}

func TestCacheWarmer_ServesSeparateConsumer(t *testing.T) {
	var countryHits, indicatorHits int32
	ts := worldServer(t, &countryHits, &indicatorHits)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	warmStore, err := userstate.OpenSQLite(ctx, path)
	require.NoError(t, err)
	warmer := NewCacheWarmer(NewDataAccess(testConfig(ts.URL), WithCacheStore(warmStore)), 2, 0)
	require.NoError(t, warmer.RunBatchJob(ctx))
	require.NoError(t, warmStore.Close(ctx))

	readStore, err := userstate.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer readStore.Close(ctx) //nolint:errcheck
	reader := NewDataAccess(testConfig(ts.URL), WithCacheStore(readStore))

	records, err := reader.FetchAllCountries(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, map[string]float64{"USA": 2.7e13, "FRA": 3.0e12}, reader.GDPByCode(ctx, []string{"USA", "FRA"}))

	assert.Equal(t, int32(1), atomic.LoadInt32(&countryHits), "reader did not refetch the country list")
	assert.Equal(t, int32(2), atomic.LoadInt32(&indicatorHits), "reader did not refetch gdp")
	assert.Equal(t, int64(1), reader.CountryCache.Stats().Restored)
}

func TestCacheWarmer_CountryFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ts.Close()

	w := NewCacheWarmer(NewDataAccess(testConfig(ts.URL)), 5, 0)
	assert.Error(t, w.RunBatchJob(context.Background()))
	assert.Equal(t, "cache-warmer", w.Name())
}
