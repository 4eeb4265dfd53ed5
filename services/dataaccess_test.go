package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(base string) *config.Config {
	return &config.Config{
		CountriesAPIBaseURL:  base + "/v3.1",
		IndicatorsAPIBaseURL: base + "/v2",
		CountryCacheTTL:      30 * time.Minute,
		IndicatorCacheTTL:    60 * time.Minute,
		IndicatorYears:       10,
		HTTPRatePerSecond:    100,
		HTTPRateBurst:        100,
	}
}

func TestDataAccess_SeparateCaches(t *testing.T) {
	var countryHits, indicatorHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3.1/all":
			atomic.AddInt32(&countryHits, 1)
			fmt.Fprint(w, `[{"name":{"common":"France"},"cca3":"FRA","population":68000000}]`)
		default:
			atomic.AddInt32(&indicatorHits, 1)
			fmt.Fprint(w, `[{"page":1},[{"country":{"value":"France"},"date":"2023","value":1.5}]]`)
		}
	}))
	defer ts.Close()

	da := NewDataAccess(testConfig(ts.URL))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		recs, err := da.FetchAllCountries(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&countryHits))

	for i := 0; i < 2; i++ {
		s := da.FetchIndicatorSeries(ctx, "FR", models.IndicatorGDP, 0)
		assert.True(t, s.Available())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&indicatorHits))

	assert.Equal(t, 30*time.Minute, da.CountryCache.TTL())
	assert.Equal(t, 60*time.Minute, da.IndicatorCache.TTL())
	assert.Equal(t, 1, da.CountryCache.Stats().Keys)
	assert.Equal(t, 1, da.IndicatorCache.Stats().Keys)
}
