// Package services wires the two data providers behind one explicitly
// constructed data access service.
package services

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/api"
	"github.com/AbdulWasayUl/country-explorer/internal/cache"
	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/AbdulWasayUl/country-explorer/services/indicator"
)

// DataAccess owns the HTTP client and the two response caches. Construct it
// once per process and pass it to consumers.
type DataAccess struct {
	Countries      *country.Service
	Indicators     *indicator.Service
	CountryCache   *cache.Cache
	IndicatorCache *cache.Cache
	years          int
	workers        int

	// refetch from the network and overwrite the shared caches on success
	refreshCountries  *country.Service
	refreshIndicators *indicator.Service
}

// Option customizes a DataAccess.
type Option func(*options)

type options struct {
	store cache.Store
}

// WithCacheStore backs both caches with a durable store, so entries written
// by one process are served to the next.
func WithCacheStore(store cache.Store) Option {
	return func(o *options) { o.store = store }
}

// NewDataAccess builds the service from configuration.
func NewDataAccess(cfg *config.Config, opts ...Option) *DataAccess {
	burst := cfg.HTTPRateBurst
	rl := models.RateLimitSettings{
		MaxRequests: burst,
		PerDuration: time.Duration(float64(burst) / cfg.HTTPRatePerSecond * float64(time.Second)),
	}
	client := api.NewClient(rl, cfg.HTTPTimeout)
	return NewDataAccessWithFetcher(cfg, client, opts...)
}

// NewDataAccessWithFetcher builds the service on top of an existing fetcher.
func NewDataAccessWithFetcher(cfg *config.Config, client api.Fetcher, opts ...Option) *DataAccess {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var cacheOpts []cache.Option
	if o.store != nil {
		cacheOpts = append(cacheOpts, cache.WithStore(o.store))
	}

	countryCache := cache.New("countries", cfg.CountryCacheTTL, cacheOpts...)
	indicatorCache := cache.New("indicators", cfg.IndicatorCacheTTL, cacheOpts...)

	return &DataAccess{
		Countries:         country.NewService(cfg.CountriesAPIBaseURL, api.NewCachedFetcher(client, countryCache)),
		Indicators:        indicator.NewService(cfg.IndicatorsAPIBaseURL, api.NewCachedFetcher(client, indicatorCache)),
		CountryCache:      countryCache,
		IndicatorCache:    indicatorCache,
		years:             cfg.IndicatorYears,
		workers:           cfg.WorkerCount,
		refreshCountries:  country.NewService(cfg.CountriesAPIBaseURL, api.NewRefreshingFetcher(client, countryCache)),
		refreshIndicators: indicator.NewService(cfg.IndicatorsAPIBaseURL, api.NewRefreshingFetcher(client, indicatorCache)),
	}
}

// RefreshAllCountries refetches the country list and replaces the cached
// entry only when the fetch succeeds.
func (d *DataAccess) RefreshAllCountries(ctx context.Context) ([]models.CountryRecord, error) {
	return d.refreshCountries.FetchAll(ctx)
}

func (d *DataAccess) FetchAllCountries(ctx context.Context) ([]models.CountryRecord, error) {
	return d.Countries.FetchAll(ctx)
}

func (d *DataAccess) FetchCountryByCode(ctx context.Context, code string) (models.CountryRecord, error) {
	return d.Countries.FetchByCode(ctx, code)
}

func (d *DataAccess) FetchCountriesByCodes(ctx context.Context, codes []string) ([]models.CountryRecord, error) {
	return d.Countries.FetchByCodes(ctx, codes)
}

// FetchIndicatorSeries uses the configured history length when yearsBack is zero.
func (d *DataAccess) FetchIndicatorSeries(ctx context.Context, countryCode, indicatorID string, yearsBack int) models.IndicatorSeries {
	if yearsBack <= 0 {
		yearsBack = d.years
	}
	return d.Indicators.FetchSeries(ctx, countryCode, indicatorID, yearsBack)
}

func (d *DataAccess) FetchGDP(ctx context.Context, countryCode string) models.GDPData {
	return d.Indicators.FetchGDP(ctx, countryCode, d.years)
}

func (d *DataAccess) FetchEconomicIndicators(ctx context.Context, countryCode string) map[string]models.IndicatorValue {
	return d.Indicators.FetchEconomicIndicators(ctx, countryCode)
}

// SearchCountries looks countries up by (partial) name.
func (d *DataAccess) SearchCountries(ctx context.Context, name string) ([]models.CountryRecord, error) {
	return d.Countries.SearchByName(ctx, name)
}

func (d *DataAccess) FetchCountriesByRegion(ctx context.Context, region string) ([]models.CountryRecord, error) {
	return d.Countries.FetchByRegion(ctx, region)
}
