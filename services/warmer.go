package services

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/explore"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CacheWarmer refetches the country list and the GDP of the most populous
// countries. With a durable cache store the refreshed entries are served to
// every later process sharing that store.
type CacheWarmer struct {
	Data *DataAccess
	TopN int
	// RequestTimeout bounds each GDP request; zero means no limit.
	RequestTimeout time.Duration
}

func NewCacheWarmer(d *DataAccess, topN int, requestTimeout time.Duration) *CacheWarmer {
	return &CacheWarmer{Data: d, TopN: topN, RequestTimeout: requestTimeout}
}

func (w *CacheWarmer) Name() string { return "cache-warmer" }

// RunBatchJob replaces cached entries only with successful responses; a
// failed fetch leaves the previous entry in place.
func (w *CacheWarmer) RunBatchJob(ctx context.Context) error {
	start := time.Now()

	purged := w.Data.IndicatorCache.Purge()

	records, err := w.Data.RefreshAllCountries(ctx)
	if err != nil {
		return eris.Wrap(err, "warm: country list")
	}

	top := explore.SortRecords(records, explore.SortByPopulation)
	if len(top) > w.TopN {
		top = top[:w.TopN]
	}
	codes := make([]string, len(top))
	for i, r := range top {
		codes[i] = r.CCA3
	}
	gdp := w.Data.RefreshGDPByCode(ctx, codes, w.RequestTimeout)

	logger.L().Info("cache warmed",
		zap.Int("countries", len(records)),
		zap.Int("gdp_series", len(gdp)),
		zap.Int("purged_indicators", purged),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
