package api

import (
	"context"

	"github.com/AbdulWasayUl/country-explorer/internal/cache"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"go.uber.org/zap"
)

// CachedFetcher serves fresh cache entries without touching the network.
// Only successful bodies are stored.
type CachedFetcher struct {
	next    Fetcher
	cache   *cache.Cache
	refresh bool
}

func NewCachedFetcher(next Fetcher, c *cache.Cache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: c}
}

// NewRefreshingFetcher always goes to the network and overwrites the entry
// on success. A failed request leaves the cached entry in place.
func NewRefreshingFetcher(next Fetcher, c *cache.Cache) *CachedFetcher {
	return &CachedFetcher{next: next, cache: c, refresh: true}
}

func (f *CachedFetcher) Do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if !f.refresh {
		if body, ok := f.cache.Load(ctx, url); ok {
			logger.L().Debug("cache hit", zap.String("cache", f.cache.Name()), zap.String("url", url))
			return body, nil
		}
	}

	body, err := f.next.Do(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	f.cache.Save(ctx, url, body)
	logger.L().Debug("cache fill", zap.String("cache", f.cache.Name()), zap.String("url", url))
	return body, nil
}

func (f *CachedFetcher) Cache() *cache.Cache { return f.cache }
