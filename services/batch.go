package services

import (
	"context"
	"sync"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/channels"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/internal/workpool"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/AbdulWasayUl/country-explorer/services/indicator"
	"github.com/rotisserie/eris"
)

const defaultWorkers = 5

// GDPByCode fetches the latest GDP of every code on a bounded worker pool.
// Codes whose GDP is unavailable are left out of the result.
func (d *DataAccess) GDPByCode(ctx context.Context, codes []string) map[string]float64 {
	return d.gdpByCode(ctx, d.Indicators, "gdp", 0, codes)
}

// RefreshGDPByCode is GDPByCode that bypasses the cache on read and bounds
// each request by timeout when it is positive.
func (d *DataAccess) RefreshGDPByCode(ctx context.Context, codes []string, timeout time.Duration) map[string]float64 {
	return d.gdpByCode(ctx, d.refreshIndicators, "gdp-refresh", timeout, codes)
}

func (d *DataAccess) gdpByCode(ctx context.Context, svc *indicator.Service, service string, timeout time.Duration, codes []string) map[string]float64 {
	var mu sync.Mutex
	out := make(map[string]float64, len(codes))

	d.runPool(ctx, service, codes, timeout, func(ctx context.Context, code string) error {
		s := svc.FetchSeries(ctx, code, models.IndicatorGDP, d.years)
		if !s.Available() {
			return eris.Errorf("gdp unavailable for %s: %s", code, s.Err)
		}
		mu.Lock()
		out[code] = *s.Current
		mu.Unlock()
		return nil
	})
	return out
}

// GDPDataByCode is GDPByCode for the full GDP bundle.
func (d *DataAccess) GDPDataByCode(ctx context.Context, codes []string) map[string]models.GDPData {
	var mu sync.Mutex
	out := make(map[string]models.GDPData, len(codes))

	d.runPool(ctx, "gdp-bundle", codes, 0, func(ctx context.Context, code string) error {
		data := d.FetchGDP(ctx, code)
		mu.Lock()
		out[code] = data
		mu.Unlock()
		return nil
	})
	return out
}

func (d *DataAccess) runPool(ctx context.Context, service string, ids []string, timeout time.Duration, run func(context.Context, string) error) {
	if len(ids) == 0 {
		return
	}
	workers := d.workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	wp := workpool.New(channels.New(), workers)
	wp.RequestTimeout = timeout
	wp.Start(ctx)
	for _, id := range ids {
		wp.Submit(models.DataRequest{ID: id, Service: service, Run: run})
	}
	wp.Wait()
	wp.Stop()

	logger.Debug("[%s] finished %d requests on %d workers", service, len(ids), workers)
}
