package models

import (
	"context"
	"time"
)

// DataRequest is one unit of work handed to the worker pool.
type DataRequest struct {
	ID      string
	Service string
	Run     func(ctx context.Context, id string) error
}

type RateLimitSettings struct {
	MaxRequests int
	PerDuration time.Duration
}
