package workpool

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/channels"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
)

// WorkerPool runs queued requests on a fixed number of goroutines.
// RequestTimeout, when positive, bounds each request; zero leaves the
// caller's context as the only limit.
type WorkerPool struct {
	WorkerCount    int
	Channels       *channels.Channels
	RequestTimeout time.Duration
}

func New(channels *channels.Channels, workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{
		WorkerCount: workerCount,
		Channels:    channels,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.WorkerCount; i++ {
		go wp.worker(ctx, i)
	}
}

// Submit queues req; it blocks when the buffer is full.
func (wp *WorkerPool) Submit(req models.DataRequest) {
	wp.Channels.Submit(req)
}

// Wait blocks until every submitted request has finished.
func (wp *WorkerPool) Wait() {
	wp.Channels.WG.Wait()
}

// Stop closes the queue. Workers drain what is left and exit.
func (wp *WorkerPool) Stop() {
	close(wp.Channels.DataRequest)
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger.Debug("Worker %d started.", id)
	for req := range wp.Channels.DataRequest {
		wp.process(ctx, id, req)
	}
	logger.Debug("Worker %d stopped.", id)
}

func (wp *WorkerPool) process(ctx context.Context, id int, req models.DataRequest) {
	defer wp.Channels.WG.Done()

	if ctx.Err() != nil {
		logger.Warn("[%s] Worker %d skipping %s: %v", req.Service, id, req.ID, ctx.Err())
		return
	}

	opCtx := ctx
	if wp.RequestTimeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, wp.RequestTimeout)
		defer cancel()
	}

	logger.Debug("[%s] Worker %d processing request for ID: %s", req.Service, id, req.ID)
	if err := req.Run(opCtx, req.ID); err != nil {
		logger.Error("[%s] Worker %d failed for %s: %v", req.Service, id, req.ID, err)
		return
	}
	logger.Debug("[%s] Worker %d successfully completed request for ID: %s", req.Service, id, req.ID)
}
