package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher issues a GET and returns the response body.
type Fetcher interface {
	Do(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Client makes one attempt per request. Failures surface immediately as
// *errs.NetworkError; there is no retry or backoff.
type Client struct {
	httpClient *http.Client
	rateLimit  models.RateLimitSettings
	limiter    *rate.Limiter
	userAgent  string
}

// NewClient builds a Client. A zero timeout leaves the transport default in place.
func NewClient(rl models.RateLimitSettings, timeout time.Duration) *Client {
	limit := rate.Inf
	burst := 1
	if rl.MaxRequests > 0 && rl.PerDuration > 0 {
		limit = rate.Limit(float64(rl.MaxRequests) / rl.PerDuration.Seconds())
		burst = rl.MaxRequests
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		rateLimit:  rl,
		limiter:    rate.NewLimiter(limit, burst),
		userAgent:  "country-explorer/1.0",
	}
}

func (c *Client) Do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &errs.NetworkError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "api: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request to %s failed: %v", url, err)
		return nil, &errs.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	logger.L().Debug("http response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode != http.StatusNotFound {
			logger.Error("API returned status code %d for %s", resp.StatusCode, url)
		}
		return nil, &errs.NetworkError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.NetworkError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	return body, nil
}
