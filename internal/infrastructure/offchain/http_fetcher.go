package offchain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"mint-market.backend/pkg/logger"
)

// Fetcher retrieves URI-linked JSON documents
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, result any) error
}

// HTTPFetcher implements Fetcher over plain HTTP with retry on rate
// limiting and transient network failures.
type HTTPFetcher struct {
	client     *http.Client
	maxElapsed time.Duration
}

// NewHTTPFetcher creates a new HTTP fetcher
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{
		client:     &http.Client{Timeout: timeout},
		maxElapsed: 45 * time.Second,
	}
}

// FetchJSON performs a GET request and unmarshals the body into result.
// Rate-limit responses and network errors are retried with exponential
// backoff; other non-OK statuses fail immediately.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string, result any) error {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("new request: %w", err))
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn(ctx, "failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("rate limited (429)")
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read response body: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = f.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal %s: %w", url, err)
	}
	return nil
}
