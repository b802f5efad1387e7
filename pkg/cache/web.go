package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"supremes/internal/util"
)

// WebClient fetches URLs over HTTP. It is the only network touchpoint in
// the module; everything above it sees bytes-for-a-URL.
type WebClient struct {
	http     *http.Client
	maxTries int
}

// NewWebClientParams contains configuration for creating a WebClient.
type NewWebClientParams struct {
	Timeout  time.Duration
	MaxTries int
}

// NewWebClient creates an HTTP client with the given timeout and retry
// budget. A zero timeout defaults to 30 seconds.
func NewWebClient(params NewWebClientParams) *WebClient {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &WebClient{
		http:     &http.Client{Timeout: timeout},
		maxTries: params.MaxTries,
	}
}

// Get fetches the body of a URL, retrying transient failures.
func (w *WebClient) Get(ctx context.Context, url string) ([]byte, error) {
	return util.RetryWithContext(ctx, w.maxTries, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := w.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, url)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return body, nil
	})
}
