// ABOUTME: Standard library HTTP client with retries and provider rate limiting
// ABOUTME: Implements the core HTTPClient interface used by provider adapters

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"natureshare-pipeline/core/interfaces"
)

const userAgent = "natureshare-pipeline/1.0"

// Options configures the HTTP client.
type Options struct {
	// Timeout is the per-request timeout. Zero means 30 seconds.
	Timeout time.Duration

	// MaxAttempts is the retry budget per request. Zero means 3.
	MaxAttempts int

	// RequestsPerSecond caps outbound requests across all callers of the
	// client. Zero disables rate limiting.
	RequestsPerSecond float64
}

// Client implements the HTTPClient interface using net/http.
// Server errors (5xx) and transport failures retry with exponential
// backoff; client errors (4xx) return immediately.
type Client struct {
	client      *http.Client
	maxAttempts int
	limiter     *rate.Limiter
}

// NewClient creates an HTTP client from options.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		client:      &http.Client{Timeout: timeout},
		maxAttempts: attempts,
		limiter:     limiter,
	}
}

// Get performs an HTTP GET request with retry and rate limiting.
func (c *Client) Get(ctx context.Context, url string) (interfaces.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<uint(attempt-1))) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// 5xx responses are transient; drain and retry
		if resp.StatusCode >= 500 && attempt < c.maxAttempts-1 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		return &httpResponse{resp: resp}, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// httpResponse wraps http.Response to implement the Response interface.
type httpResponse struct {
	resp *http.Response
}

func (r *httpResponse) StatusCode() int { return r.resp.StatusCode }

func (r *httpResponse) Body() io.ReadCloser { return r.resp.Body }

func (r *httpResponse) Header(key string) string { return r.resp.Header.Get(key) }
