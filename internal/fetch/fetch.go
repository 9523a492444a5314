package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TransportError covers everything that keeps a source's document out of
// reach this cycle: connection failures, timeouts, and non-2xx statuses. The
// pipeline treats all of them identically (skip the source, keep the run
// going).
type TransportError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client fetches career-page documents with a bounded timeout and per-host
// rate limiting.
type Client struct {
	hc        *http.Client
	limiter   *HostLimiter
	userAgent string
}

func NewClient(timeout time.Duration, userAgent string, limiter *HostLimiter) *Client {
	return &Client{
		hc:        &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: userAgent,
	}
}

// Get returns the raw document at url, or a *TransportError.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return "", &TransportError{URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	res, err := c.hc.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &TransportError{URL: url, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	return string(body), nil
}
