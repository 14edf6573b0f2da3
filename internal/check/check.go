package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/ports"
)

// Checker issues one GET per URL and classifies the attempt.
//
// By default a completed request is a success whatever its HTTP status: the
// check proves the target answered, not that it answered 2xx. Strict turns
// HTTP >= 400 into an error.
type Checker struct {
	Client      ports.HTTPClient
	Limiter     ports.Limiter
	Timeout     time.Duration
	Strict      bool
	MaxBodyRead int64
}

func NewChecker(client ports.HTTPClient, timeout time.Duration) *Checker {
	return &Checker{
		Client:      client,
		Timeout:     timeout,
		MaxBodyRead: 64 << 10,
	}
}

func (c *Checker) Check(ctx context.Context, link string) domain.Outcome {
	if c.Limiter != nil {
		if err := c.Limiter.Take(ctx, link); err != nil {
			return failed(link, 0, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	start := time.Now()

	// Each attempt has its own deadline; the cause tells a timeout apart from
	// every other way the request can end early.
	attemptCtx, cancel := context.WithTimeoutCause(ctx, c.Timeout, domain.ErrCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, link, nil)
	if err != nil {
		return failed(link, time.Since(start), fmt.Errorf("new request: %w", err))
	}

	resp, err := c.Client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(context.Cause(attemptCtx), domain.ErrCheckTimeout) {
			return domain.Outcome{
				URL:        link,
				Status:     domain.StatusTimeout,
				StatusText: domain.TextTimeout,
				Duration:   elapsed,
				Err:        fmt.Errorf("%w after %v: %s", domain.ErrCheckTimeout, c.Timeout, link),
			}
		}
		return failed(link, elapsed, fmt.Errorf("GET request: %w", err))
	}
	defer resp.Body.Close()

	// Drain a little body so the connection can be reused.
	if c.MaxBodyRead > 0 {
		_, _ = io.CopyN(io.Discard, resp.Body, c.MaxBodyRead)
	}

	return c.completed(link, resp, elapsed)
}

func (c *Checker) completed(link string, resp *http.Response, elapsed time.Duration) domain.Outcome {
	code := resp.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	text := http.StatusText(code)
	if text == "" {
		text = domain.TextOK
	}

	if c.Strict && code >= 400 {
		return domain.Outcome{
			URL:        link,
			Status:     domain.StatusError,
			StatusCode: code,
			StatusText: text,
			Duration:   elapsed,
			Err:        fmt.Errorf("%w: HTTP %d", domain.ErrCheckFailure, code),
		}
	}

	return domain.Outcome{
		URL:        link,
		Status:     domain.StatusSuccess,
		StatusCode: code,
		StatusText: text,
		Duration:   elapsed,
	}
}

func failed(link string, elapsed time.Duration, err error) domain.Outcome {
	return domain.Outcome{
		URL:        link,
		Status:     domain.StatusError,
		StatusText: domain.TextFailed,
		Duration:   elapsed,
		Err:        fmt.Errorf("%w: %w", domain.ErrCheckFailure, err),
	}
}
