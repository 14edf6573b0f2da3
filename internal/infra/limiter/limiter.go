package limiter

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/rojanmagar2001/sitecheck/internal/ports"
)

// PerHost hands out one token bucket per target host.
type PerHost struct {
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	host  map[string]*rate.Limiter
}

// New returns a per-host limiter allowing perHostRate requests per second.
// A non-positive rate disables limiting.
func New(perHostRate, burst int) ports.Limiter {
	if perHostRate <= 0 {
		return Unlimited{}
	}
	if burst <= 0 {
		burst = perHostRate
	}
	return &PerHost{
		rate:  rate.Limit(perHostRate),
		burst: burst,
		host:  make(map[string]*rate.Limiter),
	}
}

func (h *PerHost) Take(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil // invalid URL already handled elsewhere
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil
	}

	h.mu.Lock()
	l, ok := h.host[host]
	if !ok {
		l = rate.NewLimiter(h.rate, h.burst)
		h.host[host] = l
	}
	h.mu.Unlock()

	return l.Wait(ctx)
}

type Unlimited struct{}

func (Unlimited) Take(context.Context, string) error { return nil }
