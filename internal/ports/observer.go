package ports

import "github.com/rojanmagar2001/sitecheck/internal/domain"

// Observer receives every state change of a batch run as it happens.
// Observe is called from a single goroutine and must not block for long.
type Observer interface {
	Observe(ev domain.Event)
}
