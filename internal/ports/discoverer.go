package ports

import (
	"context"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// Discoverer lists the page URLs of a site, in the order the source returns them.
// Failures are *domain.DiscoveryError.
type Discoverer interface {
	Discover(ctx context.Context, req domain.DiscoveryRequest) ([]string, error)
}
