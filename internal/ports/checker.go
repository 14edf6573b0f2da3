package ports

import (
	"context"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
)

// LinkChecker performs one liveness attempt. It never returns an error;
// failures are reported in the Outcome.
type LinkChecker interface {
	Check(ctx context.Context, url string) domain.Outcome
}
