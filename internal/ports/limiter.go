package ports

import "context"

// Limiter blocks until a request to rawURL may proceed.
type Limiter interface {
	Take(ctx context.Context, rawURL string) error
}
