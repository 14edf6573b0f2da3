package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	MinLimit     = 1
	MaxLimit     = 5000
	DefaultLimit = 100
)

var ErrInvalidRequest = errors.New("invalid discovery request")

// DiscoveryRequest is what the user submits to list a site's pages.
type DiscoveryRequest struct {
	BaseURL string
	APIKey  string
	Limit   int
}

// Validate checks the base URL and limit; the credential is checked only when
// the source needs one.
func (r DiscoveryRequest) Validate(needKey bool) error {
	if strings.TrimSpace(r.BaseURL) == "" {
		return fmt.Errorf("%w: base url is required", ErrInvalidRequest)
	}
	u, err := url.Parse(r.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: parse base url: %v", ErrInvalidRequest, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base url must be an absolute http(s) url, got %q", ErrInvalidRequest, r.BaseURL)
	}
	if needKey && strings.TrimSpace(r.APIKey) == "" {
		return fmt.Errorf("%w: api key is required", ErrInvalidRequest)
	}
	if r.Limit < MinLimit || r.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be in [%d, %d], got %d", ErrInvalidRequest, MinLimit, MaxLimit, r.Limit)
	}
	return nil
}
