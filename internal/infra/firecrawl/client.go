// Package firecrawl lists a site's pages through the Firecrawl map endpoint.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/ports"
)

const (
	DefaultEndpoint = "https://api.firecrawl.dev/v2/map"

	// sitemapInclude asks the service to merge sitemap entries into the result.
	sitemapInclude = "include"

	maxResponseBytes = 4 << 20
)

type mapRequest struct {
	URL     string `json:"url"`
	Sitemap string `json:"sitemap"`
	Limit   int    `json:"limit"`
}

type Client struct {
	http     ports.HTTPClient
	endpoint string
	timeout  time.Duration
	log      logrus.FieldLogger
}

func New(httpc ports.HTTPClient, endpoint string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		http:     httpc,
		endpoint: endpoint,
		timeout:  timeout,
		log:      log,
	}
}

func (c *Client) Discover(ctx context.Context, req domain.DiscoveryRequest) ([]string, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(mapRequest{URL: req.BaseURL, Sitemap: sitemapInclude, Limit: req.Limit})
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("map request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.DiscoveryError{Status: statusText(resp), Err: serviceError(body)}
	}

	links, skipped, err := NormalizeLinks(body)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: err}
	}
	if skipped > 0 {
		c.log.WithField("skipped", skipped).Warn("map response had entries without a url")
	}

	c.log.WithFields(logrus.Fields{
		"base_url": req.BaseURL,
		"links":    len(links),
	}).Debug("map request done")

	return links, nil
}

// NormalizeLinks extracts the `links` list of a map response. Each entry is
// either a URL string or an object with a `url` field; order is preserved.
// Entries without a usable URL are counted in skipped.
func NormalizeLinks(body []byte) (links []string, skipped int, err error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, errors.New("decode response: invalid JSON")
	}

	list := gjson.GetBytes(body, "links")
	if !list.IsArray() {
		return nil, 0, domain.ErrNoLinks
	}

	items := list.Array()
	links = make([]string, 0, len(items))
	for _, item := range items {
		var u string
		switch {
		case item.Type == gjson.String:
			u = item.String()
		case item.IsObject():
			if v := item.Get("url"); v.Type == gjson.String {
				u = v.String()
			}
		}

		u = strings.TrimSpace(u)
		if u == "" {
			skipped++
			continue
		}
		links = append(links, u)
	}
	return links, skipped, nil
}

func statusText(resp *http.Response) string {
	if t := http.StatusText(resp.StatusCode); t != "" {
		return t
	}
	return resp.Status
}

// serviceError picks the error message out of a failed response, if it has one.
func serviceError(body []byte) error {
	if !gjson.ValidBytes(body) {
		return nil
	}
	for _, path := range []string{"error", "message"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
			return errors.New(v.String())
		}
	}
	return nil
}
