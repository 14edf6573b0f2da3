// Package extractor discovers a site's pages by reading anchors, starting at
// the base page and following same-host pages up to a fixed depth. It needs no
// credential and serves as the fallback source.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/extract"
	"github.com/rojanmagar2001/sitecheck/internal/ports"
)

const maxPageBytes = 8 << 20

type PageDiscoverer struct {
	client   ports.HTTPClient
	timeout  time.Duration
	maxDepth int
	log      logrus.FieldLogger
}

type pageJob struct {
	URL   string
	Depth int
}

// New returns a discoverer that reads the base page and, while maxDepth > 0,
// the same-host pages it links to.
func New(client ports.HTTPClient, timeout time.Duration, maxDepth int, log logrus.FieldLogger) *PageDiscoverer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PageDiscoverer{client: client, timeout: timeout, maxDepth: max(maxDepth, 0), log: log}
}

// Discover returns the base URL followed by the unique page links found from
// it, in breadth-first document order, truncated to req.Limit.
func (p *PageDiscoverer) Discover(ctx context.Context, req domain.DiscoveryRequest) ([]string, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start, err := url.Parse(req.BaseURL)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("parse base url: %w", err)}
	}
	startHost := strings.ToLower(start.Hostname())

	links := []string{req.BaseURL}
	seen := map[string]bool{key(req.BaseURL): true}
	queue := []pageJob{{URL: req.BaseURL}}
	pages := 0

	for len(queue) > 0 && len(links) < req.Limit {
		job := queue[0]
		queue = queue[1:]

		found, err := p.fetch(ctx, job.URL)
		if err != nil {
			if job.Depth == 0 {
				return nil, err
			}
			p.log.WithError(err).WithField("page", job.URL).Warn("page not read")
			continue
		}
		pages++

		for _, u := range extract.Pages(found) {
			k := key(u)
			if seen[k] {
				continue
			}
			seen[k] = true
			links = append(links, u)
			if len(links) >= req.Limit {
				break
			}

			// Only follow page links on the start host.
			if job.Depth >= p.maxDepth {
				continue
			}
			pu, err := url.Parse(u)
			if err != nil || strings.ToLower(pu.Hostname()) != startHost {
				continue
			}
			queue = append(queue, pageJob{URL: u, Depth: job.Depth + 1})
		}
	}

	p.log.WithFields(logrus.Fields{
		"base_url": req.BaseURL,
		"pages":    pages,
		"links":    len(links),
	}).Debug("pages scraped")

	return links, nil
}

// fetch reads one html page and returns the links found on it. Errors come
// back as *domain.DiscoveryError.
func (p *PageDiscoverer) fetch(ctx context.Context, pageURL string) ([]extract.Found, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("build page request: %w", err)}
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("fetch page: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.DiscoveryError{Status: http.StatusText(resp.StatusCode)}
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") && !strings.Contains(ct, "application/xhtml") {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("page is %q, not html", ct)}
	}

	found, err := extract.ExtractLinks(resp.Request.URL.String(), io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &domain.DiscoveryError{Err: fmt.Errorf("extract links: %w", err)}
	}
	return found, nil
}

// key folds a trailing slash so "/docs" and "/docs/" count once.
func key(u string) string {
	return strings.TrimSuffix(u, "/")
}
