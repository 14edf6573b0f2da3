package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

type Kind string

const (
	KindPage  Kind = "page"
	KindAsset Kind = "asset"
)

type SkipReason string

const (
	SkipEmpty             SkipReason = "empty"
	SkipFragmentOnly      SkipReason = "fragment_only"
	SkipUnsupportedScheme SkipReason = "unsupported_scheme"
	SkipInvalidURL        SkipReason = "invalid_url"
)

// Found is one reference seen in a document. URL is empty when SkipReason is set.
type Found struct {
	Raw        string
	URL        string
	Kind       Kind
	SkipReason SkipReason
}

// assetAttrs maps element names to the attribute carrying an asset reference.
var assetAttrs = map[string]string{
	"img":    "src",
	"script": "src",
	"link":   "href",
	"source": "src",
}

// ExtractLinks finds <a href> (pages) and src/href asset references in document
// order, resolves them against baseURL and removes fragments. Duplicates are
// reported once; skipped references are reported with a reason.
func ExtractLinks(baseURL string, r io.Reader) ([]Found, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[string]struct{})
	var out []Found

	add := func(raw string, kind Kind) {
		f := classify(base, raw, kind)
		if f.SkipReason == "" {
			if _, ok := seen[f.URL]; ok {
				return
			}
			seen[f.URL] = struct{}{}
		}
		out = append(out, f)
	}

	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		if n.Data == "a" {
			if v, ok := attr(n, "href"); ok {
				add(v, KindPage)
			}
			continue
		}
		if key, ok := assetAttrs[n.Data]; ok {
			if v, ok := attr(n, key); ok {
				add(v, KindAsset)
			}
		}
	}

	return out, nil
}

// Pages returns the unique, checkable page URLs from found, in order.
func Pages(found []Found) []string {
	var out []string
	for _, f := range found {
		if f.Kind == KindPage && f.SkipReason == "" {
			out = append(out, f.URL)
		}
	}
	return out
}

func classify(base *url.URL, raw string, kind Kind) Found {
	f := Found{Raw: raw, Kind: kind}

	href := strings.TrimSpace(raw)
	if href == "" {
		f.SkipReason = SkipEmpty
		return f
	}
	if strings.HasPrefix(href, "#") {
		f.SkipReason = SkipFragmentOnly
		return f
	}

	u, err := url.Parse(href)
	if err != nil {
		f.SkipReason = SkipInvalidURL
		return f
	}

	resolved := base.ResolveReference(u)
	switch strings.ToLower(resolved.Scheme) {
	case "http", "https":
	default:
		f.SkipReason = SkipUnsupportedScheme
		return f
	}

	resolved.Fragment = ""
	f.URL = resolved.String()
	return f
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
