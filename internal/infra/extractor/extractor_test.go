package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojanmagar2001/sitecheck/internal/domain"
	"github.com/rojanmagar2001/sitecheck/internal/infra/httpclient"
)

func TestPageDiscoverer_ListsAnchorsInOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`
			<html><body>
				<a href="/">home</a>
				<a href="/z">z</a>
				<a href="/a">a</a>
				<a href="mailto:x@example.com">mail</a>
				<img src="/logo.png">
			</body></html>
		`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	log, _ := test.NewNullLogger()
	d := New(httpclient.New("", 0), 2*time.Second, 0, log)

	links, err := d.Discover(context.Background(), domain.DiscoveryRequest{BaseURL: srv.URL + "/", Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/", srv.URL + "/z", srv.URL + "/a"}, links)

	links, err = d.Discover(context.Background(), domain.DiscoveryRequest{BaseURL: srv.URL + "/", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestPageDiscoverer_Failures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	log, _ := test.NewNullLogger()
	d := New(httpclient.New("", 0), 2*time.Second, 0, log)

	for _, path := range []string{"/missing", "/json"} {
		_, err := d.Discover(context.Background(), domain.DiscoveryRequest{BaseURL: srv.URL + path, Limit: 10})
		var de *domain.DiscoveryError
		require.ErrorAs(t, err, &de, path)
	}

	_, err := d.Discover(context.Background(), domain.DiscoveryRequest{BaseURL: srv.URL, Limit: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestPageDiscoverer_FollowsSameHostPages(t *testing.T) {
	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>" + body + "</body></html>"))
		}
	}
	mux.HandleFunc("/", page(`<a href="/docs/">docs</a><a href="/blog">blog</a><a href="https://other.example/x">ext</a>`))
	mux.HandleFunc("/docs/", page(`<a href="/docs/intro">intro</a><a href="/blog">blog</a>`))
	mux.HandleFunc("/docs/intro", page(`<a href="/deep">deep</a>`))
	mux.HandleFunc("/blog", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	log, hook := test.NewNullLogger()
	base := srv.URL + "/"

	links, err := New(httpclient.New("", 0), 2*time.Second, 1, log).
		Discover(context.Background(), domain.DiscoveryRequest{BaseURL: base, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{
		base,
		srv.URL + "/docs/",
		srv.URL + "/blog",
		"https://other.example/x",
		srv.URL + "/docs/intro",
	}, links, "depth 1 reads /docs/ but not /docs/intro")

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Message == "page not read" {
			warned = true
		}
	}
	assert.True(t, warned, "failing child page is logged and skipped")

	links, err = New(httpclient.New("", 0), 2*time.Second, 2, log).
		Discover(context.Background(), domain.DiscoveryRequest{BaseURL: base, Limit: 100})
	require.NoError(t, err)
	assert.Contains(t, links, srv.URL+"/deep")
}
