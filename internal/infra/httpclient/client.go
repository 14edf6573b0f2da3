package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Client is the shared transport for discovery and liveness checks.
// It has no overall timeout; every caller bounds its own request with a context.
type Client struct {
	c         *http.Client
	userAgent string
}

func New(userAgent string, maxConnsPerHost int) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	if maxConnsPerHost > 0 {
		tr.MaxConnsPerHost = maxConnsPerHost
		tr.MaxIdleConnsPerHost = maxConnsPerHost
	}

	return &Client{
		c:         &http.Client{Transport: tr},
		userAgent: userAgent,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.c.Do(req)
}

func (c *Client) CloseIdleConnections() {
	c.c.CloseIdleConnections()
}
