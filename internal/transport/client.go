// Package transport provides the shared HTTP client used for feed
// retrieval: sane timeouts, a stable User-Agent, and a response size cap.
package transport

import (
	"context"
	"io"
	"net"
	"net/http"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

const (
	userAgent    = "radar/1.0 (+https://github.com/agentstation/radar)"
	acceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
)

// Client fetches feed documents over HTTP.
type Client struct {
	http    *http.Client
	maxBody int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithMaxBodyBytes caps the number of response bytes read per fetch.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a transport client with pooled connections and timeouts.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: DefaultHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        constants.MaxIdleConnections,
				MaxIdleConnsPerHost: constants.MaxIdleConnections,
				DialContext: (&net.Dialer{
					Timeout:   constants.DialTimeout,
					KeepAlive: constants.KeepAliveInterval,
				}).DialContext,
			},
		},
		maxBody: constants.MaxFeedBodyBytes,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a URL and returns the response body. Responses with a
// non-2xx status or a body over the size cap are errors.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("request", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapIO("fetch", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.APIError{
			Service:    req.URL.Host,
			StatusCode: resp.StatusCode,
			Message:    "unexpected status fetching " + url,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, errors.WrapIO("read", url, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, &errors.IOError{
			Operation: "read",
			Path:      url,
			Message:   "response body exceeds size cap",
		}
	}
	return body, nil
}
