package feeds

import (
	"context"
	"errors"
	"sync"

	"github.com/agentstation/radar/internal/transport"
	pkgerrors "github.com/agentstation/radar/pkg/errors"
	"github.com/agentstation/radar/pkg/logging"
)

// Client retrieves vendor feeds over HTTP and decodes their entries.
type Client struct {
	transport *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the HTTP transport used for feed retrieval.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// NewClient creates a feed client with a shared pooled transport.
func NewClient(opts ...Option) *Client {
	c := &Client{
		transport: transport.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result holds one feed's outcome from a concurrent fetch.
type Result struct {
	Feed  Feed
	Items []Item
	Err   error
}

// Fetch retrieves a single feed and decodes its entries. Failures come
// back as a FeedError naming the feed.
func (c *Client) Fetch(ctx context.Context, feed Feed) ([]Item, error) {
	body, err := c.transport.Get(ctx, feed.URL)
	if err != nil {
		return nil, feedError(feed, err)
	}

	items, err := Parse(body)
	if err != nil {
		return nil, feedError(feed, err)
	}
	return items, nil
}

// FetchAll retrieves every feed in the registry concurrently. Results
// come back in registry order so downstream merging stays deterministic.
// Per-feed failures are logged and recorded in the result rather than
// aborting the remaining feeds.
func (c *Client) FetchAll(ctx context.Context, registry Registry) []Result {
	logger := logging.FromContext(ctx)
	logger.Info().
		Int("feed_count", len(registry)).
		Msg("Fetching feeds concurrently")

	results := make([]Result, len(registry))

	var wg sync.WaitGroup
	for i, feed := range registry {
		wg.Add(1)
		go func(i int, feed Feed) {
			defer wg.Done()

			feedCtx := logging.WithFeed(ctx, feed.Name)
			items, err := c.Fetch(feedCtx, feed)
			if err != nil {
				logging.Ctx(feedCtx).Warn().
					Err(err).
					Str("feed", feed.Name).
					Msg("Feed fetch failed")
				results[i] = Result{Feed: feed, Err: err}
				return
			}

			logging.Ctx(feedCtx).Debug().
				Str("feed", feed.Name).
				Int("item_count", len(items)).
				Msg("Fetched feed")
			results[i] = Result{Feed: feed, Items: items}
		}(i, feed)
	}
	wg.Wait()

	return results
}

// feedError wraps a transport or decode failure, surfacing the HTTP
// status when the underlying error carries one.
func feedError(feed Feed, err error) error {
	var apiErr *pkgerrors.APIError
	if errors.As(err, &apiErr) {
		return pkgerrors.NewFeedError(feed.Name, feed.URL, apiErr.StatusCode, err)
	}
	return pkgerrors.WrapFeed(feed.Name, feed.URL, err)
}
