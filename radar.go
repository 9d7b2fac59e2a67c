// Package radar maintains a dataset of AI product launches observed
// from vendor RSS and Atom feeds. Each scan fetches the configured
// feeds, classifies every item into a product candidate, merges the
// candidates into a durable CSV table without duplicating products,
// and writes a daily markdown digest of what changed.
//
// Example usage:
//
//	// Create a radar instance writing under ./data
//	r, err := radar.New(radar.WithDataDir("./data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register event hooks
//	r.OnRowAdded(func(row dataset.Row) {
//	    log.Printf("New product: %s %s", row.Company, row.Product)
//	})
//
//	// Run a scan
//	result, err := r.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	// Read the table (returns a copy)
//	rows, err := r.Dataset()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range rows.List() {
//	    fmt.Printf("%s: %s [%s]\n", row.Company, row.Product, row.Status)
//	}
package radar

import (
	"context"
	"sync"

	"github.com/agentstation/radar/pkg/classify"
	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/digest"
	"github.com/agentstation/radar/pkg/enhancer"
	"github.com/agentstation/radar/pkg/feeds"
	"github.com/agentstation/radar/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Radar = (*client)(nil)

// Dataset provides copy-on-read access to the product table.
type Dataset interface {
	// Dataset returns a copy of the current table.
	Dataset() (*dataset.Rows, error)
}

// Scanner runs the fetch, classify, merge, digest pipeline.
type Scanner interface {
	// Scan executes one run and reports what changed.
	Scan(ctx context.Context, opts ...ScanOption) (*ScanResult, error)
}

// Hooks provides access to event callback registration.
type Hooks interface {
	// OnRowAdded registers a callback for rows created by a scan.
	OnRowAdded(RowAddedHook)

	// OnRowPromoted registers a callback for rows whose status a scan
	// advanced.
	OnRowPromoted(RowPromotedHook)
}

// Radar maintains the product dataset from vendor feeds.
type Radar interface {

	// Dataset provides copy-on-read access to the product table
	Dataset

	// Scanner runs the observation pipeline
	Scanner

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Radar interface.
type client struct {

	// options are the configured options for the client
	options *options

	// rows is the cached table, nil until first loaded
	mu   sync.RWMutex
	rows *dataset.Rows

	// pipeline collaborators
	store      *dataset.Store
	writer     *digest.Writer
	fetcher    *feeds.Client
	reconciler reconciler.Reconciler
	pipeline   *enhancer.Pipeline

	// hooks holds event callbacks fired after a scan saves the table
	hooks *hooks
}

// New creates a new Radar instance with the given options.
func New(opts ...Option) (Radar, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Surface bad classification rules at construction time. Scan
	// rebuilds the classifier per run with the run's reference date.
	if _, err := classify.New(classify.WithRules(options.rules)); err != nil {
		return nil, err
	}

	rec, err := reconciler.New()
	if err != nil {
		return nil, err
	}

	return &client{
		options:    options,
		store:      dataset.NewStore(options.resolvedTablePath()),
		writer:     digest.NewWriter(options.resolvedDigestDir()),
		fetcher:    feeds.NewClient(),
		reconciler: rec,
		pipeline:   enhancer.NewPipeline(options.enhancers...),
		hooks:      newHooks(),
	}, nil
}

// Dataset returns a copy of the current table, loading it from disk on
// first use.
func (c *client) Dataset() (*dataset.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rows == nil {
		rows, err := c.store.Load()
		if err != nil {
			return nil, err
		}
		c.rows = rows
	}
	return c.rows.Clone(), nil
}

// OnRowAdded registers a callback for rows created by a scan.
func (c *client) OnRowAdded(fn RowAddedHook) {
	c.hooks.OnRowAdded(fn)
}

// OnRowPromoted registers a callback for rows whose status a scan advanced.
func (c *client) OnRowPromoted(fn RowPromotedHook) {
	c.hooks.OnRowPromoted(fn)
}
