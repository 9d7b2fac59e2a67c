package radar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/radar/pkg/classify"
	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/digest"
	"github.com/agentstation/radar/pkg/logging"
)

// ScanOptions configures a single scan run.
type ScanOptions struct {
	// DryRun computes the full result without writing the table or the
	// digest and without firing hooks.
	DryRun bool

	// Timeout bounds the whole run. Zero disables the timeout.
	Timeout time.Duration
}

// ScanOption is a function that configures a scan run.
type ScanOption func(*ScanOptions)

// ScanWithDryRun enables dry run mode (report changes without applying them).
func ScanWithDryRun(enabled bool) ScanOption {
	return func(opts *ScanOptions) {
		opts.DryRun = enabled
	}
}

// ScanWithTimeout bounds the run. Zero disables the timeout.
func ScanWithTimeout(timeout time.Duration) ScanOption {
	return func(opts *ScanOptions) {
		opts.Timeout = timeout
	}
}

// NewScanOptions creates ScanOptions with defaults.
func NewScanOptions(opts ...ScanOption) *ScanOptions {
	options := &ScanOptions{
		Timeout: constants.ScanTimeout,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Scan executes one run of the pipeline: fetch the feeds, classify
// their items, merge the candidates into the table, and write the daily
// digest. A table load failure aborts before anything is written; a
// save failure leaves the previous snapshot untouched and skips the
// digest.
func (c *client) Scan(ctx context.Context, opts ...ScanOption) (*ScanResult, error) {
	// Step 0: Set context and parse per-run options
	if ctx == nil {
		ctx = context.Background()
	}
	options := NewScanOptions(opts...)

	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	// Step 1: Run identity and reference date
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)
	asOf := dataset.DateOf(c.options.clock().Time)

	result := &ScanResult{
		RunID:     runID,
		AsOf:      asOf,
		DryRun:    options.DryRun,
		TablePath: c.store.Path(),
	}

	logger.Info().
		Str("as_of", dataset.FormatDate(asOf)).
		Bool("dry_run", options.DryRun).
		Msg("Starting scan")

	// Step 2: Load the table; a load failure aborts before any write
	rows, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	result.FirstRun = rows.Len() == 0

	// Step 3: Build the run's classifier
	clf, err := classify.New(
		classify.WithRules(c.options.rules),
		classify.WithAsOf(asOf),
	)
	if err != nil {
		return nil, err
	}

	// Step 4: Fetch all feeds; failed feeds are logged and skipped
	fetches := c.fetcher.FetchAll(ctx, c.options.feeds)

	// Step 5: Classify feed items into candidates
	var cands []dataset.Candidate
	for _, fetch := range fetches {
		if fetch.Err != nil {
			result.FeedsFailed++
			continue
		}
		result.FeedsFetched++
		result.Items += len(fetch.Items)

		for _, item := range fetch.Items {
			cand, err := clf.Classify(fetch.Feed.Name, item)
			if err != nil {
				logger.Debug().
					Err(err).
					Str("feed", fetch.Feed.Name).
					Str("title", item.Title).
					Msg("Skipping feed item")
				continue
			}
			cands = append(cands, cand)
		}
	}
	result.Candidates = len(cands)

	// Step 6: Snapshot for hooks, then merge candidates into the table
	var before map[string]dataset.Row
	if !options.DryRun && c.hooks.any() {
		before = snapshotRows(rows)
	}

	merge := c.reconciler.MergeBatch(ctx, rows, cands, asOf)
	merge.RunID = runID
	result.Merge = merge

	// Step 7: Select the digest entries from the change set
	entries := digest.Select(merge.Created, merge.Promoted, digest.Options{
		WindowDays:    c.options.windowDays,
		Limit:         c.options.limit,
		SuppressFirst: c.options.suppressFirst,
		AsOf:          asOf,
		FirstRun:      result.FirstRun,
	})
	result.Digest = entries

	// Step 8: Dry run stops before anything durable
	if options.DryRun {
		logger.Info().
			Bool("dry_run", true).
			Str("summary", merge.Summary()).
			Msg("Dry run completed, no changes applied")
		return result, nil
	}

	// Step 9: Save the table. Reobservations advance last_seen, so the
	// snapshot is rewritten even when nothing was created or promoted.
	if err := c.store.Save(rows); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()

	// Step 10: Fire hooks from the change set
	if before != nil {
		c.hooks.trigger(before, merge)
	}

	// Step 11: Polish and write the digest
	if len(entries) > 0 {
		entries = c.pipeline.Entries(ctx, entries)
		result.Digest = entries

		path, err := c.writer.Write(asOf, digest.Render(entries, asOf))
		if err != nil {
			return nil, err
		}
		result.DigestPath = path

		logger.Info().
			Str("path", path).
			Int("entries", len(entries)).
			Msg("Wrote digest")
	}

	// Step 12: Log the run summary
	logger.Info().
		Int("created", len(merge.Created)).
		Int("promoted", len(merge.Promoted)).
		Int("reobserved", merge.Reobserved).
		Int("skipped", len(merge.Skipped)).
		Int("feeds_failed", result.FeedsFailed).
		Msg("Scan completed")

	return result, nil
}
