package radar

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/digest"
	"github.com/agentstation/radar/pkg/reconciler"
)

// ScanResult represents the complete result of one scan run.
type ScanResult struct {
	// RunID correlates this run's log lines, merge result, and digest.
	RunID string

	// AsOf is the run's reference date.
	AsOf utc.Time

	// FirstRun marks that the table was empty before this run's merges.
	FirstRun bool

	// DryRun marks that nothing durable was written.
	DryRun bool

	// Feed statistics
	FeedsFetched int // Feeds fetched and parsed successfully
	FeedsFailed  int // Feeds that errored; the run continued without them
	Items        int // Feed items seen across all fetched feeds
	Candidates   int // Items that classified into candidates

	// Merge is the reconciliation change set.
	Merge *reconciler.Result

	// Digest holds the selected entries, after any enhancement.
	Digest []digest.Entry

	// DigestPath is where the digest was written, or "" when no digest
	// was produced.
	DigestPath string

	// TablePath is where the table lives.
	TablePath string
}

// HasChanges returns true if the run created or promoted any rows.
func (r *ScanResult) HasChanges() bool {
	return r.Merge != nil && r.Merge.HasChanges()
}

// Summary returns a human-readable summary of the run.
func (r *ScanResult) Summary() string {
	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if r.Merge != nil {
		parts = append(parts, r.Merge.Summary())
	}
	if r.FeedsFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d feeds failed.",
			r.FeedsFailed, r.FeedsFetched+r.FeedsFailed))
	}
	if len(r.Digest) > 0 {
		parts = append(parts, fmt.Sprintf("%d digest entries.", len(r.Digest)))
	}
	if len(parts) == 0 {
		return "No new items."
	}
	return strings.Join(parts, " ")
}
