package reconciler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/dataset"
)

// Result represents the outcome of one reconciliation run.
type Result struct {
	// RunID correlates this run's log lines, digest, and result.
	RunID string

	// Change set
	Created  []*dataset.Row
	Promoted []*dataset.Row

	// Reobserved counts candidates that matched an existing row without
	// changing its status.
	Reobserved int

	// Skipped holds candidates rejected by validation, with reasons.
	Skipped []SkippedCandidate

	// Metadata
	Metadata ResultMetadata
}

// SkippedCandidate records one rejected candidate and why.
type SkippedCandidate struct {
	Company   string
	Product   string
	SourceURL string
	Reason    string
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	// AsOf is the run's reference date.
	AsOf utc.Time

	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Stats about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains counters for the reconciliation run.
type ResultStatistics struct {
	CandidatesProcessed int
	RowsCreated         int
	RowsPromoted        int
	RowsReobserved      int
	CandidatesSkipped   int
	TotalTimeMs         int64
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		RunID:    uuid.NewString(),
		Created:  []*dataset.Row{},
		Promoted: []*dataset.Row{},
		Skipped:  []SkippedCandidate{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Skip records a rejected candidate.
func (r *Result) Skip(cand dataset.Candidate, err error) {
	reason := "invalid candidate"
	if err != nil {
		reason = err.Error()
	}
	r.Skipped = append(r.Skipped, SkippedCandidate{
		Company:   cand.Company,
		Product:   cand.Product,
		SourceURL: cand.SourceURL,
		Reason:    reason,
	})
}

// HasChanges returns true if the run created or promoted any rows.
func (r *Result) HasChanges() bool {
	return len(r.Created) > 0 || len(r.Promoted) > 0
}

// ChangeSet returns created then promoted rows as one slice, the rows a
// digest selects from.
func (r *Result) ChangeSet() []*dataset.Row {
	set := make([]*dataset.Row, 0, len(r.Created)+len(r.Promoted))
	set = append(set, r.Created...)
	set = append(set, r.Promoted...)
	return set
}

// IsClean returns true if no candidates were skipped.
func (r *Result) IsClean() bool {
	return len(r.Skipped) == 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		if r.Reobserved > 0 {
			return fmt.Sprintf("No new items. %d reobserved.", r.Reobserved)
		}
		return "No new items."
	}
	s := fmt.Sprintf("Added %d new items, promoted %d, reobserved %d.",
		len(r.Created), len(r.Promoted), r.Reobserved)
	if len(r.Skipped) > 0 {
		s += fmt.Sprintf(" Skipped %d candidates.", len(r.Skipped))
	}
	return s
}

// Finalize calculates duration and closes out the statistics.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)

	r.Metadata.Stats = ResultStatistics{
		CandidatesProcessed: len(r.Created) + len(r.Promoted) + r.Reobserved + len(r.Skipped),
		RowsCreated:         len(r.Created),
		RowsPromoted:        len(r.Promoted),
		RowsReobserved:      r.Reobserved,
		CandidatesSkipped:   len(r.Skipped),
		TotalTimeMs:         r.Metadata.Duration.Milliseconds(),
	}
}
