// Package reconciler resolves candidate identities and merges observations
// into the product table. For each candidate it decides whether the
// observation creates a row, promotes an existing row's status, or merely
// reconfirms what the table already records, and it applies that decision
// while keeping identity and provenance stable.
package reconciler

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/errors"
	"github.com/agentstation/radar/pkg/logging"
)

// Reconciler merges classified candidates into a row table.
type Reconciler interface {
	// Merge applies a single candidate and reports how the table changed.
	// Invalid candidates return OutcomeSkipped with the validation error.
	Merge(rows *dataset.Rows, cand dataset.Candidate, asOf utc.Time) (Outcome, *dataset.Row, error)

	// MergeBatch applies candidates in order. Invalid candidates are
	// recorded as skipped and the batch continues; the returned result
	// carries the full change set for the run.
	MergeBatch(ctx context.Context, rows *dataset.Rows, cands []dataset.Candidate, asOf utc.Time) *Result
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	identify IdentityFunc
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		identify: options.identify,
	}, nil
}

// Outcome classifies the effect of merging one candidate.
type Outcome string

// String returns the string representation of an Outcome.
func (o Outcome) String() string {
	return string(o)
}

// Merge outcomes.
const (
	OutcomeCreated    Outcome = "created"    // New row inserted
	OutcomePromoted   Outcome = "promoted"   // Existing row's status advanced
	OutcomeReobserved Outcome = "reobserved" // Existing row reconfirmed, no status change
	OutcomeSkipped    Outcome = "skipped"    // Candidate rejected, table untouched
)

// Merge resolves the candidate against the table and applies it. The
// provenance URL is the primary dedup key; the identity slug catches the
// same event covered under a different link. On a hit the row is either
// promoted or reobserved, never duplicated.
func (r *reconciler) Merge(rows *dataset.Rows, cand dataset.Candidate, asOf utc.Time) (Outcome, *dataset.Row, error) {
	if rows == nil {
		return OutcomeSkipped, nil, &errors.ValidationError{
			Field:   "rows",
			Message: "cannot be nil",
		}
	}
	if err := cand.Validate(); err != nil {
		return OutcomeSkipped, nil, err
	}

	asOf = dataset.DateOf(asOf.Time)

	existing, ok := r.lookup(rows, cand)
	if !ok {
		row := r.create(cand, asOf)
		if err := rows.Set(row); err != nil {
			return OutcomeSkipped, nil, err
		}
		return OutcomeCreated, row, nil
	}

	// Work on a copy so the URL index sees the old row on replacement.
	row := existing.Clone()
	outcome := OutcomeReobserved
	if dataset.Promotes(row.Status, cand.Status) {
		r.promote(row, cand, asOf)
		outcome = OutcomePromoted
	}
	r.refresh(row, cand)
	row.LastSeen = asOf

	if err := rows.Set(row); err != nil {
		return OutcomeSkipped, nil, err
	}
	return outcome, row, nil
}

// MergeBatch applies candidates one at a time, accumulating the change
// set. A candidate that fails validation is recorded and skipped; it
// never aborts the run.
func (r *reconciler) MergeBatch(ctx context.Context, rows *dataset.Rows, cands []dataset.Candidate, asOf utc.Time) *Result {
	logger := logging.FromContext(ctx)
	result := NewResult()
	result.Metadata.AsOf = dataset.DateOf(asOf.Time)

	for _, cand := range cands {
		outcome, row, err := r.Merge(rows, cand, asOf)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("company", cand.Company).
				Str("url", cand.SourceURL).
				Msg("Skipping candidate")
			result.Skip(cand, err)
			continue
		}

		switch outcome {
		case OutcomeCreated:
			logger.Debug().
				Str("id", row.ID).
				Str("status", row.Status.String()).
				Msg("Created row")
			result.Created = append(result.Created, row)
		case OutcomePromoted:
			logger.Debug().
				Str("id", row.ID).
				Str("status", row.Status.String()).
				Str("change_type", row.ChangeType.String()).
				Msg("Promoted row")
			result.Promoted = append(result.Promoted, row)
		case OutcomeReobserved:
			result.Reobserved++
		}
	}

	result.Finalize()
	return result
}

// lookup finds the row a candidate refers to. A URL match wins over an
// identity match when both exist and disagree.
func (r *reconciler) lookup(rows *dataset.Rows, cand dataset.Candidate) (*dataset.Row, bool) {
	if row, ok := rows.GetByURL(cand.SourceURL); ok {
		return row, true
	}
	if row, ok := rows.Get(r.identify(cand)); ok {
		return row, true
	}
	return nil, false
}

// create builds a fresh row from a candidate. Change type is always New
// regardless of the observed status; the status itself records where in
// its lifecycle the product entered the table.
func (r *reconciler) create(cand dataset.Candidate, asOf utc.Time) *dataset.Row {
	return &dataset.Row{
		ID:             r.identify(cand),
		Company:        cand.Company,
		Product:        cand.Product,
		Category:       cand.Category,
		Status:         cand.Status,
		StatusDate:     statusDate(cand, asOf),
		ChangeType:     dataset.ChangeTypeNew,
		FirstSeen:      asOf,
		LastSeen:       asOf,
		Version:        cand.Version,
		Summary:        cand.Summary,
		SourceTitle:    cand.SourceTitle,
		SourceURL:      cand.SourceURL,
		SourceType:     cand.SourceType,
		SourcePriority: cand.SourcePriority,
		Confidence:     cand.Confidence,
		Tags:           cand.Tags,
		Regions:        cand.Regions,
		Notes:          cand.Notes,
	}
}

// promote advances a row to the observed status. Provenance re-points
// wholesale to the promoting evidence so title, link, type, and priority
// always describe the same source item.
func (r *reconciler) promote(row *dataset.Row, cand dataset.Candidate, asOf utc.Time) {
	row.Status = cand.Status
	row.StatusDate = statusDate(cand, asOf)
	row.ChangeType = dataset.ChangeTypeFor(cand.Status)
	row.SourceTitle = cand.SourceTitle
	row.SourceURL = cand.SourceURL
	row.SourceType = cand.SourceType
	row.SourcePriority = cand.SourcePriority
}

// refresh updates descriptive fields from a newer observation. Empty
// incoming values never blank populated ones, and identity fields and
// operator notes are never touched.
func (r *reconciler) refresh(row *dataset.Row, cand dataset.Candidate) {
	setIfPresent(&row.Category, cand.Category)
	setIfPresent(&row.Version, cand.Version)
	setIfPresent(&row.Summary, cand.Summary)
	setIfPresent(&row.Confidence, cand.Confidence)
	setIfPresent(&row.Tags, cand.Tags)
	setIfPresent(&row.Regions, cand.Regions)
}

// setIfPresent overwrites dst only when the incoming value is non-empty.
func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// statusDate picks the date recorded for a status: the candidate's
// evidence date when the source carries one, otherwise the fallback.
func statusDate(cand dataset.Candidate, fallback utc.Time) utc.Time {
	if cand.Evidence.IsZero() {
		return dataset.DateOf(fallback.Time)
	}
	return dataset.DateOf(cand.Evidence.Time)
}
