// Package digest selects the rows a run's report covers and renders
// them into the date-keyed daily markdown file. Selection is a pure
// function of the run's change set, so regenerating a digest for
// debugging always reproduces the same document.
package digest

import (
	"sort"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
)

// Reason records why a row made the digest.
type Reason string

// Digest inclusion reasons.
const (
	ReasonNew      Reason = "new"      // Row created this run
	ReasonPromoted Reason = "promoted" // Row's status advanced this run
)

// Entry is one row selected for the digest.
type Entry struct {
	Row    *dataset.Row
	Reason Reason
}

// Options configures digest selection.
type Options struct {
	// WindowDays is the trailing window, in calendar days ending at AsOf,
	// a row's status date must fall inside. Zero disables the window.
	WindowDays int

	// Limit caps the number of entries, dropping the oldest first.
	// Zero means no cap.
	Limit int

	// SuppressFirst drops the digest entirely on a first run, so seeding
	// an empty table from weeks of feed history does not produce a
	// hundred-item report.
	SuppressFirst bool

	// AsOf is the run's reference date.
	AsOf utc.Time

	// FirstRun marks that the table was empty before this run's merges.
	FirstRun bool
}

// DefaultOptions returns the selection defaults.
func DefaultOptions() Options {
	return Options{
		WindowDays: constants.DefaultWindowDays,
		AsOf:       dataset.Today(),
	}
}

// Select picks and orders the digest entries from a run's change set.
// Only created and promoted rows are eligible; reobservations are never
// digested. Entries are ordered newest status first, then by company and
// product.
func Select(created, promoted []*dataset.Row, opts Options) []Entry {
	if opts.SuppressFirst && opts.FirstRun {
		return nil
	}

	// A row created and then promoted within one run appears once, in
	// its final state. Later mutations win.
	index := make(map[string]int)
	entries := make([]Entry, 0, len(created)+len(promoted))
	add := func(row *dataset.Row, reason Reason) {
		if row == nil || row.ID == "" {
			return
		}
		if i, ok := index[row.ID]; ok {
			entries[i] = Entry{Row: row, Reason: reason}
			return
		}
		index[row.ID] = len(entries)
		entries = append(entries, Entry{Row: row, Reason: reason})
	}
	for _, row := range created {
		add(row, ReasonNew)
	}
	for _, row := range promoted {
		add(row, ReasonPromoted)
	}

	entries = filterWindow(entries, opts)
	sortEntries(entries)

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries
}

// filterWindow keeps entries whose status date falls after the window
// cutoff.
func filterWindow(entries []Entry, opts Options) []Entry {
	if opts.WindowDays <= 0 {
		return entries
	}
	cutoff := dataset.DateOf(opts.AsOf.AddDate(0, 0, -opts.WindowDays))

	kept := entries[:0]
	for _, e := range entries {
		if e.Row.StatusDate.After(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

// sortEntries orders by status date descending, then company, product,
// and id ascending. The trailing id keeps the order total.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Row, entries[j].Row
		if !a.StatusDate.Equal(b.StatusDate) {
			return a.StatusDate.After(b.StatusDate)
		}
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		return a.ID < b.ID
	})
}
