// Package dataset defines the durable product table: rows, lifecycle
// statuses, intake candidates, the indexed in-memory collection, and the
// CSV snapshot store.
package dataset

import (
	"github.com/agentstation/utc"
)

// Row is one tracked product announcement in the dataset table.
type Row struct {
	// Identity
	ID      string `json:"id" yaml:"id"`           // Identity slug, stable across observations
	Company string `json:"company" yaml:"company"` // Owning company display name
	Product string `json:"product" yaml:"product"` // Product name fragment from the source title

	// Classification
	Category   string     `json:"category" yaml:"category"`       // Model/API, Tooling, Infra, Device/AR, Robotics
	Status     Status     `json:"status" yaml:"status"`           // Current lifecycle status
	StatusDate utc.Time   `json:"status_date" yaml:"status_date"` // Evidence date of the current status
	ChangeType ChangeType `json:"change_type" yaml:"change_type"` // How this row last changed

	// Observation timestamps
	FirstSeen utc.Time `json:"first_seen" yaml:"first_seen"` // Run date that created the row, never changes
	LastSeen  utc.Time `json:"last_seen" yaml:"last_seen"`   // Most recent run date that observed the product

	// Descriptive fields, refreshed on observation without regressing
	Version string `json:"version,omitempty" yaml:"version,omitempty"` // Version string when the source names one
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"` // Short human-readable summary

	// Provenance
	SourceTitle    string `json:"source_title" yaml:"source_title"`       // Title of the source item
	SourceURL      string `json:"source_url" yaml:"source_url"`           // Canonical source link, unique per row
	SourceType     string `json:"source_type" yaml:"source_type"`         // e.g. RSS/Blog
	SourcePriority string `json:"source_priority" yaml:"source_priority"` // e.g. official

	// Annotations
	Confidence string `json:"confidence" yaml:"confidence"`               // Classifier confidence, decimal string
	Tags       string `json:"tags,omitempty" yaml:"tags,omitempty"`       // Comma-separated free-form tags
	Regions    string `json:"regions,omitempty" yaml:"regions,omitempty"` // Comma-separated availability regions
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`     // Operator notes, never machine-written
}

// Clone returns a deep copy of the row.
func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
