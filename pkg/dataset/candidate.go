package dataset

import (
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/errors"
)

// Candidate is a normalized observation produced by classification,
// not yet reconciled against the table. Candidates carry no identity;
// the resolver derives one from company, product, and evidence date.
type Candidate struct {
	Company  string   `json:"company" yaml:"company"`
	Product  string   `json:"product" yaml:"product"`
	Category string   `json:"category" yaml:"category"`
	Status   Status   `json:"status" yaml:"status"`
	Evidence utc.Time `json:"evidence_date" yaml:"evidence_date"` // Date the observed status became true

	// Descriptive payload
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Provenance
	SourceTitle    string `json:"source_title" yaml:"source_title"`
	SourceURL      string `json:"source_url" yaml:"source_url"`
	SourceType     string `json:"source_type" yaml:"source_type"`
	SourcePriority string `json:"source_priority" yaml:"source_priority"`

	// Annotations
	Confidence string `json:"confidence" yaml:"confidence"`
	Tags       string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Regions    string `json:"regions,omitempty" yaml:"regions,omitempty"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks the candidate intake contract: a company, a provenance
// URL, and a recognized status. Invalid candidates are skipped by the
// batch, they never abort it.
func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.Company) == "" {
		return errors.NewValidationError("company", c.Company, "company cannot be empty")
	}
	if strings.TrimSpace(c.SourceURL) == "" {
		return errors.NewValidationError("source_url", c.SourceURL, "provenance URL cannot be empty")
	}
	if !c.Status.IsValid() {
		return errors.NewValidationError("status", string(c.Status), "not a recognized status")
	}
	return nil
}
