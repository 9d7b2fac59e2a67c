package dataset

import (
	"testing"

	"github.com/agentstation/radar/pkg/errors"
)

func validCandidate() Candidate {
	return Candidate{
		Company:        "Acme",
		Product:        "Widget",
		Category:       "Model/API",
		Status:         StatusAnnounced,
		Evidence:       date(2025, 6, 1),
		Summary:        "Acme announces Widget",
		SourceTitle:    "Widget: a new model",
		SourceURL:      "https://acme.test/blog/widget",
		SourceType:     "RSS/Blog",
		SourcePriority: "official",
		Confidence:     "0.6",
		Regions:        "global",
	}
}

func TestCandidateValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Candidate)
		wantErr bool
	}{
		{"valid", func(c *Candidate) {}, false},
		{"empty company", func(c *Candidate) { c.Company = "" }, true},
		{"whitespace company", func(c *Candidate) { c.Company = "   " }, true},
		{"empty url", func(c *Candidate) { c.SourceURL = "" }, true},
		{"whitespace url", func(c *Candidate) { c.SourceURL = " " }, true},
		{"invalid status", func(c *Candidate) { c.Status = "Rumored" }, true},
		{"empty status", func(c *Candidate) { c.Status = "" }, true},
		{"empty product is allowed", func(c *Candidate) { c.Product = "" }, false},
		{"empty summary is allowed", func(c *Candidate) { c.Summary = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && !errors.IsValidationError(err) {
				t.Errorf("error should satisfy IsValidationError, got: %v", err)
			}
		})
	}
}
