package enhancer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/digest"
	"github.com/agentstation/radar/pkg/errors"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Gemini rewrites entry summaries through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// GeminiOption configures a Gemini enhancer.
type GeminiOption func(*Gemini)

// WithModel overrides the Gemini model.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGemini creates a Gemini-backed enhancer. An API key is required.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.NewConfigError("enhancer", "Gemini API key is not set", errors.ErrAPIKeyRequired)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, &errors.APIError{
			Service: "gemini",
			Message: "create client",
			Err:     err,
		}
	}

	g := &Gemini{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name implements the Enhancer interface.
func (g *Gemini) Name() string {
	return "gemini"
}

// CanEnhance implements the Enhancer interface. Entries without a
// summary have nothing to polish.
func (g *Gemini) CanEnhance(entry digest.Entry) bool {
	return entry.Row != nil && strings.TrimSpace(entry.Row.Summary) != ""
}

// Enhance implements the Enhancer interface. It rewrites the row's
// summary into a single plain sentence. The row is cloned before
// writing; the table row behind the entry is left untouched.
func (g *Gemini) Enhance(ctx context.Context, entry digest.Entry) (digest.Entry, error) {
	row := entry.Row.Clone()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(row)), nil)
	if err != nil {
		return entry, &errors.APIError{
			Service: "gemini",
			Message: "generate content for " + row.ID,
			Err:     err,
		}
	}

	polished := strings.TrimSpace(resp.Text())
	if polished == "" {
		return entry, &errors.APIError{
			Service: "gemini",
			Message: "empty response for " + row.ID,
		}
	}

	row.Summary = polished
	entry.Row = row
	return entry, nil
}

func buildPrompt(row *dataset.Row) string {
	return fmt.Sprintf(
		"Rewrite this AI product update as one plain sentence of at most 30 words. "+
			"No markdown, no preamble.\n\nCompany: %s\nProduct: %s\nStatus: %s\nSummary: %s",
		row.Company, row.Product, row.Status, digest.CleanSummary(row.Summary))
}
