// Package enhancer polishes digest entries before they are rendered.
//
// Enhancers rewrite the summary of the row behind a digest entry, for
// example through the Gemini API. A pipeline applies them in
// registration order; a failing enhancer logs a warning and leaves the
// entry unchanged, so the digest always renders.
package enhancer

import (
	"context"

	"github.com/agentstation/radar/pkg/digest"
	"github.com/agentstation/radar/pkg/logging"
)

// Enhancer rewrites a single digest entry.
type Enhancer interface {
	// Name identifies the enhancer in logs.
	Name() string

	// CanEnhance reports whether the entry carries enough material to
	// be worth enhancing.
	CanEnhance(entry digest.Entry) bool

	// Enhance returns the entry with a polished summary. The entry's
	// row must not be mutated in place; implementations clone it
	// before writing.
	Enhance(ctx context.Context, entry digest.Entry) (digest.Entry, error)
}

// Pipeline applies a sequence of enhancers to digest entries.
type Pipeline struct {
	enhancers []Enhancer
}

// NewPipeline creates a pipeline that applies the given enhancers in order.
func NewPipeline(enhancers ...Enhancer) *Pipeline {
	return &Pipeline{enhancers: enhancers}
}

// Len returns the number of registered enhancers.
func (p *Pipeline) Len() int {
	return len(p.enhancers)
}

// Entries runs every enhancer over every entry. The input slice is not
// modified, and entries whose enhancement fails keep their original
// rows.
func (p *Pipeline) Entries(ctx context.Context, entries []digest.Entry) []digest.Entry {
	if len(p.enhancers) == 0 || len(entries) == 0 {
		return entries
	}

	logger := logging.FromContext(ctx)

	out := make([]digest.Entry, len(entries))
	copy(out, entries)

	for i, entry := range out {
		for _, e := range p.enhancers {
			if !e.CanEnhance(entry) {
				continue
			}
			enhanced, err := e.Enhance(ctx, entry)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("enhancer", e.Name()).
					Str("id", entry.Row.ID).
					Msg("Enhancer failed, keeping original summary")
				continue
			}
			entry = enhanced
		}
		out[i] = entry
	}

	return out
}
