package reconciler

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
)

// foldMarks strips combining marks after canonical decomposition, so
// accented and plain spellings of the same name slug identically.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// IdentityFunc derives a stable identity slug for a candidate.
type IdentityFunc func(dataset.Candidate) string

// Identity is the default identity function. It slugs the company,
// product, and evidence date together. Status, summary, and provenance
// never participate, so a reworded headline or a status change cannot
// move a product onto a new row.
func Identity(c dataset.Candidate) string {
	base := c.Company + "|" + c.Product + "|" + dataset.FormatDate(c.Evidence)
	return slugify(base)
}

// slugify lowercases, folds diacritics, collapses every run outside
// [a-z0-9_] to a single dash, trims, and caps the length.
func slugify(s string) string {
	if folded, _, err := transform.String(foldMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if r := []rune(slug); len(r) > constants.MaxIdentityRunes {
		slug = strings.TrimRight(string(r[:constants.MaxIdentityRunes]), "-")
	}
	return slug
}
