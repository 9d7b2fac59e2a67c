package digest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
)

// Render renders digest entries into the daily markdown document. The
// layout is a fixed external format: title heading with the date, then
// one block per entry with summary, category, change, and source lines.
func Render(entries []Entry, date utc.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# AI Radar — %s\n", dataset.FormatDate(date))

	for _, e := range entries {
		row := e.Row
		b.WriteString("\n")
		fmt.Fprintf(&b, "## %s: %s — **%s**\n", row.Company, row.Product, row.Status)
		fmt.Fprintf(&b, "- %s\n", summaryLine(row))
		fmt.Fprintf(&b, "- Category: %s  |  Change: %s\n", row.Category, row.ChangeType)
		fmt.Fprintf(&b, "- Source: %s — %s\n", row.SourceTitle, row.SourceURL)
	}

	return []byte(b.String())
}

// summaryLine produces the entry's summary bullet: the row's cleaned,
// capped summary, or its source title when no summary survives cleaning.
func summaryLine(row *dataset.Row) string {
	s := truncateSummary(CleanSummary(row.Summary), constants.MaxSummaryRunes)
	if s == "" {
		return row.SourceTitle
	}
	return s
}

// CleanSummary strips HTML markup from feed-provided text and collapses
// runs of whitespace. Feed summaries routinely arrive as HTML fragments
// with entities, tags, and embedded newlines.
func CleanSummary(s string) string {
	if s == "" {
		return ""
	}
	text := s
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// truncateSummary caps s at max runes, cutting back to a word boundary
// and appending an ellipsis.
func truncateSummary(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := string(runes[:max-1])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ") + "…"
}
