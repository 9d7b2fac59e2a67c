package feeds

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/agentstation/radar/pkg/errors"
)

// Date layouts seen across vendor RSS and Atom feeds. RFC 1123 variants
// cover RSS pubDate; RFC 3339 covers Atom published/updated.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssEntry `xml:"item"`
}

type rssEntry struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// Parse decodes an RSS 2.0 or Atom document into normalized items.
// Entries missing a title or link are dropped.
func Parse(data []byte) ([]Item, error) {
	root, err := rootName(data)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "feed",
			Message: "document has no root element",
			Err:     err,
		}
	}

	switch root {
	case "rss":
		return parseRSS(data)
	case "feed":
		return parseAtom(data)
	}
	return nil, &errors.ParseError{
		Format:  "feed",
		Message: fmt.Sprintf("unsupported document root <%s>", root),
	}
}

func parseRSS(data []byte) ([]Item, error) {
	var doc rssDocument
	if err := newDecoder(data).Decode(&doc); err != nil {
		return nil, &errors.ParseError{
			Format:  "rss",
			Message: "decoding document",
			Err:     err,
		}
	}

	items := make([]Item, 0, len(doc.Channel.Items))
	for _, entry := range doc.Channel.Items {
		item := Item{
			Title:     strings.TrimSpace(entry.Title),
			Link:      strings.TrimSpace(entry.Link),
			Summary:   strings.TrimSpace(entry.Description),
			Published: parseTime(entry.PubDate),
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func parseAtom(data []byte) ([]Item, error) {
	var doc atomDocument
	if err := newDecoder(data).Decode(&doc); err != nil {
		return nil, &errors.ParseError{
			Format:  "atom",
			Message: "decoding document",
			Err:     err,
		}
	}

	items := make([]Item, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		summary := strings.TrimSpace(entry.Summary)
		if summary == "" {
			summary = strings.TrimSpace(entry.Content)
		}
		item := Item{
			Title:     strings.TrimSpace(entry.Title),
			Link:      alternateLink(entry.Links),
			Summary:   summary,
			Published: parseTime(entry.Published),
			Updated:   parseTime(entry.Updated),
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// alternateLink picks the entry's page link. Atom entries often carry
// several links (self, edit, enclosures); rel="alternate" or an absent
// rel names the page.
func alternateLink(links []atomLink) string {
	for _, link := range links {
		if link.Rel == "" || link.Rel == "alternate" {
			return strings.TrimSpace(link.Href)
		}
	}
	if len(links) > 0 {
		return strings.TrimSpace(links[0].Href)
	}
	return ""
}

// rootName reads tokens until the document's first start element.
func rootName(data []byte) (string, error) {
	dec := newDecoder(data)
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// newDecoder builds an XML decoder that understands non-UTF-8 charset
// declarations via the IANA encoding index.
func newDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := ianaindex.IANA.Encoding(label)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unsupported charset %q", label)
		}
		return transform.NewReader(input, enc.NewDecoder()), nil
	}
	return dec
}

// parseTime parses a feed timestamp, trying each known layout in turn.
// Unparseable input yields the zero value, mirroring feeds that publish
// malformed dates rather than failing the whole document.
func parseTime(s string) utc.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return utc.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return utc.Time{Time: t.UTC()}
		}
	}
	return utc.Time{}
}
