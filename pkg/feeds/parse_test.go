package feeds

import (
	"testing"
	"time"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>Acme News</title>
    <link>https://acme.example/news</link>
    <atom:link href="https://acme.example/news/rss.xml" rel="self" type="application/rss+xml"/>
    <item>
      <title>Acme announces Widget 2</title>
      <link>https://acme.example/news/widget-2</link>
      <description><![CDATA[<p>Widget 2 is our new flagship.</p>]]></description>
      <pubDate>Mon, 02 Jun 2025 10:30:00 +0000</pubDate>
    </item>
    <item>
      <title>Post without a link</title>
      <description>Never escapes the feed.</description>
    </item>
    <item>
      <title>  Widget 1.5 update  </title>
      <link>https://acme.example/news/widget-1-5</link>
      <pubDate>not a date</pubDate>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Acme Research Blog</title>
  <entry>
    <title>Widget embeddings at scale</title>
    <link rel="alternate" type="text/html" href="https://acme.example/research/embeddings"/>
    <link rel="self" href="https://acme.example/research/embeddings.atom"/>
    <summary>How we ship embeddings.</summary>
    <published>2025-06-03T09:00:00Z</published>
    <updated>2025-06-04T12:00:00Z</updated>
  </entry>
  <entry>
    <title>Quarterly notes</title>
    <link rel="self" href="https://acme.example/research/notes.atom"/>
    <content type="html">&lt;p&gt;Notes content.&lt;/p&gt;</content>
    <updated>2025-06-05T08:00:00Z</updated>
  </entry>
</feed>`

func TestParseRSS(t *testing.T) {
	items, err := Parse([]byte(rssFixture))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Parse() returned %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title != "Acme announces Widget 2" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != "https://acme.example/news/widget-2" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.Summary != "<p>Widget 2 is our new flagship.</p>" {
		t.Errorf("Summary = %q", first.Summary)
	}
	if got := first.Published.Format(time.RFC3339); got != "2025-06-02T10:30:00Z" {
		t.Errorf("Published = %s", got)
	}

	second := items[1]
	if second.Title != "Widget 1.5 update" {
		t.Errorf("Title = %q, want trimmed", second.Title)
	}
	if !second.Published.IsZero() {
		t.Errorf("Published = %v, want zero for malformed pubDate", second.Published)
	}
	if !second.Date().IsZero() {
		t.Errorf("Date() = %v, want zero", second.Date())
	}
}

func TestParseAtom(t *testing.T) {
	items, err := Parse([]byte(atomFixture))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Parse() returned %d items, want 2", len(items))
	}

	first := items[0]
	if first.Link != "https://acme.example/research/embeddings" {
		t.Errorf("Link = %q, want the alternate link", first.Link)
	}
	if first.Summary != "How we ship embeddings." {
		t.Errorf("Summary = %q", first.Summary)
	}
	if got := first.Date().Format(time.RFC3339); got != "2025-06-03T09:00:00Z" {
		t.Errorf("Date() = %s, want the published timestamp", got)
	}

	second := items[1]
	if second.Link != "https://acme.example/research/notes.atom" {
		t.Errorf("Link = %q, want fallback to the only link", second.Link)
	}
	if second.Summary != "<p>Notes content.</p>" {
		t.Errorf("Summary = %q, want content fallback", second.Summary)
	}
	if got := second.Date().Format(time.RFC3339); got != "2025-06-05T08:00:00Z" {
		t.Errorf("Date() = %s, want the updated timestamp", got)
	}
}

func TestParseCharset(t *testing.T) {
	latin1 := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<rss version=\"2.0\"><channel><item>" +
		"<title>Caf\xe9 launch</title>" +
		"<link>https://acme.example/cafe</link>" +
		"</item></channel></rss>"

	items, err := Parse([]byte(latin1))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Parse() returned %d items, want 1", len(items))
	}
	if items[0].Title != "Café launch" {
		t.Errorf("Title = %q, want decoded Latin-1", items[0].Title)
	}
}

func TestParseUnsupportedRoot(t *testing.T) {
	_, err := Parse([]byte(`<html><body>nope</body></html>`))
	if err == nil {
		t.Fatal("Parse() error = nil, want unsupported root error")
	}
}

func TestParseTruncatedDocument(t *testing.T) {
	_, err := Parse([]byte(`<rss version="2.0"><channel><item><title>X</title>`))
	if err == nil {
		t.Fatal("Parse() error = nil, want decode error")
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(nil)
	if err == nil {
		t.Fatal("Parse() error = nil, want missing root error")
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rfc1123z", "Mon, 02 Jun 2025 10:30:00 +0000", "2025-06-02T10:30:00Z"},
		{"rfc1123 gmt", "Mon, 02 Jun 2025 10:30:00 GMT", "2025-06-02T10:30:00Z"},
		{"unpadded day", "Mon, 2 Jun 2025 10:30:00 +0200", "2025-06-02T08:30:00Z"},
		{"rfc3339", "2025-06-03T09:00:00Z", "2025-06-03T09:00:00Z"},
		{"rfc3339 offset", "2025-06-03T09:00:00+02:00", "2025-06-03T07:00:00Z"},
		{"bare date", "2025-06-03", "2025-06-03T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTime(tt.in)
			if got.IsZero() {
				t.Fatalf("parseTime(%q) = zero", tt.in)
			}
			if formatted := got.Format(time.RFC3339); formatted != tt.want {
				t.Errorf("parseTime(%q) = %s, want %s", tt.in, formatted, tt.want)
			}
		})
	}
}

func TestParseTimeUnparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "13/37/2025"} {
		if got := parseTime(in); !got.IsZero() {
			t.Errorf("parseTime(%q) = %v, want zero", in, got)
		}
	}
}

func TestAlternateLink(t *testing.T) {
	tests := []struct {
		name  string
		links []atomLink
		want  string
	}{
		{"empty", nil, ""},
		{"alternate preferred", []atomLink{
			{Rel: "self", Href: "https://a.example/self"},
			{Rel: "alternate", Href: "https://a.example/page"},
		}, "https://a.example/page"},
		{"no rel counts as alternate", []atomLink{
			{Href: "https://a.example/page"},
			{Rel: "self", Href: "https://a.example/self"},
		}, "https://a.example/page"},
		{"fallback to first", []atomLink{
			{Rel: "self", Href: "https://a.example/self"},
			{Rel: "enclosure", Href: "https://a.example/file.mp3"},
		}, "https://a.example/self"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alternateLink(tt.links); got != tt.want {
				t.Errorf("alternateLink() = %q, want %q", got, tt.want)
			}
		})
	}
}
