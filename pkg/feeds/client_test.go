package feeds_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/agentstation/radar/pkg/errors"
	"github.com/agentstation/radar/pkg/feeds"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Acme News</title>
    <item>
      <title>Acme announces Widget 2</title>
      <link>https://acme.example/news/widget-2</link>
      <pubDate>Mon, 02 Jun 2025 10:30:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func serveRSS(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetch(t *testing.T) {
	srv := serveRSS(t)

	client := feeds.NewClient()
	items, err := client.Fetch(context.Background(), feeds.Feed{Name: "Acme:News", URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Fetch() returned %d items, want 1", len(items))
	}
	if items[0].Title != "Acme announces Widget 2" {
		t.Errorf("Title = %q", items[0].Title)
	}
}

func TestClientFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := feeds.NewClient()
	_, err := client.Fetch(context.Background(), feeds.Feed{Name: "Acme:News", URL: srv.URL})
	if err == nil {
		t.Fatal("Fetch() error = nil, want feed error")
	}

	var feedErr *pkgerrors.FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("error type = %T, want *FeedError", err)
	}
	if feedErr.Feed != "Acme:News" {
		t.Errorf("Feed = %q", feedErr.Feed)
	}
	if feedErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", feedErr.StatusCode, http.StatusServiceUnavailable)
	}
	if !errors.Is(err, pkgerrors.ErrFeedUnavailable) {
		t.Error("errors.Is(err, ErrFeedUnavailable) = false")
	}
}

func TestClientFetchMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "this is not a feed")
	}))
	t.Cleanup(srv.Close)

	client := feeds.NewClient()
	_, err := client.Fetch(context.Background(), feeds.Feed{Name: "Acme:News", URL: srv.URL})
	if err == nil {
		t.Fatal("Fetch() error = nil, want feed error")
	}

	var feedErr *pkgerrors.FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("error type = %T, want *FeedError", err)
	}
	var parseErr *pkgerrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("feed error does not wrap a *ParseError: %v", err)
	}
}

func TestClientFetchAll(t *testing.T) {
	good := serveRSS(t)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(bad.Close)

	registry := feeds.Registry{
		{Name: "Acme:News", URL: good.URL},
		{Name: "Acme:Down", URL: bad.URL},
		{Name: "Acme:Blog", URL: good.URL},
	}

	client := feeds.NewClient()
	results := client.FetchAll(context.Background(), registry)
	if len(results) != 3 {
		t.Fatalf("FetchAll() returned %d results, want 3", len(results))
	}

	for i, want := range registry {
		if results[i].Feed.Name != want.Name {
			t.Errorf("results[%d].Feed.Name = %q, want %q", i, results[i].Feed.Name, want.Name)
		}
	}

	if results[0].Err != nil || len(results[0].Items) != 1 {
		t.Errorf("results[0] = %+v, want one item", results[0])
	}
	if results[1].Err == nil {
		t.Error("results[1].Err = nil, want feed error")
	}
	if results[2].Err != nil || len(results[2].Items) != 1 {
		t.Errorf("results[2] = %+v, want one item", results[2])
	}
}
