package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func rssDocument(title string, items int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel>`)
	fmt.Fprintf(&b, "<title>%s</title>", title)
	for i := 1; i <= items; i++ {
		fmt.Fprintf(&b,
			`<item><title>Berita %d</title><link>https://example.com/%d</link>`+
				`<pubDate>Wed, 20 Aug 2025 07:0%d:00 +0700</pubDate>`+
				`<description>Deskripsi %d</description></item>`,
			i, i, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestFeedFetch_CapsEntriesPerFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssDocument("Kompas Properti", 5)))
	}))
	defer srv.Close()

	fetcher := NewFeedFetcher([]string{srv.URL})

	got := fetcher.Fetch(context.Background())
	if len(got) != entriesPerFeed {
		t.Fatalf("Fetch() returned %d articles, want %d", len(got), entriesPerFeed)
	}
	if got[0].Title != "Berita 1" || got[0].Source != "Kompas Properti" {
		t.Errorf("first article = %+v", got[0])
	}
	if got[0].Published == "" {
		t.Errorf("published should carry the feed's free-form date string")
	}
}

func TestFeedFetch_SkipsFailingFeed(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssDocument("Bisnis Ekonomi", 2)))
	}))
	defer good.Close()

	// The failing feed must not abort the remaining feeds.
	fetcher := NewFeedFetcher([]string{bad.URL, good.URL})

	got := fetcher.Fetch(context.Background())
	if len(got) != 2 {
		t.Fatalf("Fetch() returned %d articles, want 2 from the healthy feed", len(got))
	}
	for _, a := range got {
		if a.Source != "Bisnis Ekonomi" {
			t.Errorf("article source = %q, want only healthy-feed articles", a.Source)
		}
	}
}

func TestFeedFetch_CanceledContextStopsIteration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssDocument("Feed", 1)))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFeedFetcher([]string{srv.URL, srv.URL})
	if got := fetcher.Fetch(ctx); len(got) != 0 {
		t.Errorf("Fetch() with canceled context returned %d articles, want 0", len(got))
	}
}
