package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/config"
)

func TestSearchFetch_MapsArticles(t *testing.T) {
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "Harga rumah Bekasi stabil",
				 "url": "https://example.com/a",
				 "publishedAt": "2025-08-20T07:00:00Z",
				 "source": {"name": "Kontan"},
				 "description": "` + strings.Repeat("x", 250) + `"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewSearchClient(config.NewsConfig{Endpoint: srv.URL, APIKey: "k123"})

	got, err := client.Fetch(context.Background(), "Bekasi", 0)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	wantQ := "properti Bekasi OR real estate Bekasi OR perumahan Bekasi"
	if gotQuery.Get("q") != wantQ {
		t.Errorf("query q = %q, want %q", gotQuery.Get("q"), wantQ)
	}
	if gotQuery.Get("language") != "id" || gotQuery.Get("sortBy") != "publishedAt" {
		t.Errorf("query language/sortBy = %q/%q", gotQuery.Get("language"), gotQuery.Get("sortBy"))
	}
	if gotQuery.Get("pageSize") != "5" {
		t.Errorf("query pageSize = %q, want default 5", gotQuery.Get("pageSize"))
	}
	if gotQuery.Get("apiKey") != "k123" {
		t.Errorf("query apiKey = %q", gotQuery.Get("apiKey"))
	}

	if len(got) != 1 {
		t.Fatalf("Fetch() returned %d articles, want 1", len(got))
	}
	a := got[0]
	if a.Title != "Harga rumah Bekasi stabil" || a.Source != "Kontan" || a.Published != "2025-08-20T07:00:00Z" {
		t.Errorf("article = %+v", a)
	}
	if utf8.RuneCountInString(a.Description) != 200 {
		t.Errorf("description length = %d runes, want 200", utf8.RuneCountInString(a.Description))
	}
}

func TestSearchFetch_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "message": "apiKeyInvalid"}`))
	}))
	defer srv.Close()

	client := NewSearchClient(config.NewsConfig{Endpoint: srv.URL, APIKey: "bad"})

	_, err := client.Fetch(context.Background(), "Jakarta", 5)
	if err == nil || !strings.Contains(err.Error(), "apiKeyInvalid") {
		t.Errorf("Fetch() error = %v, want provider message surfaced", err)
	}
}

func TestSearchFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewSearchClient(config.NewsConfig{Endpoint: srv.URL, APIKey: "k"})

	if _, err := client.Fetch(context.Background(), "Jakarta", 5); err == nil {
		t.Error("Fetch() expected error on non-200 status")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("pendek", 200); got != "pendek" {
		t.Errorf("truncate() = %q", got)
	}
	// Rune-safe: multibyte text is cut on rune boundaries.
	long := strings.Repeat("é", 300)
	if got := truncate(long, 200); utf8.RuneCountInString(got) != 200 || !utf8.ValidString(got) {
		t.Errorf("truncate() produced %d runes, valid=%v", utf8.RuneCountInString(got), utf8.ValidString(got))
	}
}
