package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/config"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/model"
)

func testConfig(endpoint string) config.GeocodeConfig {
	return config.GeocodeConfig{
		Endpoint:  endpoint,
		UserAgent: "arsaa-test/1.0",
		ViewBox:   "106.5,-6.0,107.2,-7.1",
	}
}

func TestSearch_BestMatch(t *testing.T) {
	var gotQuery url.Values
	var gotUA string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"display_name": "BSD City, Tangerang Selatan, Banten, Indonesia",
			 "lat": "-6.3019", "lon": "106.6527",
			 "address": {"city": "Tangerang Selatan", "state": "Banten"},
			 "osm_id": 123456},
			{"display_name": "BSD Raya, Tangerang Selatan", "lat": "-6.30", "lon": "106.65", "osm_id": 2}
		]`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	got, err := client.Search(context.Background(), "BSD City, Tangerang Selatan")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery.Get("q") != "BSD City, Tangerang Selatan, Indonesia" {
		t.Errorf("query q = %q, want country qualifier appended", gotQuery.Get("q"))
	}
	if gotQuery.Get("format") != "jsonv2" || gotQuery.Get("addressdetails") != "1" {
		t.Errorf("query format/addressdetails = %q/%q", gotQuery.Get("format"), gotQuery.Get("addressdetails"))
	}
	if gotQuery.Get("limit") != "3" || gotQuery.Get("bounded") != "1" {
		t.Errorf("query limit/bounded = %q/%q", gotQuery.Get("limit"), gotQuery.Get("bounded"))
	}
	if gotQuery.Get("viewbox") != "106.5,-6.0,107.2,-7.1" {
		t.Errorf("query viewbox = %q", gotQuery.Get("viewbox"))
	}
	if gotUA != "arsaa-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	// First candidate wins; the provider order is trusted.
	if got.DisplayName != "BSD City, Tangerang Selatan, Banten, Indonesia" {
		t.Errorf("DisplayName = %q", got.DisplayName)
	}
	if got.Latitude != -6.3019 || got.Longitude != 106.6527 {
		t.Errorf("coordinates = %v, %v", got.Latitude, got.Longitude)
	}
	if got.OSMID != 123456 {
		t.Errorf("OSMID = %d", got.OSMID)
	}
	if got.Source != model.GeoSourceNominatim {
		t.Errorf("Source = %q", got.Source)
	}
	// Confidence is the literal candidate count.
	if got.Confidence != 2 {
		t.Errorf("Confidence = %d, want 2", got.Confidence)
	}
	if got.AddressComponents["city"] != "Tangerang Selatan" {
		t.Errorf("AddressComponents = %v", got.AddressComponents)
	}
}

func TestSearch_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	got, err := client.Search(context.Background(), "Nowhere")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("Search() error = %v, want ErrNoResults", err)
	}
	if got != nil {
		t.Errorf("Search() = %v, want nil", got)
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	if _, err := client.Search(context.Background(), "BSD City"); err == nil {
		t.Error("Search() expected error on non-200 status")
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	if _, err := client.Search(context.Background(), "BSD City"); err == nil {
		t.Error("Search() expected error on malformed body")
	}
}
