// Package geocode is a minimal Nominatim search client constrained to the
// Jabodetabek bounding box.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/config"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/model"
)

const (
	requestTimeout = 15 * time.Second
	candidateLimit = 3
	countrySuffix  = ", Indonesia"
)

// ErrNoResults means the provider returned an empty candidate list. The
// caller decides whether to substitute the fallback centroid.
var ErrNoResults = errors.New("no geocoding candidates found")

// Client queries the Nominatim search endpoint.
type Client struct {
	endpoint  string
	userAgent string
	viewBox   string
	client    *http.Client
}

// NewClient creates a geocoding client from the tool configuration.
func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		viewBox:   cfg.ViewBox,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// candidate mirrors one entry of the jsonv2 response. Coordinates arrive as
// strings.
type candidate struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Address     map[string]string `json:"address"`
	OSMID       int64             `json:"osm_id"`
}

// Search resolves a free-text address inside the configured bounding box.
// The first candidate wins; the provider's own relevance order is trusted
// and no secondary ranking is applied. Confidence is the candidate count.
func (c *Client) Search(ctx context.Context, address string) (*model.GeoResult, error) {
	params := url.Values{}
	params.Set("q", address+countrySuffix)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(candidateLimit))
	params.Set("viewbox", c.viewBox)
	params.Set("bounded", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim error (status %d): %s", res.StatusCode, string(body))
	}

	var candidates []candidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	if len(candidates) == 0 {
		return nil, ErrNoResults
	}

	best := candidates[0]

	lat, err := parseCoordinate(best.Lat)
	if err != nil {
		return nil, fmt.Errorf("parse latitude failed: %w", err)
	}
	lon, err := parseCoordinate(best.Lon)
	if err != nil {
		return nil, fmt.Errorf("parse longitude failed: %w", err)
	}

	return &model.GeoResult{
		DisplayName:       best.DisplayName,
		Latitude:          lat,
		Longitude:         lon,
		AddressComponents: best.Address,
		OSMID:             best.OSMID,
		Source:            model.GeoSourceNominatim,
		Confidence:        len(candidates),
	}, nil
}

func parseCoordinate(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
