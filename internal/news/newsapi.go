// Package news gathers recent property-market articles from two producers:
// a keyword-search news API and a fixed list of syndicated feeds. Both emit
// the same article shape; the caller picks one producer, never both.
package news

import (
	"context"
	"encoding/json"
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
	searchTimeout = 10 * time.Second

	// DefaultSearchLimit is the article cap for one search request.
	DefaultSearchLimit = 5

	descriptionLimit = 200
)

// SearchClient queries the NewsAPI "everything" endpoint.
type SearchClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSearchClient creates a search-API client from the tool configuration.
func NewSearchClient(cfg config.NewsConfig) *SearchClient {
	return &SearchClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: searchTimeout},
	}
}

// searchResponse mirrors the provider's envelope. A provider-side failure
// comes back as status "error" with a message, still HTTP 200 sometimes.
type searchResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
		Description string `json:"description"`
	} `json:"articles"`
}

// Fetch requests the newest property articles for a city. Errors are meant
// to be treated as an empty result by the caller; the feed producer covers
// the gap.
func (c *SearchClient) Fetch(ctx context.Context, city string, limit int) ([]model.NewsArticle, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("properti %s OR real estate %s OR perumahan %s", city, city, city))
	params.Set("language", "id")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

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
		return nil, fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	if decoded.Status == "error" {
		return nil, fmt.Errorf("newsapi error: %s", decoded.Message)
	}

	articles := make([]model.NewsArticle, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		articles = append(articles, model.NewsArticle{
			Title:       a.Title,
			URL:         a.URL,
			Published:   a.PublishedAt,
			Source:      a.Source.Name,
			Description: truncate(a.Description, descriptionLimit),
		})
	}

	return articles, nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
