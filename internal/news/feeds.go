package news

import (
	"context"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/darmansah-zetnov/arsaa-dimension/internal/logger"
	"github.com/darmansah-zetnov/arsaa-dimension/internal/model"
)

const (
	// entriesPerFeed caps how many items are kept from each feed.
	entriesPerFeed = 3

	// feedPause spaces out successive feed fetches so the hosts are not
	// hammered. Crude fairness, not a budgeted rate limiter.
	feedPause = 500 * time.Millisecond
)

// FeedFetcher iterates a fixed ordered list of syndication feeds.
type FeedFetcher struct {
	feeds   []string
	parser  *gofeed.Parser
	limiter *rate.Limiter
}

// NewFeedFetcher creates a fetcher over the configured feed URLs.
func NewFeedFetcher(feeds []string) *FeedFetcher {
	return &FeedFetcher{
		feeds:   feeds,
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Every(feedPause), 1),
	}
}

// Fetch collects up to entriesPerFeed articles from every feed in order. A
// failing feed is logged and skipped; it never aborts the remaining feeds,
// so the result is whatever could be gathered.
func (f *FeedFetcher) Fetch(ctx context.Context) []model.NewsArticle {
	var all []model.NewsArticle

	for _, feedURL := range f.feeds {
		if err := f.limiter.Wait(ctx); err != nil {
			return all
		}

		logger.Log.Infof("Mengambil feed: %s", feedHost(feedURL))

		feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logger.Log.Warnf("Feed gagal diambil [%s]: %v", feedURL, err)
			continue
		}

		source := feed.Title
		if source == "" {
			source = "RSS Feed"
		}

		for i, item := range feed.Items {
			if i >= entriesPerFeed {
				break
			}
			all = append(all, model.NewsArticle{
				Title:       item.Title,
				URL:         item.Link,
				Published:   item.Published,
				Source:      source,
				Description: truncate(item.Description, descriptionLimit),
			})
		}
	}

	return all
}

func feedHost(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	return u.Host
}
