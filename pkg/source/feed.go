package source

import (
	"context"

	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const feedItemLimit = 10

// FeedFetcher pulls headlines from RSS/Atom feeds, trying each URL in
// order until one returns entries.
type FeedFetcher struct {
	urls   []string
	parser *gofeed.Parser
	limit  int
}

// NewFeedFetcher creates a fetcher over the ordered fallback feed URLs.
func NewFeedFetcher(urls []string) *FeedFetcher {
	p := gofeed.NewParser()
	p.UserAgent = "adictl"
	return &FeedFetcher{
		urls:   urls,
		parser: p,
		limit:  feedItemLimit,
	}
}

// Name implements Fetcher.
func (f *FeedFetcher) Name() string {
	return SourceFeed
}

// Fetch implements Fetcher.
func (f *FeedFetcher) Fetch(ctx context.Context) ([]*Item, error) {
	if len(f.urls) == 0 {
		return nil, errors.New("no feed urls configured")
	}

	var lastErr error
	for _, url := range f.urls {
		feed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			log.Debugf("feed %s failed: %v", url, err)
			lastErr = err
			continue
		}
		if len(feed.Items) == 0 {
			continue
		}

		items := make([]*Item, 0, f.limit)
		for _, entry := range feed.Items {
			if len(items) >= f.limit {
				break
			}
			if entry.Title == "" {
				continue
			}
			items = append(items, &Item{
				Title:  entry.Title,
				URL:    entry.Link,
				Source: SourceFeed,
			})
		}
		if len(items) > 0 {
			return items, nil
		}
	}

	if lastErr != nil {
		return nil, errors.Wrap(lastErr, "all feeds failed")
	}
	return nil, errors.New("no feed returned entries")
}
