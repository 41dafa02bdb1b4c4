// Package source fetches candidate events from public web sources:
// syndicated news feeds, the executive actions page, and an optional
// authenticated headlines API.
package source

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Source names attached to fetched items.
const (
	SourceFeed      = "feed"
	SourceActions   = "actions"
	SourceHeadlines = "headlines"
)

// Item is a single candidate event pulled from a source.
type Item struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source"`
}

// Fetcher pulls items from one source.
type Fetcher interface {
	// Name identifies the source in logs and stored events.
	Name() string
	// Fetch returns the source's current items.
	Fetch(ctx context.Context) ([]*Item, error)
}

// FetchAll runs every fetcher concurrently. A failing source logs and
// contributes nothing; only a canceled context aborts the run.
func FetchAll(ctx context.Context, fetchers ...Fetcher) ([]*Item, error) {
	results := make([][]*Item, len(fetchers))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, fetcher := range fetchers {
		g.Go(func() error {
			items, err := fetcher.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warnf("error fetching from %s: %v", fetcher.Name(), err)
				return nil
			}
			mu.Lock()
			results[i] = items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Item, 0)
	for _, items := range results {
		out = append(out, items...)
	}
	return out, nil
}

// Titles extracts the item titles in order.
func Titles(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Title)
	}
	return out
}
