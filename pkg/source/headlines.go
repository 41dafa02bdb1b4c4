package source

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/driftindex/adictl/pkg/net"
)

const headlineItemLimit = 10

// HeadlinesFetcher pulls articles from an authenticated headlines API
// using a bearer token.
type HeadlinesFetcher struct {
	apiURL string
	client *http.Client
	limit  int
}

// NewHeadlinesFetcher creates a fetcher for the headlines API. The token
// is sent as a bearer credential.
func NewHeadlinesFetcher(ctx context.Context, apiURL, token string) (*HeadlinesFetcher, error) {
	if token == "" {
		return nil, errors.New("api token required")
	}
	return &HeadlinesFetcher{
		apiURL: apiURL,
		client: net.GetOAuthClient(ctx, token),
		limit:  headlineItemLimit,
	}, nil
}

// Name implements Fetcher.
func (h *HeadlinesFetcher) Name() string {
	return SourceHeadlines
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

// Fetch implements Fetcher.
func (h *HeadlinesFetcher) Fetch(ctx context.Context) ([]*Item, error) {
	if h.apiURL == "" {
		return nil, errors.New("headlines api url not configured")
	}

	var resp headlinesResponse
	if err := net.GetJSON(ctx, h.client, h.apiURL, &resp); err != nil {
		return nil, errors.Wrap(err, "error fetching headlines")
	}
	if resp.Status != "" && resp.Status != "ok" {
		return nil, errors.Errorf("headlines api returned status: %s", resp.Status)
	}

	items := make([]*Item, 0, h.limit)
	for _, a := range resp.Articles {
		if len(items) >= h.limit {
			break
		}
		if a.Title == "" {
			continue
		}
		items = append(items, &Item{
			Title:  a.Title,
			URL:    a.URL,
			Source: SourceHeadlines,
		})
	}
	return items, nil
}
