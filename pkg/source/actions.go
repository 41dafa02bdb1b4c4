package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/driftindex/adictl/pkg/net"
)

const actionItemLimit = 5

// ActionsFetcher scrapes the executive actions page for announcement
// titles, matching anchors under h2 or article elements.
type ActionsFetcher struct {
	pageURL string
	client  *http.Client
	limit   int
}

// NewActionsFetcher creates a fetcher for the given actions page URL.
func NewActionsFetcher(pageURL string) *ActionsFetcher {
	return &ActionsFetcher{
		pageURL: pageURL,
		client:  net.GetHTTPClient(),
		limit:   actionItemLimit,
	}
}

// Name implements Fetcher.
func (a *ActionsFetcher) Name() string {
	return SourceActions
}

// Fetch implements Fetcher.
func (a *ActionsFetcher) Fetch(ctx context.Context) ([]*Item, error) {
	if a.pageURL == "" {
		return nil, errors.New("actions page url not configured")
	}

	body, err := net.GetBody(ctx, a.client, a.pageURL)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching actions page")
	}
	defer body.Close()

	items, err := a.parse(body)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing actions page")
	}
	return items, nil
}

func (a *ActionsFetcher) parse(r io.Reader) ([]*Item, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(a.pageURL)
	if err != nil {
		return nil, err
	}

	items := make([]*Item, 0, a.limit)
	seen := make(map[string]bool)

	var walk func(n *html.Node, inContainer bool)
	walk = func(n *html.Node, inContainer bool) {
		if len(items) >= a.limit {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2", "article":
				inContainer = true
			case "a":
				if inContainer {
					title := strings.TrimSpace(nodeText(n))
					href := attrValue(n, "href")
					if title != "" && !seen[title] {
						seen[title] = true
						items = append(items, &Item{
							Title:  title,
							URL:    absolutize(base, href),
							Source: SourceActions,
						})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inContainer)
		}
	}
	walk(root, false)

	return items, nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func absolutize(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
