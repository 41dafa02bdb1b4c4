// Package net provides the shared HTTP clients used by the event sources.
package net

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 30

	clientAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.88 Safari/537.36"
)

var reqTransport = &http.Transport{
	MaxIdleConns:          maxIdleConns,
	IdleConnTimeout:       timeoutInSeconds * time.Second,
	DisableCompression:    true,
	ResponseHeaderTimeout: timeoutInSeconds * time.Second,
}

// GetHTTPClient returns the shared client for unauthenticated requests.
func GetHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   timeoutInSeconds * time.Second,
		Transport: reqTransport,
	}
}

// GetOAuthClient returns a client that sends the token as a bearer
// credential on every request.
func GetOAuthClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{
			TokenType:   "Bearer",
			AccessToken: token,
		},
	)
	return oauth2.NewClient(ctx, ts)
}

// GetJSON retrieves the URL content and decodes it into target.
func GetJSON[T any](ctx context.Context, client *http.Client, url string, target *T) error {
	body, err := GetBody(ctx, client, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return errors.Wrapf(err, "error decoding content from: %s", url)
	}
	return nil
}

// GetBody issues a GET for the URL and returns the response body. The
// caller closes the returned reader.
func GetBody(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if url == "" {
		return nil, errors.New("url required")
	}
	if client == nil {
		client = GetHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating request: %s", url)
	}
	req.Header.Set("User-Agent", clientAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error executing request: %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status for %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}
