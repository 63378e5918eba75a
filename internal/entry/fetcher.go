// Package entry talks to the external project site: fetching public
// project pages and querying its GraphQL-style API. Each method builds a
// request from its inputs, performs a single round trip, and validates the
// response before shaping the output; no retries happen at this layer.
package entry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the external project site.
const DefaultBaseURL = "https://playentry.org"

// The site rejects requests that do not look like they came from a
// browser, so page fetches carry a realistic User-Agent and Accept header.
const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// PageFetcher retrieves public project pages
type PageFetcher struct {
	baseURL    string
	httpClient *http.Client
}

// NewPageFetcher creates a fetcher for the given site base URL. An empty
// baseURL selects the production site.
func NewPageFetcher(baseURL string) *PageFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PageFetcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchProjectPage retrieves the project's public page and returns the raw
// markup. A non-success status yields a *FetchError; transport failures
// are returned as-is.
func (f *PageFetcher) FetchProjectPage(ctx context.Context, projectID string) (string, error) {
	pageURL := f.baseURL + "/project/" + projectID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch project page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{ProjectID: projectID, URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read project page body: %w", err)
	}

	return string(body), nil
}
