// ABOUTME: Google Books volume search used to prefill book metadata
// ABOUTME: Returns title, authors, and page count for the top matches

package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Volume is one search result, trimmed to what stride needs to create a Book.
type Volume struct {
	Title     string
	Authors   []string
	PageCount int
}

// Author returns the volume's authors joined for display.
func (v Volume) Author() string {
	return strings.Join(v.Authors, ", ")
}

// Client searches the Google Books volumes API. The zero value is usable;
// BaseURL and HTTPClient exist so tests can point at an httptest server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Search returns up to limit volumes matching the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Volume, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 40 {
		limit = 40 // API maximum
	}

	u := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d",
		base, url.QueryEscape(strings.TrimSpace(query)), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating google books request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling google books: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading google books response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("google books returned status %d", resp.StatusCode)
	}

	var parsed volumesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding google books response: %w", err)
	}

	volumes := make([]Volume, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		title := strings.TrimSpace(item.VolumeInfo.Title)
		if title == "" {
			continue
		}
		volumes = append(volumes, Volume{
			Title:     title,
			Authors:   item.VolumeInfo.Authors,
			PageCount: item.VolumeInfo.PageCount,
		})
	}

	if len(volumes) == 0 {
		return nil, fmt.Errorf("no volumes found for query %q", query)
	}
	return volumes, nil
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title     string   `json:"title"`
			Authors   []string `json:"authors"`
			PageCount int      `json:"pageCount"`
		} `json:"volumeInfo"`
	} `json:"items"`
}
