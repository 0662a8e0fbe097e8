// ABOUTME: Minimal GitHub REST API client for profile and commit statistics
// ABOUTME: Base URL is overridable so tests can point at an httptest server

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAPIBaseURL is the public GitHub REST API endpoint.
const DefaultAPIBaseURL = "https://api.github.com"

// ErrUnauthorized is returned when the API rejects the access token.
var ErrUnauthorized = errors.New("github: token rejected")

// ErrStatsPending is returned when GitHub is still computing commit
// statistics for a repository (HTTP 202). The caller simply tries again
// later; nothing retries automatically.
var ErrStatsPending = errors.New("github: commit statistics not ready yet")

// Client talks to the GitHub REST API with a caller-supplied token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client against the public GitHub API.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultAPIBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "github"),
	}
}

// NewClientWithBaseURL creates a client against a custom API endpoint,
// used by tests and GitHub Enterprise setups.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

func (c *Client) get(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling github: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return ErrStatsPending
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("github returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding github response: %w", err)
	}
	return nil
}

// User fetches the authenticated user's profile via GET /user.
func (c *Client) User(ctx context.Context, token string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, token, "/user", &profile); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched user profile", "login", profile.Login)
	return &profile, nil
}

// WeekActivity is one week of aggregated commit counts for a repository.
type WeekActivity struct {
	WeekStart time.Time
	Total     int
}

// commitActivityWeek mirrors one element of the GitHub stats payload.
type commitActivityWeek struct {
	Week  int64 `json:"week"` // unix timestamp of the week's first day
	Total int   `json:"total"`
}

// CommitActivity fetches the last year of weekly commit totals for a
// repository via GET /repos/{owner}/{repo}/stats/commit_activity.
// Returns ErrStatsPending while GitHub computes the stats.
func (c *Client) CommitActivity(ctx context.Context, token, owner, name string) ([]WeekActivity, error) {
	path := fmt.Sprintf("/repos/%s/%s/stats/commit_activity", owner, name)

	var raw []commitActivityWeek
	if err := c.get(ctx, token, path, &raw); err != nil {
		return nil, err
	}

	weeks := make([]WeekActivity, 0, len(raw))
	for _, w := range raw {
		weeks = append(weeks, WeekActivity{
			WeekStart: time.Unix(w.Week, 0).UTC(),
			Total:     w.Total,
		})
	}

	c.logger.Debug("fetched commit activity", "repo", owner+"/"+name, "weeks", len(weeks))
	return weeks, nil
}
