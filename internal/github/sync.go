// ABOUTME: Commit activity sync from the GitHub stats API into the store
// ABOUTME: Replaces a repository's weekly counts and stamps last_synced_at

package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stridelog/stride/internal/credentials"
	"github.com/stridelog/stride/internal/store"
)

// Syncer refreshes tracked repositories' commit activity. It is the one
// mutation path that isn't a direct user action.
type Syncer struct {
	client *Client
	creds  credentials.Store
	repos  store.RepoStore
	logger *slog.Logger
}

// NewSyncer creates a commit activity syncer.
func NewSyncer(client *Client, creds credentials.Store, repos store.RepoStore) *Syncer {
	return &Syncer{
		client: client,
		creds:  creds,
		repos:  repos,
		logger: slog.Default().With("component", "github-sync"),
	}
}

// SyncRepository fetches the weekly commit totals for one tracked
// repository and replaces its stored activity. Returns ErrStatsPending
// when GitHub hasn't finished computing the stats; the user re-runs the
// sync later.
func (s *Syncer) SyncRepository(ctx context.Context, repositoryID string) error {
	repo, err := s.repos.GetRepository(ctx, repositoryID)
	if err != nil {
		return fmt.Errorf("loading repository: %w", err)
	}

	token, found, err := s.creds.Get(credentials.KeyGitHubAccessToken)
	if err != nil {
		return fmt.Errorf("reading access token: %w", err)
	}
	if !found {
		return fmt.Errorf("no github access token: sign in first")
	}

	weeks, err := s.client.CommitActivity(ctx, token, repo.Owner, repo.Name)
	if err != nil {
		return fmt.Errorf("fetching commit activity for %s: %w", repo.FullName(), err)
	}

	activity := make([]*store.CommitActivity, 0, len(weeks))
	for _, w := range weeks {
		activity = append(activity, &store.CommitActivity{
			RepositoryID: repo.ID,
			WeekStart:    w.WeekStart,
			CommitCount:  w.Total,
		})
	}

	if err := s.repos.ReplaceCommitActivity(ctx, repo.ID, activity); err != nil {
		return fmt.Errorf("storing commit activity: %w", err)
	}

	s.logger.Info("synced commit activity", "repo", repo.FullName(), "weeks", len(activity))
	return nil
}

// SyncGoal refreshes every repository tracked under a goal. The first
// failure stops the pass; already-synced repositories keep their data.
func (s *Syncer) SyncGoal(ctx context.Context, goalID string) error {
	repos, err := s.repos.ListRepositories(ctx, goalID)
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}

	for _, repo := range repos {
		if err := s.SyncRepository(ctx, repo.ID); err != nil {
			return err
		}
	}
	return nil
}
