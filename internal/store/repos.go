// ABOUTME: Tracked repository and commit activity persistence on the SQLite store
// ABOUTME: Commit activity rows are replaced wholesale on each sync

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RepoStore defines persistence operations for tracked repositories and
// their aggregated commit activity.
type RepoStore interface {
	CreateRepository(ctx context.Context, repo *Repository) error
	GetRepository(ctx context.Context, id string) (*Repository, error)
	ListRepositories(ctx context.Context, goalID string) ([]*Repository, error)
	DeleteRepository(ctx context.Context, id string) error

	ReplaceCommitActivity(ctx context.Context, repositoryID string, weeks []*CommitActivity) error
	ListCommitActivity(ctx context.Context, repositoryID string) ([]*CommitActivity, error)
}

// CreateRepository inserts a tracked repository under its goal.
// Returns ErrDuplicate if the goal already tracks owner/name.
func (s *SQLiteStore) CreateRepository(ctx context.Context, repo *Repository) error {
	if repo.ID == "" {
		repo.ID = uuid.New().String()
	}

	query := `
		INSERT INTO repositories (id, goal_id, owner, name, last_synced_at)
		VALUES (?, ?, ?, ?, ?)
	`

	var lastSynced any
	if repo.LastSyncedAt != nil {
		lastSynced = formatTime(*repo.LastSyncedAt)
	}

	_, err := s.db.ExecContext(ctx, query,
		repo.ID,
		repo.GoalID,
		repo.Owner,
		repo.Name,
		lastSynced,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting repository: %w", err)
	}

	s.logger.Debug("created repository", "id", repo.ID, "repo", repo.FullName())
	return nil
}

// GetRepository retrieves a tracked repository by ID.
// Returns ErrNotFound if the repository doesn't exist.
func (s *SQLiteStore) GetRepository(ctx context.Context, id string) (*Repository, error) {
	query := `
		SELECT id, goal_id, owner, name, last_synced_at
		FROM repositories
		WHERE id = ?
	`

	var repo Repository
	var lastSynced sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&repo.ID,
		&repo.GoalID,
		&repo.Owner,
		&repo.Name,
		&lastSynced,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying repository: %w", err)
	}

	if lastSynced.Valid {
		t, err := parseTime(lastSynced.String)
		if err != nil {
			return nil, fmt.Errorf("parsing last_synced_at: %w", err)
		}
		repo.LastSyncedAt = &t
	}

	return &repo, nil
}

// ListRepositories returns the repositories tracked under a goal.
func (s *SQLiteStore) ListRepositories(ctx context.Context, goalID string) ([]*Repository, error) {
	query := `
		SELECT id, goal_id, owner, name, last_synced_at
		FROM repositories
		WHERE goal_id = ?
		ORDER BY owner, name
	`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("querying repositories: %w", err)
	}
	defer rows.Close()

	var repos []*Repository
	for rows.Next() {
		var repo Repository
		var lastSynced sql.NullString

		if err := rows.Scan(&repo.ID, &repo.GoalID, &repo.Owner, &repo.Name, &lastSynced); err != nil {
			return nil, fmt.Errorf("scanning repository row: %w", err)
		}

		if lastSynced.Valid {
			t, err := parseTime(lastSynced.String)
			if err != nil {
				return nil, fmt.Errorf("parsing last_synced_at: %w", err)
			}
			repo.LastSyncedAt = &t
		}

		repos = append(repos, &repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating repository rows: %w", err)
	}

	return repos, nil
}

// DeleteRepository removes a tracked repository and its commit activity.
// Returns ErrNotFound if the repository doesn't exist.
func (s *SQLiteStore) DeleteRepository(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM repositories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting repository: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted repository", "id", id)
	return nil
}

// ReplaceCommitActivity replaces a repository's commit activity with the
// given weeks and stamps last_synced_at, all in one transaction so a
// failed sync never leaves partial rows behind.
func (s *SQLiteStore) ReplaceCommitActivity(ctx context.Context, repositoryID string, weeks []*CommitActivity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM commit_activity WHERE repository_id = ?`, repositoryID); err != nil {
		return fmt.Errorf("clearing commit activity: %w", err)
	}

	for _, week := range weeks {
		if week.ID == "" {
			week.ID = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO commit_activity (id, repository_id, week_start, commit_count)
			VALUES (?, ?, ?, ?)
		`, week.ID, repositoryID, formatTime(week.WeekStart), week.CommitCount); err != nil {
			return fmt.Errorf("inserting commit activity: %w", err)
		}
	}

	now := formatTime(time.Now().UTC())
	result, err := tx.ExecContext(ctx,
		`UPDATE repositories SET last_synced_at = ? WHERE id = ?`, now, repositoryID)
	if err != nil {
		return fmt.Errorf("stamping last_synced_at: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing commit activity: %w", err)
	}

	s.logger.Debug("replaced commit activity", "repository_id", repositoryID, "weeks", len(weeks))
	return nil
}

// ListCommitActivity returns a repository's commit activity, oldest week first.
func (s *SQLiteStore) ListCommitActivity(ctx context.Context, repositoryID string) ([]*CommitActivity, error) {
	query := `
		SELECT id, repository_id, week_start, commit_count
		FROM commit_activity
		WHERE repository_id = ?
		ORDER BY week_start ASC
	`

	rows, err := s.db.QueryContext(ctx, query, repositoryID)
	if err != nil {
		return nil, fmt.Errorf("querying commit activity: %w", err)
	}
	defer rows.Close()

	var weeks []*CommitActivity
	for rows.Next() {
		var week CommitActivity
		var weekStart string

		if err := rows.Scan(&week.ID, &week.RepositoryID, &weekStart, &week.CommitCount); err != nil {
			return nil, fmt.Errorf("scanning commit activity row: %w", err)
		}

		week.WeekStart, err = parseTime(weekStart)
		if err != nil {
			return nil, fmt.Errorf("parsing week_start: %w", err)
		}

		weeks = append(weeks, &week)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commit activity rows: %w", err)
	}

	return weeks, nil
}

// Ensure SQLiteStore implements RepoStore
var _ RepoStore = (*SQLiteStore)(nil)
