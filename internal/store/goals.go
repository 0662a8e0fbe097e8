// ABOUTME: Goal CRUD on the SQLite store
// ABOUTME: Deleting a goal cascades through all owned child entities

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GoalStore defines persistence operations for goals.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal *Goal) error
	GetGoal(ctx context.Context, id string) (*Goal, error)
	ListGoals(ctx context.Context) ([]*Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// CreateGoal inserts a new goal. ID and CreatedAt are filled in if zero.
func (s *SQLiteStore) CreateGoal(ctx context.Context, goal *Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO goals (id, title, type, target, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		goal.ID,
		goal.Title,
		goal.Type,
		goal.Target,
		formatTime(goal.CreatedAt),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting goal: %w", err)
	}

	s.logger.Debug("created goal", "id", goal.ID, "type", goal.Type)
	return nil
}

// GetGoal retrieves a goal by ID.
// Returns ErrNotFound if the goal doesn't exist.
func (s *SQLiteStore) GetGoal(ctx context.Context, id string) (*Goal, error) {
	query := `
		SELECT id, title, type, target, created_at
		FROM goals
		WHERE id = ?
	`

	var goal Goal
	var createdAt string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&goal.ID,
		&goal.Title,
		&goal.Type,
		&goal.Target,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying goal: %w", err)
	}

	goal.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &goal, nil
}

// ListGoals returns all goals ordered by creation time, newest first.
func (s *SQLiteStore) ListGoals(ctx context.Context) ([]*Goal, error) {
	query := `
		SELECT id, title, type, target, created_at
		FROM goals
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		var goal Goal
		var createdAt string

		if err := rows.Scan(&goal.ID, &goal.Title, &goal.Type, &goal.Target, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}

		goal.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		goals = append(goals, &goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	return goals, nil
}

// DeleteGoal removes a goal and, through foreign keys, every child entity
// it owns. Returns ErrNotFound if the goal doesn't exist.
func (s *SQLiteStore) DeleteGoal(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted goal", "id", id)
	return nil
}

// Ensure SQLiteStore implements GoalStore
var _ GoalStore = (*SQLiteStore)(nil)
