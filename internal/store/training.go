// ABOUTME: Training session persistence on the SQLite store
// ABOUTME: Sessions belong to fitness goals and record sport, duration, distance

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TrainingStore defines persistence operations for training sessions.
type TrainingStore interface {
	CreateSession(ctx context.Context, session *TrainingSession) error
	GetSession(ctx context.Context, id string) (*TrainingSession, error)
	ListSessions(ctx context.Context, goalID string) ([]*TrainingSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// CreateSession inserts a logged workout under its goal.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *TrainingSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Date.IsZero() {
		session.Date = time.Now().UTC()
	}

	query := `
		INSERT INTO training_sessions (id, goal_id, sport, duration_secs, distance_m, avg_heart_rate, effort, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.GoalID,
		session.Sport,
		int64(session.Duration.Seconds()),
		session.Distance,
		session.AvgHeartRate,
		session.Effort,
		formatTime(session.Date),
	)
	if err != nil {
		return fmt.Errorf("inserting training session: %w", err)
	}

	s.logger.Debug("created training session", "id", session.ID, "goal_id", session.GoalID, "sport", session.Sport)
	return nil
}

// GetSession retrieves a training session by ID.
// Returns ErrNotFound if the session doesn't exist.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*TrainingSession, error) {
	query := `
		SELECT id, goal_id, sport, duration_secs, distance_m, avg_heart_rate, effort, date
		FROM training_sessions
		WHERE id = ?
	`

	var session TrainingSession
	var durationSecs int64
	var date string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.GoalID,
		&session.Sport,
		&durationSecs,
		&session.Distance,
		&session.AvgHeartRate,
		&session.Effort,
		&date,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying training session: %w", err)
	}

	session.Duration = time.Duration(durationSecs) * time.Second
	session.Date, err = parseTime(date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	return &session, nil
}

// ListSessions returns a goal's training sessions, most recent first.
func (s *SQLiteStore) ListSessions(ctx context.Context, goalID string) ([]*TrainingSession, error) {
	query := `
		SELECT id, goal_id, sport, duration_secs, distance_m, avg_heart_rate, effort, date
		FROM training_sessions
		WHERE goal_id = ?
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("querying training sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*TrainingSession
	for rows.Next() {
		var session TrainingSession
		var durationSecs int64
		var date string

		if err := rows.Scan(&session.ID, &session.GoalID, &session.Sport, &durationSecs,
			&session.Distance, &session.AvgHeartRate, &session.Effort, &date); err != nil {
			return nil, fmt.Errorf("scanning training session row: %w", err)
		}

		session.Duration = time.Duration(durationSecs) * time.Second
		session.Date, err = parseTime(date)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}

		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating training session rows: %w", err)
	}

	return sessions, nil
}

// DeleteSession removes a training session.
// Returns ErrNotFound if the session doesn't exist.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM training_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting training session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted training session", "id", id)
	return nil
}

// Ensure SQLiteStore implements TrainingStore
var _ TrainingStore = (*SQLiteStore)(nil)
