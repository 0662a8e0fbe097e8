// ABOUTME: SQLite implementation of stride persistence using modernc.org/sqlite
// ABOUTME: Opens the database, creates the schema, and applies idempotent migrations

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore holds the open database handle. It is constructed once at
// startup and passed explicitly to everything that needs persistence.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the stride database at the given path.
// The schema is created if it doesn't exist and parent directories are
// created as needed. Callers must treat a returned error as fatal: the
// application cannot run without its data store.
func Open(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Foreign keys drive the cascade deletes, so this pragma is load-bearing
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("sqlite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS goals (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			type       TEXT NOT NULL,
			target     INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,

			CHECK (type IN ('book_reading', 'fitness', 'programming'))
		);

		CREATE TABLE IF NOT EXISTS books (
			id           TEXT PRIMARY KEY,
			goal_id      TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			title        TEXT NOT NULL,
			author       TEXT NOT NULL DEFAULT '',
			current_page INTEGER NOT NULL DEFAULT 0,
			page_count   INTEGER NOT NULL,
			created_at   TEXT NOT NULL,

			CHECK (page_count > 0),
			CHECK (current_page >= 0 AND current_page <= page_count)
		);

		CREATE INDEX IF NOT EXISTS idx_books_goal ON books(goal_id);

		CREATE TABLE IF NOT EXISTS chapters (
			id       TEXT PRIMARY KEY,
			book_id  TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			title    TEXT NOT NULL,
			position INTEGER NOT NULL,

			UNIQUE (book_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_chapters_book ON chapters(book_id);

		CREATE TABLE IF NOT EXISTS chapter_notes (
			id         TEXT PRIMARY KEY,
			chapter_id TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_chapter ON chapter_notes(chapter_id);

		CREATE TABLE IF NOT EXISTS training_sessions (
			id             TEXT PRIMARY KEY,
			goal_id        TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			sport          TEXT NOT NULL,
			duration_secs  INTEGER NOT NULL,
			distance_m     REAL NOT NULL DEFAULT 0,
			avg_heart_rate INTEGER NOT NULL DEFAULT 0,
			effort         INTEGER NOT NULL DEFAULT 0,
			date           TEXT NOT NULL,

			CHECK (sport IN ('swim', 'bike', 'run', 'strength', 'recovery')),
			CHECK (effort >= 0 AND effort <= 10)
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_goal ON training_sessions(goal_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_date ON training_sessions(goal_id, date);

		CREATE TABLE IF NOT EXISTS repositories (
			id             TEXT PRIMARY KEY,
			goal_id        TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			owner          TEXT NOT NULL,
			name           TEXT NOT NULL,
			last_synced_at TEXT,

			UNIQUE (goal_id, owner, name)
		);

		CREATE INDEX IF NOT EXISTS idx_repositories_goal ON repositories(goal_id);

		CREATE TABLE IF NOT EXISTS commit_activity (
			id            TEXT PRIMARY KEY,
			repository_id TEXT NOT NULL REFERENCES repositories(id) ON DELETE CASCADE,
			week_start    TEXT NOT NULL,
			commit_count  INTEGER NOT NULL,

			UNIQUE (repository_id, week_start)
		);

		CREATE INDEX IF NOT EXISTS idx_activity_repo ON commit_activity(repository_id, week_start);
	`

	_, err := s.db.Exec(schema)
	return err
}

// runMigrations applies schema migrations for existing databases.
// These are idempotent - safe to run multiple times.
func (s *SQLiteStore) runMigrations() error {
	migrations := []struct {
		check  string // Query to check if migration is needed
		apply  string // Query to apply the migration
		table  string
		column string
	}{
		{
			check:  `SELECT 1 FROM pragma_table_info('books') WHERE name = 'author'`,
			apply:  `ALTER TABLE books ADD COLUMN author TEXT NOT NULL DEFAULT ''`,
			table:  "books",
			column: "author",
		},
		{
			check:  `SELECT 1 FROM pragma_table_info('training_sessions') WHERE name = 'effort'`,
			apply:  `ALTER TABLE training_sessions ADD COLUMN effort INTEGER NOT NULL DEFAULT 0`,
			table:  "training_sessions",
			column: "effort",
		},
	}

	for _, m := range migrations {
		var exists int
		err := s.db.QueryRow(m.check).Scan(&exists)
		if err == nil {
			// Column already exists, skip
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking for %s column on %s: %w", m.column, m.table, err)
		}
		if _, err := s.db.Exec(m.apply); err != nil {
			return fmt.Errorf("adding %s column to %s: %w", m.column, m.table, err)
		}
		s.logger.Info("applied migration", "column", m.column, "table", m.table)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing sqlite store")
	return s.db.Close()
}

// isConstraintViolation checks if the error is a SQLite constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
