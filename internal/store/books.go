// ABOUTME: Book, chapter, and chapter-note persistence on the SQLite store
// ABOUTME: Books belong to goals; chapters to books; notes to chapters

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookStore defines persistence operations for books, chapters, and notes.
type BookStore interface {
	CreateBook(ctx context.Context, book *Book) error
	GetBook(ctx context.Context, id string) (*Book, error)
	ListBooks(ctx context.Context, goalID string) ([]*Book, error)
	UpdateBookPage(ctx context.Context, id string, currentPage int) error
	DeleteBook(ctx context.Context, id string) error

	CreateChapter(ctx context.Context, chapter *Chapter) error
	GetChapter(ctx context.Context, id string) (*Chapter, error)
	ListChapters(ctx context.Context, bookID string) ([]*Chapter, error)

	CreateNote(ctx context.Context, note *ChapterNote) error
	ListNotes(ctx context.Context, chapterID string) ([]*ChapterNote, error)
}

// CreateBook inserts a new book under its goal.
func (s *SQLiteStore) CreateBook(ctx context.Context, book *Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO books (id, goal_id, title, author, current_page, page_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		book.ID,
		book.GoalID,
		book.Title,
		book.Author,
		book.CurrentPage,
		book.PageCount,
		formatTime(book.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting book: %w", err)
	}

	s.logger.Debug("created book", "id", book.ID, "goal_id", book.GoalID, "title", book.Title)
	return nil
}

// GetBook retrieves a book by ID.
// Returns ErrNotFound if the book doesn't exist.
func (s *SQLiteStore) GetBook(ctx context.Context, id string) (*Book, error) {
	query := `
		SELECT id, goal_id, title, author, current_page, page_count, created_at
		FROM books
		WHERE id = ?
	`

	var book Book
	var createdAt string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.GoalID,
		&book.Title,
		&book.Author,
		&book.CurrentPage,
		&book.PageCount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying book: %w", err)
	}

	book.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &book, nil
}

// ListBooks returns all books belonging to a goal, oldest first.
func (s *SQLiteStore) ListBooks(ctx context.Context, goalID string) ([]*Book, error) {
	query := `
		SELECT id, goal_id, title, author, current_page, page_count, created_at
		FROM books
		WHERE goal_id = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		var book Book
		var createdAt string

		if err := rows.Scan(&book.ID, &book.GoalID, &book.Title, &book.Author,
			&book.CurrentPage, &book.PageCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}

		book.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating book rows: %w", err)
	}

	return books, nil
}

// UpdateBookPage sets the current page for a book. The CHECK constraint on
// the books table is the backstop; callers validate against PageCount first.
// Returns ErrNotFound if the book doesn't exist.
func (s *SQLiteStore) UpdateBookPage(ctx context.Context, id string, currentPage int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE books SET current_page = ? WHERE id = ?`, currentPage, id)
	if err != nil {
		return fmt.Errorf("updating book page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated book page", "id", id, "current_page", currentPage)
	return nil
}

// DeleteBook removes a book and its chapters and notes.
// Returns ErrNotFound if the book doesn't exist.
func (s *SQLiteStore) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted book", "id", id)
	return nil
}

// CreateChapter inserts a chapter under its book. Returns ErrDuplicate if
// the book already has a chapter at the same position.
func (s *SQLiteStore) CreateChapter(ctx context.Context, chapter *Chapter) error {
	if chapter.ID == "" {
		chapter.ID = uuid.New().String()
	}

	query := `
		INSERT INTO chapters (id, book_id, title, position)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		chapter.ID,
		chapter.BookID,
		chapter.Title,
		chapter.Position,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting chapter: %w", err)
	}

	s.logger.Debug("created chapter", "id", chapter.ID, "book_id", chapter.BookID, "position", chapter.Position)
	return nil
}

// GetChapter retrieves a chapter by ID.
// Returns ErrNotFound if the chapter doesn't exist.
func (s *SQLiteStore) GetChapter(ctx context.Context, id string) (*Chapter, error) {
	query := `SELECT id, book_id, title, position FROM chapters WHERE id = ?`

	var chapter Chapter
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.BookID,
		&chapter.Title,
		&chapter.Position,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying chapter: %w", err)
	}

	return &chapter, nil
}

// ListChapters returns a book's chapters in reading order.
func (s *SQLiteStore) ListChapters(ctx context.Context, bookID string) ([]*Chapter, error) {
	query := `
		SELECT id, book_id, title, position
		FROM chapters
		WHERE book_id = ?
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("querying chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		var chapter Chapter
		if err := rows.Scan(&chapter.ID, &chapter.BookID, &chapter.Title, &chapter.Position); err != nil {
			return nil, fmt.Errorf("scanning chapter row: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chapter rows: %w", err)
	}

	return chapters, nil
}

// CreateNote inserts a note under its chapter.
func (s *SQLiteStore) CreateNote(ctx context.Context, note *ChapterNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO chapter_notes (id, chapter_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		note.ID,
		note.ChapterID,
		note.Content,
		formatTime(note.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}

	s.logger.Debug("created note", "id", note.ID, "chapter_id", note.ChapterID)
	return nil
}

// ListNotes returns a chapter's notes in chronological order.
func (s *SQLiteStore) ListNotes(ctx context.Context, chapterID string) ([]*ChapterNote, error) {
	query := `
		SELECT id, chapter_id, content, created_at
		FROM chapter_notes
		WHERE chapter_id = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []*ChapterNote
	for rows.Next() {
		var note ChapterNote
		var createdAt string

		if err := rows.Scan(&note.ID, &note.ChapterID, &note.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}

		note.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating note rows: %w", err)
	}

	return notes, nil
}

// Ensure SQLiteStore implements BookStore
var _ BookStore = (*SQLiteStore)(nil)
