// ABOUTME: Domain service enforcing goal-type and page-progress invariants
// ABOUTME: Sits between the CLI and the store; every mutation validates first

package goals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stridelog/stride/internal/store"
)

var (
	// ErrInvalidGoalType is returned for a goal type outside the fixed set
	ErrInvalidGoalType = errors.New("invalid goal type")
	// ErrWrongGoalType is returned when a child entity doesn't match its goal's type
	ErrWrongGoalType = errors.New("entity kind does not match goal type")
	// ErrPageOutOfRange is returned when a page update falls outside 0..PageCount
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrInvalidSport is returned for an unknown training session type
	ErrInvalidSport = errors.New("invalid sport")
)

// Store is the persistence surface the service needs.
type Store interface {
	store.GoalStore
	store.BookStore
	store.TrainingStore
	store.RepoStore
}

// Service owns the domain invariants: goal types are immutable and
// determine valid children, and a book's current page never exceeds its
// page count.
type Service struct {
	store  Store
	logger *slog.Logger
}

// New creates the goals service.
func New(s Store) *Service {
	return &Service{
		store:  s,
		logger: slog.Default().With("component", "goals"),
	}
}

// CreateGoal creates a goal of one of the three fixed types. The type
// is immutable afterwards; there is deliberately no UpdateGoalType.
func (s *Service) CreateGoal(ctx context.Context, title, goalType string, target int) (*store.Goal, error) {
	if title == "" {
		return nil, errors.New("goal title required")
	}
	if !store.ValidGoalType(goalType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGoalType, goalType)
	}

	goal := &store.Goal{
		Title:  title,
		Type:   goalType,
		Target: target,
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// GetGoal retrieves a goal by ID.
func (s *Service) GetGoal(ctx context.Context, id string) (*store.Goal, error) {
	return s.store.GetGoal(ctx, id)
}

// ListGoals returns all goals, newest first.
func (s *Service) ListGoals(ctx context.Context) ([]*store.Goal, error) {
	return s.store.ListGoals(ctx)
}

// DeleteGoal removes a goal and everything it owns.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	return s.store.DeleteGoal(ctx, id)
}

// requireGoalType loads a goal and checks it has the wanted type.
func (s *Service) requireGoalType(ctx context.Context, goalID, want string) (*store.Goal, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Type != want {
		return nil, fmt.Errorf("%w: goal %q is %s", ErrWrongGoalType, goal.Title, goal.Type)
	}
	return goal, nil
}

// AddBook adds a book under a book-reading goal.
func (s *Service) AddBook(ctx context.Context, goalID, title, author string, pageCount int) (*store.Book, error) {
	if _, err := s.requireGoalType(ctx, goalID, store.GoalTypeBookReading); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errors.New("book title required")
	}
	if pageCount <= 0 {
		return nil, fmt.Errorf("%w: page count must be positive", ErrPageOutOfRange)
	}

	book := &store.Book{
		GoalID:    goalID,
		Title:     title,
		Author:    author,
		PageCount: pageCount,
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBookProgress sets the reader's current page. Pages outside
// 0..PageCount are rejected, not clamped: a typo should surface, not
// silently mark the book finished.
func (s *Service) UpdateBookProgress(ctx context.Context, bookID string, currentPage int) (*store.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if currentPage < 0 || currentPage > book.PageCount {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, currentPage, book.PageCount)
	}

	if err := s.store.UpdateBookPage(ctx, bookID, currentPage); err != nil {
		return nil, err
	}
	book.CurrentPage = currentPage

	s.logger.Debug("updated progress", "book", book.Title, "page", currentPage)
	return book, nil
}

// AddChapter appends a chapter to a book at the next free position, or
// at an explicit position when position > 0.
func (s *Service) AddChapter(ctx context.Context, bookID, title string, position int) (*store.Chapter, error) {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errors.New("chapter title required")
	}

	if position <= 0 {
		chapters, err := s.store.ListChapters(ctx, bookID)
		if err != nil {
			return nil, err
		}
		position = 1
		for _, c := range chapters {
			if c.Position >= position {
				position = c.Position + 1
			}
		}
	}

	chapter := &store.Chapter{
		BookID:   bookID,
		Title:    title,
		Position: position,
	}
	if err := s.store.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// AddNote attaches a free-text note to a chapter.
func (s *Service) AddNote(ctx context.Context, chapterID, content string) (*store.ChapterNote, error) {
	if _, err := s.store.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, errors.New("note content required")
	}

	note := &store.ChapterNote{
		ChapterID: chapterID,
		Content:   content,
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// LogTrainingSession records a workout under a fitness goal.
func (s *Service) LogTrainingSession(ctx context.Context, session *store.TrainingSession) error {
	if _, err := s.requireGoalType(ctx, session.GoalID, store.GoalTypeFitness); err != nil {
		return err
	}
	if !store.ValidSport(session.Sport) {
		return fmt.Errorf("%w: %q", ErrInvalidSport, session.Sport)
	}
	if session.Duration <= 0 {
		return errors.New("session duration must be positive")
	}
	if session.Effort < 0 || session.Effort > 10 {
		return errors.New("effort must be between 0 and 10")
	}

	return s.store.CreateSession(ctx, session)
}

// TrackRepository starts tracking a GitHub repository under a
// programming goal.
func (s *Service) TrackRepository(ctx context.Context, goalID, owner, name string) (*store.Repository, error) {
	if _, err := s.requireGoalType(ctx, goalID, store.GoalTypeProgramming); err != nil {
		return nil, err
	}
	if owner == "" || name == "" {
		return nil, errors.New("repository owner and name required")
	}

	repo := &store.Repository{
		GoalID: goalID,
		Owner:  owner,
		Name:   name,
	}
	if err := s.store.CreateRepository(ctx, repo); err != nil {
		return nil, err
	}
	return repo, nil
}
