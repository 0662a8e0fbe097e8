// ABOUTME: Tests for book, chapter, and note persistence
// ABOUTME: Covers page updates, chapter ordering, and the page-count CHECK

package store

import (
	"context"
	"errors"
	"testing"
)

func createTestBook(t *testing.T, s *SQLiteStore, pageCount int) *Book {
	t.Helper()
	ctx := context.Background()

	goal := &Goal{Title: "Reading", Type: GoalTypeBookReading}
	if err := s.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	book := &Book{GoalID: goal.ID, Title: "Test Book", Author: "A. Uthor", PageCount: pageCount}
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook failed: %v", err)
	}
	return book
}

func TestUpdateBookPage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	book := createTestBook(t, s, 300)

	if err := s.UpdateBookPage(ctx, book.ID, 101); err != nil {
		t.Fatalf("UpdateBookPage failed: %v", err)
	}

	got, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetBook failed: %v", err)
	}
	if got.CurrentPage != 101 {
		t.Errorf("CurrentPage = %d, want 101", got.CurrentPage)
	}
}

func TestUpdateBookPage_SchemaRejectsOverflow(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	book := createTestBook(t, s, 300)

	// The service layer validates first; the CHECK constraint is the backstop
	if err := s.UpdateBookPage(ctx, book.ID, 350); err == nil {
		t.Error("expected CHECK constraint to reject page beyond page_count")
	}

	got, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetBook failed: %v", err)
	}
	if got.CurrentPage != 0 {
		t.Errorf("CurrentPage = %d, want 0 (unchanged)", got.CurrentPage)
	}
}

func TestUpdateBookPage_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdateBookPage(context.Background(), "missing", 10)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListChapters_ReadingOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	book := createTestBook(t, s, 300)

	// Insert out of order; listing must sort by position
	for _, c := range []*Chapter{
		{BookID: book.ID, Title: "Third", Position: 3},
		{BookID: book.ID, Title: "First", Position: 1},
		{BookID: book.ID, Title: "Second", Position: 2},
	} {
		if err := s.CreateChapter(ctx, c); err != nil {
			t.Fatalf("CreateChapter failed: %v", err)
		}
	}

	chapters, err := s.ListChapters(ctx, book.ID)
	if err != nil {
		t.Fatalf("ListChapters failed: %v", err)
	}
	if len(chapters) != 3 {
		t.Fatalf("len(chapters) = %d, want 3", len(chapters))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if chapters[i].Title != want {
			t.Errorf("chapters[%d].Title = %q, want %q", i, chapters[i].Title, want)
		}
	}
}

func TestCreateChapter_DuplicatePosition(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	book := createTestBook(t, s, 300)

	first := &Chapter{BookID: book.ID, Title: "Intro", Position: 1}
	if err := s.CreateChapter(ctx, first); err != nil {
		t.Fatalf("CreateChapter failed: %v", err)
	}

	dup := &Chapter{BookID: book.ID, Title: "Also Intro", Position: 1}
	if err := s.CreateChapter(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestNotes_ChronologicalOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	book := createTestBook(t, s, 300)

	chapter := &Chapter{BookID: book.ID, Title: "Intro", Position: 1}
	if err := s.CreateChapter(ctx, chapter); err != nil {
		t.Fatalf("CreateChapter failed: %v", err)
	}

	for _, content := range []string{"first thought", "second thought"} {
		note := &ChapterNote{ChapterID: chapter.ID, Content: content}
		if err := s.CreateNote(ctx, note); err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
	}

	notes, err := s.ListNotes(ctx, chapter.ID)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len(notes) = %d, want 2", len(notes))
	}
	if notes[0].Content != "first thought" {
		t.Errorf("notes[0].Content = %q, want %q", notes[0].Content, "first thought")
	}
}

func TestDeleteBook_Cascades(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	book := createTestBook(t, s, 300)

	chapter := &Chapter{BookID: book.ID, Title: "Intro", Position: 1}
	if err := s.CreateChapter(ctx, chapter); err != nil {
		t.Fatalf("CreateChapter failed: %v", err)
	}

	if err := s.DeleteBook(ctx, book.ID); err != nil {
		t.Fatalf("DeleteBook failed: %v", err)
	}
	if _, err := s.GetChapter(ctx, chapter.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("chapter survived book delete: %v", err)
	}
}
