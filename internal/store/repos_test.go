// ABOUTME: Tests for repository tracking and commit activity replacement
// ABOUTME: Covers duplicate tracking, sync stamping, and transactional replace

package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func createTestRepo(t *testing.T, s *SQLiteStore) *Repository {
	t.Helper()
	ctx := context.Background()

	goal := &Goal{Title: "Ship something", Type: GoalTypeProgramming}
	if err := s.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	repo := &Repository{GoalID: goal.ID, Owner: "stridelog", Name: "stride"}
	if err := s.CreateRepository(ctx, repo); err != nil {
		t.Fatalf("CreateRepository failed: %v", err)
	}
	return repo
}

func TestCreateRepository_Duplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	repo := createTestRepo(t, s)

	dup := &Repository{GoalID: repo.GoalID, Owner: repo.Owner, Name: repo.Name}
	if err := s.CreateRepository(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestReplaceCommitActivity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	repo := createTestRepo(t, s)

	if repo.LastSyncedAt != nil {
		t.Fatal("expected LastSyncedAt to start nil")
	}

	first := []*CommitActivity{
		{WeekStart: time.Date(2026, 7, 26, 0, 0, 0, 0, time.UTC), CommitCount: 3},
		{WeekStart: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), CommitCount: 7},
	}
	if err := s.ReplaceCommitActivity(ctx, repo.ID, first); err != nil {
		t.Fatalf("ReplaceCommitActivity failed: %v", err)
	}

	got, err := s.GetRepository(ctx, repo.ID)
	if err != nil {
		t.Fatalf("GetRepository failed: %v", err)
	}
	if got.LastSyncedAt == nil {
		t.Error("expected LastSyncedAt to be stamped")
	}

	// A second sync replaces rather than appends
	second := []*CommitActivity{
		{WeekStart: time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), CommitCount: 1},
	}
	if err := s.ReplaceCommitActivity(ctx, repo.ID, second); err != nil {
		t.Fatalf("second ReplaceCommitActivity failed: %v", err)
	}

	weeks, err := s.ListCommitActivity(ctx, repo.ID)
	if err != nil {
		t.Fatalf("ListCommitActivity failed: %v", err)
	}
	if len(weeks) != 1 {
		t.Fatalf("len(weeks) = %d, want 1", len(weeks))
	}
	if weeks[0].CommitCount != 1 {
		t.Errorf("CommitCount = %d, want 1", weeks[0].CommitCount)
	}
}

func TestReplaceCommitActivity_UnknownRepository(t *testing.T) {
	s := setupTestStore(t)

	err := s.ReplaceCommitActivity(context.Background(), "missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListCommitActivity_OldestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	repo := createTestRepo(t, s)

	weeks := []*CommitActivity{
		{WeekStart: time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), CommitCount: 1},
		{WeekStart: time.Date(2026, 7, 26, 0, 0, 0, 0, time.UTC), CommitCount: 3},
	}
	if err := s.ReplaceCommitActivity(ctx, repo.ID, weeks); err != nil {
		t.Fatalf("ReplaceCommitActivity failed: %v", err)
	}

	got, err := s.ListCommitActivity(ctx, repo.ID)
	if err != nil {
		t.Fatalf("ListCommitActivity failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].WeekStart.Before(got[1].WeekStart) {
		t.Error("expected weeks ordered oldest first")
	}
}

func TestTrainingSessions_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	goal := &Goal{Title: "Tri season", Type: GoalTypeFitness}
	if err := s.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	session := &TrainingSession{
		GoalID:       goal.ID,
		Sport:        SportRun,
		Duration:     42 * time.Minute,
		Distance:     8000,
		AvgHeartRate: 152,
		Effort:       7,
		Date:         time.Date(2026, 8, 20, 6, 30, 0, 0, time.UTC),
	}
	if err := s.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := s.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Sport != SportRun {
		t.Errorf("Sport = %q, want %q", got.Sport, SportRun)
	}
	if got.Duration != 42*time.Minute {
		t.Errorf("Duration = %v, want 42m", got.Duration)
	}
	if got.Distance != 8000 {
		t.Errorf("Distance = %v, want 8000", got.Distance)
	}
	if got.AvgHeartRate != 152 || got.Effort != 7 {
		t.Errorf("HR/effort = %d/%d, want 152/7", got.AvgHeartRate, got.Effort)
	}

	sessions, err := s.ListSessions(ctx, goal.ID)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}

	if err := s.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := s.GetSession(ctx, session.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
