// ABOUTME: Entity types and sentinel errors for stride persistence
// ABOUTME: Defines Goal, Book, Chapter, TrainingSession, Repository structs

package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when creating an entity that violates a uniqueness constraint
var ErrDuplicate = errors.New("already exists")

// GoalType constants for the three tracked goal kinds
const (
	GoalTypeBookReading = "book_reading"
	GoalTypeFitness     = "fitness"
	GoalTypeProgramming = "programming"
)

// ValidGoalType reports whether t is one of the three goal types.
func ValidGoalType(t string) bool {
	switch t {
	case GoalTypeBookReading, GoalTypeFitness, GoalTypeProgramming:
		return true
	}
	return false
}

// Goal represents a top-level tracked objective. Type is fixed at creation
// and determines which child entities the goal may own.
type Goal struct {
	ID        string
	Title     string
	Type      string // one of the GoalType constants
	Target    int    // pages, sessions, or commits depending on Type
	CreatedAt time.Time
}

// Book represents a book being read under a book-reading goal
type Book struct {
	ID          string
	GoalID      string
	Title       string
	Author      string
	CurrentPage int
	PageCount   int
	CreatedAt   time.Time
}

// Chapter represents a reading subdivision of a book
type Chapter struct {
	ID       string
	BookID   string
	Title    string
	Position int // 1-based order within the book
}

// ChapterNote is a free-text note attached to a chapter
type ChapterNote struct {
	ID        string
	ChapterID string
	Content   string
	CreatedAt time.Time
}

// Sport constants for training session types
const (
	SportSwim     = "swim"
	SportBike     = "bike"
	SportRun      = "run"
	SportStrength = "strength"
	SportRecovery = "recovery"
)

// ValidSport reports whether s is a known training session type.
func ValidSport(s string) bool {
	switch s {
	case SportSwim, SportBike, SportRun, SportStrength, SportRecovery:
		return true
	}
	return false
}

// TrainingSession represents one logged workout under a fitness goal
type TrainingSession struct {
	ID           string
	GoalID       string
	Sport        string // one of the Sport constants
	Duration     time.Duration
	Distance     float64 // meters, 0 for strength/recovery
	AvgHeartRate int     // bpm, 0 if not recorded
	Effort       int     // perceived effort 1-10, 0 if not recorded
	Date         time.Time
}

// Repository represents a GitHub repository tracked under a programming goal
type Repository struct {
	ID           string
	GoalID       string
	Owner        string
	Name         string
	LastSyncedAt *time.Time // nil until the first commit sync
}

// FullName returns the owner/name form used by the GitHub API.
func (r *Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// CommitActivity holds aggregated commit counts for one week of a repository
type CommitActivity struct {
	ID           string
	RepositoryID string
	WeekStart    time.Time // Sunday that opens the week, UTC
	CommitCount  int
}
