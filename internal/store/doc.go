// Package store provides persistent storage for stride using SQLite.
//
// Entity ownership is tree-shaped and exclusive: a Goal owns Books,
// TrainingSessions, or Repositories depending on its type; Books own
// Chapters; Chapters own ChapterNotes; Repositories own CommitActivity.
// Cascade deletes are enforced with ON DELETE CASCADE foreign keys, so
// deleting a goal removes everything it owns.
//
// SQLiteStore implements the GoalStore, BookStore, TrainingStore, and
// RepoStore interfaces in a single struct. The handle is constructed
// once at startup with Open and passed explicitly; there is no global.
// A failure to open or migrate the database is fatal to the caller.
//
// The store uses SQLite with WAL mode and foreign keys enabled:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Timestamps are stored as RFC3339 UTC text. Common errors are
// ErrNotFound and ErrDuplicate. All methods accept context.Context.
package store
