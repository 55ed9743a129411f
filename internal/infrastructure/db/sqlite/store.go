// Package sqlite implements the repository ports over an embedded SQLite
// database. Authorization scopes arrive as predicates and are translated into
// WHERE clauses, so only rows the caller may see are ever read.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dsn. Foreign keys are enforced
// for the lifetime of the connection.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() ports.UserRepository       { return &usersRepo{db: s.db} }
func (s *Store) Projects() ports.ProjectRepository { return &projectsRepo{db: s.db} }
func (s *Store) Tasks() ports.TaskRepository       { return &tasksRepo{db: s.db} }

// withTx executes fn inside a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func mapNotFound(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
// modernc.org/sqlite does not export a typed error for this, so the message
// is matched the way the driver renders it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
