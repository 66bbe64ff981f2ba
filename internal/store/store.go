// Package store provides typed access to items and stock changes.
package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/zaloga/internal/db"
)

// DBTX is the statement interface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the inventory store. It borrows the pool; the caller owns it and
// must close it after the last Store call.
type Store struct {
	pool    *sql.DB
	dialect db.Dialect
}

// New returns a Store over pool. The schema must already be migrated with
// db.Migrate; no Store method may run before that completes.
func New(pool *sql.DB, dialect db.Dialect) *Store {
	return &Store{pool: pool, dialect: dialect}
}

func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return storageError("beginning transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("committing transaction", err)
	}
	return nil
}
