package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// MigrationError reports a failed migration statement. Statement is 1-based;
// Version 0 means the version table itself could not be prepared or read.
type MigrationError struct {
	Version   int
	Statement int
	Err       error
}

func (e *MigrationError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("preparing schema versions: %v", e.Err)
	}
	return fmt.Sprintf("running migration %d statement %d: %v", e.Version, e.Statement, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// Migrate brings the schema to LatestVersion. It is a no-op on an up-to-date
// store and must complete before any items or stock_changes access.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	return MigrateSteps(ctx, db, d, Steps(d))
}

// MigrateSteps applies every step newer than the stored version, in order,
// recording the version after each step. A failed step is not rolled back.
func MigrateSteps(ctx context.Context, db *sql.DB, d Dialect, steps []Step) error {
	for i, s := range steps {
		if s.Version != i+1 {
			return fmt.Errorf("migration steps out of order: position %d has version %d", i+1, s.Version)
		}
	}

	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS versions (number INTEGER PRIMARY KEY)`,
	); err != nil {
		return &MigrationError{Err: err}
	}

	current, hasRow, err := readVersion(ctx, db)
	if err != nil {
		return &MigrationError{Err: err}
	}

	for _, step := range steps {
		if step.Version <= current {
			continue
		}

		for i, stmt := range step.Statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return &MigrationError{Version: step.Version, Statement: i + 1, Err: err}
			}
		}

		record := `UPDATE versions SET number = ?`
		if !hasRow {
			record = `INSERT INTO versions (number) VALUES (?)`
		}
		if _, err := db.ExecContext(ctx, d.Rebind(record), step.Version); err != nil {
			return &MigrationError{Version: step.Version, Statement: len(step.Statements) + 1, Err: err}
		}

		current, hasRow = step.Version, true
		slog.Info("applied migration", "version", step.Version)
	}

	return nil
}

// CurrentVersion returns the stored schema version, 0 when none is recorded.
func CurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	v, _, err := readVersion(ctx, db)
	return v, err
}

func readVersion(ctx context.Context, db *sql.DB) (int, bool, error) {
	var number sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(number) FROM versions`).Scan(&number)
	if err != nil {
		return 0, false, fmt.Errorf("reading schema version: %w", err)
	}
	return int(number.Int64), number.Valid, nil
}
