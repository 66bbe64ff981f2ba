package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no item has the requested id.
var ErrNotFound = errors.New("item not found")

// ValidationError reports an item with an invalid field. It is returned
// before any statement is sent to the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item: %s %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the database itself: connection loss,
// constraint violation, serialization failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func notFound(id int64) error {
	return fmt.Errorf("item %d: %w", id, ErrNotFound)
}
