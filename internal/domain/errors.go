package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// NotFoundError reports a key that is absent from a collection after a full scan.
type NotFoundError struct {
	Collection string
	Field      string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with %s %q", e.Collection, e.Field, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports an insert whose key is already taken.
type ConflictError struct {
	Collection string
	Field      string
	Key        string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %q already exists", e.Collection, e.Field, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
