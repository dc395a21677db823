package jsonfile

import "fmt"

// StorageError reports a backing file that is missing, unreadable, not a
// JSON array, or could not be rewritten.
type StorageError struct {
	Collection string
	Op         string
	Path       string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Collection, e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
