// Package jsonfile implements a record store where each collection is a
// single JSON array file. Every call reads the file from disk; mutations
// rewrite the whole array.
package jsonfile

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/nicorlas/twitter-api/internal/domain"
)

var errNotArray = errors.New("expected a JSON array")

// Collection is one JSON array file of records of type T addressed by a
// string key.
type Collection[T any] struct {
	name     string
	path     string
	keyField string
	keyOf    func(T) string

	// mu serializes load→mutate→overwrite within this process only.
	mu sync.Mutex
}

func NewCollection[T any](name, path, keyField string, keyOf func(T) string) *Collection[T] {
	return &Collection[T]{
		name:     name,
		path:     path,
		keyField: keyField,
		keyOf:    keyOf,
	}
}

func (c *Collection[T]) Name() string     { return c.name }
func (c *Collection[T]) Path() string     { return c.path }
func (c *Collection[T]) KeyField() string { return c.keyField }

// Load returns every record in file order.
func (c *Collection[T]) Load() ([]T, error) {
	return c.read()
}

// Find returns the first record whose key equals key.
func (c *Collection[T]) Find(key string) (T, error) {
	records, err := c.read()
	if err != nil {
		var zero T
		return zero, err
	}
	i, err := c.indexOf(records, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return records[i], nil
}

// Insert appends rec and rewrites the file.
func (c *Collection[T]) Insert(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}
	records = append(records, rec)
	return c.write(records)
}

// InsertUnique appends rec unless a record with the same key exists, in
// which case it returns a ConflictError. The scan and the write happen
// under one lock.
func (c *Collection[T]) InsertUnique(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}
	key := c.keyOf(rec)
	if _, err := c.indexOf(records, key); err == nil {
		return &domain.ConflictError{Collection: c.name, Field: c.keyField, Key: key}
	}
	records = append(records, rec)
	return c.write(records)
}

// Remove deletes the first record matching key and returns it.
func (c *Collection[T]) Remove(key string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	records, err := c.read()
	if err != nil {
		return zero, err
	}
	i, err := c.indexOf(records, key)
	if err != nil {
		return zero, err
	}
	removed := records[i]
	records = append(records[:i], records[i+1:]...)
	if err := c.write(records); err != nil {
		return zero, err
	}
	return removed, nil
}

// Update applies patch to the first record matching key, rewrites the
// file and returns the updated record.
func (c *Collection[T]) Update(key string, patch func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	records, err := c.read()
	if err != nil {
		return zero, err
	}
	i, err := c.indexOf(records, key)
	if err != nil {
		return zero, err
	}
	patch(&records[i])
	if err := c.write(records); err != nil {
		return zero, err
	}
	return records[i], nil
}

func (c *Collection[T]) indexOf(records []T, key string) (int, error) {
	for i, rec := range records {
		if c.keyOf(rec) == key {
			return i, nil
		}
	}
	return -1, &domain.NotFoundError{Collection: c.name, Field: c.keyField, Key: key}
}

func (c *Collection[T]) read() ([]T, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, c.storageErr("open", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, c.storageErr("read", err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, c.storageErr("decode", err)
	}
	if records == nil {
		// a literal null is not an array
		return nil, c.storageErr("decode", errNotArray)
	}
	return records, nil
}

// write replaces the file through a temp file and rename so readers never
// observe a partially written array.
func (c *Collection[T]) write(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return c.storageErr("encode", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return c.storageErr("create temp", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return c.storageErr("write", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return c.storageErr("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return c.storageErr("close", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return c.storageErr("rename", err)
	}
	return nil
}

func (c *Collection[T]) storageErr(op string, err error) error {
	return &StorageError{Collection: c.name, Op: op, Path: c.path, Err: err}
}
