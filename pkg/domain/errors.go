package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyKey is returned when an operation is called without a document path.
var ErrEmptyKey = errors.New("document key cannot be empty")

// ErrPersistence is matched by every *PersistenceError via errors.Is.
var ErrPersistence = errors.New("failed to persist session table")

// ErrDirectoryCreation is matched by every *DirectoryError via errors.Is.
var ErrDirectoryCreation = errors.New("failed to create session directory")

// PersistenceError reports a failed save. The previously persisted table is left intact.
type PersistenceError struct {
	Op   string // "marshal", "create", "write", "sync", "close", "rename", ...
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s (%s): %v", e.Path, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPersistence) true.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// DirectoryError reports that the directory holding the session file could not be created.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("create session directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDirectoryCreation) true.
func (e *DirectoryError) Is(target error) bool { return target == ErrDirectoryCreation }
