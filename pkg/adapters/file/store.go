package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/aretw0/cursorkeep/internal/logging"
	"github.com/aretw0/cursorkeep/pkg/domain"
)

// DefaultFileName is the name of the session file inside the data directory.
const DefaultFileName = "cursor_positions.session.json"

// Store implements ports.TableStore on a single JSON file.
// Every Save goes through a temporary file in the same directory followed by a
// rename, so readers observe either the previous or the new table, never a mix.
type Store struct {
	path   string
	mode   os.FileMode
	logger *slog.Logger
	rename func(oldpath, newpath string) error

	mu     sync.Mutex // guards reads of path and the rename onto it
	writes atomic.Int64
}

// Option configures the Store.
type Option func(*Store)

// WithLogger configures a logger for recovery and persistence events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithFileMode sets the permissions of the session file (default 0644).
func WithFileMode(mode os.FileMode) Option {
	return func(s *Store) {
		s.mode = mode
	}
}

// WithRenameFunc replaces os.Rename for the final step of Save.
func WithRenameFunc(rename func(oldpath, newpath string) error) Option {
	return func(s *Store) {
		s.rename = rename
	}
}

// New creates a Store persisting to path.
// The parent directory is created if missing; failing to do so is the only
// construction error. A missing or corrupt file at path is not an error.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		mode:   0644,
		logger: logging.NewNop(),
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(s)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &domain.DirectoryError{Path: dir, Err: err}
	}

	return s, nil
}

// Path returns the location of the session file.
func (s *Store) Path() string {
	return s.path
}

// Writes returns how many times the session file has been replaced by this Store.
func (s *Store) Writes() int64 {
	return s.writes.Load()
}

// Load reads and decodes the session file.
// A missing or malformed file yields an empty table; other read errors are returned.
func (s *Store) Load(ctx context.Context) (domain.Table, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewTable(), nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var table domain.Table
	if err := json.Unmarshal(data, &table); err != nil {
		s.logger.Warn("Session file corrupt, starting empty", "path", s.path, "err", err)
		return domain.NewTable(), nil
	}
	if table == nil {
		// "null" decodes to a nil map
		table = domain.NewTable()
	}

	return table, nil
}

// Save persists the table atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, table domain.Table) error {
	if table == nil {
		table = domain.NewTable()
	}

	// encoding/json sorts map keys, which keeps the file diffable
	data, err := json.MarshalIndent(table, "", "    ")
	if err != nil {
		return s.fail("marshal", err)
	}

	// 1. Create Temp File
	// Same directory as the destination, so the rename stays on one filesystem.
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmpFile, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return s.fail("create", err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file unless it was renamed onto the destination
	renamed := false
	defer func() {
		_ = tmpFile.Close()
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return s.fail("write", err)
	}
	if err := tmpFile.Chmod(s.mode); err != nil {
		return s.fail("chmod", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return s.fail("sync", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return s.fail("close", err)
	}

	// 5. Atomic Rename
	s.mu.Lock()
	err = s.rename(tmpPath, s.path)
	s.mu.Unlock()
	if err != nil {
		return s.fail("rename", err)
	}

	renamed = true
	s.writes.Add(1)
	s.logger.Debug("Session file saved", "path", s.path, "entries", len(table))
	return nil
}

func (s *Store) fail(op string, err error) error {
	s.logger.Debug("Failed to save session file", "path", s.path, "op", op, "err", err)
	return &domain.PersistenceError{Op: op, Path: s.path, Err: err}
}
