package file_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/cursorkeep/pkg/adapters/file"
	"github.com/aretw0/cursorkeep/pkg/domain"
	"github.com/aretw0/cursorkeep/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...file.Option) *file.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Local", file.DefaultFileName)
	store, err := file.New(path, opts...)
	require.NoError(t, err)
	return store
}

func TestFileStore_Contract(t *testing.T) {
	ports.RunTableStoreContract(t, newStore(t))
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "session.json")

	_, err := file.New(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	_, err = file.New(path)
	require.NoError(t, err)
}

func TestFileStore_DirectoryCreationError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := file.New(filepath.Join(blocker, "session.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryCreation)

	var dirErr *domain.DirectoryError
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, blocker, dirErr.Path)
}

func TestFileStore_CorruptFileLoadsEmpty(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, content := range []string{"{not json", "null", `["a"]`, `{"/a": {"x": 1}}`, ""} {
		require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

		table, err := store.Load(ctx)
		require.NoError(t, err, "content %q", content)
		assert.Empty(t, table, "content %q", content)
		assert.NotNil(t, table)
	}
}

func TestFileStore_Format(t *testing.T) {
	store := newStore(t)
	ts := domain.NewTimestamp(time.Date(2026, 10, 19, 8, 30, 0, 500000000, time.Local))

	require.NoError(t, store.Save(context.Background(), domain.Table{
		"/b.txt": {X: 2, Y: 3, LastUpdate: ts},
		"/a.txt": {X: 1, Y: 0, LastUpdate: ts},
	}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `"last_update": "2026-10-19 08:30:00.500000"`)
	assert.Contains(t, content, "\n    \"/a.txt\": {")
	assert.Less(t, strings.Index(content, "/a.txt"), strings.Index(content, "/b.txt"), "keys should be sorted")
}

func TestFileStore_RenameFailureKeepsPreviousFile(t *testing.T) {
	failRename := false
	store := newStore(t, file.WithRenameFunc(func(oldpath, newpath string) error {
		if failRename {
			return errors.New("simulated crash before rename")
		}
		return os.Rename(oldpath, newpath)
	}))
	ctx := context.Background()
	now := domain.NewTimestamp(time.Now())

	require.NoError(t, store.Save(ctx, domain.Table{"/a": {X: 1, Y: 1, LastUpdate: now}}))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	failRename = true
	err = store.Save(ctx, domain.Table{"/a": {X: 99, Y: 99, LastUpdate: now}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "rename", perr.Op)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "session file must be bit-identical after a failed save")
	assert.Equal(t, int64(1), store.Writes())

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CreateTempFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	store := newStore(t)
	dir := filepath.Dir(store.Path())
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	err := store.Save(context.Background(), domain.NewTable())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestFileStore_ConcurrentSaves(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := domain.NewTimestamp(time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table := domain.Table{fmt.Sprintf("/file-%d", i): {X: i, LastUpdate: now}}
			assert.NoError(t, store.Save(ctx, table))
		}(i)
	}
	wg.Wait()

	// Whatever save won, the file holds one complete table
	table, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, table, 1)
	assert.Equal(t, int64(20), store.Writes())
}
