package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/cursorkeep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTableStoreContract runs a suite of tests to verify that a TableStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunTableStoreContract(t *testing.T, store TableStore) {
	ctx := context.Background()
	now := domain.NewTimestamp(time.Now())

	t.Run("Load Empty", func(t *testing.T) {
		table, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, table)
		assert.NotNil(t, table, "Load should return a usable map")
	})

	t.Run("Save and Load", func(t *testing.T) {
		table := domain.Table{
			"/home/user/main.go": {X: 10, Y: 4, LastUpdate: now},
			"/home/user/README":  {X: 0, Y: 0, LastUpdate: now},
		}
		require.NoError(t, store.Save(ctx, table))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, table.Equal(loaded), "loaded table should match saved table")
	})

	t.Run("Save Replaces", func(t *testing.T) {
		table := domain.Table{"/only": {X: 1, Y: 2, LastUpdate: now}}
		require.NoError(t, store.Save(ctx, table))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		assert.Equal(t, 1, loaded["/only"].X)
	})

	t.Run("Loaded Table Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		loaded["/mutated"] = domain.Entry{X: 9, LastUpdate: now}

		again, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, again, "/mutated")
	})

	t.Run("Keys Are Not Normalized", func(t *testing.T) {
		table := domain.Table{
			"/tmp/File.txt":  {X: 1, LastUpdate: now},
			"/tmp/file.txt":  {X: 2, LastUpdate: now},
			"/tmp/./file.txt": {X: 3, LastUpdate: now},
		}
		require.NoError(t, store.Save(ctx, table))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		for k, v := range table {
			assert.Equal(t, v.X, loaded[k].X, fmt.Sprintf("key %q", k))
		}
	})

	t.Run("Save Empty", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewTable()))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}
