package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/cursorkeep/pkg/adapters/redis"
	"github.com/aretw0/cursorkeep/pkg/domain"
	"github.com/aretw0/cursorkeep/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunTableStoreContract(t, store)
}

func TestRedisStore_CustomKey(t *testing.T) {
	mr, store := setup(t, redis.WithKey("custom:app:table"))
	ctx := context.Background()

	err := store.Save(ctx, domain.Table{"/a": {X: 1, Y: 2, LastUpdate: domain.NewTimestamp(time.Now())}})
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:table"), "Expected key with custom name to exist")
	assert.False(t, mr.Exists(redis.DefaultKey))

	raw, err := mr.Get("custom:app:table")
	require.NoError(t, err)
	assert.Contains(t, raw, `"last_update":`)
}

func TestRedisStore_CorruptValueLoadsEmpty(t *testing.T) {
	mr, store := setup(t)
	require.NoError(t, mr.Set(redis.DefaultKey, "{broken"))

	table, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, store := setup(t)
	mr.Close()
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.Error(t, err)

	err = store.Save(ctx, domain.NewTable())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
