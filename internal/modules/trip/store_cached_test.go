package trip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdraft/internal/modules/itinerary"
	"tripdraft/internal/types"
)

type countingStore struct {
	*MemoryStore
	gets int
}

func (c *countingStore) Get(ctx context.Context, id types.ID) (*Record, error) {
	c.gets++
	return c.MemoryStore.Get(ctx, id)
}

func TestCachedStoreServesFromRedis(t *testing.T) {
	rdb := testRedis(t)
	backing := &countingStore{MemoryStore: NewMemoryStore()}
	store := NewCachedStore(backing, rdb, time.Minute, nil)
	ctx := context.Background()

	id, err := store.Save(ctx, &Record{Prefs: itinerary.Preferences{Destination: "Jaipur"}, Draft: jaipurDraft(), Status: itinerary.StatusDraft})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Del(ctx, cacheKeyPrefix+string(id)) })

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jaipur", got.Draft.City)
	assert.Zero(t, backing.gets, "saved records are cached on write")

	require.NoError(t, rdb.Del(ctx, cacheKeyPrefix+string(id)).Err())
	_, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, backing.gets)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
