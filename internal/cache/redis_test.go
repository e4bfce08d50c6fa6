package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"asset-tracker/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysFor(t *testing.T) {
	assert.Equal(t, []string{KeyAssets}, KeysFor(models.EntityAsset))
	assert.Equal(t, []string{KeyCategories, KeyAssets}, KeysFor(models.EntityCategory))
	assert.Empty(t, KeysFor(models.EntityTodo))
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	var nilLists *Lists
	for _, l := range []*Lists{nilLists, NewLists(nil, time.Minute)} {
		assert.False(t, l.Enabled())
		_, ok := l.Generation(ctx, KeyAssets)
		assert.False(t, ok)
		l.SetIfGeneration(ctx, KeyAssets, []byte("[]"), 0)
		_, ok = l.Get(ctx, KeyAssets)
		assert.False(t, ok)
		l.Invalidate(ctx, models.EntityAsset)
		assert.NoError(t, l.Ping(ctx))
	}
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping redis integration test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	return rdb
}

func TestListsAgainstRedis(t *testing.T) {
	ctx := context.Background()
	l := NewLists(testRedis(t), 10*time.Second)
	require.NoError(t, l.Ping(ctx))

	gen, ok := l.Generation(ctx, KeyAssets)
	require.True(t, ok)
	l.SetIfGeneration(ctx, KeyAssets, []byte(`[{"id":1}]`), gen)
	gen, ok = l.Generation(ctx, KeyCategories)
	require.True(t, ok)
	l.SetIfGeneration(ctx, KeyCategories, []byte(`[]`), gen)
	b, ok := l.Get(ctx, KeyAssets)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(b))

	l.Invalidate(ctx, models.EntityCategory)
	_, ok = l.Get(ctx, KeyAssets)
	assert.False(t, ok)
	_, ok = l.Get(ctx, KeyCategories)
	assert.False(t, ok)
}

func TestStaleLoadIsNotCached(t *testing.T) {
	ctx := context.Background()
	l := NewLists(testRedis(t), time.Minute)

	before, ok := l.Generation(ctx, KeyAssets)
	require.True(t, ok)
	// A mutation lands while the list load is in flight.
	l.Invalidate(ctx, models.EntityAsset)
	l.SetIfGeneration(ctx, KeyAssets, []byte(`[{"id":1}]`), before)
	_, ok = l.Get(ctx, KeyAssets)
	assert.False(t, ok, "rows read before the invalidation must not be cached")

	after, ok := l.Generation(ctx, KeyAssets)
	require.True(t, ok)
	assert.Equal(t, before+1, after)
	l.SetIfGeneration(ctx, KeyAssets, []byte(`[]`), after)
	b, ok := l.Get(ctx, KeyAssets)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(b))
}

func TestCategoryInvalidationBumpsAssetGeneration(t *testing.T) {
	ctx := context.Background()
	l := NewLists(testRedis(t), 0)

	gen, _ := l.Generation(ctx, KeyAssets)
	l.Invalidate(ctx, models.EntityCategory)
	l.SetIfGeneration(ctx, KeyAssets, []byte(`[]`), gen)
	_, ok := l.Get(ctx, KeyAssets)
	assert.False(t, ok)

	gen, _ = l.Generation(ctx, KeyAssets)
	l.SetIfGeneration(ctx, KeyAssets, []byte(`[]`), gen)
	_, ok = l.Get(ctx, KeyAssets)
	assert.True(t, ok, "zero TTL still stores")
}
