package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/favorites"
)

type favorite struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), mr
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t, 0)

	var out []favorite
	found, err := store.Get(context.Background(), "favorites:v1", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Hour)

	in := []favorite{{ID: 10, Title: "Concert"}, {ID: 3, Title: "Expo"}}
	require.NoError(t, store.Set(ctx, "favorites:v1", in))

	assert.True(t, mr.Exists("agenda:favorites:v1"))
	assert.Equal(t, time.Hour, mr.TTL("agenda:favorites:v1"))

	var out []favorite
	found, err := store.Get(ctx, "favorites:v1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestStoreDefaultTTL(t *testing.T) {
	store, mr := newTestStore(t, 0)
	require.NoError(t, store.Set(context.Background(), "k", []int{1}))
	assert.Equal(t, DefaultTTL, mr.TTL("agenda:k"))
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)
	require.NoError(t, store.Set(ctx, "k", 1))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("agenda:k"))
}

func TestFavoritesEmptiedListDropsKey(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)
	reg, err := favorites.NewRegistry(store, 8)
	require.NoError(t, err)

	ev := domain.Event{ID: 4, Title: "Concert"}
	_, err = reg.Toggle(ctx, "v1", 4, ev)
	require.NoError(t, err)
	assert.True(t, mr.Exists(Key(favorites.Key("v1"))))

	_, err = reg.Toggle(ctx, "v1", 4, ev)
	require.NoError(t, err)
	assert.False(t, mr.Exists(Key(favorites.Key("v1"))))

	n, ok, err := reg.Stored(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, n)
}

func TestStoreCorruptValue(t *testing.T) {
	store, mr := newTestStore(t, 0)
	require.NoError(t, mr.Set("agenda:k", "{not json"))

	var out []favorite
	found, err := store.Get(context.Background(), "k", &out)
	assert.True(t, found)
	assert.Error(t, err)
}

func TestStorePing(t *testing.T) {
	store, mr := newTestStore(t, 0)
	require.NoError(t, store.Ping(context.Background()))
	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestExtractKey(t *testing.T) {
	key, err := ExtractKey("agenda:favorites:abc")
	require.NoError(t, err)
	assert.Equal(t, "favorites:abc", key)

	_, err = ExtractKey("agenda:")
	assert.Error(t, err)
	_, err = ExtractKey("other:favorites")
	assert.Error(t, err)
}

func TestStoreCount(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)
	require.NoError(t, store.Set(ctx, "favorites:a", []int{1}))
	require.NoError(t, store.Set(ctx, "favorites:b", []int{2}))
	require.NoError(t, store.Set(ctx, "theme:a", "dark"))
	require.NoError(t, mr.Set("foreign:favorites:c", "x"))

	n, err := store.Count(ctx, "favorites:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
