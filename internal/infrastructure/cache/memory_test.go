package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Claim(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	ok, err := store.Claim(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = store.Claim(context.Background(), "other")
	assert.True(t, ok)
}

func TestMemoryStore_ExpiredKeyCanBeClaimedAgain(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	defer store.Close()

	assert.True(t, store.SetNX("k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	assert.True(t, store.SetNX("k", "v2", time.Hour))

	v, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	store.Delete("k")
	_, ok = store.Get("k")
	assert.False(t, ok)
}

func TestMemoryStore_Release(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	ok, err := store.Claim(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "k"))
	ok, err = store.Claim(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Release(ctx, "missing"))
}
