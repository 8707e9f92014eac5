package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitaconnect/internal/infrastructure/cache/port"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryAdapter()

	_, err := cache.Get(ctx, "missing")
	assert.Equal(t, port.ErrMiss, err)

	require.NoError(t, cache.Set(ctx, "key", "value", 0))
	value, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	removed, err := cache.Del(ctx, "key", "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = cache.Get(ctx, "key")
	assert.Equal(t, port.ErrMiss, err)
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryAdapter()

	require.NoError(t, cache.Set(ctx, "short", "lived", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.Equal(t, port.ErrMiss, err)
}
