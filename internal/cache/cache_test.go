package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(50 * time.Millisecond)

	// Miss before any write.
	val, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, m.Set(ctx, "key", []byte("value")))

	val, err = m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	// The entry expires.
	time.Sleep(80 * time.Millisecond)
	val, err = m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	r := NewRedis(client, time.Minute)

	val, err := r.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, r.Set(ctx, "key", []byte("value")))

	val, err = r.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	// TTL expiry.
	mr.FastForward(2 * time.Minute)
	val, err = r.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, val)
}

// brokenCache always errors, standing in for a dead redis.
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenCache) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("connection refused")
}

func TestFailover_PrimaryHealthy(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(os.Stdout)

	primary := NewMemory(time.Minute)
	fallback := NewMemory(time.Minute)
	f := NewFailover(primary, fallback, &logger)

	require.NoError(t, f.Set(ctx, "key", []byte("value")))

	// The write landed in the primary, not the fallback.
	val, err := primary.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	val, err = fallback.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, val)

	val, err = f.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)
}

func TestFailover_PrimaryDown(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(os.Stdout)

	fallback := NewMemory(time.Minute)
	f := NewFailover(brokenCache{}, fallback, &logger)

	// The set fails over to memory and the caller never sees the error.
	require.NoError(t, f.Set(ctx, "key", []byte("value")))

	val, err := f.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)

	val, err = fallback.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), val)
}

func TestFailover_RedisComesAndGoes(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(os.Stdout)

	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	f := NewFailover(NewRedis(client, time.Minute), NewMemory(time.Minute), &logger)

	require.NoError(t, f.Set(ctx, "key", []byte("value")))

	// Kill redis: reads keep working off the fallback.
	mr.Close()
	require.NoError(t, f.Set(ctx, "other", []byte("fallback value")))

	val, err := f.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []byte("fallback value"), val)
}
