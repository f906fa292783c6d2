package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t, 0)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "merchants", []byte(`[]`)))
	got, err := s.Get(ctx, "merchants")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	assert.True(t, mr.Exists(redisKeyPrefix+"merchants"), "keys are namespaced")
	assert.Zero(t, mr.TTL(redisKeyPrefix+"merchants"), "zero ttl stores without expiry")

	require.NoError(t, s.Remove(ctx, "merchants"))
	_, err = s.Get(ctx, "merchants")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t, time.Hour)

	require.NoError(t, s.Set(ctx, "k", []byte(`"v"`)))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+"k"))

	mr.FastForward(time.Hour + time.Second)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t, 0)
	mr.Close()

	_, err := s.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, s.Set(ctx, "k", []byte(`1`)))
}
