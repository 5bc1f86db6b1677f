package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name string
		cfg  *redis.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "blank addr", cfg: &redis.Config{Addr: "  "}},
		{name: "negative timeout", cfg: &redis.Config{Addr: "localhost:6379", Timeout: -time.Second}},
		{name: "bad url", cfg: &redis.Config{Addr: "redis://localhost:6379/not-a-db"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := redis.New(tc.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.New(&redis.Config{Addr: mr.Addr(), MaxRetries: 1})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.NoError(t, redis.Ping(context.Background(), client))

	mr.Close()
	err = redis.Ping(context.Background(), client)
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestNew_URL(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.New(&redis.Config{Addr: "redis://" + mr.Addr() + "/0", Timeout: time.Second})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
