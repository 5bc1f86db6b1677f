package runcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-dungeon/internal/redis"
)

const (
	// Key pattern: {entity_type}:{entity_id}, so runs live under dungeon_run:
	KeyPrefix  = entities.EntityTypeDungeonRun + ":"
	defaultTTL = 300 * time.Second

	errRunIDEmpty = "run ID cannot be empty"
	errRunNil     = "run cannot be nil"
)

// Config holds the configuration for the Redis cache
type Config struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis backed run cache
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Key returns the cache key for an entity
func Key(e core.Entity) string {
	return e.GetType() + ":" + e.GetID()
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	key := Key(entities.RunRef(input.RunID))
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, errors.NotFoundf("run %s not cached", input.RunID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read run cache")
	}

	var run entities.DungeonRun
	if err := json.Unmarshal(raw, &run); err != nil {
		// Unreadable entries are evicted so the next read falls through to the store
		_ = r.client.Del(ctx, key).Err()
		return nil, errors.Wrapf(err, "failed to unmarshal cached run %s", input.RunID)
	}

	return &GetOutput{Run: &run}, nil
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Run == nil {
		return nil, errors.InvalidArgument(errRunNil)
	}
	if input.Run.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run")
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	if err := r.client.Set(ctx, Key(input.Run), data, ttl).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to write run cache")
	}

	return &SetOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	n, err := r.client.Del(ctx, Key(entities.RunRef(input.RunID))).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete cached run")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}
