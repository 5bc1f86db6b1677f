package dungeonrun

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	runcache "github.com/KirkDiggler/rpg-dungeon/internal/repositories/run_cache"
)

// CachedConfig holds the configuration for the cached repository
type CachedConfig struct {
	Store Repository
	Cache runcache.Repository
	TTL   time.Duration
}

// Validate ensures all required dependencies are provided
func (c *CachedConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Cache == nil {
		vb.RequiredField("Cache")
	}
	return vb.Build()
}

// cachedRepository reads through and writes through a run cache in front of
// the document store. Cache failures never fail the operation.
type cachedRepository struct {
	store Repository
	cache runcache.Repository
	ttl   time.Duration
}

// NewCachedRepository wraps a store with a run cache
func NewCachedRepository(cfg *CachedConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cachedRepository{
		store: cfg.Store,
		cache: cfg.Cache,
		ttl:   cfg.TTL,
	}, nil
}

var _ Repository = (*cachedRepository)(nil)

func (r *cachedRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	out, err := r.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	r.refresh(ctx, out.Run)
	return out, nil
}

func (r *cachedRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	cached, err := r.cache.Get(ctx, runcache.GetInput{RunID: input.RunID})
	if err == nil {
		return &GetOutput{Run: cached.Run}, nil
	}
	if !errors.IsNotFound(err) {
		slog.WarnContext(ctx, "Run cache read failed, falling back to store",
			"run_id", input.RunID,
			"error", err,
		)
	}

	out, err := r.store.Get(ctx, input)
	if err != nil {
		return nil, err
	}
	r.refresh(ctx, out.Run)
	return out, nil
}

func (r *cachedRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	out, err := r.store.Update(ctx, input)
	if err != nil {
		if errors.IsAborted(err) && input.Run != nil {
			r.evict(ctx, input.Run.RunID)
		}
		return nil, err
	}
	r.refresh(ctx, out.Run)
	return out, nil
}

func (r *cachedRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// refresh caches the post-write snapshot. When that fails the old entry is
// evicted so a later read cannot return a position the store has moved past.
func (r *cachedRepository) refresh(ctx context.Context, run *entities.DungeonRun) {
	if _, err := r.cache.Set(ctx, runcache.SetInput{Run: run, TTL: r.ttl}); err != nil {
		slog.WarnContext(ctx, "Run cache write failed, evicting",
			"run_id", run.RunID,
			"error", err,
		)
		r.evict(ctx, run.RunID)
	}
}

func (r *cachedRepository) evict(ctx context.Context, runID string) {
	if _, err := r.cache.Delete(ctx, runcache.DeleteInput{RunID: runID}); err != nil {
		slog.WarnContext(ctx, "Run cache evict failed",
			"run_id", runID,
			"error", err,
		)
	}
}
