// Package runcache provides a short-lived key/value cache for dungeon run documents
package runcache

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=runcachemock github.com/KirkDiggler/rpg-dungeon/internal/repositories/run_cache Repository

// GetInput contains parameters for reading a cached run
type GetInput struct {
	RunID string
}

// GetOutput contains the cached run
type GetOutput struct {
	Run *entities.DungeonRun
}

// SetInput contains parameters for caching a run
type SetInput struct {
	Run *entities.DungeonRun
	TTL time.Duration // zero uses the repository default
}

// SetOutput is returned by Set
type SetOutput struct{}

// DeleteInput contains parameters for evicting a cached run
type DeleteInput struct {
	RunID string
}

// DeleteOutput is returned by Delete
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the run cache operations.
// A miss is reported as a NotFound error.
type Repository interface {
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Set(ctx context.Context, input SetInput) (*SetOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
