// Package dungeonrun provides the repository interface and storage for dungeon runs
package dungeonrun

import (
	"context"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dungeonrunmock github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run Repository

// CreateInput contains parameters for persisting a new run
type CreateInput struct {
	Run *entities.DungeonRun
}

// CreateOutput contains the stored run
type CreateOutput struct {
	Run *entities.DungeonRun
}

// GetInput contains parameters for loading a run
type GetInput struct {
	RunID string
}

// GetOutput contains the loaded run
type GetOutput struct {
	Run *entities.DungeonRun
}

// UpdateInput contains the full replacement document.
// Run.Version must equal the stored version.
type UpdateInput struct {
	Run *entities.DungeonRun
}

// UpdateOutput contains the stored run with its new version
type UpdateOutput struct {
	Run *entities.DungeonRun
}

// Repository defines the interface for dungeon run storage operations
type Repository interface {
	// Create stores a new run. It fails with AlreadyExists when the id is taken.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads a run by id. It fails with NotFound when absent.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a run document. A version mismatch fails with Aborted.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Ping verifies the backing store is reachable
	Ping(ctx context.Context) error
}
