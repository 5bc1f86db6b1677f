// Package gamedata provides read access to the static game-data store
package gamedata

import (
	"context"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamedatamock github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata Repository

// ListMonsterIDsInput contains parameters for listing monster ids
type ListMonsterIDsInput struct{}

// ListMonsterIDsOutput contains every known monster id in id order
type ListMonsterIDsOutput struct {
	MonsterIDs []string
}

// GetMonsterInput contains parameters for loading one monster
type GetMonsterInput struct {
	MonsterID string
}

// GetMonsterOutput contains the monster and its loot table
type GetMonsterOutput struct {
	Monster *entities.Monster
}

// Repository defines read-only game-data operations
type Repository interface {
	ListMonsterIDs(ctx context.Context, input ListMonsterIDsInput) (*ListMonsterIDsOutput, error)

	// GetMonster fails with NotFound when the id is unknown
	GetMonster(ctx context.Context, input GetMonsterInput) (*GetMonsterOutput, error)

	// Ping verifies the store is reachable and has its schema
	Ping(ctx context.Context) error
}
