// Package monsters keeps a process-wide snapshot of valid monster identifiers
package monsters

//go:generate mockgen -destination=mock/mock_service.go -package=monstersmock github.com/KirkDiggler/rpg-dungeon/internal/services/monsters Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
)

// Service is the monster reference cache. It is populated at startup,
// refreshed on demand and never expires on its own.
type Service interface {
	// Refresh replaces the known ids with the store's current set
	Refresh(ctx context.Context) error

	// PickRandom draws one id uniformly. ok is false when the cache is empty.
	PickRandom() (id string, ok bool)

	// Size reports how many ids are cached
	Size() int
}

// Config holds the dependencies for the monster cache
type Config struct {
	GameData gamedata.Repository
	Roller   dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.GameData == nil {
		vb.RequiredField("GameData")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	return vb.Build()
}

type service struct {
	gameData gamedata.Repository
	roller   dice.Roller

	mu  sync.RWMutex
	ids []string
}

// New creates an empty monster cache
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &service{
		gameData: cfg.GameData,
		roller:   cfg.Roller,
	}, nil
}

func (s *service) Refresh(ctx context.Context) error {
	out, err := s.gameData.ListMonsterIDs(ctx, gamedata.ListMonsterIDsInput{})
	if err != nil {
		return errors.Wrap(err, "failed to refresh monster cache")
	}

	ids := append([]string(nil), out.MonsterIDs...)

	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()

	slog.DebugContext(ctx, "Monster cache refreshed", "count", len(ids))
	return nil
}

func (s *service) PickRandom() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ids) == 0 {
		return "", false
	}
	idx, err := random.Index(s.roller, len(s.ids))
	if err != nil {
		slog.Warn("Monster draw failed", "error", err)
		return "", false
	}
	return s.ids[idx], true
}

func (s *service) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
