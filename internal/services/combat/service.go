// Package combat bridges room transitions to the asynchronous combat subsystem
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rpg-dungeon/internal/services/combat Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/messaging"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
)

// Service triggers combat for monster rooms. Failures after input validation
// are logged and reported through TriggerOutput, never as errors.
type Service interface {
	Trigger(ctx context.Context, input *TriggerInput) (*TriggerOutput, error)
}

// TriggerInput identifies the run and the room just entered
type TriggerInput struct {
	Run  *entities.DungeonRun
	Room *entities.RoomTemplate
}

// TriggerOutput reports whether a combat trigger was published
type TriggerOutput struct {
	Triggered bool
	// Skipped explains why no trigger was published
	Skipped string
}

const (
	SkipNoCombat       = "room does not require combat"
	SkipNoMonster      = "room has no monster"
	SkipMonsterLookup  = "monster lookup failed"
	SkipPublishFailure = "publish failed"
)

// Config holds the dependencies for the combat bridge
type Config struct {
	GameData  gamedata.Repository
	Publisher messaging.Publisher
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.GameData == nil {
		vb.RequiredField("GameData")
	}
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}
	return vb.Build()
}

type service struct {
	gameData  gamedata.Repository
	publisher messaging.Publisher
}

// New creates a combat bridge
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &service{
		gameData:  cfg.GameData,
		publisher: cfg.Publisher,
	}, nil
}

func (s *service) Trigger(ctx context.Context, input *TriggerInput) (*TriggerOutput, error) {
	if input == nil || input.Run == nil || input.Room == nil {
		return nil, errors.InvalidArgument("run and room are required")
	}

	run, room := input.Run, input.Room
	if !room.Type.RequiresCombat() {
		return &TriggerOutput{Skipped: SkipNoCombat}, nil
	}
	if !room.HasMonster() {
		slog.WarnContext(ctx, "Combat room has no monster",
			"run_id", run.RunID,
			"floor", room.Floor,
			"room", room.Room,
		)
		return &TriggerOutput{Skipped: SkipNoMonster}, nil
	}

	monster, err := s.gameData.GetMonster(ctx, gamedata.GetMonsterInput{MonsterID: *room.MonsterID})
	if err != nil {
		slog.WarnContext(ctx, "Monster lookup failed, skipping combat trigger",
			"run_id", run.RunID,
			"monster_id", *room.MonsterID,
			"error", err,
		)
		return &TriggerOutput{Skipped: SkipMonsterLookup}, nil
	}

	trigger := &messaging.CombatTrigger{
		Hero: messaging.CombatHero{
			HeroID: run.HeroID,
			Level:  run.HeroSnapshot.Level,
			XP:     run.HeroSnapshot.XP,
			Stats:  run.EffectiveStats(),
		},
		Monster: monster.Monster,
		RunID:   run.RunID,
		Room: messaging.CombatRoom{
			Floor: room.Floor,
			Room:  room.Room,
			Type:  room.Type,
		},
	}

	if err := s.publisher.PublishCombatTrigger(ctx, trigger); err != nil {
		slog.WarnContext(ctx, "Combat trigger publish failed",
			"run_id", run.RunID,
			"monster_id", *room.MonsterID,
			"error", err,
		)
		return &TriggerOutput{Skipped: SkipPublishFailure}, nil
	}

	slog.InfoContext(ctx, "Combat triggered",
		"run_id", run.RunID,
		"hero_id", run.HeroID,
		"monster_id", *room.MonsterID,
		"floor", room.Floor,
		"room", room.Room,
	)
	return &TriggerOutput{Triggered: true}, nil
}
