// Package roomgraph generates the fixed floor/room grid of a new dungeon run
package roomgraph

//go:generate mockgen -destination=mock/mock_service.go -package=roomgraphmock github.com/KirkDiggler/rpg-dungeon/internal/services/roomgraph Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/monsters"
)

const (
	DefaultFloors        = 3
	DefaultRoomsPerFloor = 5
)

// DefaultWeights is the room type distribution for unforced rooms
var DefaultWeights = []random.Weighted[entities.RoomType]{
	{Value: entities.RoomTypeCombat, Weight: 50},
	{Value: entities.RoomTypeEliteCombat, Weight: 20},
	{Value: entities.RoomTypeRest, Weight: 25},
	{Value: entities.RoomTypeBoss, Weight: 5},
}

// Service generates room graphs
type Service interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// GenerateInput is empty today; the topology comes from Config
type GenerateInput struct{}

// GenerateOutput contains the generated rooms ordered by floor then room
type GenerateOutput struct {
	Rooms []entities.RoomTemplate
}

// Config holds the dependencies and topology for the generator
type Config struct {
	Monsters      monsters.Service
	Roller        dice.Roller
	Floors        int
	RoomsPerFloor int
	// Weights overrides DefaultWeights
	Weights []random.Weighted[entities.RoomType]
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Monsters == nil {
		vb.RequiredField("Monsters")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Floors != 0 {
		errors.ValidateMin("Floors", c.Floors, 1, vb)
	}
	if c.RoomsPerFloor != 0 {
		errors.ValidateMin("RoomsPerFloor", c.RoomsPerFloor, 2, vb)
	}
	return vb.Build()
}

type service struct {
	monsters      monsters.Service
	roller        dice.Roller
	floors        int
	roomsPerFloor int
	weights       []random.Weighted[entities.RoomType]
}

// New creates a room graph generator
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &service{
		monsters:      cfg.Monsters,
		roller:        cfg.Roller,
		floors:        cfg.Floors,
		roomsPerFloor: cfg.RoomsPerFloor,
		weights:       cfg.Weights,
	}
	if s.floors == 0 {
		s.floors = DefaultFloors
	}
	if s.roomsPerFloor == 0 {
		s.roomsPerFloor = DefaultRoomsPerFloor
	}
	if len(s.weights) == 0 {
		s.weights = DefaultWeights
	}
	return s, nil
}

func (s *service) Generate(ctx context.Context, _ *GenerateInput) (*GenerateOutput, error) {
	if err := s.ensureMonsters(ctx); err != nil {
		return nil, err
	}

	rooms := make([]entities.RoomTemplate, 0, s.floors*s.roomsPerFloor)
	for floor := 0; floor < s.floors; floor++ {
		for room := 0; room < s.roomsPerFloor; room++ {
			tmpl, err := s.buildRoom(floor, room)
			if err != nil {
				return nil, err
			}
			rooms = append(rooms, tmpl)
		}
	}

	return &GenerateOutput{Rooms: rooms}, nil
}

func (s *service) buildRoom(floor, room int) (entities.RoomTemplate, error) {
	tmpl := entities.RoomTemplate{Floor: floor, Room: room}

	switch {
	case floor == 0 && room == 0:
		tmpl.Type = entities.RoomTypeRest
		tmpl.Visited = true
		return tmpl, nil
	case room == s.roomsPerFloor-1 && floor == s.floors-1:
		tmpl.Type = entities.RoomTypeBoss
	case room == s.roomsPerFloor-1:
		tmpl.Type = entities.RoomTypeEliteCombat
	default:
		roomType, err := random.PickWeighted(s.roller, s.weights)
		if err != nil {
			return tmpl, errors.Wrap(err, "failed to draw room type")
		}
		tmpl.Type = roomType
	}

	if tmpl.Type == entities.RoomTypeRest {
		return tmpl, nil
	}

	id, ok := s.monsters.PickRandom()
	if !ok {
		return tmpl, errors.Unavailable("no monsters available for room generation")
	}
	tmpl.MonsterID = &id
	return tmpl, nil
}

// ensureMonsters refreshes an empty monster cache once before generating
func (s *service) ensureMonsters(ctx context.Context) error {
	if s.monsters.Size() > 0 {
		return nil
	}

	slog.InfoContext(ctx, "Monster cache empty, refreshing before generation")
	if err := s.monsters.Refresh(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "monster cache refresh failed")
	}
	if s.monsters.Size() == 0 {
		return errors.Unavailable("no monsters available for room generation")
	}
	return nil
}
