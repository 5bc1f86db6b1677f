package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// Fixture identifiers shared across package tests
const (
	TestHeroID    = "hero-test-001"
	TestMonsterID = "goblin"
)

// TestStartedAt is the fixed start time used by run fixtures
var TestStartedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// CreateTestStats returns a small hero stat block
func CreateTestStats() *entities.Stats {
	return &entities.Stats{HP: 30, Att: 5, Def: 3, Regen: 1}
}

// CreateTestRooms builds a linear floors x roomsPerFloor graph.
// The first room is a visited rest room and every other room is a combat
// room holding monsterID, except the last room of each floor which is
// elite-combat (or boss on the final floor).
func CreateTestRooms(floors, roomsPerFloor int, monsterID string) []entities.RoomTemplate {
	rooms := make([]entities.RoomTemplate, 0, floors*roomsPerFloor)
	for f := 0; f < floors; f++ {
		for r := 0; r < roomsPerFloor; r++ {
			room := entities.RoomTemplate{Floor: f, Room: r, Type: entities.RoomTypeCombat}
			switch {
			case f == 0 && r == 0:
				room.Type = entities.RoomTypeRest
				room.Visited = true
			case r == roomsPerFloor-1 && f == floors-1:
				room.Type = entities.RoomTypeBoss
			case r == roomsPerFloor-1:
				room.Type = entities.RoomTypeEliteCombat
			}
			if room.Type.RequiresCombat() {
				id := monsterID
				room.MonsterID = &id
			}
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// CreateTestRun creates an in-progress run at the entrance of a 3x5 dungeon
func CreateTestRun(runID string) *entities.DungeonRun {
	return &entities.DungeonRun{
		RunID:  runID,
		HeroID: TestHeroID,
		HeroSnapshot: entities.HeroSnapshot{
			Level: 3,
			XP:    120,
			Stats: CreateTestStats(),
		},
		EquippedArtifacts: []entities.Artifact{
			{ID: "ring-of-vigor", Name: "Ring of Vigor", Buffs: entities.Stats{HP: 5, Regen: 1}},
		},
		Status:       entities.RunStatusInProgress,
		Position:     entities.Position{},
		Rooms:        CreateTestRooms(3, 5, TestMonsterID),
		VisitedRooms: []entities.Position{{Floor: 0, Room: 0}},
		StartedAt:    TestStartedAt,
		Version:      1,
	}
}

// CreateTestMonster creates a monster with a single loot entry
func CreateTestMonster(id string) *entities.Monster {
	return &entities.Monster{
		ID:          id,
		Name:        "Goblin",
		Type:        "humanoid",
		Description: "Small and mean.",
		Stats:       entities.Stats{HP: 7, Att: 2, Def: 1},
		LootTable: []entities.LootEntry{
			{ItemID: "copper-coin", Name: "Copper Coin", Chance: 0.75, Quantity: 3},
		},
	}
}
