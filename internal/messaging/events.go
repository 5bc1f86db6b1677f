// Package messaging publishes run lifecycle events and combat triggers to
// durable Redis streams.
package messaging

import (
	"time"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

// EventType names a stream entry
type EventType string

const (
	EventDungeonStarted   EventType = "dungeon_started"
	EventRoomEntered      EventType = "room_entered"
	EventDungeonCompleted EventType = "dungeon_completed"
	EventDungeonAbandoned EventType = "dungeon_abandoned"
	EventDungeonFailed    EventType = "dungeon_failed"
	EventCombatTrigger    EventType = "combat_trigger"
)

// Event is a lifecycle payload that knows its own type
type Event interface {
	EventType() EventType
}

// DungeonStarted is emitted once a run is persisted
type DungeonStarted struct {
	RunID     string    `json:"runId"`
	HeroID    string    `json:"heroId"`
	Timestamp time.Time `json:"timestamp"`
}

func (DungeonStarted) EventType() EventType { return EventDungeonStarted }

// RoomEntered is emitted after every accepted choice
type RoomEntered struct {
	RunID     string            `json:"runId"`
	HeroID    string            `json:"heroId"`
	Position  entities.Position `json:"position"`
	RoomType  entities.RoomType `json:"roomType"`
	MonsterID *string           `json:"monsterId"`
	Timestamp time.Time         `json:"timestamp"`
}

func (RoomEntered) EventType() EventType { return EventRoomEntered }

// DungeonFinished is emitted when a run reaches a terminal status.
// Status selects the event type.
type DungeonFinished struct {
	RunID      string             `json:"runId"`
	HeroID     string             `json:"heroId"`
	Status     entities.RunStatus `json:"-"`
	FinishedAt time.Time          `json:"finishedAt"`
	Timestamp  time.Time          `json:"timestamp"`
}

func (e DungeonFinished) EventType() EventType {
	switch e.Status {
	case entities.RunStatusAbandoned:
		return EventDungeonAbandoned
	case entities.RunStatusFailed:
		return EventDungeonFailed
	default:
		return EventDungeonCompleted
	}
}

// CombatHero is the hero half of a combat trigger
type CombatHero struct {
	HeroID string         `json:"heroId"`
	Level  int            `json:"level"`
	XP     int            `json:"xp"`
	Stats  entities.Stats `json:"stats"`
}

// CombatRoom locates the fight
type CombatRoom struct {
	Floor int               `json:"floor"`
	Room  int               `json:"room"`
	Type  entities.RoomType `json:"type"`
}

// CombatTrigger hands a fight to the combat subsystem
type CombatTrigger struct {
	Hero    CombatHero        `json:"hero"`
	Monster *entities.Monster `json:"monster"`
	RunID   string            `json:"runId"`
	Room    CombatRoom        `json:"room"`
}

func (CombatTrigger) EventType() EventType { return EventCombatTrigger }
