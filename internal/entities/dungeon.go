// Package entities provides core data structures for the dungeon run engine.
package entities

import (
	"slices"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// RunStatus is the lifecycle status of a dungeon run
type RunStatus string

const (
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusAbandoned  RunStatus = "abandoned"
)

// IsTerminal reports whether no further transitions are allowed
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusAbandoned:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is one of the known statuses
func (s RunStatus) IsValid() bool {
	return s == RunStatusInProgress || s.IsTerminal()
}

// RoomType classifies a room in the run's graph
type RoomType string

const (
	RoomTypeCombat      RoomType = "combat"
	RoomTypeEliteCombat RoomType = "elite-combat"
	RoomTypeRest        RoomType = "rest"
	RoomTypeBoss        RoomType = "boss"
)

// RequiresCombat reports whether entering a room of this type starts a fight
func (t RoomType) RequiresCombat() bool {
	switch t {
	case RoomTypeCombat, RoomTypeEliteCombat, RoomTypeBoss:
		return true
	default:
		return false
	}
}

// Position is a coordinate in the run's floor/room grid
type Position struct {
	Floor int `json:"floor"`
	Room  int `json:"room"`
}

// RoomTemplate is one generated room of a run
type RoomTemplate struct {
	Floor     int      `json:"floor"`
	Room      int      `json:"room"`
	Type      RoomType `json:"type"`
	MonsterID *string  `json:"monsterId"`
	Visited   bool     `json:"visited"`
}

// Position returns the room's coordinate
func (r *RoomTemplate) Position() Position {
	return Position{Floor: r.Floor, Room: r.Room}
}

// HasMonster reports whether a monster was assigned to the room
func (r *RoomTemplate) HasMonster() bool {
	return r.MonsterID != nil && *r.MonsterID != ""
}

// Stats are the combat attributes shared by heroes, artifacts and monsters
type Stats struct {
	HP    int `json:"hp" yaml:"hp"`
	Att   int `json:"att" yaml:"att"`
	Def   int `json:"def" yaml:"def"`
	Regen int `json:"regen" yaml:"regen"`
}

// Add returns the component-wise sum of two stat blocks
func (s Stats) Add(other Stats) Stats {
	return Stats{
		HP:    s.HP + other.HP,
		Att:   s.Att + other.Att,
		Def:   s.Def + other.Def,
		Regen: s.Regen + other.Regen,
	}
}

// HeroSnapshot is the hero's progression captured when the run started
type HeroSnapshot struct {
	Level int    `json:"level"`
	XP    int    `json:"xp"`
	Stats *Stats `json:"stats"`
}

// Artifact is an equipped item whose buffs modify the hero's stats
type Artifact struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Buffs Stats  `json:"buffs"`
}

// DungeonRun is one playthrough of the dungeon
type DungeonRun struct {
	RunID             string         `json:"runId"`
	HeroID            string         `json:"heroId"`
	HeroSnapshot      HeroSnapshot   `json:"heroSnapshot"`
	EquippedArtifacts []Artifact     `json:"equippedArtifacts"`
	Status            RunStatus      `json:"status"`
	Position          Position       `json:"position"`
	Rooms             []RoomTemplate `json:"rooms"`
	VisitedRooms      []Position     `json:"visitedRooms"`
	StartedAt         time.Time      `json:"startedAt"`
	FinishedAt        *time.Time     `json:"finishedAt"`

	// Version increments on every persisted mutation
	Version int64 `json:"version"`
}

// EntityTypeDungeonRun is the core.Entity type of a run
const EntityTypeDungeonRun = "dungeon_run"

// GetID returns the run id
func (r *DungeonRun) GetID() string {
	return r.RunID
}

// GetType returns the entity type
func (r *DungeonRun) GetType() string {
	return EntityTypeDungeonRun
}

var _ core.Entity = (*DungeonRun)(nil)

// runRef identifies a run when only its id is at hand
type runRef string

func (r runRef) GetID() string   { return string(r) }
func (r runRef) GetType() string { return EntityTypeDungeonRun }

// RunRef returns the entity identity of the run with the given id
func RunRef(runID string) core.Entity {
	return runRef(runID)
}

// RoomAt returns the room at the position, or nil when the graph has none
func (r *DungeonRun) RoomAt(pos Position) *RoomTemplate {
	for i := range r.Rooms {
		if r.Rooms[i].Floor == pos.Floor && r.Rooms[i].Room == pos.Room {
			return &r.Rooms[i]
		}
	}
	return nil
}

// EffectiveStats returns the hero's base stats plus every equipped artifact buff
func (r *DungeonRun) EffectiveStats() Stats {
	var total Stats
	if r.HeroSnapshot.Stats != nil {
		total = *r.HeroSnapshot.Stats
	}
	for _, artifact := range r.EquippedArtifacts {
		total = total.Add(artifact.Buffs)
	}
	return total
}

// Clone returns a deep copy so callers can mutate without touching cached state
func (r *DungeonRun) Clone() *DungeonRun {
	if r == nil {
		return nil
	}
	out := *r
	if r.HeroSnapshot.Stats != nil {
		stats := *r.HeroSnapshot.Stats
		out.HeroSnapshot.Stats = &stats
	}
	out.EquippedArtifacts = slices.Clone(r.EquippedArtifacts)
	out.Rooms = slices.Clone(r.Rooms)
	for i := range out.Rooms {
		if id := out.Rooms[i].MonsterID; id != nil {
			v := *id
			out.Rooms[i].MonsterID = &v
		}
	}
	out.VisitedRooms = slices.Clone(r.VisitedRooms)
	if r.FinishedAt != nil {
		finished := *r.FinishedAt
		out.FinishedAt = &finished
	}
	return &out
}

// Choice is a candidate next room offered to the player. It is recomputed on
// every request and never persisted.
type Choice struct {
	Floor     int      `json:"floor"`
	Room      int      `json:"room"`
	Type      RoomType `json:"type"`
	MonsterID *string  `json:"monsterId,omitempty"`
}

// Position returns the coordinate the choice leads to
func (c Choice) Position() Position {
	return Position{Floor: c.Floor, Room: c.Room}
}
