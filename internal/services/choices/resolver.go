// Package choices computes the candidate next rooms for a run position
package choices

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
)

// MaxChoices is the most rooms ever offered at once
const MaxChoices = 2

// Resolve returns up to two rooms reachable from current. The first entry is
// always the canonical next room; the second is an unvisited alternative.
// An empty result means current is the final room of the final floor.
//
// roller breaks ties when the alternative falls back to "any unvisited room".
// A nil roller takes the first such room in graph order.
func Resolve(current entities.Position, rooms []entities.RoomTemplate, roller dice.Roller) []entities.Choice {
	g := newGraph(rooms)
	if len(rooms) == 0 || g.isFinal(current) {
		return []entities.Choice{}
	}

	result := make([]entities.Choice, 0, MaxChoices)

	primary, ok := g.next(current)
	if !ok {
		return result
	}
	result = append(result, toChoice(primary))

	if alt := g.alternative(current, primary.Position(), roller); alt != nil {
		result = append(result, toChoice(alt))
	}

	return result
}

type graph struct {
	rooms    []entities.RoomTemplate
	index    map[entities.Position]int
	lastRoom map[int]int
	topFloor int
}

func newGraph(rooms []entities.RoomTemplate) *graph {
	g := &graph{
		rooms:    rooms,
		index:    make(map[entities.Position]int, len(rooms)),
		lastRoom: make(map[int]int),
		topFloor: -1,
	}
	for i, r := range rooms {
		g.index[r.Position()] = i
		if last, ok := g.lastRoom[r.Floor]; !ok || r.Room > last {
			g.lastRoom[r.Floor] = r.Room
		}
		if r.Floor > g.topFloor {
			g.topFloor = r.Floor
		}
	}
	return g
}

func (g *graph) at(pos entities.Position) *entities.RoomTemplate {
	i, ok := g.index[pos]
	if !ok {
		return nil
	}
	return &g.rooms[i]
}

func (g *graph) isFinal(pos entities.Position) bool {
	return pos.Floor == g.topFloor && pos.Room == g.lastRoom[g.topFloor]
}

// next is the following room on the floor, or the first room of the next floor
func (g *graph) next(pos entities.Position) (*entities.RoomTemplate, bool) {
	target := entities.Position{Floor: pos.Floor, Room: pos.Room + 1}
	if last, ok := g.lastRoom[pos.Floor]; ok && pos.Room >= last {
		target = entities.Position{Floor: pos.Floor + 1, Room: 0}
	}
	room := g.at(target)
	return room, room != nil
}

func (g *graph) alternative(current, primary entities.Position, roller dice.Roller) *entities.RoomTemplate {
	excluded := func(pos entities.Position) bool {
		return pos == current || pos == primary
	}

	for _, offset := range []int{2, -1} {
		pos := entities.Position{Floor: current.Floor, Room: current.Room + offset}
		if room := g.at(pos); room != nil && !room.Visited && !excluded(pos) {
			return room
		}
	}

	var candidates []*entities.RoomTemplate
	for i := range g.rooms {
		room := &g.rooms[i]
		if !room.Visited && !excluded(room.Position()) {
			candidates = append(candidates, room)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	if roller == nil || len(candidates) == 1 {
		return candidates[0]
	}
	idx, err := random.Index(roller, len(candidates))
	if err != nil {
		return candidates[0]
	}
	return candidates[idx]
}

func toChoice(room *entities.RoomTemplate) entities.Choice {
	choice := entities.Choice{
		Floor: room.Floor,
		Room:  room.Room,
		Type:  room.Type,
	}
	if room.MonsterID != nil {
		id := *room.MonsterID
		choice.MonsterID = &id
	}
	return choice
}
