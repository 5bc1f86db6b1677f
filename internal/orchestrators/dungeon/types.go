package dungeon

import "github.com/KirkDiggler/rpg-dungeon/internal/entities"

// StartInput defines the request for starting a run
type StartInput struct {
	HeroID            string
	HeroSnapshot      *entities.HeroSnapshot
	EquippedArtifacts []entities.Artifact
}

// StartOutput defines the response for starting a run
type StartOutput struct {
	Run *entities.DungeonRun
}

// GetInput defines the request for loading a run
type GetInput struct {
	RunID string
}

// GetOutput defines the response for loading a run
type GetOutput struct {
	Run *entities.DungeonRun
}

// GetChoicesInput defines the request for the current choices
type GetChoicesInput struct {
	RunID string
}

// GetChoicesOutput lists 0..2 candidate rooms, primary first
type GetChoicesOutput struct {
	Choices []entities.Choice
}

// ChooseInput defines the request for moving to one of the current choices.
// ChoiceIndex is a pointer so a missing index can be told apart from 0.
type ChooseInput struct {
	RunID       string
	ChoiceIndex *int
}

// ChooseOutput defines the response for an accepted choice
type ChooseOutput struct {
	Run             *entities.DungeonRun
	Position        entities.Position
	RoomType        entities.RoomType
	CombatTriggered bool
}

// FinishInput defines the request for completing a run
type FinishInput struct {
	RunID string
}

// FinishOutput defines the response for completing a run
type FinishOutput struct {
	Run *entities.DungeonRun
}

// AbandonInput defines the request for abandoning a run
type AbandonInput struct {
	RunID string
}

// AbandonOutput defines the response for abandoning a run
type AbandonOutput struct {
	Run *entities.DungeonRun
}

// FailInput defines the request for failing a run after hero death
type FailInput struct {
	RunID string
}

// FailOutput defines the response for failing a run
type FailOutput struct {
	Run *entities.DungeonRun
}

func (i *GetInput) runID() string {
	if i == nil {
		return ""
	}
	return i.RunID
}

func (i *GetChoicesInput) runID() string {
	if i == nil {
		return ""
	}
	return i.RunID
}

func (i *FinishInput) runID() string {
	if i == nil {
		return ""
	}
	return i.RunID
}

func (i *AbandonInput) runID() string {
	if i == nil {
		return ""
	}
	return i.RunID
}

func (i *FailInput) runID() string {
	if i == nil {
		return ""
	}
	return i.RunID
}
