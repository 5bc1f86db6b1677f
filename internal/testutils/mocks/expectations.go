// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	dungeonrun "github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run"
	dungeonrunmock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
	gamedatamock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata/mock"
)

// ExpectRunGet sets up a mock expectation for loading a run
func ExpectRunGet(mockRepo *dungeonrunmock.MockRepository, run *entities.DungeonRun) *gomock.Call {
	return mockRepo.EXPECT().
		Get(gomock.Any(), dungeonrun.GetInput{RunID: run.RunID}).
		Return(&dungeonrun.GetOutput{Run: run}, nil)
}

// ExpectRunGetError sets up a failing run lookup
func ExpectRunGetError(mockRepo *dungeonrunmock.MockRepository, runID string, err error) *gomock.Call {
	return mockRepo.EXPECT().
		Get(gomock.Any(), dungeonrun.GetInput{RunID: runID}).
		Return(nil, err)
}

// ExpectRunCreate echoes the created run back at version 1
func ExpectRunCreate(mockRepo *dungeonrunmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeonrun.CreateInput) (*dungeonrun.CreateOutput, error) {
			run := input.Run.Clone()
			run.Version = 1
			return &dungeonrun.CreateOutput{Run: run}, nil
		})
}

// ExpectRunUpdate echoes the written run back with its version bumped
func ExpectRunUpdate(mockRepo *dungeonrunmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input dungeonrun.UpdateInput) (*dungeonrun.UpdateOutput, error) {
			saved := input.Run.Clone()
			saved.Version++
			return &dungeonrun.UpdateOutput{Run: saved}, nil
		})
}

// ExpectMonsterLookup sets up a mock expectation for reading a monster
func ExpectMonsterLookup(mockGameData *gamedatamock.MockRepository, monster *entities.Monster) *gomock.Call {
	return mockGameData.EXPECT().
		GetMonster(gomock.Any(), gamedata.GetMonsterInput{MonsterID: monster.ID}).
		Return(&gamedata.GetMonsterOutput{Monster: monster}, nil)
}

// ExpectMonsterIDs sets up a mock expectation for listing monster ids
func ExpectMonsterIDs(mockGameData *gamedatamock.MockRepository, ids ...string) *gomock.Call {
	return mockGameData.EXPECT().
		ListMonsterIDs(gomock.Any(), gamedata.ListMonsterIDsInput{}).
		Return(&gamedata.ListMonsterIDsOutput{MonsterIDs: ids}, nil)
}
