package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/messaging"
	messagingmock "github.com/KirkDiggler/rpg-dungeon/internal/messaging/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
	gamedatamock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/combat"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils/mocks"
)

type BridgeTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	ctx           context.Context
	mockGameData  *gamedatamock.MockRepository
	mockPublisher *messagingmock.MockPublisher
	bridge        combat.Service
	run           *entities.DungeonRun
}

func (s *BridgeTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockGameData = gamedatamock.NewMockRepository(s.ctrl)
	s.mockPublisher = messagingmock.NewMockPublisher(s.ctrl)

	bridge, err := combat.New(&combat.Config{
		GameData:  s.mockGameData,
		Publisher: s.mockPublisher,
	})
	s.Require().NoError(err)
	s.bridge = bridge
	s.run = testutils.CreateTestRun("run-1")
}

func (s *BridgeTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BridgeTestSuite) TestNew_RequiresDependencies() {
	_, err := combat.New(&combat.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *BridgeTestSuite) TestTrigger_PublishesEffectiveStats() {
	room := s.run.RoomAt(entities.Position{Floor: 0, Room: 1})
	monster := testutils.CreateTestMonster("goblin")

	mocks.ExpectMonsterLookup(s.mockGameData, monster)
	s.mockPublisher.EXPECT().
		PublishCombatTrigger(s.ctx, &messaging.CombatTrigger{
			Hero: messaging.CombatHero{
				HeroID: testutils.TestHeroID,
				Level:  3,
				XP:     120,
				// base 30/5/3/1 plus ring of vigor 5/0/0/1
				Stats: entities.Stats{HP: 35, Att: 5, Def: 3, Regen: 2},
			},
			Monster: monster,
			RunID:   "run-1",
			Room:    messaging.CombatRoom{Floor: 0, Room: 1, Type: entities.RoomTypeCombat},
		}).
		Return(nil)

	out, err := s.bridge.Trigger(s.ctx, &combat.TriggerInput{Run: s.run, Room: room})
	s.Require().NoError(err)
	s.True(out.Triggered)
}

func (s *BridgeTestSuite) TestTrigger_RestRoomSkips() {
	room := s.run.RoomAt(entities.Position{})

	out, err := s.bridge.Trigger(s.ctx, &combat.TriggerInput{Run: s.run, Room: room})
	s.Require().NoError(err)
	s.False(out.Triggered)
	s.Equal(combat.SkipNoCombat, out.Skipped)
}

func (s *BridgeTestSuite) TestTrigger_NoMonsterSkips() {
	room := &entities.RoomTemplate{Floor: 0, Room: 1, Type: entities.RoomTypeCombat}

	out, err := s.bridge.Trigger(s.ctx, &combat.TriggerInput{Run: s.run, Room: room})
	s.Require().NoError(err)
	s.Equal(combat.SkipNoMonster, out.Skipped)
}

func (s *BridgeTestSuite) TestTrigger_LookupFailureIsSilent() {
	room := s.run.RoomAt(entities.Position{Floor: 0, Room: 4})

	s.mockGameData.EXPECT().
		GetMonster(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("monster goblin not found"))

	out, err := s.bridge.Trigger(s.ctx, &combat.TriggerInput{Run: s.run, Room: room})
	s.Require().NoError(err)
	s.False(out.Triggered)
	s.Equal(combat.SkipMonsterLookup, out.Skipped)
}

func (s *BridgeTestSuite) TestTrigger_PublishFailureIsSilent() {
	room := s.run.RoomAt(entities.Position{Floor: 2, Room: 4})

	s.mockGameData.EXPECT().
		GetMonster(gomock.Any(), gomock.Any()).
		Return(&gamedata.GetMonsterOutput{Monster: testutils.CreateTestMonster("goblin")}, nil)
	s.mockPublisher.EXPECT().
		PublishCombatTrigger(gomock.Any(), gomock.Any()).
		Return(errors.Unavailable("broker down"))

	out, err := s.bridge.Trigger(s.ctx, &combat.TriggerInput{Run: s.run, Room: room})
	s.Require().NoError(err)
	s.Equal(combat.SkipPublishFailure, out.Skipped)
}

func (s *BridgeTestSuite) TestTrigger_InvalidInput() {
	_, err := s.bridge.Trigger(s.ctx, &combat.TriggerInput{Run: s.run})
	s.True(errors.IsInvalidArgument(err))
}

func TestBridgeTestSuite(t *testing.T) {
	suite.Run(t, new(BridgeTestSuite))
}
