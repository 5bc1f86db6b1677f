package roomgraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
	monstersmock "github.com/KirkDiggler/rpg-dungeon/internal/services/monsters/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/roomgraph"
)

type GeneratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	ctx          context.Context
	mockMonsters *monstersmock.MockService
}

func (s *GeneratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockMonsters = monstersmock.NewMockService(s.ctrl)
}

func (s *GeneratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *GeneratorTestSuite) newGenerator(cfg *roomgraph.Config) roomgraph.Service {
	cfg.Monsters = s.mockMonsters
	if cfg.Roller == nil {
		cfg.Roller = random.NewSeeded(42)
	}
	gen, err := roomgraph.New(cfg)
	s.Require().NoError(err)
	return gen
}

func (s *GeneratorTestSuite) TestNew_Validation() {
	_, err := roomgraph.New(&roomgraph.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = roomgraph.New(&roomgraph.Config{
		Monsters:      s.mockMonsters,
		Roller:        random.NewSeeded(1),
		RoomsPerFloor: 1,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *GeneratorTestSuite) TestGenerate_Invariants() {
	s.mockMonsters.EXPECT().Size().Return(3).AnyTimes()
	s.mockMonsters.EXPECT().PickRandom().Return("goblin", true).AnyTimes()

	for seed := uint64(1); seed <= 50; seed++ {
		gen := s.newGenerator(&roomgraph.Config{Roller: random.NewSeeded(seed)})

		out, err := gen.Generate(s.ctx, &roomgraph.GenerateInput{})
		s.Require().NoError(err)
		s.Require().Len(out.Rooms, 15)

		start := out.Rooms[0]
		s.Equal(0, start.Floor)
		s.Equal(0, start.Room)
		s.Equal(entities.RoomTypeRest, start.Type)
		s.True(start.Visited)
		s.Nil(start.MonsterID)

		for i, room := range out.Rooms {
			s.Equal(i/5, room.Floor)
			s.Equal(i%5, room.Room)

			switch {
			case room.Room == 4 && room.Floor == 2:
				s.Equal(entities.RoomTypeBoss, room.Type)
			case room.Room == 4:
				s.Equal(entities.RoomTypeEliteCombat, room.Type)
			}

			if room.Type == entities.RoomTypeRest {
				s.Nil(room.MonsterID)
			} else {
				s.Require().NotNil(room.MonsterID)
				s.Equal("goblin", *room.MonsterID)
			}
			if i > 0 {
				s.False(room.Visited)
			}
		}
	}
}

func (s *GeneratorTestSuite) TestGenerate_ConfiguredTopology() {
	s.mockMonsters.EXPECT().Size().Return(1).AnyTimes()
	s.mockMonsters.EXPECT().PickRandom().Return("slime", true).AnyTimes()

	gen := s.newGenerator(&roomgraph.Config{Floors: 2, RoomsPerFloor: 3})

	out, err := gen.Generate(s.ctx, &roomgraph.GenerateInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Rooms, 6)
	s.Equal(entities.RoomTypeEliteCombat, out.Rooms[2].Type)
	s.Equal(entities.RoomTypeBoss, out.Rooms[5].Type)
}

func (s *GeneratorTestSuite) TestGenerate_WeightedDraw() {
	s.mockMonsters.EXPECT().Size().Return(1).AnyTimes()
	s.mockMonsters.EXPECT().PickRandom().Return("slime", true).AnyTimes()

	// combat=1, rest=1: a roll of 1 is combat, 2 is rest
	gen := s.newGenerator(&roomgraph.Config{
		Floors:        1,
		RoomsPerFloor: 4,
		Roller:        random.NewScripted(2, 1),
		Weights: []random.Weighted[entities.RoomType]{
			{Value: entities.RoomTypeCombat, Weight: 1},
			{Value: entities.RoomTypeRest, Weight: 1},
		},
	})

	out, err := gen.Generate(s.ctx, &roomgraph.GenerateInput{})
	s.Require().NoError(err)
	s.Equal(entities.RoomTypeRest, out.Rooms[1].Type)
	s.Nil(out.Rooms[1].MonsterID)
	s.Equal(entities.RoomTypeCombat, out.Rooms[2].Type)
	s.NotNil(out.Rooms[2].MonsterID)
	s.Equal(entities.RoomTypeBoss, out.Rooms[3].Type)
}

func (s *GeneratorTestSuite) TestGenerate_RefreshesEmptyCache() {
	gomock.InOrder(
		s.mockMonsters.EXPECT().Size().Return(0),
		s.mockMonsters.EXPECT().Refresh(s.ctx).Return(nil),
		s.mockMonsters.EXPECT().Size().Return(2),
	)
	s.mockMonsters.EXPECT().PickRandom().Return("orc", true).AnyTimes()

	gen := s.newGenerator(&roomgraph.Config{})

	out, err := gen.Generate(s.ctx, &roomgraph.GenerateInput{})
	s.Require().NoError(err)
	s.Len(out.Rooms, 15)
}

func (s *GeneratorTestSuite) TestGenerate_StillEmptyAfterRefresh() {
	gomock.InOrder(
		s.mockMonsters.EXPECT().Size().Return(0),
		s.mockMonsters.EXPECT().Refresh(s.ctx).Return(nil),
		s.mockMonsters.EXPECT().Size().Return(0),
	)

	gen := s.newGenerator(&roomgraph.Config{})

	out, err := gen.Generate(s.ctx, &roomgraph.GenerateInput{})
	s.Nil(out)
	s.True(errors.IsUnavailable(err))
}

func (s *GeneratorTestSuite) TestGenerate_RefreshFails() {
	s.mockMonsters.EXPECT().Size().Return(0)
	s.mockMonsters.EXPECT().Refresh(s.ctx).Return(errors.Internal("boom"))

	gen := s.newGenerator(&roomgraph.Config{})

	_, err := gen.Generate(s.ctx, &roomgraph.GenerateInput{})
	s.True(errors.IsUnavailable(err))
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}
