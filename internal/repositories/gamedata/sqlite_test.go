package gamedata_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	path string
	db   *sql.DB
	repo gamedata.Repository
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = testutils.TempDBPath(s.T(), "gamedata")

	writable, err := gamedata.OpenWritable(s.ctx, s.path)
	s.Require().NoError(err)

	orc := testutils.CreateTestMonster("orc")
	orc.Name = "Orc"
	orc.LootTable = append(orc.LootTable, entities.LootEntry{ItemID: "axe", Name: "Axe", Chance: 0.1, Quantity: 1})

	n, err := gamedata.Seed(s.ctx, writable, []*entities.Monster{
		testutils.CreateTestMonster("goblin"),
		orc,
	})
	s.Require().NoError(err)
	s.Require().Equal(2, n)
	s.Require().NoError(writable.Close())

	s.db, err = gamedata.OpenReadOnly(s.ctx, s.path)
	s.Require().NoError(err)

	s.repo, err = gamedata.NewSQLiteRepository(&gamedata.Config{DB: s.db})
	s.Require().NoError(err)
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *SQLiteRepositoryTestSuite) TestListMonsterIDs() {
	out, err := s.repo.ListMonsterIDs(s.ctx, gamedata.ListMonsterIDsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"goblin", "orc"}, out.MonsterIDs)
}

func (s *SQLiteRepositoryTestSuite) TestGetMonster() {
	out, err := s.repo.GetMonster(s.ctx, gamedata.GetMonsterInput{MonsterID: "orc"})
	s.Require().NoError(err)

	s.Equal("Orc", out.Monster.Name)
	s.Equal(entities.Stats{HP: 7, Att: 2, Def: 1}, out.Monster.Stats)
	s.Require().Len(out.Monster.LootTable, 2)
	s.Equal("copper-coin", out.Monster.LootTable[0].ItemID)
	s.Equal("axe", out.Monster.LootTable[1].ItemID)
	s.InDelta(0.1, out.Monster.LootTable[1].Chance, 0.0001)
}

func (s *SQLiteRepositoryTestSuite) TestGetMonster_NotFound() {
	_, err := s.repo.GetMonster(s.ctx, gamedata.GetMonsterInput{MonsterID: "dragon"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteRepositoryTestSuite) TestGetMonster_EmptyID() {
	_, err := s.repo.GetMonster(s.ctx, gamedata.GetMonsterInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteRepositoryTestSuite) TestPing() {
	s.NoError(s.repo.Ping(s.ctx))
}

func (s *SQLiteRepositoryTestSuite) TestPing_MissingFile() {
	db, err := gamedata.OpenReadOnly(s.ctx, testutils.TempDBPath(s.T(), "absent"))
	s.Require().NoError(err)
	defer func() { _ = db.Close() }()

	repo, err := gamedata.NewSQLiteRepository(&gamedata.Config{DB: db})
	s.Require().NoError(err)

	err = repo.Ping(s.ctx)
	s.Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *SQLiteRepositoryTestSuite) TestReseedReplacesLoot() {
	writable, err := gamedata.OpenWritable(s.ctx, s.path)
	s.Require().NoError(err)

	goblin := testutils.CreateTestMonster("goblin")
	goblin.LootTable = nil
	goblin.Stats.HP = 9
	_, err = gamedata.Seed(s.ctx, writable, []*entities.Monster{goblin})
	s.Require().NoError(err)
	s.Require().NoError(writable.Close())

	out, err := s.repo.GetMonster(s.ctx, gamedata.GetMonsterInput{MonsterID: "goblin"})
	s.Require().NoError(err)
	s.Equal(9, out.Monster.Stats.HP)
	s.Empty(out.Monster.LootTable)
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}
