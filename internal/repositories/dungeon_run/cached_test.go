package dungeonrun_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	dungeonrun "github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run"
	dungeonrunmock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run/mock"
	runcache "github.com/KirkDiggler/rpg-dungeon/internal/repositories/run_cache"
	runcachemock "github.com/KirkDiggler/rpg-dungeon/internal/repositories/run_cache/mock"
	"github.com/KirkDiggler/rpg-dungeon/internal/testutils"
)

type CachedRepositoryTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	ctx       context.Context
	mockStore *dungeonrunmock.MockRepository
	mockCache *runcachemock.MockRepository
	repo      dungeonrun.Repository
}

func (s *CachedRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.mockStore = dungeonrunmock.NewMockRepository(s.ctrl)
	s.mockCache = runcachemock.NewMockRepository(s.ctrl)

	repo, err := dungeonrun.NewCachedRepository(&dungeonrun.CachedConfig{
		Store: s.mockStore,
		Cache: s.mockCache,
		TTL:   time.Minute,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *CachedRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CachedRepositoryTestSuite) TestGet_CacheHit() {
	run := testutils.CreateTestRun("run-1")

	s.mockCache.EXPECT().
		Get(s.ctx, runcache.GetInput{RunID: "run-1"}).
		Return(&runcache.GetOutput{Run: run}, nil)

	out, err := s.repo.Get(s.ctx, dungeonrun.GetInput{RunID: "run-1"})
	s.Require().NoError(err)
	s.Equal(run, out.Run)
}

func (s *CachedRepositoryTestSuite) TestGet_CacheMissPopulates() {
	run := testutils.CreateTestRun("run-1")

	s.mockCache.EXPECT().
		Get(s.ctx, runcache.GetInput{RunID: "run-1"}).
		Return(nil, errors.NotFound("miss"))
	s.mockStore.EXPECT().
		Get(s.ctx, dungeonrun.GetInput{RunID: "run-1"}).
		Return(&dungeonrun.GetOutput{Run: run}, nil)
	s.mockCache.EXPECT().
		Set(s.ctx, runcache.SetInput{Run: run, TTL: time.Minute}).
		Return(&runcache.SetOutput{}, nil)

	out, err := s.repo.Get(s.ctx, dungeonrun.GetInput{RunID: "run-1"})
	s.Require().NoError(err)
	s.Equal(run, out.Run)
}

func (s *CachedRepositoryTestSuite) TestGet_CacheDownFallsThrough() {
	run := testutils.CreateTestRun("run-1")

	s.mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("connection refused"))
	s.mockStore.EXPECT().
		Get(s.ctx, dungeonrun.GetInput{RunID: "run-1"}).
		Return(&dungeonrun.GetOutput{Run: run}, nil)
	s.mockCache.EXPECT().
		Set(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("connection refused"))
	s.mockCache.EXPECT().
		Delete(gomock.Any(), runcache.DeleteInput{RunID: "run-1"}).
		Return(nil, errors.Unavailable("connection refused"))

	out, err := s.repo.Get(s.ctx, dungeonrun.GetInput{RunID: "run-1"})
	s.Require().NoError(err)
	s.Equal(run, out.Run)
}

func (s *CachedRepositoryTestSuite) TestGet_StoreNotFound() {
	s.mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("miss"))
	s.mockStore.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("dungeon run not found"))

	_, err := s.repo.Get(s.ctx, dungeonrun.GetInput{RunID: "run-x"})
	s.True(errors.IsNotFound(err))
}

func (s *CachedRepositoryTestSuite) TestCreate_WritesThrough() {
	run := testutils.CreateTestRun("run-1")

	s.mockStore.EXPECT().
		Create(s.ctx, dungeonrun.CreateInput{Run: run}).
		Return(&dungeonrun.CreateOutput{Run: run}, nil)
	s.mockCache.EXPECT().
		Set(s.ctx, runcache.SetInput{Run: run, TTL: time.Minute}).
		Return(&runcache.SetOutput{}, nil)

	out, err := s.repo.Create(s.ctx, dungeonrun.CreateInput{Run: run})
	s.Require().NoError(err)
	s.Equal(run, out.Run)
}

func (s *CachedRepositoryTestSuite) TestCreate_StoreFailureSkipsCache() {
	run := testutils.CreateTestRun("run-1")

	s.mockStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("disk gone"))

	_, err := s.repo.Create(s.ctx, dungeonrun.CreateInput{Run: run})
	s.True(errors.IsUnavailable(err))
}

func (s *CachedRepositoryTestSuite) TestUpdate_WritesThroughNewVersion() {
	run := testutils.CreateTestRun("run-1")
	stored := run.Clone()
	stored.Version = 2

	s.mockStore.EXPECT().
		Update(s.ctx, dungeonrun.UpdateInput{Run: run}).
		Return(&dungeonrun.UpdateOutput{Run: stored}, nil)
	s.mockCache.EXPECT().
		Set(s.ctx, runcache.SetInput{Run: stored, TTL: time.Minute}).
		Return(&runcache.SetOutput{}, nil)

	out, err := s.repo.Update(s.ctx, dungeonrun.UpdateInput{Run: run})
	s.Require().NoError(err)
	s.Equal(int64(2), out.Run.Version)
}

func (s *CachedRepositoryTestSuite) TestUpdate_CacheWriteFailureEvictsStaleEntry() {
	run := testutils.CreateTestRun("run-1")
	stored := run.Clone()
	stored.Version = 2

	s.mockStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(&dungeonrun.UpdateOutput{Run: stored}, nil)
	gomock.InOrder(
		s.mockCache.EXPECT().
			Set(s.ctx, runcache.SetInput{Run: stored, TTL: time.Minute}).
			Return(nil, errors.Unavailable("write timeout")),
		s.mockCache.EXPECT().
			Delete(s.ctx, runcache.DeleteInput{RunID: "run-1"}).
			Return(&runcache.DeleteOutput{Deleted: true}, nil),
	)

	out, err := s.repo.Update(s.ctx, dungeonrun.UpdateInput{Run: run})
	s.Require().NoError(err)
	s.Equal(int64(2), out.Run.Version)
}

func (s *CachedRepositoryTestSuite) TestUpdate_ConflictEvicts() {
	run := testutils.CreateTestRun("run-1")

	s.mockStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil, errors.Aborted("modified concurrently"))
	s.mockCache.EXPECT().
		Delete(s.ctx, runcache.DeleteInput{RunID: "run-1"}).
		Return(&runcache.DeleteOutput{Deleted: true}, nil)

	_, err := s.repo.Update(s.ctx, dungeonrun.UpdateInput{Run: run})
	s.True(errors.IsAborted(err))
}

func (s *CachedRepositoryTestSuite) TestPing_DelegatesToStore() {
	s.mockStore.EXPECT().Ping(s.ctx).Return(nil)
	s.NoError(s.repo.Ping(s.ctx))
}

func TestCachedRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CachedRepositoryTestSuite))
}
