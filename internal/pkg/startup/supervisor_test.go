package startup_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/startup"
)

type SupervisorTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
}

func TestSupervisorSuite(t *testing.T) {
	suite.Run(t, new(SupervisorTestSuite))
}

func (s *SupervisorTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Second)
}

func (s *SupervisorTestSuite) TearDownTest() {
	s.cancel()
}

func (s *SupervisorTestSuite) newSupervisor() *startup.Supervisor {
	sup, err := startup.New(&startup.Config{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})
	s.Require().NoError(err)
	return sup
}

func (s *SupervisorTestSuite) TestReadyAfterRequiredTasksRetry() {
	sup := s.newSupervisor()

	var calls atomic.Int32
	sup.Add(startup.Task{
		Name:     "document-store",
		Required: true,
		Run: func(context.Context) error {
			if calls.Add(1) < 3 {
				return errors.New("connection refused")
			}
			return nil
		},
	})

	sup.Start(s.ctx)

	s.Require().NoError(sup.Wait(s.ctx))
	s.True(sup.IsReady())
	s.GreaterOrEqual(calls.Load(), int32(3))
	s.True(sup.Status()["document-store"])
}

func (s *SupervisorTestSuite) TestOptionalTaskDoesNotGateReadiness() {
	sup := s.newSupervisor()

	sup.Add(startup.Task{
		Name:     "document-store",
		Required: true,
		Run:      func(context.Context) error { return nil },
	})
	sup.Add(startup.Task{
		Name: "cache",
		Run:  func(context.Context) error { return errors.New("cache down") },
	})

	sup.Start(s.ctx)

	s.Require().NoError(sup.Wait(s.ctx))
	s.False(sup.Status()["cache"])
}

func (s *SupervisorTestSuite) TestNoRequiredTasksIsImmediatelyReady() {
	sup := s.newSupervisor()
	sup.Start(s.ctx)

	s.Require().NoError(sup.Wait(s.ctx))
}

func (s *SupervisorTestSuite) TestNotReadyWhileRequiredTaskFails() {
	sup := s.newSupervisor()
	sup.Add(startup.Task{
		Name:     "game-data",
		Required: true,
		Run:      func(context.Context) error { return errors.New("still down") },
	})

	sup.Start(s.ctx)

	waitCtx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()
	s.Error(sup.Wait(waitCtx))
	s.False(sup.IsReady())
}

func (s *SupervisorTestSuite) TestConfigValidation() {
	_, err := startup.New(&startup.Config{
		InitialBackoff: time.Second,
		MaxBackoff:     time.Millisecond,
	})
	s.Error(err)
}
