// Package startup supervises dependency initialization.
//
// Each task (ping the document store, warm the monster cache, ...) runs in its
// own goroutine under exponential backoff capped at MaxBackoff and is retried
// until it succeeds or the context is cancelled. Ready is closed once every
// required task has succeeded; optional tasks never gate readiness.
package startup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

const (
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 30 * time.Second
)

// Task is one unit of startup work
type Task struct {
	Name     string
	Required bool
	Run      func(ctx context.Context) error
}

// Config holds supervisor settings
type Config struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Validate fills defaults and checks bounds
func (c *Config) Validate() error {
	if c.InitialBackoff == 0 {
		c.InitialBackoff = defaultInitialBackoff
	}
	if c.MaxBackoff == 0 {
		c.MaxBackoff = defaultMaxBackoff
	}

	vb := errors.NewValidationBuilder()
	if c.InitialBackoff < 0 {
		vb.Field("InitialBackoff", "must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		vb.Field("MaxBackoff", "must be at least InitialBackoff")
	}
	return vb.Build()
}

// Supervisor runs startup tasks and reports readiness
type Supervisor struct {
	cfg   Config
	tasks []Task

	ready     chan struct{}
	readyOnce sync.Once

	mu   sync.RWMutex
	done map[string]bool
}

// New creates a supervisor
func New(cfg *Config) (*Supervisor, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Supervisor{
		cfg:   *cfg,
		ready: make(chan struct{}),
		done:  make(map[string]bool),
	}, nil
}

// Add registers a task. Tasks must be added before Start.
func (s *Supervisor) Add(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start launches every task and returns immediately
func (s *Supervisor) Start(ctx context.Context) {
	var required sync.WaitGroup
	for _, task := range s.tasks {
		if task.Required {
			required.Add(1)
		}
		go func(task Task) {
			err := s.runTask(ctx, task)
			if task.Required {
				defer required.Done()
			}
			if err != nil {
				slog.Warn("Startup task abandoned", "task", task.Name, "error", err)
				return
			}
			s.mu.Lock()
			s.done[task.Name] = true
			s.mu.Unlock()
		}(task)
	}

	go func() {
		required.Wait()
		if ctx.Err() != nil {
			return
		}
		if s.requiredDone() {
			s.readyOnce.Do(func() { close(s.ready) })
			slog.Info("Startup complete, accepting requests")
		}
	}()
}

// Ready is closed once every required task succeeded
func (s *Supervisor) Ready() <-chan struct{} {
	return s.ready
}

// IsReady reports readiness without blocking
func (s *Supervisor) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until ready or the context ends
func (s *Supervisor) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.CodeUnavailable, "startup did not complete")
	}
}

// Status reports which tasks have completed
func (s *Supervisor) Status() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.tasks))
	for _, task := range s.tasks {
		out[task.Name] = s.done[task.Name]
	}
	return out
}

func (s *Supervisor) requiredDone() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks {
		if task.Required && !s.done[task.Name] {
			return false
		}
	}
	return true
}

// runTask retries the task until it succeeds or ctx is cancelled. backoff.Retry
// gives up after its own elapsed-time budget, so it is restarted in a loop.
func (s *Supervisor) runTask(ctx context.Context, task Task) error {
	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		return struct{}{}, task.Run(ctx)
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("Startup task failed, retrying",
			"task", task.Name,
			"attempt", attempt,
			"retry_in", wait,
			"error", err,
		)
	}

	for {
		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = s.cfg.InitialBackoff
		policy.MaxInterval = s.cfg.MaxBackoff

		_, err := backoff.Retry(ctx, operation,
			backoff.WithBackOff(policy),
			backoff.WithNotify(notify),
		)
		if err == nil {
			slog.Info("Startup task complete", "task", task.Name, "attempts", attempt)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
