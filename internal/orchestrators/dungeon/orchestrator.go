// Package dungeon implements the run state machine and orchestrates the
// generator, resolver, store, combat bridge and event publisher.
package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=dungeonmock github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon Service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/messaging"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
	dungeonrun "github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/choices"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/combat"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/roomgraph"
)

const tracerName = "github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"

// Service defines the dungeon run operations
type Service interface {
	// Start generates a room graph and persists a new in-progress run
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Get loads a run snapshot
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// GetChoices resolves the rooms reachable from the run's position
	GetChoices(ctx context.Context, input *GetChoicesInput) (*GetChoicesOutput, error)

	// Choose moves the run into one of its current choices
	Choose(ctx context.Context, input *ChooseInput) (*ChooseOutput, error)

	// Finish marks the run completed
	Finish(ctx context.Context, input *FinishInput) (*FinishOutput, error)

	// Abandon marks the run abandoned by the player
	Abandon(ctx context.Context, input *AbandonInput) (*AbandonOutput, error)

	// Fail marks the run failed after the hero died
	Fail(ctx context.Context, input *FailInput) (*FailOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	RunRepo     dungeonrun.Repository
	Generator   roomgraph.Service
	Combat      combat.Service
	Publisher   messaging.Publisher
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RunRepo == nil {
		vb.RequiredField("RunRepo")
	}
	if c.Generator == nil {
		vb.RequiredField("Generator")
	}
	if c.Combat == nil {
		vb.RequiredField("Combat")
	}
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements Service
type Orchestrator struct {
	runRepo   dungeonrun.Repository
	generator roomgraph.Service
	combat    combat.Service
	publisher messaging.Publisher
	idGen     idgen.Generator
	clock     clock.Clock
	tracer    trace.Tracer
}

var _ Service = (*Orchestrator)(nil)

// New creates a dungeon orchestrator with the provided dependencies
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		runRepo:   cfg.RunRepo,
		generator: cfg.Generator,
		combat:    cfg.Combat,
		publisher: cfg.Publisher,
		idGen:     cfg.IDGenerator,
		clock:     cfg.Clock,
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// Start generates a room graph and persists a new in-progress run
func (o *Orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	ctx, span := o.tracer.Start(ctx, "dungeon.Start")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("heroId", input.HeroID, vb)
	if input.HeroSnapshot == nil {
		vb.RequiredField("heroStats")
	} else if input.HeroSnapshot.Stats == nil {
		vb.RequiredField("heroStats.stats")
	}
	for i, artifact := range input.EquippedArtifacts {
		if artifact.ID == "" {
			vb.Fieldf("equippedArtifacts", "entry %d has no id", i)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	generated, err := o.generator.Generate(ctx, &roomgraph.GenerateInput{})
	if err != nil {
		return nil, recordErr(span, errors.Wrap(err, "failed to generate rooms"))
	}

	now := o.clock.Now()
	stats := *input.HeroSnapshot.Stats
	run := &entities.DungeonRun{
		RunID:  o.idGen.Generate(),
		HeroID: input.HeroID,
		HeroSnapshot: entities.HeroSnapshot{
			Level: input.HeroSnapshot.Level,
			XP:    input.HeroSnapshot.XP,
			Stats: &stats,
		},
		EquippedArtifacts: append([]entities.Artifact{}, input.EquippedArtifacts...),
		Status:            entities.RunStatusInProgress,
		Position:          entities.Position{Floor: 0, Room: 0},
		Rooms:             generated.Rooms,
		VisitedRooms:      []entities.Position{{Floor: 0, Room: 0}},
		StartedAt:         now,
	}
	span.SetAttributes(attribute.String("run.id", run.RunID), attribute.String("hero.id", run.HeroID))

	created, err := o.runRepo.Create(ctx, dungeonrun.CreateInput{Run: run})
	if err != nil {
		return nil, recordErr(span, errors.Wrap(err, "failed to persist run"))
	}

	slog.InfoContext(ctx, "Dungeon run started",
		"run_id", created.Run.RunID,
		"hero_id", created.Run.HeroID,
		"rooms", len(created.Run.Rooms),
	)

	o.publish(ctx, messaging.DungeonStarted{
		RunID:     created.Run.RunID,
		HeroID:    created.Run.HeroID,
		Timestamp: now,
	})

	return &StartOutput{Run: created.Run}, nil
}

// Get loads a run snapshot
func (o *Orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	ctx, span := o.tracer.Start(ctx, "dungeon.Get")
	defer span.End()

	run, err := o.load(ctx, input.runID())
	if err != nil {
		return nil, recordErr(span, err)
	}
	return &GetOutput{Run: run}, nil
}

// GetChoices resolves the rooms reachable from the run's position
func (o *Orchestrator) GetChoices(ctx context.Context, input *GetChoicesInput) (*GetChoicesOutput, error) {
	ctx, span := o.tracer.Start(ctx, "dungeon.GetChoices")
	defer span.End()

	run, err := o.load(ctx, input.runID())
	if err != nil {
		return nil, recordErr(span, err)
	}
	if err := requireInProgress(run); err != nil {
		return nil, err
	}

	return &GetChoicesOutput{
		Choices: resolveChoices(run),
	}, nil
}

// Choose moves the run into one of its current choices
func (o *Orchestrator) Choose(ctx context.Context, input *ChooseInput) (*ChooseOutput, error) {
	ctx, span := o.tracer.Start(ctx, "dungeon.Choose")
	defer span.End()

	if input == nil || input.ChoiceIndex == nil {
		return nil, errors.InvalidArgument("choiceIndex is required")
	}
	index := *input.ChoiceIndex
	if index < 0 || index >= choices.MaxChoices {
		return nil, errors.InvalidArgumentf("choiceIndex must be 0 or 1, got %d", index)
	}

	run, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, recordErr(span, err)
	}
	if err := requireInProgress(run); err != nil {
		return nil, err
	}

	available := resolveChoices(run)
	if index >= len(available) {
		return nil, errors.InvalidArgumentf("choiceIndex %d out of range, %d choices available", index, len(available)).
			WithMeta("available", len(available))
	}
	target := available[index].Position()

	next := run.Clone()
	room := next.RoomAt(target)
	if room == nil {
		return nil, errors.Internalf("choice %d:%d is not in the room graph", target.Floor, target.Room)
	}
	room.Visited = true
	next.Position = target
	next.VisitedRooms = append(next.VisitedRooms, target)

	updated, err := o.runRepo.Update(ctx, dungeonrun.UpdateInput{Run: next})
	if err != nil {
		return nil, recordErr(span, errors.Wrap(err, "failed to persist choice"))
	}
	saved := updated.Run
	entered := saved.RoomAt(target)

	span.SetAttributes(
		attribute.String("run.id", saved.RunID),
		attribute.Int("room.floor", target.Floor),
		attribute.Int("room.index", target.Room),
		attribute.String("room.type", string(entered.Type)),
	)
	slog.InfoContext(ctx, "Room entered",
		"run_id", saved.RunID,
		"hero_id", saved.HeroID,
		"floor", target.Floor,
		"room", target.Room,
		"room_type", entered.Type,
	)

	o.publish(ctx, messaging.RoomEntered{
		RunID:     saved.RunID,
		HeroID:    saved.HeroID,
		Position:  target,
		RoomType:  entered.Type,
		MonsterID: entered.MonsterID,
		Timestamp: o.clock.Now(),
	})

	out := &ChooseOutput{
		Run:      saved,
		Position: target,
		RoomType: entered.Type,
	}

	if entered.Type.RequiresCombat() {
		triggered, err := o.combat.Trigger(ctx, &combat.TriggerInput{Run: saved, Room: entered})
		if err != nil {
			slog.WarnContext(ctx, "Combat bridge rejected trigger",
				"run_id", saved.RunID,
				"error", err,
			)
		} else {
			out.CombatTriggered = triggered.Triggered
		}
	}

	return out, nil
}

// Finish marks the run completed. Whether the final room was reached is not checked.
func (o *Orchestrator) Finish(ctx context.Context, input *FinishInput) (*FinishOutput, error) {
	run, err := o.terminate(ctx, "dungeon.Finish", input.runID(), entities.RunStatusCompleted)
	if err != nil {
		return nil, err
	}
	return &FinishOutput{Run: run}, nil
}

// Abandon marks the run abandoned by the player
func (o *Orchestrator) Abandon(ctx context.Context, input *AbandonInput) (*AbandonOutput, error) {
	run, err := o.terminate(ctx, "dungeon.Abandon", input.runID(), entities.RunStatusAbandoned)
	if err != nil {
		return nil, err
	}
	return &AbandonOutput{Run: run}, nil
}

// Fail marks the run failed after the hero died
func (o *Orchestrator) Fail(ctx context.Context, input *FailInput) (*FailOutput, error) {
	run, err := o.terminate(ctx, "dungeon.Fail", input.runID(), entities.RunStatusFailed)
	if err != nil {
		return nil, err
	}
	return &FailOutput{Run: run}, nil
}

func (o *Orchestrator) terminate(ctx context.Context, spanName, runID string, status entities.RunStatus) (*entities.DungeonRun, error) {
	ctx, span := o.tracer.Start(ctx, spanName)
	defer span.End()

	run, err := o.load(ctx, runID)
	if err != nil {
		return nil, recordErr(span, err)
	}
	if err := requireInProgress(run); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	next := run.Clone()
	next.Status = status
	next.FinishedAt = &now

	updated, err := o.runRepo.Update(ctx, dungeonrun.UpdateInput{Run: next})
	if err != nil {
		return nil, recordErr(span, errors.Wrapf(err, "failed to mark run %s", status))
	}

	slog.InfoContext(ctx, "Dungeon run ended",
		"run_id", updated.Run.RunID,
		"hero_id", updated.Run.HeroID,
		"status", status,
	)

	o.publish(ctx, messaging.DungeonFinished{
		RunID:      updated.Run.RunID,
		HeroID:     updated.Run.HeroID,
		Status:     status,
		FinishedAt: now,
		Timestamp:  now,
	})

	return updated.Run, nil
}

func (o *Orchestrator) load(ctx context.Context, runID string) (*entities.DungeonRun, error) {
	if runID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}
	out, err := o.runRepo.Get(ctx, dungeonrun.GetInput{RunID: runID})
	if err != nil {
		return nil, err
	}
	return out.Run, nil
}

// publish is best effort; lifecycle events never fail the operation
func (o *Orchestrator) publish(ctx context.Context, event messaging.Event) {
	if err := o.publisher.PublishRunEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish run event",
			"event", event.EventType(),
			"error", err,
		)
	}
}

func requireInProgress(run *entities.DungeonRun) error {
	if run.Status != entities.RunStatusInProgress {
		return errors.FailedPreconditionf("run %s is %s", run.RunID, run.Status).
			WithMeta("status", string(run.Status))
	}
	return nil
}

func recordErr(span trace.Span, err error) error {
	if errors.IsInternal(err) || errors.IsUnavailable(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// resolveChoices seeds the alternative tie-break from the run id and version,
// so a choose lands on the room the preceding choices call offered.
func resolveChoices(run *entities.DungeonRun) []entities.Choice {
	return choices.Resolve(run.Position, run.Rooms, random.ForState(run.RunID, run.Version))
}
