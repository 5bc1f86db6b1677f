package dungeonrun

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run/migrations"
	"github.com/KirkDiggler/rpg-dungeon/internal/sqlite"
)

const (
	errRunNil     = "run cannot be nil"
	errRunIDEmpty = "run ID cannot be empty"
)

// SQLiteConfig holds the configuration for the SQLite document store
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.DB == nil {
		vb.RequiredField("DB")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens the run database at path and applies its migrations
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlite.Open(ctx, path, &sqlite.Options{Migrations: migrations.FS})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open run store")
	}
	return db, nil
}

// NewSQLiteRepository creates a run repository over an open database
func NewSQLiteRepository(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &sqliteRepository{
		db:    cfg.DB,
		clock: cfg.Clock,
	}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRun(input.Run); err != nil {
		return nil, err
	}

	run := input.Run.Clone()
	if run.Version == 0 {
		run.Version = 1
	}

	doc, err := json.Marshal(run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run %s", run.RunID)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO dungeon_runs (run_id, hero_id, status, document, version, started_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.HeroID,
		string(run.Status),
		string(doc),
		run.Version,
		sqlite.ToMillis(run.StartedAt),
		sqlite.ToMillis(r.clock.Now()),
	)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("run %s already exists", run.RunID)
		}
		return nil, errors.Wrap(err, "failed to insert run")
	}

	return &CreateOutput{Run: run}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	var doc string
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT document, version FROM dungeon_runs WHERE run_id = ?`,
		input.RunID,
	).Scan(&doc, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("dungeon run %s not found", input.RunID)
		}
		return nil, errors.Wrap(err, "failed to load run")
	}

	var run entities.DungeonRun
	if err := json.Unmarshal([]byte(doc), &run); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal run %s", input.RunID)
	}
	// The column is authoritative for concurrency control
	run.Version = version

	return &GetOutput{Run: &run}, nil
}

func (r *sqliteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRun(input.Run); err != nil {
		return nil, err
	}

	expected := input.Run.Version
	run := input.Run.Clone()
	run.Version = expected + 1

	doc, err := json.Marshal(run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run %s", run.RunID)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE dungeon_runs
		    SET status = ?, document = ?, version = ?, updated_at = ?
		  WHERE run_id = ? AND version = ?`,
		string(run.Status),
		string(doc),
		run.Version,
		sqlite.ToMillis(r.clock.Now()),
		run.RunID,
		expected,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update run")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update run")
	}
	if affected == 0 {
		return nil, r.updateMiss(ctx, run.RunID, expected)
	}

	return &UpdateOutput{Run: run}, nil
}

// updateMiss distinguishes a missing run from a stale version
func (r *sqliteRepository) updateMiss(ctx context.Context, runID string, expected int64) error {
	var current int64
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM dungeon_runs WHERE run_id = ?`, runID,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundf("dungeon run %s not found", runID)
	}
	if err != nil {
		return errors.Wrap(err, "failed to update run")
	}

	return errors.Abortedf("dungeon run %s was modified concurrently", runID).
		WithMeta("expected_version", expected).
		WithMeta("current_version", current)
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "run store unreachable")
	}
	return nil
}

func validateRun(run *entities.DungeonRun) error {
	if run == nil {
		return errors.InvalidArgument(errRunNil)
	}
	if run.RunID == "" {
		return errors.InvalidArgument(errRunIDEmpty)
	}
	return nil
}
