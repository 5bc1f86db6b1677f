package gamedata

import (
	"context"
	"database/sql"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata/migrations"
	"github.com/KirkDiggler/rpg-dungeon/internal/sqlite"
)

// Config holds the configuration for the SQLite game-data repository
type Config struct {
	DB *sql.DB
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.DB == nil {
		return errors.InvalidArgument("db is required")
	}
	return nil
}

type sqliteRepository struct {
	db *sql.DB
}

// OpenReadOnly opens the game-data file without touching it. The file is not
// required to exist yet; Ping reports when it becomes usable.
func OpenReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlite.Open(ctx, path, &sqlite.Options{ReadOnly: true, Lazy: true})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open game-data store")
	}
	return db, nil
}

// OpenWritable opens the game-data file for seeding and applies its migrations
func OpenWritable(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlite.Open(ctx, path, &sqlite.Options{
		Migrations:      migrations.FS,
		RollbackJournal: true,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open game-data store")
	}
	return db, nil
}

// NewSQLiteRepository creates a game-data repository over an open database
func NewSQLiteRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &sqliteRepository{db: cfg.DB}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) ListMonsterIDs(ctx context.Context, _ ListMonsterIDsInput) (*ListMonsterIDsOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM monsters ORDER BY id`)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list monsters")
	}
	defer func() { _ = rows.Close() }()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan monster id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list monsters")
	}

	return &ListMonsterIDsOutput{MonsterIDs: ids}, nil
}

func (r *sqliteRepository) GetMonster(ctx context.Context, input GetMonsterInput) (*GetMonsterOutput, error) {
	if input.MonsterID == "" {
		return nil, errors.InvalidArgument("monster ID cannot be empty")
	}

	monster := &entities.Monster{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, description, hp, att, def, regen
		   FROM monsters
		  WHERE id = ?`,
		input.MonsterID,
	).Scan(
		&monster.ID,
		&monster.Name,
		&monster.Type,
		&monster.Description,
		&monster.Stats.HP,
		&monster.Stats.Att,
		&monster.Stats.Def,
		&monster.Stats.Regen,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("monster %s not found", input.MonsterID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load monster")
	}

	loot, err := r.lootTable(ctx, input.MonsterID)
	if err != nil {
		return nil, err
	}
	monster.LootTable = loot

	return &GetMonsterOutput{Monster: monster}, nil
}

func (r *sqliteRepository) lootTable(ctx context.Context, monsterID string) ([]entities.LootEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, name, chance, quantity
		   FROM monster_loot
		  WHERE monster_id = ?
		  ORDER BY position`,
		monsterID,
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load loot table")
	}
	defer func() { _ = rows.Close() }()

	loot := make([]entities.LootEntry, 0)
	for rows.Next() {
		var entry entities.LootEntry
		if err := rows.Scan(&entry.ItemID, &entry.Name, &entry.Chance, &entry.Quantity); err != nil {
			return nil, errors.Wrap(err, "failed to scan loot entry")
		}
		loot = append(loot, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load loot table")
	}
	return loot, nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM monsters`).Scan(&n); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "game-data store unreachable")
	}
	return nil
}
