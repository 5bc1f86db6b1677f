package gamedata

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
)

// SeedFile is the YAML layout accepted by LoadSeedFile
type SeedFile struct {
	Monsters []*entities.Monster `yaml:"monsters"`
}

// LoadSeedFile reads monsters from a YAML file
func LoadSeedFile(path string) ([]*entities.Monster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read seed file %s", path)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes and validates seed YAML
func ParseSeed(raw []byte) ([]*entities.Monster, error) {
	var file SeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid seed yaml")
	}

	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(file.Monsters))
	for i, m := range file.Monsters {
		if m == nil || strings.TrimSpace(m.ID) == "" {
			vb.Fieldf("monsters", "entry %d has no id", i)
			continue
		}
		if seen[m.ID] {
			vb.Fieldf("monsters", "duplicate id %s", m.ID)
		}
		seen[m.ID] = true
		if strings.TrimSpace(m.Name) == "" {
			vb.Fieldf("monsters", "monster %s has no name", m.ID)
		}
		for _, entry := range m.LootTable {
			if entry.ItemID == "" {
				vb.Fieldf("monsters", "monster %s has a loot entry without item_id", m.ID)
			}
			if entry.Chance < 0 || entry.Chance > 1 {
				vb.Fieldf("monsters", "monster %s loot %s chance must be within [0,1]", m.ID, entry.ItemID)
			}
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return file.Monsters, nil
}

// Seed upserts monsters and replaces their loot tables in one transaction.
// It returns the number of monsters written.
func Seed(ctx context.Context, db *sql.DB, monsters []*entities.Monster) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin seed transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range monsters {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO monsters (id, name, type, description, hp, att, def, regen)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   name = excluded.name,
			   type = excluded.type,
			   description = excluded.description,
			   hp = excluded.hp,
			   att = excluded.att,
			   def = excluded.def,
			   regen = excluded.regen`,
			m.ID, m.Name, m.Type, m.Description,
			m.Stats.HP, m.Stats.Att, m.Stats.Def, m.Stats.Regen,
		)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to upsert monster %s", m.ID)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM monster_loot WHERE monster_id = ?`, m.ID); err != nil {
			return 0, errors.Wrapf(err, "failed to clear loot for %s", m.ID)
		}
		for pos, entry := range m.LootTable {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO monster_loot (monster_id, position, item_id, name, chance, quantity)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				m.ID, pos, entry.ItemID, entry.Name, entry.Chance, entry.Quantity,
			)
			if err != nil {
				return 0, errors.Wrapf(err, "failed to insert loot for %s", m.ID)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit seed")
	}
	return len(monsters), nil
}
