package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/config"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
)

var (
	seedFile string
	seedDB   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load monsters into the game-data store",
	Long:  `Seed reads a YAML file of monsters and loot tables and upserts them into the game-data store.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "data/monsters.yaml", "Monster YAML file")
	seedCmd.Flags().StringVar(&seedDB, "db", "", "Game-data database path (overrides DUNGEON_GAMEDATA_PATH)")
}

func runSeed(_ *cobra.Command, _ []string) error {
	path := seedDB
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.GameDataPath
	}

	monsters, err := gamedata.LoadSeedFile(seedFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := gamedata.OpenWritable(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	count, err := gamedata.Seed(ctx, db, monsters)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d monsters into %s\n", count, path)
	return nil
}
