package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/clients/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

var (
	heroID    string
	heroLevel int
	heroXP    int
	heroHP    int
	heroAtt   int
	heroDef   int
	heroRegen int
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a dungeon run",
	Long:  `Start a new dungeon run for a hero using the given stat snapshot.`,
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVar(&heroID, "hero-id", "", "Hero ID (required)")
	startCmd.Flags().IntVar(&heroLevel, "level", 1, "Hero level")
	startCmd.Flags().IntVar(&heroXP, "xp", 0, "Hero experience")
	startCmd.Flags().IntVar(&heroHP, "hp", 30, "Hero hit points")
	startCmd.Flags().IntVar(&heroAtt, "att", 5, "Hero attack")
	startCmd.Flags().IntVar(&heroDef, "def", 3, "Hero defense")
	startCmd.Flags().IntVar(&heroRegen, "regen", 1, "Hero regeneration")
	_ = startCmd.MarkFlagRequired("hero-id") // nolint:errcheck // safe to ignore in init
}

func runStart(_ *cobra.Command, _ []string) error {
	client, ctx, cancel, err := createClient()
	if err != nil {
		return err
	}
	defer cancel()

	run, err := client.Start(ctx, &dungeon.StartInput{
		HeroID: heroID,
		HeroStats: entities.HeroSnapshot{
			Level: heroLevel,
			XP:    heroXP,
			Stats: &entities.Stats{HP: heroHP, Att: heroAtt, Def: heroDef, Regen: heroRegen},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}

	fmt.Printf("Dungeon run started\n\n")
	printRun(run)
	return nil
}
