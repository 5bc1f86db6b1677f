package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/clients/dungeon"
)

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Complete a dungeon run",
	RunE:  runFinish,
}

var abandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Abandon a dungeon run",
	RunE:  runAbandon,
}

func runFinish(_ *cobra.Command, _ []string) error {
	client, ctx, cancel, err := createClient()
	if err != nil {
		return err
	}
	defer cancel()

	result, err := client.Finish(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	printFinish(result)
	return nil
}

func runAbandon(_ *cobra.Command, _ []string) error {
	client, ctx, cancel, err := createClient()
	if err != nil {
		return err
	}
	defer cancel()

	result, err := client.Abandon(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to abandon run: %w", err)
	}

	printFinish(result)
	return nil
}

func printFinish(result *dungeon.FinishResult) {
	fmt.Println(result.Message)
	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Status: %s\n", result.Status)
	if result.FinishedAt != nil {
		fmt.Printf("Finished: %s\n", result.FinishedAt.Format(time.RFC3339))
	}
}
