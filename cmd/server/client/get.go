package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runID string
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a dungeon run by ID",
	RunE:  runGet,
}

var choicesCmd = &cobra.Command{
	Use:   "choices",
	Short: "List the rooms reachable from the current position",
	RunE:  runChoices,
}

func init() {
	for _, cmd := range []*cobra.Command{getCmd, choicesCmd, chooseCmd, finishCmd, abandonCmd} {
		cmd.Flags().StringVar(&runID, "run-id", "", "Run ID (required)")
		_ = cmd.MarkFlagRequired("run-id") // nolint:errcheck // safe to ignore in init
	}
}

func runGet(_ *cobra.Command, _ []string) error {
	client, ctx, cancel, err := createClient()
	if err != nil {
		return err
	}
	defer cancel()

	run, err := client.Get(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	printRun(run)
	return nil
}

func runChoices(_ *cobra.Command, _ []string) error {
	client, ctx, cancel, err := createClient()
	if err != nil {
		return err
	}
	defer cancel()

	choices, err := client.Choices(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get choices: %w", err)
	}

	fmt.Printf("Choices for %s:\n", runID)
	printChoices(choices)
	return nil
}
