package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	choiceIndex int
)

var chooseCmd = &cobra.Command{
	Use:   "choose",
	Short: "Move into one of the current choices",
	RunE:  runChoose,
}

func init() {
	chooseCmd.Flags().IntVar(&choiceIndex, "index", 0, "Choice index (0 or 1)")
}

func runChoose(_ *cobra.Command, _ []string) error {
	client, ctx, cancel, err := createClient()
	if err != nil {
		return err
	}
	defer cancel()

	result, err := client.Choose(ctx, runID, choiceIndex)
	if err != nil {
		return fmt.Errorf("failed to choose: %w", err)
	}

	fmt.Printf("Entered floor %d, room %d (%s)\n", result.Position.Floor, result.Position.Room, result.RoomType)
	if result.RoomType.RequiresCombat() {
		fmt.Println("Combat has been triggered.")
	}
	return nil
}
