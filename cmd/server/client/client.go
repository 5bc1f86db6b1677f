// Package client provides test commands for the dungeon run HTTP API
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/clients/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the dungeon API",
	Long:  `Client commands allow you to play through a dungeon run by making real HTTP requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:8080", "Server base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(startCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(choicesCmd)
	ClientCmd.AddCommand(chooseCmd)
	ClientCmd.AddCommand(finishCmd)
	ClientCmd.AddCommand(abandonCmd)
}

// createClient builds an API client plus a request context
func createClient() (dungeon.Client, context.Context, context.CancelFunc, error) {
	client, err := dungeon.New(&dungeon.Config{BaseURL: serverAddr, HTTPTimeout: timeout})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return client, ctx, cancel, nil
}

func printRun(run *dungeon.Run) {
	fmt.Printf("Run ID: %s\n", run.RunID)
	fmt.Printf("Hero ID: %s\n", run.HeroID)
	fmt.Printf("Status: %s\n", run.Status)
	fmt.Printf("Position: floor %d, room %d\n", run.Position.Floor, run.Position.Room)
	fmt.Printf("Started: %s\n", run.StartedAt.Format(time.RFC3339))
	if run.FinishedAt != nil {
		fmt.Printf("Finished: %s\n", run.FinishedAt.Format(time.RFC3339))
	}

	fmt.Printf("\nRooms:\n")
	for _, room := range run.Rooms {
		marker := " "
		switch {
		case room.Floor == run.Position.Floor && room.Room == run.Position.Room:
			marker = ">"
		case room.Visited:
			marker = "x"
		}
		monster := ""
		if room.HasMonster() {
			monster = " (" + *room.MonsterID + ")"
		}
		fmt.Printf("  %s %d:%d %s%s\n", marker, room.Floor, room.Room, room.Type, monster)
	}
}

func printChoices(choices []entities.Choice) {
	if len(choices) == 0 {
		fmt.Println("No choices left: this is the final room.")
		return
	}
	for i, choice := range choices {
		fmt.Printf("  [%d] floor %d, room %d: %s\n", i, choice.Floor, choice.Room, choice.Type)
	}
}
