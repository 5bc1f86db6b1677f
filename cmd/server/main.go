// Package main is the entry point for the dungeon run service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-dungeon",
	Short: "Dungeon run engine",
	Long:  `rpg-dungeon generates dungeon runs, resolves branching paths and hands combat off to the combat service.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
