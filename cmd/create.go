/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/pilgrim/internal/engine"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [save_name]",
	Short: "Start a new game in a fresh save",
	Long: `Seats the players, shuffles both decks and writes the first snapshot
under saves_dir/<save_name>. Players are given as name[:color[:shape]].
Example:
	pilgrim game create sunday -p Ann:red -p Ben:blue:star`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		specs, _ := cmd.Flags().GetStringArray("player")
		if len(specs) == 0 {
			fmt.Println("Error: at least one --player is required")
			os.Exit(1)
		}

		app, err := openSession(args[0], true)
		if err != nil {
			fmt.Printf("Error creating game: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		events, err := app.Start(parsePlayers(specs))
		if err != nil {
			fmt.Printf("Error starting game: %v\n", err)
			os.Exit(1)
		}
		printEvents(events)
		fmt.Println(app.Hint())
	},
}

func parsePlayers(specs []string) []engine.PlayerData {
	players := make([]engine.PlayerData, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		pd := engine.PlayerData{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			pd.Color = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			pd.Shape = strings.TrimSpace(parts[2])
		}
		players = append(players, pd)
	}
	return players
}

func init() {
	gameCmd.AddCommand(createCmd)
	createCmd.Flags().StringArrayP("player", "p", nil, "player as name[:color[:shape]], repeatable")
}
