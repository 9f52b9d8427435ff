/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [save_name]",
	Short: "Load a saved game and print the table",
	Long: `Reads the snapshot of a saved game, validates it against the loaded
board and cards, and prints every player's standing and the next step.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := openSession(args[0], false)
		if err != nil {
			fmt.Printf("Error loading game: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		if app.State() == nil {
			fmt.Println("The save holds no game yet.")
			return
		}
		events, err := app.Execute("status")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printEvents(events)
		fmt.Println()
		fmt.Println(app.Hint())
	},
}

func init() {
	gameCmd.AddCommand(loadCmd)
}
