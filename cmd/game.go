/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// gameCmd represents the game command
var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage saved games",
	Long: `The game command creates, inspects and advances saved games.

Each save lives in its own directory under saves_dir and keeps the latest
snapshot of the table plus a journal of everything that happened.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved games",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := saveManager().List()
		if err != nil {
			fmt.Printf("Error listing saves: %v\n", err)
			os.Exit(1)
		}
		if len(names) == 0 {
			fmt.Println("No saved games.")
			return
		}
		fmt.Println(strings.Join(names, "\n"))
	},
}

var execCmd = &cobra.Command{
	Use:   "exec [save_name] [command...]",
	Short: "Run one command against a saved game",
	Long: `Runs a single command, saves the result and prints what happened.
Example:
	pilgrim game exec sunday answer Moses tier: full`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := openSession(args[0], false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		events, err := app.Execute(strings.Join(args[1:], " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printEvents(events)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [save_name]",
	Short: "Print the journal of a saved game",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		last, _ := cmd.Flags().GetInt("last")
		app, err := openSession(args[0], false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		events, err := app.History(last)
		if err != nil {
			fmt.Printf("Error reading journal: %v\n", err)
			os.Exit(1)
		}
		printEvents(events)
	},
}

func init() {
	rootCmd.AddCommand(gameCmd)
	gameCmd.AddCommand(listCmd, execCmd, historyCmd)

	historyCmd.Flags().IntP("last", "n", 0, "only show the last n entries")
}
