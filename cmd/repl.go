/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var replCmd = &cobra.Command{
	Use:   "repl [save_name]",
	Short: "Start the interactive REPL shell",
	Long: `Opens a saved game in an interactive shell with the board state, a log of
everything that happens and command completion.
Usage:
	> roll
	> ask Moses
	> answer Moses tier: full`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := openSession(args[0], false)
		if err != nil {
			fmt.Printf("Failed to bootstrap game session: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		if app.State() == nil {
			fmt.Println("The save holds no game yet, start one with 'game create'.")
			os.Exit(1)
		}

		if err := RunTUI(app, args[0], viper.GetDuration("roll_delay")); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
