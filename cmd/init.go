package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/suderio/pilgrim/internal/data"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the default game data files for customisation",
	Long: `Copies the built-in board, blessing and challenge decks, trivia bank and
rules into a directory. Point data_dir at it to play with your edits.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dataDir := "data"
		if len(args) == 1 {
			dataDir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		fmt.Printf("Writing default game data to: %s\n", dataDir)
		bar := progressbar.Default(int64(len(data.Files)), "Writing data")

		failed := 0
		for _, name := range data.Files {
			if err := data.WriteDefaults(dataDir, name, force); err != nil {
				fmt.Printf("\nSkipped %s: %v\n", name, err)
				failed++
			}
			bar.Add(1)
		}

		if _, err := data.NewLoader([]string{dataDir}).LoadAll(); err != nil {
			fmt.Printf("\nThe data in %s does not load: %v\n", dataDir, err)
			os.Exit(1)
		}
		if failed > 0 {
			fmt.Printf("\n%d file(s) kept as they were, use --force to overwrite.\n", failed)
			return
		}
		fmt.Println("\nData bootstrap complete!")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing files")
}
