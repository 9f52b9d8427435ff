package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/rules"
	"github.com/suderio/pilgrim/internal/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play many automatic games and report the results",
	Long: `Plays whole games with a simple fixed policy to check the balance of the
board, decks and rules. Every game uses its own seed derived from --seed.
Example:
	pilgrim simulate -g 500 -p 4 --accuracy 70 --stop "turn > 80"`,
	Run: func(cmd *cobra.Command, args []string) {
		games, _ := cmd.Flags().GetInt("games")
		seats, _ := cmd.Flags().GetInt("players")
		accuracy, _ := cmd.Flags().GetInt("accuracy")
		maxTurns, _ := cmd.Flags().GetInt("max_turns")
		stopExpr, _ := cmd.Flags().GetString("stop")

		gd, err := loadGameData()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		var stop *rules.Query
		if stopExpr != "" {
			reg, err := rules.NewRegistry()
			cobra.CheckErr(err)
			stop, err = reg.Compile(stopExpr)
			if err != nil {
				fmt.Printf("Error in --stop: %v\n", err)
				os.Exit(1)
			}
		}
		players := make([]engine.PlayerData, seats)
		for i := range players {
			players[i] = engine.PlayerData{Name: fmt.Sprintf("P%d", i+1)}
		}

		seed := viper.GetUint64("seed")
		if seed == 0 {
			seed = engine.NewSeed()
		}
		log := newLogger()

		wins := make(map[string]int)
		undecided, stopped, totalTurns := 0, 0, 0
		bar := progressbar.Default(int64(games), "Simulating")
		for i := range games {
			roller := engine.NewSeededRoller(seed + uint64(i))
			eng, err := engine.NewFromData(gd, engine.WithRoller(roller), engine.WithLogger(log))
			cobra.CheckErr(err)

			a := &session.Autoplayer{
				Engine:   eng,
				Trivia:   gd.Trivia,
				MaxTurns: maxTurns,
				Accuracy: accuracy,
				Stop:     stop,
				Log:      log,
			}
			res, err := a.Play(players)
			if err != nil {
				fmt.Printf("\nGame %d failed: %v\n", i+1, err)
				os.Exit(1)
			}
			totalTurns += res.Turns
			switch {
			case res.Winner != "":
				wins[res.Winner]++
			case res.Stopped:
				stopped++
			default:
				undecided++
			}
			bar.Add(1)
		}

		fmt.Printf("\n%d games, seed %d, average %.1f turns\n", games, seed, float64(totalTurns)/float64(max(games, 1)))
		names := make([]string, 0, len(wins))
		for name := range wins {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-4s won %4d (%.1f%%)\n", name, wins[name], 100*float64(wins[name])/float64(games))
		}
		fmt.Printf("  stopped %d, no winner after %d turns %d\n", stopped, maxTurns, undecided)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntP("games", "g", 100, "number of games to play")
	simulateCmd.Flags().IntP("players", "p", 3, "players per game")
	simulateCmd.Flags().Int("accuracy", 60, "chance in percent of answering a question right")
	simulateCmd.Flags().Int("max_turns", 200, "turn cap per game")
	simulateCmd.Flags().String("stop", "", "CEL expression that ends a game early")
}
