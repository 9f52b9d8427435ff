/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/persistence"
	"github.com/suderio/pilgrim/internal/session"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pilgrim",
	Short: "A trivia board game of pilgrims, helpers and blessings",
	Long: `Pilgrim keeps the rules and the table of a trivia board game: players roll
around a board of biblical places, answer questions to recruit helpers, draw
blessings and challenges, and race to the victory point threshold.

Games are saved under saves_dir and can be played one command at a time
with 'game exec' or interactively with 'repl'.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pilgrim.yaml)")
	rootCmd.PersistentFlags().String("data_dir", "", "directory with board, card, trivia and rules yaml overrides")
	rootCmd.PersistentFlags().String("saves_dir", "./saves", "directory holding saved games")
	rootCmd.PersistentFlags().String("store", "file", "save backend for new games: file or sqlite")
	rootCmd.PersistentFlags().Uint64("seed", 0, "dice seed, 0 picks a random one")
	rootCmd.PersistentFlags().String("log_level", "warn", "log level: debug, info, warn or error")

	for _, key := range []string{"data_dir", "saves_dir", "store", "seed", "log_level"} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)))
	}
	viper.SetDefault("roll_delay", "600ms")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pilgrim")
	}

	viper.SetEnvPrefix("PILGRIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
		log.WithError(err).Warn("unknown log_level, using warn")
	}
	log.SetLevel(level)
	return log
}

func loadGameData() (*data.GameData, error) {
	var dirs []string
	if dir := viper.GetString("data_dir"); dir != "" {
		dirs = append(dirs, dir)
	}
	gd, err := data.NewLoader(dirs).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}
	return gd, nil
}

func newRoller() engine.Roller {
	seed := viper.GetUint64("seed")
	if seed == 0 {
		seed = engine.NewSeed()
	}
	return engine.NewSeededRoller(seed)
}

func saveManager() *persistence.SaveManager {
	dir := viper.GetString("saves_dir")
	if dir == "" {
		dir = "./saves"
	}
	return persistence.NewSaveManager(filepath.Clean(dir))
}

// openSession loads game data and opens a save, creating it first when create is set.
func openSession(name string, create bool) (*session.Session, error) {
	gd, err := loadGameData()
	if err != nil {
		return nil, err
	}
	manager := saveManager()
	var store persistence.Store
	if create {
		backend, err := persistence.ParseBackend(viper.GetString("store"))
		if err != nil {
			return nil, err
		}
		store, err = manager.Create(name, backend)
		if err != nil {
			return nil, err
		}
	} else {
		store, err = manager.Load(name)
		if err != nil {
			return nil, err
		}
	}
	app, err := session.New(gd, store, session.WithRoller(newRoller()), session.WithLogger(newLogger()))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to bootstrap game session: %w", err)
	}
	return app, nil
}

func printEvents(events []engine.Event) {
	for _, evt := range events {
		if msg := evt.Message(); msg != "" {
			fmt.Println(msg)
		}
	}
}
