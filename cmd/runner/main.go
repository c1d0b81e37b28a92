// runner is an endless runner for the terminal and the desktop.
//
// Usage:
//
//	runner play              - Play in the terminal
//	runner window            - Play in a desktop window
//	runner list              - List available games
//	runner config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Host refresh rate (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--config <path>     - Custom config YAML
//	--watch             - Reload the config file when it changes
//	--log-file <path>   - Write logs to a file
//	--debug             - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagLogFile string
	flagDebug   bool
	flagWatch   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Endless Runner - jump, collect, survive",
	Long: `Endless Runner scrolls obstacles and collectibles at you, faster and faster.
Jump (twice in the air if you must) to stay alive and grab coins for bonus points.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  list     - Show all available games
  config   - Print the effective configuration

Examples:
  runner play
  runner play --seed 42
  runner window --config ./runner.yaml --watch
  runner config > ~/.arcade/configs/runner.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}
