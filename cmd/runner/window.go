package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-runner/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window.

Controls:
  Space/Up/Click - Start, jump (twice in the air)
  P/Esc          - Pause
  R/Enter        - Restart (after game over)

Logs go to stderr unless --log-file is set.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	env, err := prepare(os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	game := window.New(window.Options{
		Config:  env.cfg,
		Seed:    seed(),
		Logger:  env.log,
		Reloads: env.reloads(),
	})
	if err := window.Run(game, flagFPS, "Endless Runner"); err != nil {
		return fmt.Errorf("error running window: %w", err)
	}
	return nil
}
