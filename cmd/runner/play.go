package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-runner/internal/core"
	"github.com/vovakirdan/arcade-runner/internal/games/runner"
	"github.com/vovakirdan/arcade-runner/internal/platform/tui"
	"github.com/vovakirdan/arcade-runner/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Space/Up   - Start, jump (twice in the air)
  P/Esc      - Pause
  R/Enter    - Restart (after game over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Examples:
  runner play
  runner play --seed 42 --fps 30
  runner play --config ./runner.yaml --watch --log-file runner.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := runner.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'runner list' to see available games", gameID)
	}

	// The terminal UI owns stdout, so logs only go to --log-file
	env, err := prepare(io.Discard)
	if err != nil {
		return err
	}
	defer env.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}
	err = tui.Run(game, cfg, tui.Options{
		Logger:       env.log,
		Reloads:      env.reloads(),
		RepeatWindow: env.cfg.Input.RepeatWindow,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
