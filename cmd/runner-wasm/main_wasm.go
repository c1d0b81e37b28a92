//go:build js && wasm

// runner-wasm is the browser build of the window presenter.
//
//	GOOS=js GOARCH=wasm go build -o runner.wasm ./cmd/runner-wasm
package main

import (
	"os"
	"syscall/js"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runner/internal/config"
	"github.com/vovakirdan/arcade-runner/internal/platform/window"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "runner"})

	game := window.New(window.Options{
		Config: config.DefaultRunnerConfig(),
		Seed:   time.Now().UnixNano(),
		Logger: logger,
	})

	js.Global().Set("getScore", js.FuncOf(func(this js.Value, args []js.Value) any {
		return js.ValueOf(game.Score())
	}))

	if err := window.Run(game, 0, "Endless Runner"); err != nil {
		logger.Fatal("game stopped", "err", err)
	}
}
