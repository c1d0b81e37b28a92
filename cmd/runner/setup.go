package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runner/internal/config"
	"github.com/vovakirdan/arcade-runner/internal/games/runner"
)

// environment is what every play command needs: tunables, a logger and,
// with --watch, a config watcher.
type environment struct {
	cfg     config.RunnerConfig
	source  string
	log     *log.Logger
	watcher *config.Watcher
	closers []func() error
}

// newLogger builds the structured logger. Without a log file, logs go to
// fallback (io.Discard when the terminal UI owns the screen).
func newLogger(path string, debug bool, fallback io.Writer) (*log.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "runner",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// prepare loads the configuration, sets up logging and hands both to the
// runner package so games created afterwards pick them up.
func prepare(fallback io.Writer) (*environment, error) {
	logger, closeLog, err := newLogger(flagLogFile, flagDebug, fallback)
	if err != nil {
		return nil, err
	}
	env := &environment{log: logger, closers: []func() error{closeLog}}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.cfg = cfg
	env.source = source
	logger.Info("config loaded", "source", source)

	runner.SetConfig(cfg)
	runner.SetLogger(logger)

	if flagWatch {
		if source == config.EmbeddedSource {
			logger.Warn("nothing to watch, using embedded defaults")
		} else {
			w, err := config.Watch(source)
			if err != nil {
				env.Close()
				return nil, err
			}
			env.watcher = w
			env.closers = append(env.closers, w.Close)
			logger.Info("watching config", "path", w.Path())
		}
	}
	return env, nil
}

// reloads returns the watcher channel, or nil without --watch.
func (e *environment) reloads() <-chan config.Reload {
	if e.watcher == nil {
		return nil
	}
	return e.watcher.Reloads
}

// Close releases the watcher and the log file, last opened first.
func (e *environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort cleanup on exit
		e.closers[i]()
	}
	e.closers = nil
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
