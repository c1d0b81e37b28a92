// Package runner plugs the endless runner simulation into the arcade platform.
// The simulation itself lives in runner/core; this package paces it from host
// steps and draws it into a terminal screen.
package runner

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runner/internal/clock"
	"github.com/vovakirdan/arcade-runner/internal/config"
	platformcore "github.com/vovakirdan/arcade-runner/internal/core"
	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
	"github.com/vovakirdan/arcade-runner/internal/registry"
)

// ID is the registry identifier of the runner.
const ID = "runner"

// Package-level settings, filled in by the CLI before the game is created.
var (
	baseConfig = config.DefaultRunnerConfig()
	baseLogger = log.New(io.Discard)
)

// SetConfig sets the tunables used by games created afterwards.
func SetConfig(cfg config.RunnerConfig) {
	baseConfig = cfg
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	baseLogger = l
}

// Game implements registry.Game on top of a core.Session.
type Game struct {
	runtime platformcore.RuntimeConfig
	sched   *clock.Scheduler
	session *core.Session
	rng     *rand.Rand
	log     *log.Logger
	paused  bool

	celebration celebration
}

// New creates a runner. Reset must be called before the first Step.
func New() *Game {
	return &Game{log: baseLogger}
}

// ID returns the registry identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Endless Runner"
}

// Reset discards the session and builds a fresh one waiting for the first jump.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = platformcore.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.paused = false
	g.celebration = celebration{}
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.sched = clock.NewScheduler()
	g.session = core.NewSession(baseConfig, g.sched, runtime.Seed)
	g.session.Subscribe(LogObserver(g.log))
	g.session.Subscribe(core.ObserverFunc(g.onEvent))
}

// ApplyConfig stages new tunables; they take effect when the next round starts.
func (g *Game) ApplyConfig(cfg config.RunnerConfig) {
	g.session.SetConfig(cfg)
}

// Config returns the tunables of the current round.
func (g *Game) Config() config.RunnerConfig {
	return g.session.Config()
}

// Step handles one host refresh: input first, then the timers that came due,
// then the pending frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	state := g.session.State()

	if in.Has(platformcore.ActionPause) && state == core.StateRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) && state == core.StateGameOver {
		if err := g.session.Restart(); err != nil {
			g.log.Error("restart failed", "err", err)
		}
	}
	if in.Has(platformcore.ActionJump) {
		g.session.Jump()
	}

	g.sched.Advance(time.Second / time.Duration(g.runtime.TickRate))
	g.sched.RunFrames()

	return platformcore.StepResult{State: g.State()}
}

// State returns the platform view of the session.
func (g *Game) State() platformcore.GameState {
	st := g.session.State()
	return platformcore.GameState{
		Score:    g.session.Score(),
		Started:  st != core.StateNotStarted,
		GameOver: st == core.StateGameOver,
		Paused:   g.paused,
	}
}

// Snapshot exposes the session state for hosts that draw on their own.
func (g *Game) Snapshot() core.Snapshot {
	return g.session.Snapshot()
}

func (g *Game) onEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.StartedEvent:
		g.celebration = celebration{}
	case core.CelebrateEvent:
		g.celebration.start(g.rng, g.sched.Now(), e)
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
