package runner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-runner/internal/config"
	platformcore "github.com/vovakirdan/arcade-runner/internal/core"
	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
	"github.com/vovakirdan/arcade-runner/internal/registry"
)

func newTestGame(t *testing.T, cfg config.RunnerConfig) *Game {
	t.Helper()
	prev := baseConfig
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })

	g := New()
	rt := platformcore.DefaultConfig()
	rt.Seed = 7
	g.Reset(rt)
	return g
}

func input(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func render(g *Game) string {
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	return screen.String()
}

func stepN(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(input())
	}
}

func TestRunnerIsRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))

	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Endless Runner", g.Title())
}

func TestTitleScreenWaitsForJump(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig())

	stepN(g, 120)
	assert.False(t, g.State().Started)
	assert.Equal(t, 0, g.State().Score)
	assert.Contains(t, render(g), "Press SPACE to start")

	g.Step(input(platformcore.ActionJump))
	assert.True(t, g.State().Started)
	assert.NotContains(t, render(g), "Press SPACE to start")
}

func TestStepsAdvanceScoreInRealTime(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig())
	g.Step(input(platformcore.ActionJump))

	// One second of refreshes at 60 Hz yields roughly ten score ticks
	stepN(g, 60)
	assert.InDelta(t, 10, g.State().Score, 1)
}

func TestPauseFreezesRound(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig())

	g.Step(input(platformcore.ActionPause))
	assert.False(t, g.State().Paused, "pause is ignored before the round starts")

	g.Step(input(platformcore.ActionJump))
	stepN(g, 30)

	g.Step(input(platformcore.ActionPause))
	require.True(t, g.State().Paused)
	score := g.State().Score
	snap := g.Snapshot()

	stepN(g, 120)
	assert.Equal(t, score, g.State().Score)
	assert.Equal(t, snap, g.Snapshot())
	assert.Contains(t, render(g), "PAUSED")

	g.Step(input(platformcore.ActionPause))
	assert.False(t, g.State().Paused)
	stepN(g, 30)
	assert.Greater(t, g.State().Score, score)
}

func floorObstacles() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.TopChance = 0
	return cfg
}

func runToGameOver(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 600; i++ {
		if g.State().GameOver {
			return
		}
		g.Step(input())
	}
	t.Fatal("round never ended")
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, floorObstacles())
	g.Step(input(platformcore.ActionJump))
	runToGameOver(t, g)

	assert.Contains(t, render(g), "GAME OVER")
	final := g.State().Score

	// Jumping does nothing on the game over screen
	stepN(g, 30)
	g.Step(input(platformcore.ActionJump))
	assert.True(t, g.State().GameOver)
	assert.Equal(t, final, g.State().Score)

	g.Step(input(platformcore.ActionRestart))
	st := g.State()
	assert.False(t, st.GameOver)
	assert.True(t, st.Started)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 2, g.Snapshot().Round)
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig())
	g.Step(input(platformcore.ActionJump))
	stepN(g, 30)

	score := g.State().Score
	g.Step(input(platformcore.ActionRestart))
	assert.Equal(t, 1, g.Snapshot().Round)
	assert.GreaterOrEqual(t, g.State().Score, score)
}

func TestApplyConfigTakesEffectOnRestart(t *testing.T) {
	g := newTestGame(t, floorObstacles())
	g.Step(input(platformcore.ActionJump))

	next := floorObstacles()
	next.Scoring.InitialSpeed = 14
	g.ApplyConfig(next)
	assert.Equal(t, 10.0, g.Config().Scoring.InitialSpeed)

	runToGameOver(t, g)
	g.Step(input(platformcore.ActionRestart))
	assert.Equal(t, 14.0, g.Config().Scoring.InitialSpeed)
}

func TestCelebrationShowsBannerForItsDuration(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig())
	g.Step(input(platformcore.ActionJump))

	g.onEvent(core.CelebrateEvent{Milestone: 500, Duration: 1500 * time.Millisecond})
	assert.Contains(t, render(g), "500 POINTS!")

	g.sched.Advance(1400 * time.Millisecond)
	assert.Contains(t, render(g), "500 POINTS!")

	g.sched.Advance(200 * time.Millisecond)
	assert.NotContains(t, render(g), "500 POINTS!")
}

func TestRenderDrawsCharacterOnGround(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig())
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	// 40x50 px at x=50 on an 800x400 field maps to columns 5..8, rows 20..22
	for x := 5; x <= 8; x++ {
		assert.Equal(t, CharacterChar, screen.Get(x, 22), "column %d", x)
	}
	assert.Equal(t, GroundChar, screen.Get(0, 23))
	assert.NotEqual(t, CharacterChar, screen.Get(9, 22))
}

func TestViewportCells(t *testing.T) {
	snap := core.Snapshot{Field: config.FieldConfig{Width: 800, Height: 400}}
	v := newViewport(platformcore.NewScreen(80, 24), snap)

	assert.Equal(t, platformcore.NewRect(5, 20, 4, 3), v.cells(platformcore.RectF{Left: 50, Top: 350, Right: 90, Bottom: 400}))

	// Tiny rects still occupy one cell
	r := v.cells(platformcore.RectF{Left: 101, Top: 101, Right: 102, Bottom: 102})
	assert.Equal(t, 1, r.W)
	assert.Equal(t, 1, r.H)

	// Off-field rects are clamped into the play rows
	r = v.cells(platformcore.RectF{Left: 0, Top: -100, Right: 10, Bottom: -50})
	assert.Equal(t, 1, r.Y)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	obs := LogObserver(l)

	obs.OnEvent(core.StartedEvent{Round: 1, Speed: 10})
	obs.OnEvent(core.EntitySpawnedEvent{Entity: core.Entity{ID: 3, Kind: core.KindObstacle}})
	obs.OnEvent(core.GameOverEvent{Round: 1, FinalScore: 42})

	out := buf.String()
	assert.Contains(t, out, "round started")
	assert.Contains(t, out, "spawned")
	assert.Contains(t, out, "kind=obstacle")
	assert.True(t, strings.Contains(out, "score=42"), out)
}
