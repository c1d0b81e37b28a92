// Package window presents the runner in a desktop window or a browser canvas
// using Ebitengine. The session is paced by wall-clock time through a
// clock.Scheduler, so timers keep real-time intervals at any refresh rate.
package window

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/arcade-runner/internal/clock"
	"github.com/vovakirdan/arcade-runner/internal/config"
	"github.com/vovakirdan/arcade-runner/internal/games/runner"
	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
)

// maxStep caps how much time one refresh may simulate, so a long stall (window
// dragged, tab hidden) does not burst every missed timer at once.
const maxStep = 250 * time.Millisecond

// Options configures a window game.
type Options struct {
	Config  config.RunnerConfig
	Seed    int64
	Logger  *log.Logger
	Reloads <-chan config.Reload
	Time    clock.TimeSource // Defaults to the system clock
}

// controls is the edge-triggered input of one refresh.
type controls struct {
	jump, restart, pause bool
}

// Game implements ebiten.Game.
type Game struct {
	sched   *clock.Scheduler
	session *core.Session
	sprites *SpriteIndex
	time    clock.TimeSource
	reloads <-chan config.Reload
	log     *log.Logger
	rng     *rand.Rand
	paused  bool

	confetti confetti
}

// New creates a window game waiting for the first jump.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Time == nil {
		opts.Time = clock.SystemTime{}
	}

	sched := clock.NewScheduler()
	sched.SetMaxStep(maxStep)

	g := &Game{
		sched:   sched,
		session: core.NewSession(opts.Config, sched, opts.Seed),
		sprites: NewSpriteIndex(),
		time:    opts.Time,
		reloads: opts.Reloads,
		log:     opts.Logger,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}
	g.session.Subscribe(g.sprites)
	g.session.Subscribe(runner.LogObserver(g.log))
	g.session.Subscribe(core.ObserverFunc(g.onEvent))
	return g
}

// Score returns the current score; the browser build exposes it to the page.
func (g *Game) Score() int {
	return g.session.Score()
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.step(controls{
		jump: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
			inpututil.IsKeyJustPressed(ebiten.KeyW) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		restart: inpututil.IsKeyJustPressed(ebiten.KeyR) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		pause: inpututil.IsKeyJustPressed(ebiten.KeyP) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	})
	return nil
}

// step applies one refresh worth of input and time.
func (g *Game) step(in controls) {
	g.drainReloads()
	now := g.time.Now()

	if in.pause && g.session.State() == core.StateRunning {
		g.paused = !g.paused
		if !g.paused {
			// Time spent paused is not simulated
			g.sched.Resync(now)
		}
	}
	if g.paused {
		return
	}

	if in.restart && g.session.State() == core.StateGameOver {
		if err := g.session.Restart(); err != nil {
			g.log.Error("restart failed", "err", err)
		}
	}
	if in.jump {
		g.session.Jump()
	}

	g.sched.Pump(now)
	g.sched.RunFrames()
}

func (g *Game) drainReloads() {
	for {
		select {
		case r, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			if r.Err != nil {
				g.log.Warn("config reload rejected", "path", r.Path, "err", r.Err)
				continue
			}
			g.session.SetConfig(r.Config)
			g.log.Info("config reloaded", "path", r.Path, "applies", "next round")
		default:
			return
		}
	}
}

func (g *Game) onEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.StartedEvent:
		g.confetti = confetti{}
	case core.CelebrateEvent:
		field := g.session.Config().Field
		g.confetti.start(g.rng, g.sched.Now(), e, field.Width, field.Height)
	}
}

// Layout implements ebiten.Game. The logical screen is the field itself.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	field := g.session.Config().Field
	return int(field.Width), int(field.Height)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.session.Snapshot()
	w, h := float32(snap.Field.Width), float32(snap.Field.Height)

	vector.DrawFilledRect(screen, 0, h-2, w, 2, groundColor, false)

	for _, e := range snap.Obstacles {
		drawEntity(screen, e, snap.Field, g.sprites.Get(e))
	}
	for _, e := range snap.Collectibles {
		drawEntity(screen, e, snap.Field, g.sprites.Get(e))
	}

	body := characterColor
	if snap.State == core.StateGameOver {
		body = crashColor
	}
	cb := snap.CharacterBounds
	vector.DrawFilledRect(screen, float32(cb.Left), float32(cb.Top), float32(cb.Width()), float32(cb.Height()), body, false)

	g.confetti.draw(screen, g.sched.Now())

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Score: %d   Collected: %d   Speed: %.1f   Jumps: %d",
			snap.Score, snap.Collected, snap.Speed, snap.Character.JumpsRemaining()), 8, 6)

	switch {
	case snap.State == core.StateNotStarted:
		drawMessage(screen, "ENDLESS RUNNER", "Press SPACE to start")
	case snap.State == core.StateGameOver:
		drawMessage(screen, "GAME OVER",
			fmt.Sprintf("Score: %d  Collected: %d  -  Press R to restart", snap.Score, snap.Collected))
	case g.paused:
		drawMessage(screen, "PAUSED", "Press P to resume")
	}
}

func drawEntity(screen *ebiten.Image, e core.Entity, field config.FieldConfig, sp Sprite) {
	b := e.Bounds(field)
	vector.DrawFilledRect(screen,
		float32(b.Left)+sp.Inset, float32(b.Top)+sp.Inset,
		float32(b.Width())-2*sp.Inset, float32(b.Height())-2*sp.Inset,
		sp.Color, false)
}

// debugGlyph is the cell size of ebitenutil's debug font.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

func drawMessage(screen *ebiten.Image, title, subtitle string) {
	b := screen.Bounds()
	boxW := max(len(title), len(subtitle))*debugGlyphW + 32
	boxH := 3*debugGlyphH + 16
	x := (b.Dx() - boxW) / 2
	y := (b.Dy() - boxH) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), overlayColor, false)
	ebitenutil.DebugPrintAt(screen, title, (b.Dx()-len(title)*debugGlyphW)/2, y+8)
	ebitenutil.DebugPrintAt(screen, subtitle, (b.Dx()-len(subtitle)*debugGlyphW)/2, y+8+2*debugGlyphH)
}

// Run opens the window and blocks until it is closed.
func Run(game *Game, fps int, title string) error {
	field := game.session.Config().Field
	ebiten.SetWindowSize(int(field.Width), int(field.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fps > 0 {
		ebiten.SetTPS(fps)
	}
	return ebiten.RunGame(game)
}
