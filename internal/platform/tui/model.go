package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runner/internal/config"
	"github.com/vovakirdan/arcade-runner/internal/core"
	"github.com/vovakirdan/arcade-runner/internal/registry"
)

// Configurable is implemented by games that accept reloaded tunables.
type Configurable interface {
	ApplyConfig(cfg config.RunnerConfig)
}

// Options tunes the terminal host.
type Options struct {
	Logger       *log.Logger
	Reloads      <-chan config.Reload // Optional config watcher output
	RepeatWindow time.Duration        // Held-key suppression for Jump
}

// Model is the Bubble Tea model that hosts one game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	repeat   *RepeatFilter
	input    core.InputFrame
	state    core.GameState
	reloads  <-chan config.Reload
	log      *log.Logger
	quitting bool
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, fieldHeight(cfg.ScreenH)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		repeat:  NewRepeatFilter(opts.RepeatWindow),
		input:   core.NewInputFrame(),
		reloads: opts.Reloads,
		log:     logger,
	}
}

// fieldHeight leaves the last terminal line for the help view.
func fieldHeight(h int) int {
	return core.Max(h-1, 1)
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.log.Info("game ready", "game", m.game.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.reloads))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, fieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		m.handleReload(config.Reload(msg))
		return m, waitForReload(m.reloads)
	}

	return m, nil
}

// handleKey queues the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		if !m.repeat.Allow(time.Now()) {
			return m, nil
		}
		m.input.Set(action)
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleTick runs one game step with the actions collected since the last one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) handleReload(r config.Reload) {
	if r.Err != nil {
		m.log.Warn("config reload rejected", "path", r.Path, "err", r.Err)
		return
	}
	m.repeat.SetWindow(r.Config.Input.RepeatWindow)
	if c, ok := m.game.(Configurable); ok {
		c.ApplyConfig(r.Config)
	}
	m.log.Info("config reloaded", "path", r.Path, "applies", "next round")
}

// saveScreenshot writes the current screen as plain text to ~/.arcade/screenshots.
func (m Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.log.Info("screenshot saved", "path", path)
	return nil
}

// View renders the game screen and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(NewModel(game, cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
