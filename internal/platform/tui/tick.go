// Package tui runs a registered game in the terminal with Bubble Tea.
// It maps keys to actions, paces the game from a fixed-rate tick and feeds
// configuration reloads into the running game.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-runner/internal/config"
)

// TickMsg is sent once per host refresh.
type TickMsg time.Time

// ReloadMsg carries a configuration file change.
type ReloadMsg config.Reload

// tickCmd returns a command that sends the next TickMsg at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForReload blocks on the watcher channel. It returns nil (no message)
// once the channel is closed, which ends the wait loop.
func waitForReload(reloads <-chan config.Reload) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-reloads
		if !ok {
			return nil
		}
		return ReloadMsg(r)
	}
}
