package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runner/internal/games/runner/core"
)

// LogObserver reports round transitions and milestones at Info level and
// per-entity traffic at Debug level.
func LogObserver(l *log.Logger) core.Observer {
	return core.ObserverFunc(func(ev core.Event) {
		switch e := ev.(type) {
		case core.StartedEvent:
			l.Info("round started", "round", e.Round, "speed", e.Speed)
		case core.GameOverEvent:
			l.Info("game over",
				"round", e.Round,
				"score", e.FinalScore,
				"collected", e.Collected,
				"obstacle", e.Obstacle.ID,
			)
		case core.CelebrateEvent:
			l.Info("milestone reached", "score", e.Milestone)
		case core.SpeedChangedEvent:
			l.Debug("speed up", "speed", e.Speed, "score", e.Milestone)
		case core.EntitySpawnedEvent:
			l.Debug("spawned", "kind", e.Entity.Kind, "id", e.Entity.ID, "inverted", e.Entity.Inverted)
		case core.EntityRemovedEvent:
			if e.Reason == core.RemovedCollected {
				l.Debug("collected", "id", e.Entity.ID)
			}
		}
	})
}
