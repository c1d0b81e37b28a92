package core

import "time"

// Event is a state change emitted by a Session to its observers.
type Event interface {
	runnerEvent()
}

// Observer receives session events in the order they happen.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}

// StartedEvent is emitted when a round begins. Observers drop all entity state.
type StartedEvent struct {
	Round int
	Speed float64
}

func (StartedEvent) runnerEvent() {}

// GameOverEvent is emitted when the character hits an obstacle.
type GameOverEvent struct {
	Round      int
	FinalScore int
	Collected  int
	Obstacle   Entity
}

func (GameOverEvent) runnerEvent() {}

// ScoreSource tells why the score changed.
type ScoreSource int

const (
	ScoreFromTick   ScoreSource = iota // Passive score over time
	ScoreFromPickup                    // Collectible consumed
)

// String returns a human-readable name for the source.
func (s ScoreSource) String() string {
	switch s {
	case ScoreFromTick:
		return "tick"
	case ScoreFromPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// ScoreChangedEvent is emitted on every score change.
type ScoreChangedEvent struct {
	Score  int
	Delta  int
	Source ScoreSource
}

func (ScoreChangedEvent) runnerEvent() {}

// CollectedChangedEvent is emitted when a collectible is picked up.
type CollectedChangedEvent struct {
	Collected int
}

func (CollectedChangedEvent) runnerEvent() {}

// SpeedChangedEvent is emitted when the score reaches a speed milestone.
type SpeedChangedEvent struct {
	Speed     float64
	Milestone int // Score that triggered the change
}

func (SpeedChangedEvent) runnerEvent() {}

// CelebrateEvent asks the presentation for a cosmetic effect lasting Duration.
type CelebrateEvent struct {
	Milestone int // Score that triggered the celebration
	Duration  time.Duration
}

func (CelebrateEvent) runnerEvent() {}

// EntitySpawnedEvent is emitted when an entity enters the active set.
type EntitySpawnedEvent struct {
	Entity Entity
}

func (EntitySpawnedEvent) runnerEvent() {}

// RemovalReason tells why an entity left the active set.
type RemovalReason int

const (
	RemovedExited    RemovalReason = iota // Scrolled past the left edge
	RemovedCollected                      // Consumed by the character
)

// String returns a human-readable name for the reason.
func (r RemovalReason) String() string {
	switch r {
	case RemovedExited:
		return "exited"
	case RemovedCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// EntityRemovedEvent is emitted when an entity leaves the active set during a round.
type EntityRemovedEvent struct {
	Entity Entity
	Reason RemovalReason
}

func (EntityRemovedEvent) runnerEvent() {}

// FrameEvent is emitted after every frame update. Positions are read from Snapshot.
type FrameEvent struct {
	Frame uint64
}

func (FrameEvent) runnerEvent() {}
