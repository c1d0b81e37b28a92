// Package core contains the pure runner simulation: physics, spawning, movement,
// collisions and the round state machine. It never renders; presentation layers
// observe its events and read its snapshots.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/arcade-runner/internal/clock"
	"github.com/vovakirdan/arcade-runner/internal/config"
	platformcore "github.com/vovakirdan/arcade-runner/internal/core"
)

// ErrInvalidTransition is returned when Start or Restart is called in the wrong state.
var ErrInvalidTransition = errors.New("invalid state transition")

// State is the round lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Host paces a session: periodic timers plus a per-refresh frame request.
// *clock.Scheduler implements it.
type Host interface {
	Every(interval time.Duration, fn func()) *clock.Timer
	RequestFrame(fn func())
}

// Session owns all mutable state of one player's game.
type Session struct {
	host      Host
	cfg       config.RunnerConfig
	pending   *config.RunnerConfig // Applied at the next (re)start
	spawner   *Spawner
	observers []Observer

	state     State
	round     int
	frame     uint64
	character Character

	obstacles    []Entity
	collectibles []Entity

	score          int
	collected      int
	speed          float64
	speedMilestone int // Multiples of SpeedEvery already applied
	celebration    int // Multiples of CelebrateEvery already celebrated

	timers []*clock.Timer
}

// NewSession creates a session in the NotStarted state.
func NewSession(cfg config.RunnerConfig, host Host, seed int64) *Session {
	return &Session{
		host:         host,
		cfg:          cfg,
		spawner:      NewSpawner(seed, cfg),
		character:    NewCharacter(cfg.Physics.MaxJumps),
		speed:        cfg.Scoring.InitialSpeed,
		obstacles:    make([]Entity, 0, 8),
		collectibles: make([]Entity, 0, 8),
	}
}

// Subscribe registers an observer for all future events.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// SetConfig stages a configuration for the next Start or Restart.
// The running round keeps its current tunables.
func (s *Session) SetConfig(cfg config.RunnerConfig) {
	s.pending = &cfg
}

// Start begins the first round.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return fmt.Errorf("start while %s: %w", s.state, ErrInvalidTransition)
	}
	s.begin()
	return nil
}

// Restart begins a new round after game over, fully resetting the session.
func (s *Session) Restart() error {
	if s.state != StateGameOver {
		return fmt.Errorf("restart while %s: %w", s.state, ErrInvalidTransition)
	}
	s.begin()
	return nil
}

// Jump handles the jump trigger. Before the first round it starts the game; while
// running it spends a jump charge; after game over it is ignored.
// Returns true if the trigger had an effect.
func (s *Session) Jump() bool {
	switch s.state {
	case StateNotStarted:
		s.begin()
		return true
	case StateRunning:
		return s.character.Jump(s.cfg.Physics.JumpStrength)
	default:
		return false
	}
}

func (s *Session) begin() {
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
		s.spawner.UpdateConfig(s.cfg)
	}

	s.stopTimers()
	s.round++
	s.frame = 0
	s.character = NewCharacter(s.cfg.Physics.MaxJumps)
	s.obstacles = s.obstacles[:0]
	s.collectibles = s.collectibles[:0]
	s.score = 0
	s.collected = 0
	s.speed = s.cfg.Scoring.InitialSpeed
	s.speedMilestone = 0
	s.celebration = 0
	s.state = StateRunning

	s.timers = append(s.timers,
		s.host.Every(s.cfg.Obstacles.Interval, s.spawnObstacle),
		s.host.Every(s.cfg.Collectibles.Interval, s.spawnCollectible),
		s.host.Every(s.cfg.Scoring.TickInterval, s.scoreTick),
	)

	s.emit(StartedEvent{Round: s.round, Speed: s.speed})

	round := s.round
	var loop func()
	loop = func() {
		// A loop from an earlier round never touches the current one.
		if s.state != StateRunning || s.round != round {
			return
		}
		s.step()
		if s.state == StateRunning {
			s.host.RequestFrame(loop)
		}
	}
	s.host.RequestFrame(loop)
}

func (s *Session) stopTimers() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = s.timers[:0]
}

func (s *Session) spawnObstacle() {
	if s.state != StateRunning {
		return
	}
	e := s.spawner.Obstacle()
	s.obstacles = append(s.obstacles, e)
	s.emit(EntitySpawnedEvent{Entity: e})
}

func (s *Session) spawnCollectible() {
	if s.state != StateRunning {
		return
	}
	e := s.spawner.Collectible()
	s.collectibles = append(s.collectibles, e)
	s.emit(EntitySpawnedEvent{Entity: e})
}

func (s *Session) scoreTick() {
	if s.state != StateRunning {
		return
	}
	s.addScore(s.cfg.Scoring.TickPoints, ScoreFromTick)
}

// step runs one frame: physics, then movement, then collisions.
func (s *Session) step() {
	s.frame++
	s.character.Step(s.cfg.Physics.Gravity)

	exited := func(e Entity) {
		s.emit(EntityRemovedEvent{Entity: e, Reason: RemovedExited})
	}
	s.obstacles = Advance(s.obstacles, s.speed, s.cfg.Field.Width, exited)
	s.collectibles = Advance(s.collectibles, s.speed, s.cfg.Field.Width, exited)

	player := CharacterBounds(s.character, s.cfg)
	if hit, ok := FirstHit(player, s.obstacles, s.cfg.Field); ok {
		s.endGame(hit)
		return
	}

	s.collectibles = Consume(player, s.collectibles, s.cfg.Field, func(e Entity) {
		s.emit(EntityRemovedEvent{Entity: e, Reason: RemovedCollected})
		s.collected++
		s.emit(CollectedChangedEvent{Collected: s.collected})
		s.addScore(s.cfg.Collectibles.Value, ScoreFromPickup)
	})

	s.emit(FrameEvent{Frame: s.frame})
}

// addScore raises the score and applies every speed and celebration milestone reached.
func (s *Session) addScore(delta int, src ScoreSource) {
	if delta <= 0 {
		return
	}
	s.score += delta
	s.emit(ScoreChangedEvent{Score: s.score, Delta: delta, Source: src})

	sc := s.cfg.Scoring
	for s.speedMilestone < s.score/sc.SpeedEvery {
		s.speedMilestone++
		s.speed += sc.SpeedStep
		s.emit(SpeedChangedEvent{Speed: s.speed, Milestone: s.speedMilestone * sc.SpeedEvery})
	}
	for s.celebration < s.score/sc.CelebrateEvery {
		s.celebration++
		s.emit(CelebrateEvent{Milestone: s.celebration * sc.CelebrateEvery, Duration: sc.CelebrationDuration})
	}
}

func (s *Session) endGame(cause Entity) {
	s.state = StateGameOver
	s.stopTimers()
	s.emit(GameOverEvent{
		Round:      s.round,
		FinalScore: s.score,
		Collected:  s.collected,
		Obstacle:   cause,
	})
}

func (s *Session) emit(ev Event) {
	for _, o := range s.observers {
		o.OnEvent(ev)
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns the current (or final) score.
func (s *Session) Score() int {
	return s.score
}

// Collected returns how many collectibles were picked up this round.
func (s *Session) Collected() int {
	return s.collected
}

// Speed returns the current scroll speed in pixels per frame.
func (s *Session) Speed() float64 {
	return s.speed
}

// Round returns how many rounds have started.
func (s *Session) Round() int {
	return s.round
}

// CelebrationIndex returns how many celebration milestones were reached this round.
func (s *Session) CelebrationIndex() int {
	return s.celebration
}

// Character returns a copy of the character state.
func (s *Session) Character() Character {
	return s.character
}

// Config returns the tunables of the current round.
func (s *Session) Config() config.RunnerConfig {
	return s.cfg
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	State           State
	Round           int
	Frame           uint64
	Score           int
	Collected       int
	Speed           float64
	Character       Character
	CharacterBounds platformcore.RectF
	Obstacles       []Entity
	Collectibles    []Entity
	Field           config.FieldConfig
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:           s.state,
		Round:           s.round,
		Frame:           s.frame,
		Score:           s.score,
		Collected:       s.collected,
		Speed:           s.speed,
		Character:       s.character,
		CharacterBounds: CharacterBounds(s.character, s.cfg),
		Obstacles:       append([]Entity(nil), s.obstacles...),
		Collectibles:    append([]Entity(nil), s.collectibles...),
		Field:           s.cfg.Field,
	}
}
