package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-runner/internal/clock"
	"github.com/vovakirdan/arcade-runner/internal/config"
)

const frameTime = time.Second / 60

// recorder collects every event a session emits.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.events = append(r.events, ev)
}

func eventsOf[T Event](r *recorder) []T {
	var out []T
	for _, ev := range r.events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}

// quietConfig disables spawning so score and speed can be tested in isolation.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.Interval = time.Hour
	cfg.Collectibles.Interval = time.Hour
	return cfg
}

func newTestSession(t *testing.T, cfg config.RunnerConfig) (*Session, *clock.Scheduler, *recorder) {
	t.Helper()
	sched := clock.NewScheduler()
	s := NewSession(cfg, sched, 1)
	rec := &recorder{}
	s.Subscribe(rec)
	return s, sched, rec
}

// refresh simulates n display refreshes: timers first, then the frame.
func refresh(sched *clock.Scheduler, n int) {
	for i := 0; i < n; i++ {
		sched.Advance(frameTime)
		sched.RunFrames()
	}
}

func TestSessionStartsNotStarted(t *testing.T) {
	s, sched, _ := newTestSession(t, quietConfig())

	assert.Equal(t, StateNotStarted, s.State())
	assert.Equal(t, 0, sched.ActiveTimers())
	assert.Equal(t, 0, sched.PendingFrames())

	// Nothing happens until the game starts
	refresh(sched, 120)
	assert.Equal(t, 0, s.Score())
}

func TestSessionTransitions(t *testing.T) {
	s, sched, rec := newTestSession(t, quietConfig())

	err := s.Restart()
	assert.True(t, errors.Is(err, ErrInvalidTransition), "restart before start: %v", err)

	require.NoError(t, s.Start())
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 3, sched.ActiveTimers(), "obstacle, collectible and score timers are armed")
	assert.Equal(t, 1, sched.PendingFrames(), "the frame loop is requested")
	require.Len(t, eventsOf[StartedEvent](rec), 1)

	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Restart(), ErrInvalidTransition)
}

func TestJumpStartsGameFromTitle(t *testing.T) {
	s, _, _ := newTestSession(t, quietConfig())

	assert.True(t, s.Jump())
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 2, s.Character().JumpsRemaining(), "the starting press does not spend a charge")
}

func TestScoreTicksAndSpeedRamp(t *testing.T) {
	s, sched, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	sched.Advance(9900 * time.Millisecond)
	assert.Equal(t, 99, s.Score())
	assert.Equal(t, 10.0, s.Speed())

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 10.5, s.Speed(), "first multiple of 100 adds 0.5")

	sched.Advance(9900 * time.Millisecond)
	assert.Equal(t, 199, s.Score())
	assert.Equal(t, 10.5, s.Speed(), "no change between milestones")

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, 11.0, s.Speed())

	changes := eventsOf[SpeedChangedEvent](rec)
	require.Len(t, changes, 2)
	assert.Equal(t, 100, changes[0].Milestone)
	assert.Equal(t, 200, changes[1].Milestone)

	// Score is monotonic
	last := 0
	for _, ev := range eventsOf[ScoreChangedEvent](rec) {
		assert.Greater(t, ev.Score, last)
		last = ev.Score
	}
}

func TestPickupCrossingMilestoneAppliesSpeedOnce(t *testing.T) {
	s, _, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	s.score = 99
	s.addScore(50, ScoreFromPickup)
	assert.Equal(t, 149, s.Score())
	assert.Equal(t, 10.5, s.Speed())

	// Passing 200 later still counts once
	s.addScore(1, ScoreFromTick)
	assert.Equal(t, 10.5, s.Speed())
	require.Len(t, eventsOf[SpeedChangedEvent](rec), 1)
}

func TestCelebrationOncePerMultipleOf500(t *testing.T) {
	s, sched, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	sched.Advance(49900 * time.Millisecond)
	assert.Empty(t, eventsOf[CelebrateEvent](rec))

	sched.Advance(100 * time.Millisecond)
	celebrations := eventsOf[CelebrateEvent](rec)
	require.Len(t, celebrations, 1)
	assert.Equal(t, 500, celebrations[0].Milestone)
	assert.Equal(t, 1500*time.Millisecond, celebrations[0].Duration)
	assert.Equal(t, 1, s.CelebrationIndex())

	// Ticks through 501..999 fire nothing new
	sched.Advance(49900 * time.Millisecond)
	assert.Len(t, eventsOf[CelebrateEvent](rec), 1)

	sched.Advance(100 * time.Millisecond)
	celebrations = eventsOf[CelebrateEvent](rec)
	require.Len(t, celebrations, 2)
	assert.Equal(t, 1000, celebrations[1].Milestone)
}

func TestCelebrationReachedByPickup(t *testing.T) {
	s, _, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	s.score = 480
	s.addScore(50, ScoreFromPickup)
	s.addScore(50, ScoreFromPickup)

	require.Len(t, eventsOf[CelebrateEvent](rec), 1)
	assert.Equal(t, 1, s.CelebrationIndex())
}

// runUntilGameOver refreshes until the round ends, failing after limit refreshes.
func runUntilGameOver(t *testing.T, s *Session, sched *clock.Scheduler, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		refresh(sched, 1)
		require.GreaterOrEqual(t, s.Character().Y, 0.0)
		if s.State() == StateGameOver {
			return i
		}
	}
	t.Fatalf("no game over within %d refreshes", limit)
	return 0
}

func TestObstacleCollisionEndsGame(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.TopChance = 0 // Floor obstacles always hit a grounded character
	s, sched, rec := newTestSession(t, cfg)
	require.NoError(t, s.Start())

	runUntilGameOver(t, s, sched, 300)

	overs := eventsOf[GameOverEvent](rec)
	require.Len(t, overs, 1)
	assert.Equal(t, s.Score(), overs[0].FinalScore)
	assert.Equal(t, KindObstacle, overs[0].Obstacle.Kind)
	assert.True(t, s.Snapshot().CharacterBounds.Overlaps(overs[0].Obstacle.Bounds(cfg.Field)))

	// Timers are cancelled and the frame loop stopped rescheduling itself
	assert.Equal(t, 0, sched.ActiveTimers())
	assert.Equal(t, 0, sched.PendingFrames())
}

func TestNothingChangesAfterGameOver(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.TopChance = 0
	s, sched, rec := newTestSession(t, cfg)
	require.NoError(t, s.Start())
	runUntilGameOver(t, s, sched, 300)

	before := s.Snapshot()
	eventCount := len(rec.events)

	refresh(sched, 600)
	assert.False(t, s.Jump(), "jump is ignored after game over")

	// Orphaned callbacks are guarded too
	s.spawnObstacle()
	s.spawnCollectible()
	s.scoreTick()

	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, rec.events, eventCount)
}

func TestCollectiblePickupScoresWithoutEndingGame(t *testing.T) {
	s, sched, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	// After one frame at speed 10 this sits right on the grounded character
	s.collectibles = append(s.collectibles, Entity{ID: 100, Kind: KindCollectible, Traveled: 690, Width: 40, Height: 40})

	sched.RunFrames()

	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 50, s.Score())
	assert.Equal(t, 1, s.Collected())
	assert.Empty(t, s.Snapshot().Collectibles)

	removed := eventsOf[EntityRemovedEvent](rec)
	require.Len(t, removed, 1)
	assert.Equal(t, RemovedCollected, removed[0].Reason)
	assert.Equal(t, []CollectedChangedEvent{{Collected: 1}}, eventsOf[CollectedChangedEvent](rec))
}

func TestSimultaneousPickupsAllCount(t *testing.T) {
	s, sched, _ := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	s.collectibles = append(s.collectibles,
		Entity{ID: 100, Kind: KindCollectible, Traveled: 690, Width: 40, Height: 40},
		Entity{ID: 101, Kind: KindCollectible, Traveled: 700, Bottom: 10, Width: 40, Height: 40},
		Entity{ID: 102, Kind: KindCollectible, Traveled: 0, Bottom: 300, Width: 40, Height: 40},
	)

	sched.RunFrames()

	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 2, s.Collected())
	snap := s.Snapshot()
	require.Len(t, snap.Collectibles, 1)
	assert.Equal(t, EntityID(102), snap.Collectibles[0].ID)
}

func TestObstacleHitWinsOverPickupInSameFrame(t *testing.T) {
	s, sched, _ := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	s.obstacles = append(s.obstacles, Entity{ID: 1, Kind: KindObstacle, Traveled: 690, Width: 60, Height: 60})
	s.collectibles = append(s.collectibles, Entity{ID: 2, Kind: KindCollectible, Traveled: 690, Width: 40, Height: 40})

	sched.RunFrames()

	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Collected())
}

func TestEntitiesExitWithinOnePass(t *testing.T) {
	s, sched, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	s.obstacles = append(s.obstacles, Entity{ID: 1, Kind: KindObstacle, Traveled: 795, Width: 60, Height: 60, Bottom: 340, Inverted: true})
	s.collectibles = append(s.collectibles, Entity{ID: 2, Kind: KindCollectible, Traveled: 791, Bottom: 300, Width: 40, Height: 40})

	sched.RunFrames()

	snap := s.Snapshot()
	assert.Empty(t, snap.Obstacles)
	assert.Empty(t, snap.Collectibles)
	for _, ev := range eventsOf[EntityRemovedEvent](rec) {
		assert.Equal(t, RemovedExited, ev.Reason)
	}
	assert.Len(t, eventsOf[EntityRemovedEvent](rec), 2)
}

func TestSpawnTimersFeedEntities(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	s, sched, rec := newTestSession(t, cfg)
	require.NoError(t, s.Start())

	sched.Advance(1750 * time.Millisecond)

	spawned := eventsOf[EntitySpawnedEvent](rec)
	require.Len(t, spawned, 2)
	assert.Equal(t, KindObstacle, spawned[0].Entity.Kind)
	assert.Equal(t, KindCollectible, spawned[1].Entity.Kind)

	snap := s.Snapshot()
	assert.Len(t, snap.Obstacles, 1)
	assert.Len(t, snap.Collectibles, 1)
}

func TestRestartFullyResets(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.TopChance = 0
	s, sched, rec := newTestSession(t, cfg)
	require.NoError(t, s.Start())

	// Jump once so the character state is dirty
	refresh(sched, 5)
	s.Jump()
	runUntilGameOver(t, s, sched, 600)
	require.Greater(t, s.Score(), 0)

	require.NoError(t, s.Restart())

	snap := s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.Collected)
	assert.Equal(t, cfg.Scoring.InitialSpeed, snap.Speed)
	assert.Empty(t, snap.Obstacles)
	assert.Empty(t, snap.Collectibles)
	assert.Equal(t, 0.0, snap.Character.Y)
	assert.Equal(t, 0.0, snap.Character.Velocity)
	assert.Equal(t, cfg.Physics.MaxJumps, snap.Character.JumpsRemaining())
	assert.Equal(t, 0, s.CelebrationIndex())

	assert.Equal(t, 3, sched.ActiveTimers())
	assert.Equal(t, 1, sched.PendingFrames())

	started := eventsOf[StartedEvent](rec)
	require.Len(t, started, 2)
	assert.Equal(t, 2, started[1].Round)
}

func TestSetConfigAppliesOnNextRound(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.TopChance = 0
	s, sched, _ := newTestSession(t, cfg)
	require.NoError(t, s.Start())

	next := cfg
	next.Scoring.InitialSpeed = 20
	next.Physics.MaxJumps = 3
	s.SetConfig(next)

	assert.Equal(t, 10.0, s.Speed(), "running round keeps its tunables")

	runUntilGameOver(t, s, sched, 300)
	require.NoError(t, s.Restart())

	assert.Equal(t, 20.0, s.Speed())
	assert.Equal(t, 3, s.Character().JumpsRemaining())
	assert.Equal(t, 20.0, s.Config().Scoring.InitialSpeed)
}

func TestSessionIsDeterministic(t *testing.T) {
	play := func() (Snapshot, int) {
		sched := clock.NewScheduler()
		s := NewSession(config.DefaultRunnerConfig(), sched, 12345)
		rec := &recorder{}
		s.Subscribe(rec)
		require.NoError(t, s.Start())

		for i := 0; i < 1200 && s.State() == StateRunning; i++ {
			if i%40 == 0 || i%40 == 8 {
				s.Jump()
			}
			refresh(sched, 1)
		}
		return s.Snapshot(), len(rec.events)
	}

	snap1, n1 := play()
	snap2, n2 := play()

	assert.Equal(t, snap1, snap2)
	assert.Equal(t, n1, n2)
}

func TestFrameOrderPhysicsBeforeMovementBeforeCollision(t *testing.T) {
	s, sched, _ := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	// The obstacle only reaches the character after moving this frame, and the
	// character only clears it if the jump is integrated first.
	s.Jump()
	s.obstacles = append(s.obstacles, Entity{ID: 1, Kind: KindObstacle, Traveled: 690, Width: 60, Height: 5})

	sched.RunFrames()

	assert.Equal(t, StateRunning, s.State(), "character rose 11.5px before the collision check")
	assert.Equal(t, 700.0, s.Snapshot().Obstacles[0].Traveled)
}

func TestFrameEventsFollowFrames(t *testing.T) {
	s, sched, rec := newTestSession(t, quietConfig())
	require.NoError(t, s.Start())

	refresh(sched, 3)

	frames := eventsOf[FrameEvent](rec)
	require.Len(t, frames, 3)
	assert.Equal(t, uint64(3), frames[2].Frame)
}
