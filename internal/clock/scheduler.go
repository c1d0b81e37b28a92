package clock

import (
	"time"
)

// Timer is a handle to a callback registered with a Scheduler.
type Timer struct {
	seq      uint64
	interval time.Duration
	due      time.Duration
	periodic bool
	stopped  bool
	fn       func()
}

// Stop cancels the timer. Stopping twice is a no-op.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Scheduler is a single-threaded event loop owned by the host.
//
// Timers fire from Advance in chronological order; timers due at the same instant fire
// in registration order. Frame requests behave like requestAnimationFrame: a callback
// requested while frames are running waits for the next RunFrames call.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	timers  []*Timer
	frames  []func()
	last    time.Time
	synced  bool
	maxStep time.Duration
}

// NewScheduler creates a scheduler at elapsed time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed scheduler time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every registers fn to run every interval, first firing one interval from now.
// It panics on a non-positive interval, which would never let Advance finish.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		panic("clock: non-positive timer interval")
	}
	return s.add(interval, true, fn)
}

// After registers fn to run once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, false, fn)
}

func (s *Scheduler) add(interval time.Duration, periodic bool, fn func()) *Timer {
	s.seq++
	t := &Timer{
		seq:      s.seq,
		interval: interval,
		due:      s.now + interval,
		periodic: periodic,
		fn:       fn,
	}
	s.timers = append(s.timers, t)
	return t
}

// ActiveTimers returns how many timers can still fire.
func (s *Scheduler) ActiveTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing every timer that falls due.
// A periodic timer due several times within d fires once per period.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.periodic {
			next.due += next.interval
		} else {
			next.stopped = true
		}
		next.fn()
	}

	s.now = target
	s.compact()
}

// nextDue returns the earliest active timer due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.stopped || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// RequestFrame queues fn for the next RunFrames call.
func (s *Scheduler) RequestFrame(fn func()) {
	s.frames = append(s.frames, fn)
}

// PendingFrames returns how many frame callbacks are queued.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// RunFrames runs the callbacks queued before this call and returns how many ran.
func (s *Scheduler) RunFrames() int {
	batch := s.frames
	s.frames = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// SetMaxStep caps how much time a single Pump may advance. Zero disables the cap.
// Hosts use it so a suspended process does not replay seconds of spawns at once.
func (s *Scheduler) SetMaxStep(d time.Duration) {
	s.maxStep = d
}

// Pump advances the scheduler by the wall-clock time elapsed since the previous Pump.
// The first call, and the first call after Resync, only records the baseline.
func (s *Scheduler) Pump(now time.Time) {
	if !s.synced {
		s.Resync(now)
		return
	}
	d := now.Sub(s.last)
	s.last = now
	if d <= 0 {
		return
	}
	if s.maxStep > 0 && d > s.maxStep {
		d = s.maxStep
	}
	s.Advance(d)
}

// Resync sets the Pump baseline without advancing, e.g. after a pause.
func (s *Scheduler) Resync(now time.Time) {
	s.last = now
	s.synced = true
}

// Reset cancels every timer and drops queued frames. Elapsed time keeps running.
func (s *Scheduler) Reset() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.compact()
	s.frames = nil
}
