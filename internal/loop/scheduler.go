package loop

import "time"

// TimerID identifies a scheduled callback. The zero value is never issued,
// so an unset field can be cancelled safely.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Time
	interval time.Duration // Zero for one-shot timers
	fn       func()
}

// Scheduler runs delayed and periodic callbacks on the game loop's own
// goroutine. Time only moves when Advance is called, so callbacks always run
// between frames and never concurrently with the simulation.
type Scheduler struct {
	now    time.Time
	nextID TimerID
	timers []*timer
}

// NewScheduler creates a scheduler whose clock starts at now.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every runs fn every d, starting d after the current time.
func (s *Scheduler) Every(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		panic("loop: non-positive interval")
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, &timer{
		id:       s.nextID,
		due:      s.now.Add(delay),
		interval: interval,
		fn:       fn,
	})
	return s.nextID
}

// Cancel stops a timer. Cancelling an unknown or already-fired timer is a no-op.
func (s *Scheduler) Cancel(id TimerID) {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// CancelAll stops every pending timer.
func (s *Scheduler) CancelAll() {
	s.timers = s.timers[:0]
}

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock to now, running every callback that falls due in
// due-time order. Callbacks see Now() as their own due time and may schedule
// or cancel timers. A periodic timer that fell behind fires once per missed
// interval.
func (s *Scheduler) Advance(now time.Time) {
	for {
		next := s.earliest()
		if next == nil || next.due.After(now) {
			break
		}
		s.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			s.Cancel(next.id)
		}
		next.fn()
	}
	if now.After(s.now) {
		s.now = now
	}
}

func (s *Scheduler) earliest() *timer {
	var best *timer
	for _, t := range s.timers {
		if best == nil || t.due.Before(best.due) {
			best = t
		}
	}
	return best
}
