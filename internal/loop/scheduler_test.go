package loop

import (
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := NewScheduler(epoch)
	calls := 0
	s.After(300*time.Millisecond, func() { calls++ })

	s.Advance(epoch.Add(299 * time.Millisecond))
	if calls != 0 {
		t.Fatalf("fired early: calls = %d", calls)
	}
	s.Advance(epoch.Add(300 * time.Millisecond))
	s.Advance(epoch.Add(time.Second))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerEveryCatchesUp(t *testing.T) {
	s := NewScheduler(epoch)
	calls := 0
	s.Every(time.Second, func() { calls++ })

	s.Advance(epoch.Add(3500 * time.Millisecond))
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	s.Advance(epoch.Add(4 * time.Second))
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestSchedulerCancelIsIdempotent(t *testing.T) {
	s := NewScheduler(epoch)
	fired := false
	id := s.After(time.Second, func() { fired = true })

	s.Cancel(id)
	s.Cancel(id)
	s.Cancel(0)
	s.Advance(epoch.Add(2 * time.Second))
	if fired {
		t.Error("cancelled timer fired")
	}

	s.Every(time.Second, func() { fired = true })
	s.CancelAll()
	s.CancelAll()
	s.Advance(epoch.Add(5 * time.Second))
	if fired {
		t.Error("timer fired after CancelAll")
	}
}

func TestSchedulerCallbackSeesDueTime(t *testing.T) {
	s := NewScheduler(epoch)
	var order []time.Duration
	s.After(100*time.Millisecond, func() {
		order = append(order, s.Now().Sub(epoch))
		// Scheduled relative to the firing time, not the Advance target.
		s.After(100*time.Millisecond, func() {
			order = append(order, s.Now().Sub(epoch))
		})
	})

	s.Advance(epoch.Add(time.Second))
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(order) != len(want) {
		t.Fatalf("fired %d times, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("firing %d at %v, want %v", i, order[i], want[i])
		}
	}
	if s.Now() != epoch.Add(time.Second) {
		t.Errorf("Now = %v, want advance target", s.Now())
	}
}

func TestSchedulerPeriodicCancelsItself(t *testing.T) {
	s := NewScheduler(epoch)
	var id TimerID
	calls := 0
	id = s.Every(time.Second, func() {
		calls++
		if calls == 2 {
			s.Cancel(id)
		}
	})

	s.Advance(epoch.Add(10 * time.Second))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
