package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedule_Fires(t *testing.T) {
	r := NewRegistry()
	done := make(chan struct{})

	r.Schedule("dose-1", 10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d after fire, want 0", r.Pending())
	}
}

func TestSchedule_ReplacesExisting(t *testing.T) {
	r := NewRegistry()
	var fired int32
	done := make(chan struct{})

	r.Schedule("dose-1", 10*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	r.Schedule("dose-1", 20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replacement timer did not fire")
	}
	time.Sleep(30 * time.Millisecond)
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}
}

func TestCancel(t *testing.T) {
	r := NewRegistry()
	var fired int32

	r.Schedule("dose-1", 20*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	if !r.Cancel("dose-1") {
		t.Error("Cancel returned false for pending timer")
	}
	if r.Cancel("dose-1") {
		t.Error("Cancel returned true for already-cancelled timer")
	}

	time.Sleep(40 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("cancelled timer fired")
	}
}

func TestStopAll(t *testing.T) {
	r := NewRegistry()
	var fired int32

	for _, key := range []string{"a", "b", "c"} {
		r.Schedule(key, 20*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	}
	r.StopAll()

	if r.Pending() != 0 {
		t.Errorf("Pending() = %d after StopAll", r.Pending())
	}
	time.Sleep(40 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("timers fired after StopAll")
	}
}
