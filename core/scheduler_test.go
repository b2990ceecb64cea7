package core

import (
	"testing"
	"time"
)

// fakeHost closes after a fixed number of frames and records call order.
type fakeHost struct {
	closeAfter int
	swaps      int
	calls      []string
}

func (h *fakeHost) ShouldClose() bool { return h.swaps >= h.closeAfter }
func (h *fakeHost) PollEvents()       { h.calls = append(h.calls, "poll") }
func (h *fakeHost) SwapBuffers() {
	h.swaps++
	h.calls = append(h.calls, "swap")
}

func TestSchedulerRunsOneTickPerFrame(t *testing.T) {
	host := &fakeHost{closeAfter: 5}
	ticks := 0
	s := NewScheduler(host, func(now time.Time) { ticks++ })

	s.Run()

	if ticks != 5 {
		t.Errorf("Run: expected 5 ticks, got %d", ticks)
	}
	if s.Frames() != 5 {
		t.Errorf("Frames: expected 5, got %d", s.Frames())
	}
}

func TestSchedulerStopsWhenHostClosed(t *testing.T) {
	host := &fakeHost{closeAfter: 0}
	ticks := 0
	s := NewScheduler(host, func(now time.Time) { ticks++ })

	s.Run()

	if ticks != 0 {
		t.Errorf("Run: expected no ticks for a closed host, got %d", ticks)
	}
}

func TestSchedulerFrameOrder(t *testing.T) {
	host := &fakeHost{closeAfter: 1}
	s := NewScheduler(host, func(now time.Time) { host.calls = append(host.calls, "tick") })
	s.BeforeFrame(func() { host.calls = append(host.calls, "hook") })

	s.Run()

	expected := []string{"poll", "hook", "tick", "swap"}
	if len(host.calls) != len(expected) {
		t.Fatalf("order: expected %v, got %v", expected, host.calls)
	}
	for i := range expected {
		if host.calls[i] != expected[i] {
			t.Errorf("order[%d]: expected %s, got %s", i, expected[i], host.calls[i])
		}
	}
}

func TestSchedulerUsesClock(t *testing.T) {
	host := &fakeHost{closeAfter: 2}
	base := time.Unix(1000, 0)
	var seen []time.Time
	s := NewScheduler(host, func(now time.Time) { seen = append(seen, now) })
	n := 0
	s.Clock = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}

	s.Run()

	if len(seen) != 2 {
		t.Fatalf("Clock: expected 2 timestamps, got %d", len(seen))
	}
	if !seen[1].After(seen[0]) {
		t.Errorf("Clock: expected increasing timestamps, got %v then %v", seen[0], seen[1])
	}
}
