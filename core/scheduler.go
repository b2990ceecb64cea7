package core

import "time"

// FrameHost is the part of the host environment the frame loop drives.
// *Window implements it.
type FrameHost interface {
	ShouldClose() bool
	PollEvents()
	SwapBuffers()
}

// TickFunc performs one update+render cycle for the frame starting at now.
type TickFunc func(now time.Time)

// Scheduler runs exactly one tick per host frame, strictly in sequence,
// until the host asks to close.
type Scheduler struct {
	host   FrameHost
	tick   TickFunc
	before []func()
	frames uint64

	// Clock supplies the frame timestamp. Defaults to time.Now.
	Clock func() time.Time
}

func NewScheduler(host FrameHost, tick TickFunc) *Scheduler {
	return &Scheduler{
		host:  host,
		tick:  tick,
		Clock: time.Now,
	}
}

// BeforeFrame registers fn to run after event polling and before the tick.
// Hooks run in registration order.
func (s *Scheduler) BeforeFrame(fn func()) {
	s.before = append(s.before, fn)
}

// Run blocks until the host reports it should close.
func (s *Scheduler) Run() {
	for !s.host.ShouldClose() {
		s.Step()
	}
	Logger().Info("frame loop stopped", "frames", s.frames)
}

// Step runs a single frame: poll, hooks, tick, present.
func (s *Scheduler) Step() {
	s.host.PollEvents()
	for _, fn := range s.before {
		fn()
	}
	s.tick(s.Clock())
	s.host.SwapBuffers()
	s.frames++
}

// Frames returns the number of completed frames.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}
