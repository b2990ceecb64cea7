package renderer

import (
	"fmt"
	"runtime"
	"time"

	"lightlab/core"
)

// FrameStats tracks frame rate and frame time, refreshed once per
// interval.
type FrameStats struct {
	interval    time.Duration
	frames      int
	windowStart time.Time
	started     bool

	fps       float64
	frameTime time.Duration
	memStats  runtime.MemStats
}

// NewFrameStats returns stats that refresh every second.
func NewFrameStats() *FrameStats {
	return &FrameStats{interval: time.Second}
}

// Tick records one presented frame at now. It reports whether the
// averages were refreshed by this call.
func (s *FrameStats) Tick(now time.Time) bool {
	if !s.started {
		s.started = true
		s.windowStart = now
		return false
	}
	s.frames++
	elapsed := now.Sub(s.windowStart)
	if elapsed < s.interval {
		return false
	}

	s.fps = float64(s.frames) / elapsed.Seconds()
	s.frameTime = elapsed / time.Duration(s.frames)

	runtime.ReadMemStats(&s.memStats)
	core.Logger().Debug("frame stats",
		"fps", fmt.Sprintf("%.1f", s.fps),
		"frame_ms", fmt.Sprintf("%.2f", ms(s.frameTime)),
		"heap_mb", fmt.Sprintf("%.1f", float64(s.memStats.Alloc)/1024/1024),
		"gc", s.memStats.NumGC)

	s.frames = 0
	s.windowStart = now
	return true
}

// FPS returns frames per second over the last full interval.
func (s *FrameStats) FPS() float64 { return s.fps }

// FrameTime returns the mean frame time over the last full interval.
func (s *FrameStats) FrameTime() time.Duration { return s.frameTime }

// Line formats the stats for the HUD.
func (s *FrameStats) Line() string {
	return fmt.Sprintf("%.0f FPS  %.2f ms", s.fps, ms(s.frameTime))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
