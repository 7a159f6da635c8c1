package clock

import (
	"time"

	"github.com/Carmen-Shannon/boxdrop/engine/profiler"
)

// FrameClockBuilderOption is a functional option for configuring a FrameClock.
type FrameClockBuilderOption func(*frameClock)

// WithStep sets the fixed delta applied per frame. Non-positive values are ignored.
//
// Parameters:
//   - seconds: the step
//
// Returns:
//   - FrameClockBuilderOption: option function to apply
func WithStep(seconds float64) FrameClockBuilderOption {
	return func(c *frameClock) {
		if seconds > 0 {
			c.step = seconds
		}
	}
}

// WithMeasuredDelta makes Tick advance players by the wall time since the previous
// tick instead of the fixed step.
//
// Returns:
//   - FrameClockBuilderOption: option function to apply
func WithMeasuredDelta() FrameClockBuilderOption {
	return func(c *frameClock) {
		c.measured = true
	}
}

// WithFrameRate sets how many frames per second Run ticks. Non-positive values are
// ignored.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - FrameClockBuilderOption: option function to apply
func WithFrameRate(fps float64) FrameClockBuilderOption {
	return func(c *frameClock) {
		if fps > 0 {
			c.interval = time.Duration(float64(time.Second) / fps)
		}
	}
}

// WithProfiler ticks p once per frame.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - FrameClockBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) FrameClockBuilderOption {
	return func(c *frameClock) {
		c.profiler = p
	}
}
