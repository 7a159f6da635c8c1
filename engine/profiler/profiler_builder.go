package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are logged. Non-positive values are ignored.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithReporter appends the result of fn to every stats line. Empty results are
// skipped.
//
// Parameters:
//   - fn: returns a short status fragment
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithReporter(fn func() string) ProfilerBuilderOption {
	return func(p *Profiler) {
		if fn != nil {
			p.reporters = append(p.reporters, fn)
		}
	}
}

// WithClock overrides the time source.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogf overrides where stats lines are written. Defaults to log.Printf.
//
// Parameters:
//   - logf: printf-style sink
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogf(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}
