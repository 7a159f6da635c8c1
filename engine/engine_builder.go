package engine

import (
	"github.com/Carmen-Shannon/boxdrop/engine/config"
	"github.com/Carmen-Shannon/boxdrop/engine/loader"
	"github.com/Carmen-Shannon/boxdrop/engine/profiler"
	"github.com/Carmen-Shannon/boxdrop/engine/renderer"
	"github.com/Carmen-Shannon/boxdrop/engine/store"
	"github.com/Carmen-Shannon/boxdrop/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig sets the configuration the engine is built from. A nil config keeps
// the defaults.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg *config.Config) EngineBuilderOption {
	return func(e *engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler enables profiling with a preconfigured profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
		e.profilingEnabled = p != nil
	}
}

// WithWindow sets the window the engine polls for events and closes on exit.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer drawing each frame. Without one the engine runs
// headless.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithAsyncLoader sets the loader used for the font and model.
//
// Parameters:
//   - l: the async loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAsyncLoader(l loader.AsyncLoader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithTextStore sets where the last text is persisted when text persistence is
// enabled in the configuration.
//
// Parameters:
//   - s: the text store
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTextStore(s store.TextStore) EngineBuilderOption {
	return func(e *engine) {
		e.store = s
	}
}
