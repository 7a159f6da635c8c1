package animator

import (
	"github.com/Carmen-Shannon/boxdrop/engine/model"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithClips is an option builder that sets the clip library actions are resolved from.
//
// Parameters:
//   - clips: the clip library
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the clips option to an animator
func WithClips(clips model.ClipLibrary) AnimatorBuilderOption {
	return func(a *animator) {
		a.clips = clips
	}
}

// WithName is an option builder that overrides the animator name used in logs.
// Defaults to the target node name.
//
// Parameters:
//   - name: the animator name
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the name option to an animator
func WithName(name string) AnimatorBuilderOption {
	return func(a *animator) {
		a.name = name
	}
}

// WithTimeScale is an option builder that scales every step passed to Update.
// Negative values are treated as zero.
//
// Parameters:
//   - scale: the playback speed multiplier (1.0 = normal)
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the time scale option to an animator
func WithTimeScale(scale float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.timeScale = max(scale, 0)
	}
}
