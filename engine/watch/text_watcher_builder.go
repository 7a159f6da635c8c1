package watch

import "time"

// TextWatcherBuilderOption is a functional option for configuring a TextWatcher.
type TextWatcherBuilderOption func(*textWatcher)

// WithDebounce sets how long the file must stay quiet before it is read.
//
// Parameters:
//   - d: the quiet period; non-positive values are ignored
//
// Returns:
//   - TextWatcherBuilderOption: option function to apply
func WithDebounce(d time.Duration) TextWatcherBuilderOption {
	return func(w *textWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}
