package sequence

import (
	"github.com/Carmen-Shannon/boxdrop/common"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithClipNames sets the clip names each stage plays. Empty fields keep the
// defaults.
//
// Parameters:
//   - names: the clip names
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithClipNames(names ClipNames) ControllerBuilderOption {
	return func(c *controller) {
		c.clips = ClipNames{
			Open:  common.Coalesce(names.Open, c.clips.Open),
			Drop:  common.Coalesce(names.Drop, c.clips.Drop),
			Close: common.Coalesce(names.Close, c.clips.Close),
		}
	}
}

// WithErrorHandler sets a callback receiving every MissingClipError, in addition
// to the log line.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithErrorHandler(fn func(error)) ControllerBuilderOption {
	return func(c *controller) {
		c.onError = fn
	}
}

// WithDebug enables logging of stage changes and ignored events.
//
// Parameters:
//   - debug: true to log
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDebug(debug bool) ControllerBuilderOption {
	return func(c *controller) {
		c.debug = debug
	}
}
