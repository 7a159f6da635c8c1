package sequence

import (
	"fmt"
)

// MissingClipError reports a stage that could not run because its clip or the
// player that would run it is not available. The stage is skipped.
type MissingClipError struct {
	Stage Stage
	Clip  string
}

func (e *MissingClipError) Error() string {
	return fmt.Sprintf("stage %s: clip %q not available, skipping", e.Stage, e.Clip)
}

// InvalidStateTransition reports a completion event that does not match the
// current stage. It is ignored.
type InvalidStateTransition struct {
	Stage Stage
	Clip  string
}

func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("ignoring completion of %q in stage %s", e.Clip, e.Stage)
}
