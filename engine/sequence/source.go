package sequence

import (
	"github.com/Carmen-Shannon/boxdrop/engine/animator"
)

// ActionSource resolves the player and action a stage runs on. It is consulted
// each time a stage is entered, so resources that load late are picked up as soon
// as they exist.
type ActionSource interface {
	// Resolve returns the player and action for stage.
	//
	// Parameters:
	//   - stage: the stage about to be entered
	//
	// Returns:
	//   - animator.Animator: the player owning the action
	//   - animator.Action: the action to play
	//   - bool: false if the player has not been constructed or the clip is absent
	Resolve(stage Stage) (animator.Animator, animator.Action, bool)
}

// SourceFunc adapts a function to the ActionSource interface.
type SourceFunc func(stage Stage) (animator.Animator, animator.Action, bool)

// Resolve calls f(stage).
func (f SourceFunc) Resolve(stage Stage) (animator.Animator, animator.Action, bool) {
	return f(stage)
}
