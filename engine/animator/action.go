package animator

import (
	"github.com/Carmen-Shannon/boxdrop/common"
	"github.com/Carmen-Shannon/boxdrop/engine/model"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
)

// binding pairs a clip channel with the node it writes.
type binding struct {
	channel *model.AnimationChannel
	node    *scene.Node
}

// action is the implementation of the Action interface.
type action struct {
	id       uint64
	owner    *animator
	clip     *model.AnimationClip
	bindings []binding

	playing  bool
	finished bool
	loop     model.LoopMode
	weight   float64
	clamp    bool
	time     float64
}

// Action is a runtime handle binding one clip to one Animator. It carries the
// mutable playback state; the clip itself is shared and never modified.
// Actions are created by Animator.ClipAction and are only valid on the Animator
// that created them.
type Action interface {
	// ID returns an identifier unique within the owning Animator.
	ID() uint64

	// Clip returns the clip this action plays.
	Clip() *model.AnimationClip

	// Playing reports whether the action is advancing.
	Playing() bool

	// Time returns the elapsed time within the current cycle in seconds.
	Time() float64

	// Loop returns the loop mode.
	Loop() model.LoopMode

	// SetLoop sets the loop mode. It takes effect on the next Update, so a
	// repeating action switched to LoopOnce finishes at the end of its current cycle.
	//
	// Parameters:
	//   - mode: LoopRepeat or LoopOnce
	SetLoop(mode model.LoopMode)

	// Weight returns the blend weight in [0, 1].
	Weight() float64

	// SetWeight sets the blend weight, clamped to [0, 1].
	//
	// Parameters:
	//   - w: the weight
	SetWeight(w float64)

	// ClampWhenFinished reports whether the pose holds the last sample when the
	// action stops or finishes, instead of reverting to the rest pose.
	ClampWhenFinished() bool

	// SetClampWhenFinished sets the clamp behaviour.
	//
	// Parameters:
	//   - clamp: true to hold the last sample
	SetClampWhenFinished(clamp bool)
}

var _ Action = &action{}

func newAction(id uint64, owner *animator, clip *model.AnimationClip) *action {
	a := &action{
		id:     id,
		owner:  owner,
		clip:   clip,
		loop:   clip.DefaultLoop,
		weight: 1,
	}
	for i := range clip.Channels {
		ch := &clip.Channels[i]
		node := owner.target.FindByName(ch.TargetName)
		if node == nil {
			// channels authored for another object drive the target itself
			node = owner.target
		}
		a.bindings = append(a.bindings, binding{channel: ch, node: node})
	}
	return a
}

func (a *action) ID() uint64 {
	return a.id
}

func (a *action) Clip() *model.AnimationClip {
	return a.clip
}

func (a *action) Playing() bool {
	return a.playing
}

func (a *action) Time() float64 {
	return a.time
}

func (a *action) Loop() model.LoopMode {
	return a.loop
}

func (a *action) SetLoop(mode model.LoopMode) {
	a.loop = mode
}

func (a *action) Weight() float64 {
	return a.weight
}

func (a *action) SetWeight(w float64) {
	a.weight = min(max(w, 0), 1)
}

func (a *action) ClampWhenFinished() bool {
	return a.clamp
}

func (a *action) SetClampWhenFinished(clamp bool) {
	a.clamp = clamp
}

// applies reports whether the action contributes to the pose this frame.
func (a *action) applies() bool {
	return a.playing || (a.finished && a.clamp)
}

// sample blends the action's pose at its current time into the bound nodes.
func (a *action) sample() {
	t := float32(a.time)
	w := float32(a.weight)
	for _, b := range a.bindings {
		pose := b.node.Pose()
		if v, ok := b.channel.SamplePosition(t); ok {
			pose.Translation = common.Lerp3(pose.Translation, v, w)
		}
		if v, ok := b.channel.SampleRotation(t); ok {
			pose.Rotation = common.Slerp(pose.Rotation, v, w)
		}
		if v, ok := b.channel.SampleScale(t); ok {
			pose.Scale = common.Lerp3(pose.Scale, v, w)
		}
		b.node.SetPose(pose)
	}
}

// restore puts every node the action drives back to its rest pose.
func (a *action) restore() {
	for _, b := range a.bindings {
		b.node.SetPose(b.node.RestPose())
	}
}
