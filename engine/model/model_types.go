package model

import (
	"fmt"
)

// --- Animation Types ---

// LoopMode controls what happens when an action reaches the end of its clip.
type LoopMode int

const (
	// LoopRepeat wraps the clip back to the start and reports a completed cycle.
	LoopRepeat LoopMode = iota

	// LoopOnce plays the clip a single time, reports it finished and deactivates.
	LoopOnce
)

// String returns the loop mode as it appears in configuration files.
func (m LoopMode) String() string {
	switch m {
	case LoopRepeat:
		return "repeat"
	case LoopOnce:
		return "once"
	default:
		return fmt.Sprintf("LoopMode(%d)", int(m))
	}
}

// ParseLoopMode converts a configuration string into a LoopMode.
//
// Parameters:
//   - s: "repeat" or "once"
//
// Returns:
//   - LoopMode: the parsed mode
//   - error: error if s is not a known mode
func ParseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "repeat", "":
		return LoopRepeat, nil
	case "once":
		return LoopOnce, nil
	default:
		return LoopRepeat, fmt.Errorf("unknown loop mode %q", s)
	}
}

// Interpolation identifies how values between two keyframes are computed.
type Interpolation int

const (
	// InterpolationLinear blends linearly (spherically for rotations) between keys.
	InterpolationLinear Interpolation = iota

	// InterpolationStep holds the previous key value until the next key.
	InterpolationStep
)

// AnimationClip represents a single named animation (box_open, box_close, etc.).
// Clips are immutable after load and may be shared by any number of actions.
type AnimationClip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float64

	// DefaultLoop is the loop mode new actions for this clip start with.
	DefaultLoop LoopMode

	// Channels contains animation data for each animated node.
	Channels []AnimationChannel
}

// AnimationChannel contains keyframe data for a single target node.
type AnimationChannel struct {
	// TargetName is the name of the scene node this channel animates.
	TargetName string

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// PositionInterpolation is how PositionKeys are sampled.
	PositionInterpolation Interpolation

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// RotationInterpolation is how RotationKeys are sampled.
	RotationInterpolation Interpolation

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe

	// ScaleInterpolation is how ScaleKeys are sampled.
	ScaleInterpolation Interpolation
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value [3]float32
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the quaternion value at this keyframe (x, y, z, w).
	Value [4]float32
}
