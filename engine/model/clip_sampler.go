package model

import (
	"sort"

	"github.com/Carmen-Shannon/boxdrop/common"
)

// SamplePosition evaluates the translation track at time t.
//
// Parameters:
//   - t: the clip-local time in seconds
//
// Returns:
//   - [3]float32: the sampled translation
//   - bool: false if the channel has no translation keys
func (c *AnimationChannel) SamplePosition(t float32) ([3]float32, bool) {
	return sampleVector(c.PositionKeys, c.PositionInterpolation, t)
}

// SampleScale evaluates the scale track at time t.
//
// Parameters:
//   - t: the clip-local time in seconds
//
// Returns:
//   - [3]float32: the sampled scale
//   - bool: false if the channel has no scale keys
func (c *AnimationChannel) SampleScale(t float32) ([3]float32, bool) {
	return sampleVector(c.ScaleKeys, c.ScaleInterpolation, t)
}

// SampleRotation evaluates the rotation track at time t.
//
// Parameters:
//   - t: the clip-local time in seconds
//
// Returns:
//   - [4]float32: the sampled unit quaternion (x, y, z, w)
//   - bool: false if the channel has no rotation keys
func (c *AnimationChannel) SampleRotation(t float32) ([4]float32, bool) {
	keys := c.RotationKeys
	if len(keys) == 0 {
		return [4]float32{}, false
	}
	i, f := locate(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if f == 0 || c.RotationInterpolation == InterpolationStep {
		return keys[i].Value, true
	}
	return common.Slerp(keys[i].Value, keys[i+1].Value, f), true
}

func sampleVector(keys []VectorKeyframe, interp Interpolation, t float32) ([3]float32, bool) {
	if len(keys) == 0 {
		return [3]float32{}, false
	}
	i, f := locate(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if f == 0 || interp == InterpolationStep {
		return keys[i].Value, true
	}
	return common.Lerp3(keys[i].Value, keys[i+1].Value, f), true
}

// locate returns the index of the key at or before t and the blend factor toward
// the next key. Times before the first key or after the last clamp with factor 0.
func locate(n int, at func(int) float32, t float32) (int, float32) {
	if t <= at(0) {
		return 0, 0
	}
	if t >= at(n-1) {
		return n - 1, 0
	}
	// first key strictly after t
	next := sort.Search(n, func(i int) bool { return at(i) > t })
	prev := next - 1
	span := at(next) - at(prev)
	if span <= 0 {
		return prev, 0
	}
	return prev, (t - at(prev)) / span
}
