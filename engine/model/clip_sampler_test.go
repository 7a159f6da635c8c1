package model

import (
	"math"
	"testing"
)

func TestSamplePosition(t *testing.T) {
	ch := AnimationChannel{
		PositionKeys: []VectorKeyframe{
			{Time: 0, Value: [3]float32{0, 0, 0}},
			{Time: 1, Value: [3]float32{0, 10, 0}},
			{Time: 2, Value: [3]float32{0, 10, 4}},
		},
	}

	tests := []struct {
		name string
		t    float32
		want [3]float32
	}{
		{"before first", -1, [3]float32{0, 0, 0}},
		{"on first", 0, [3]float32{0, 0, 0}},
		{"quarter", 0.25, [3]float32{0, 2.5, 0}},
		{"on key", 1, [3]float32{0, 10, 0}},
		{"second segment", 1.5, [3]float32{0, 10, 2}},
		{"after last", 5, [3]float32{0, 10, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ch.SamplePosition(tt.t)
			if !ok {
				t.Fatal("SamplePosition() ok = false")
			}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-5 {
					t.Fatalf("SamplePosition(%v) = %v, want %v", tt.t, got, tt.want)
				}
			}
		})
	}
}

func TestSampleStep(t *testing.T) {
	ch := AnimationChannel{
		ScaleKeys: []VectorKeyframe{
			{Time: 0, Value: [3]float32{1, 1, 1}},
			{Time: 1, Value: [3]float32{2, 2, 2}},
		},
		ScaleInterpolation: InterpolationStep,
	}
	if got, _ := ch.SampleScale(0.99); got != [3]float32{1, 1, 1} {
		t.Errorf("SampleScale(0.99) = %v, want held first key", got)
	}
}

func TestSampleEmptyTrack(t *testing.T) {
	var ch AnimationChannel
	if _, ok := ch.SampleRotation(0.5); ok {
		t.Error("SampleRotation() on empty track ok = true")
	}
	if _, ok := ch.SamplePosition(0.5); ok {
		t.Error("SamplePosition() on empty track ok = true")
	}
}

func TestSampleRotationEndpoints(t *testing.T) {
	s := float32(math.Sqrt(0.5))
	ch := AnimationChannel{
		RotationKeys: []QuaternionKeyframe{
			{Time: 0, Value: [4]float32{0, 0, 0, 1}},
			{Time: 1, Value: [4]float32{s, 0, 0, s}},
		},
	}
	got, ok := ch.SampleRotation(1)
	if !ok || got != ch.RotationKeys[1].Value {
		t.Errorf("SampleRotation(1) = %v, want last key", got)
	}
}
