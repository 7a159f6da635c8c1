package light

import (
	"math"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	got := HexToRGB(0x404040)
	want := float32(0x40) / 255
	for i, c := range got {
		if c != want {
			t.Fatalf("component %d = %v, want %v", i, c, want)
		}
	}
}

func TestHemisphereAmbient(t *testing.T) {
	l := NewLight(LightTypeHemisphere,
		WithHexColor(0xffffff),
		WithGroundColor(0x000000),
		WithIntensity(2),
	)
	if got := l.Ambient(); got != [3]float32{1, 1, 1} {
		t.Errorf("Ambient() = %v, want [1 1 1]", got)
	}

	l.SetEnabled(false)
	if got := l.Ambient(); got != [3]float32{} {
		t.Errorf("disabled Ambient() = %v, want zero", got)
	}
}

func TestHemisphereDirectionFollowsPosition(t *testing.T) {
	l := NewLight(LightTypeHemisphere, WithPosition(0, -3, 0))
	if got := l.Direction(); math.Abs(float64(got[1]+1)) > 1e-6 {
		t.Errorf("Direction() = %v, want (0,-1,0)", got)
	}
}

func TestDirectionalHasNoGroundColor(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithGroundColor(0xffffff))
	if got := l.GroundColor(); got != [3]float32{} {
		t.Errorf("GroundColor() = %v, want zero", got)
	}
	if got := l.Ambient(); got != [3]float32{} {
		t.Errorf("Ambient() = %v, want zero", got)
	}
}
