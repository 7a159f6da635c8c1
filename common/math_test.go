package common

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestLerp3(t *testing.T) {
	tests := []struct {
		name string
		a, b [3]float32
		t    float32
		want [3]float32
	}{
		{"start", [3]float32{0, 0, 0}, [3]float32{2, 4, 6}, 0, [3]float32{0, 0, 0}},
		{"mid", [3]float32{0, 0, 0}, [3]float32{2, 4, 6}, 0.5, [3]float32{1, 2, 3}},
		{"end", [3]float32{1, 1, 1}, [3]float32{2, 4, 6}, 1, [3]float32{2, 4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lerp3(tt.a, tt.b, tt.t)
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("Lerp3() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSlerpHalfway(t *testing.T) {
	// identity -> 90 degrees about Y
	s := float32(math.Sqrt(0.5))
	a := [4]float32{0, 0, 0, 1}
	b := [4]float32{0, s, 0, s}

	got := Slerp(a, b, 0.5)
	// 45 degrees about Y
	want := [4]float32{0, float32(math.Sin(math.Pi / 8)), 0, float32(math.Cos(math.Pi / 8))}
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("Slerp() = %v, want %v", got, want)
		}
	}
}

func TestSlerpEndpoints(t *testing.T) {
	s := float32(math.Sqrt(0.5))
	a := [4]float32{0, 0, 0, 1}
	b := [4]float32{s, 0, 0, s}

	if got := Slerp(a, b, 0); !approx(got[3], 1) {
		t.Errorf("Slerp(t=0) = %v, want identity", got)
	}
	if got := Slerp(a, b, 1); !approx(got[0], s) || !approx(got[3], s) {
		t.Errorf("Slerp(t=1) = %v, want %v", got, b)
	}
}

func TestNormalize4Zero(t *testing.T) {
	if got := Normalize4([4]float32{}); got != [4]float32{0, 0, 0, 1} {
		t.Errorf("Normalize4(zero) = %v, want identity", got)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, float32(math.Pi/2), 2, 0.1, 100)
	if !approx(m[5], 1) {
		t.Errorf("m[5] = %v, want 1 for 90 degree fov", m[5])
	}
	if !approx(m[0], 0.5) {
		t.Errorf("m[0] = %v, want 0.5 for aspect 2", m[0])
	}
}

func TestComposeTRSIdentity(t *testing.T) {
	var m, id [16]float32
	ComposeTRS(m[:], [3]float32{}, [4]float32{0, 0, 0, 1}, [3]float32{1, 1, 1})
	Identity(id[:])
	if m != id {
		t.Fatalf("ComposeTRS(identity) = %v", m)
	}
}

func TestComposeTRSRotatesThenTranslates(t *testing.T) {
	// 90 degrees about X maps +Y to +Z
	h := float32(math.Sqrt(0.5))
	var m [16]float32
	ComposeTRS(m[:], [3]float32{1, 2, 3}, [4]float32{h, 0, 0, h}, [3]float32{2, 2, 2})

	// transform point (0, 1, 0)
	x := m[4] + m[12]
	y := m[5] + m[13]
	z := m[6] + m[14]
	if !approx(x, 1) || !approx(y, 2) || !approx(z, 5) {
		t.Errorf("point = (%v, %v, %v), want (1, 2, 5)", x, y, z)
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("I*M = %v, want %v", out, m)
	}
	Mul4(m[:], m[:], id[:])
	if out != m {
		t.Errorf("aliased M*I = %v", m)
	}
}
