package text

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/sfnt"
)

func defaultFont(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := LoadFont("")
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	return f
}

func trianglesArea(poly []point, tris []uint32) float64 {
	var a float64
	for i := 0; i+2 < len(tris); i += 3 {
		a += cross(poly[tris[i]], poly[tris[i+1]], poly[tris[i+2]]) / 2
	}
	return a
}

func TestEarClipSquare(t *testing.T) {
	sq := []point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	tris := earClip(sq)
	if len(tris) != 6 {
		t.Fatalf("got %d indices, want 6", len(tris))
	}
	if a := trianglesArea(sq, tris); math.Abs(a-4) > 1e-9 {
		t.Errorf("area = %v, want 4", a)
	}
}

func TestBuildShapesNestsHoles(t *testing.T) {
	// Outer is clockwise and the hole counter-clockwise so orientation must be fixed up.
	outer := []point{{0, 0}, {0, 4}, {4, 4}, {4, 0}}
	hole := []point{{1, 1}, {3, 1}, {3, 3}, {1, 3}}
	shapes := buildShapes([][]point{outer, hole})
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	s := shapes[0]
	if len(s.holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(s.holes))
	}
	if signedArea(s.outer) <= 0 || signedArea(s.holes[0]) >= 0 {
		t.Errorf("outer area %v, hole area %v: want outer CCW and hole CW",
			signedArea(s.outer), signedArea(s.holes[0]))
	}

	poly := mergeHoles(s)
	if a := trianglesArea(poly, earClip(poly)); math.Abs(a-12) > 1e-9 {
		t.Errorf("triangulated area = %v, want 12", a)
	}
}

func TestBuildShapesSkipsDegenerate(t *testing.T) {
	line := []point{{0, 0}, {1, 1}, {2, 2}}
	dup := []point{{0, 0}, {0, 0}}
	if got := buildShapes([][]point{line, dup}); len(got) != 0 {
		t.Errorf("got %d shapes, want 0", len(got))
	}
}

func TestNewTextGeometry(t *testing.T) {
	g, err := NewTextGeometry(defaultFont(t), "Hello World!")
	if err != nil {
		t.Fatalf("NewTextGeometry: %v", err)
	}
	if g.VertexCount() == 0 || len(g.Indices) == 0 {
		t.Fatal("expected non-empty geometry")
	}
	if len(g.Indices)%3 != 0 {
		t.Errorf("index count %d is not a multiple of 3", len(g.Indices))
	}
	for _, i := range g.Indices {
		if int(i) >= g.VertexCount() {
			t.Fatalf("index %d out of range (%d vertices)", i, g.VertexCount())
		}
	}
	if g.BoundingMin[2] != 0 || g.BoundingMax[2] != 0.5 {
		t.Errorf("depth extent = [%v, %v], want [0, 0.5]", g.BoundingMin[2], g.BoundingMax[2])
	}
	if g.BoundingMax[1] <= 0 || g.BoundingMax[1] > 0.5 {
		t.Errorf("max y = %v, want within (0, 0.5]", g.BoundingMax[1])
	}
}

func TestNewTextGeometryOptions(t *testing.T) {
	f := defaultFont(t)
	small, err := NewTextGeometry(f, "H")
	if err != nil {
		t.Fatal(err)
	}
	big, err := NewTextGeometry(f, "H", WithSize(1), WithDepth(0.25), WithSize(-3))
	if err != nil {
		t.Fatal(err)
	}
	if big.BoundingMax[1] <= small.BoundingMax[1] {
		t.Errorf("size 1 height %v should exceed size 0.5 height %v", big.BoundingMax[1], small.BoundingMax[1])
	}
	if big.BoundingMax[2] != 0.25 {
		t.Errorf("depth = %v, want 0.25", big.BoundingMax[2])
	}

	coarse, _ := NewTextGeometry(f, "O", WithCurveSegments(1))
	fine, _ := NewTextGeometry(f, "O", WithCurveSegments(24))
	if fine.VertexCount() <= coarse.VertexCount() {
		t.Errorf("24 segments gave %d vertices, 1 segment gave %d", fine.VertexCount(), coarse.VertexCount())
	}
}

func TestTextLayout(t *testing.T) {
	f := defaultFont(t)
	short, _ := NewTextGeometry(f, "Hi")
	long, _ := NewTextGeometry(f, "Hiiii")
	if long.BoundingMax[0] <= short.BoundingMax[0] {
		t.Errorf("longer text width %v should exceed %v", long.BoundingMax[0], short.BoundingMax[0])
	}

	one, _ := NewTextGeometry(f, "A")
	two, _ := NewTextGeometry(f, "A\nA")
	if two.BoundingMin[1] >= one.BoundingMin[1] {
		t.Errorf("second line min y %v should be below %v", two.BoundingMin[1], one.BoundingMin[1])
	}
	if two.BoundingMax[0] != one.BoundingMax[0] {
		t.Errorf("newline should reset pen x: %v vs %v", two.BoundingMax[0], one.BoundingMax[0])
	}
}

func TestEmptyTextAndNilFont(t *testing.T) {
	g, err := NewTextGeometry(defaultFont(t), " ")
	if err != nil {
		t.Fatalf("NewTextGeometry: %v", err)
	}
	if g.VertexCount() != 0 {
		t.Errorf("whitespace produced %d vertices", g.VertexCount())
	}

	if _, err := NewTextGeometry(nil, "x"); !errors.Is(err, ErrNilFont) {
		t.Errorf("err = %v, want ErrNilFont", err)
	}
	if _, err := LoadFont("/nonexistent/font.ttf"); err == nil {
		t.Error("expected error for missing font file")
	}
}

func TestNewTextNode(t *testing.T) {
	g, _ := NewTextGeometry(defaultFont(t), "x")
	n := NewTextNode(g)
	if n.Name() != NodeName || n.Geometry != g {
		t.Errorf("node = %q geometry %p, want %q geometry %p", n.Name(), n.Geometry, NodeName, g)
	}
}
