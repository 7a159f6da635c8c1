package text

import (
	"math"
	"sort"
)

const areaEpsilon = 1e-12

type point struct {
	x, y float64
}

// shape is one filled region of a glyph: a counter-clockwise outer contour and the
// clockwise holes it encloses.
type shape struct {
	outer []point
	holes [][]point
}

func signedArea(c []point) float64 {
	var a float64
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].x*c[j].y - c[j].x*c[i].y
	}
	return a / 2
}

func reversed(c []point) []point {
	out := make([]point, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

func pointInPolygon(p point, poly []point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.y > p.y) != (b.y > p.y) {
			x := (b.x-a.x)*(p.y-a.y)/(b.y-a.y) + a.x
			if p.x < x {
				inside = !inside
			}
		}
	}
	return inside
}

// cleanContour drops consecutive duplicates and the closing point that repeats the first.
func cleanContour(c []point) []point {
	out := make([]point, 0, len(c))
	for _, p := range c {
		if n := len(out); n > 0 && samePoint(out[n-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(a, b point) bool {
	return math.Abs(a.x-b.x) < 1e-9 && math.Abs(a.y-b.y) < 1e-9
}

// buildShapes groups raw contours into shapes using the even-odd nesting depth of each
// contour, so the result does not depend on the winding convention of the font.
func buildShapes(contours [][]point) []shape {
	valid := make([][]point, 0, len(contours))
	for _, c := range contours {
		c = cleanContour(c)
		if len(c) < 3 || math.Abs(signedArea(c)) < areaEpsilon {
			continue
		}
		valid = append(valid, c)
	}

	depth := make([]int, len(valid))
	for i, c := range valid {
		for j, other := range valid {
			if i != j && pointInPolygon(c[0], other) {
				depth[i]++
			}
		}
	}

	var shapes []shape
	outerOf := make(map[int]int)
	for i, c := range valid {
		if depth[i]%2 != 0 {
			continue
		}
		if signedArea(c) < 0 {
			c = reversed(c)
		}
		outerOf[i] = len(shapes)
		shapes = append(shapes, shape{outer: c})
	}

	for i, c := range valid {
		if depth[i]%2 == 0 {
			continue
		}
		best, bestArea := -1, math.Inf(1)
		for j, other := range valid {
			if depth[j]%2 != 0 || depth[j] != depth[i]-1 || !pointInPolygon(c[0], other) {
				continue
			}
			if a := math.Abs(signedArea(other)); a < bestArea {
				best, bestArea = j, a
			}
		}
		if best < 0 {
			continue
		}
		if signedArea(c) > 0 {
			c = reversed(c)
		}
		s := &shapes[outerOf[best]]
		s.holes = append(s.holes, c)
	}
	return shapes
}

// mergeHoles bridges every hole into the outer contour, producing a single simple
// polygon that ear clipping can consume.
func mergeHoles(s shape) []point {
	poly := append([]point(nil), s.outer...)
	holes := append([][]point(nil), s.holes...)
	sort.Slice(holes, func(i, j int) bool {
		return maxX(holes[i]) > maxX(holes[j])
	})
	for _, h := range holes {
		poly = bridge(poly, h)
	}
	return poly
}

func maxX(c []point) float64 {
	m := math.Inf(-1)
	for _, p := range c {
		m = math.Max(m, p.x)
	}
	return m
}

func bridge(poly, hole []point) []point {
	mi := 0
	for i, p := range hole {
		if p.x > hole[mi].x {
			mi = i
		}
	}
	m := hole[mi]

	// Cast a ray from m towards +x and find the closest edge it hits.
	pi := -1
	hitX := math.Inf(1)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if (a.y > m.y) == (b.y > m.y) && a.y != m.y && b.y != m.y {
			continue
		}
		if a.y == b.y {
			continue
		}
		x := a.x + (m.y-a.y)*(b.x-a.x)/(b.y-a.y)
		if x < m.x || x >= hitX {
			continue
		}
		hitX = x
		if a.x > b.x {
			pi = i
		} else {
			pi = (i + 1) % len(poly)
		}
	}
	if pi < 0 {
		// Not enclosed along the ray; fall back to the nearest outer vertex.
		best := math.Inf(1)
		for i, p := range poly {
			if d := dist2(p, m); d < best {
				best, pi = d, i
			}
		}
	} else {
		hit := point{hitX, m.y}
		cand := poly[pi]
		bestAngle := math.Inf(1)
		bestDist := math.Inf(1)
		for i, p := range poly {
			if i == pi || samePoint(p, cand) {
				continue
			}
			if !inTriangle(p, m, hit, cand) && !inTriangle(p, m, cand, hit) {
				continue
			}
			angle := math.Abs(math.Atan2(p.y-m.y, p.x-m.x))
			d := dist2(p, m)
			if angle < bestAngle || (angle == bestAngle && d < bestDist) {
				bestAngle, bestDist = angle, d
				pi = i
			}
		}
	}

	out := make([]point, 0, len(poly)+len(hole)+2)
	out = append(out, poly[:pi+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(mi+k)%len(hole)])
	}
	out = append(out, poly[pi])
	out = append(out, poly[pi+1:]...)
	return out
}

func dist2(a, b point) float64 {
	dx, dy := a.x-b.x, a.y-b.y
	return dx*dx + dy*dy
}

func cross(o, a, b point) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

// inTriangle reports whether p lies inside or on the counter-clockwise triangle abc.
func inTriangle(p, a, b, c point) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

// earClip triangulates a counter-clockwise simple polygon and returns triangles as
// index triples into poly. Degenerate input still terminates: when no ear is found the
// current vertex is clipped regardless.
func earClip(poly []point) []uint32 {
	n := len(poly)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([]uint32, 0, (n-2)*3)

	stall := 0
	i := 0
	for len(idx) > 3 {
		cnt := len(idx)
		i %= cnt
		prev, cur, next := idx[(i+cnt-1)%cnt], idx[i], idx[(i+1)%cnt]
		a, b, c := poly[prev], poly[cur], poly[next]

		if isEar(poly, idx, a, b, c) || stall >= cnt {
			if cross(a, b, c) > 0 {
				tris = append(tris, uint32(prev), uint32(cur), uint32(next))
			}
			idx = append(idx[:i], idx[i+1:]...)
			stall = 0
			continue
		}
		i++
		stall++
	}
	if cross(poly[idx[0]], poly[idx[1]], poly[idx[2]]) > 0 {
		tris = append(tris, uint32(idx[0]), uint32(idx[1]), uint32(idx[2]))
	}
	return tris
}

func isEar(poly []point, idx []int, a, b, c point) bool {
	if cross(a, b, c) <= 0 {
		return false
	}
	for _, k := range idx {
		p := poly[k]
		if samePoint(p, a) || samePoint(p, b) || samePoint(p, c) {
			continue
		}
		if inTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}
