package text

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/boxdrop/engine/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// NodeName is the name given to text nodes so animation channels and colors can find them.
const NodeName = "text"

// ErrNilFont is returned when geometry is requested without a font.
var ErrNilFont = errors.New("text: nil font")

// LoadFont parses a TrueType or OpenType font file. An empty path returns the built-in
// Go Regular face.
//
// Parameters:
//   - path: the font file path, or "" for the default font
//
// Returns:
//   - *sfnt.Font: the parsed font
//   - error: error if the file cannot be read or parsed
func LoadFont(path string) (*sfnt.Font, error) {
	if path == "" {
		return sfnt.Parse(goregular.TTF)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// NewTextGeometry builds an extruded mesh for s. The em box is scaled to the configured
// size, the first baseline sits at y = 0 and the text extends from z = 0 towards +z by
// the configured depth. Each '\n' starts a new line below the previous one.
//
// Parameters:
//   - f: the font to lay the text out with
//   - s: the text to build
//   - options: functional options to configure size, depth and curve resolution
//
// Returns:
//   - *scene.Geometry: the generated geometry, empty when s has no visible glyphs
//   - error: error if f is nil or a glyph cannot be loaded
func NewTextGeometry(f *sfnt.Font, s string, options ...TextBuilderOption) (*scene.Geometry, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	o := &textOptions{
		size:          0.5,
		depth:         0.5,
		curveSegments: 12,
	}
	for _, opt := range options {
		opt(o)
	}

	var buf sfnt.Buffer
	upem := f.UnitsPerEm()
	ppem := fixed.I(int(upem))
	scale := float64(o.size) / float64(upem)

	lineHeight := float64(o.size) * 1.2
	if m, err := f.Metrics(&buf, ppem, font.HintingNone); err == nil && m.Height > 0 {
		lineHeight = fromFixed(m.Height) * scale
	}

	b := &meshBuilder{depth: float32(o.depth)}
	var penX, penY float64
	prev, hasPrev := sfnt.GlyphIndex(0), false

	for _, r := range s {
		if r == '\n' {
			penX = 0
			penY -= lineHeight
			hasPrev = false
			continue
		}
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, fmt.Errorf("failed to find glyph for %q: %w", r, err)
		}
		if hasPrev {
			if k, err := f.Kern(&buf, prev, gi, ppem, font.HintingNone); err == nil {
				penX += fromFixed(k) * scale
			}
		}

		segs, err := f.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load glyph for %q: %w", r, err)
		}
		for _, sh := range buildShapes(flatten(segs, penX, penY, scale, o.curveSegments)) {
			b.addShape(sh)
		}

		adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("failed to read advance for %q: %w", r, err)
		}
		penX += fromFixed(adv) * scale
		prev, hasPrev = gi, true
	}

	return b.geometry(), nil
}

// NewTextNode wraps geometry in a scene node named NodeName.
func NewTextNode(g *scene.Geometry) *scene.Node {
	n := scene.NewNode(NodeName)
	n.Geometry = g
	return n
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// flatten converts glyph segments into closed polylines in layout space. sfnt reports
// outlines with y increasing downwards, so y is flipped here.
func flatten(segs sfnt.Segments, originX, originY, scale float64, steps int) [][]point {
	conv := func(p fixed.Point26_6) point {
		return point{
			x: originX + fromFixed(p.X)*scale,
			y: originY - fromFixed(p.Y)*scale,
		}
	}

	var contours [][]point
	var cur []point
	var last point
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if len(cur) > 0 {
				contours = append(contours, cur)
			}
			last = conv(seg.Args[0])
			cur = []point{last}
		case sfnt.SegmentOpLineTo:
			last = conv(seg.Args[0])
			cur = append(cur, last)
		case sfnt.SegmentOpQuadTo:
			c, e := conv(seg.Args[0]), conv(seg.Args[1])
			for k := 1; k <= steps; k++ {
				t := float64(k) / float64(steps)
				u := 1 - t
				cur = append(cur, point{
					x: u*u*last.x + 2*u*t*c.x + t*t*e.x,
					y: u*u*last.y + 2*u*t*c.y + t*t*e.y,
				})
			}
			last = e
		case sfnt.SegmentOpCubeTo:
			c1, c2, e := conv(seg.Args[0]), conv(seg.Args[1]), conv(seg.Args[2])
			for k := 1; k <= steps; k++ {
				t := float64(k) / float64(steps)
				u := 1 - t
				cur = append(cur, point{
					x: u*u*u*last.x + 3*u*u*t*c1.x + 3*u*t*t*c2.x + t*t*t*e.x,
					y: u*u*u*last.y + 3*u*u*t*c1.y + 3*u*t*t*c2.y + t*t*t*e.y,
				})
			}
			last = e
		}
	}
	if len(cur) > 0 {
		contours = append(contours, cur)
	}
	return contours
}

// meshBuilder accumulates caps and side walls for extruded shapes.
type meshBuilder struct {
	depth     float32
	positions []float32
	indices   []uint32
}

func (b *meshBuilder) vertex(p point, z float32) uint32 {
	i := uint32(len(b.positions) / 3)
	b.positions = append(b.positions, float32(p.x), float32(p.y), z)
	return i
}

func (b *meshBuilder) addShape(s shape) {
	poly := mergeHoles(s)
	tris := earClip(poly)

	front := make([]uint32, len(poly))
	back := make([]uint32, len(poly))
	for i, p := range poly {
		front[i] = b.vertex(p, b.depth)
	}
	for i, p := range poly {
		back[i] = b.vertex(p, 0)
	}
	for t := 0; t+2 < len(tris); t += 3 {
		i0, i1, i2 := tris[t], tris[t+1], tris[t+2]
		b.indices = append(b.indices, front[i0], front[i1], front[i2])
		b.indices = append(b.indices, back[i0], back[i2], back[i1])
	}

	b.addWalls(s.outer)
	for _, h := range s.holes {
		b.addWalls(h)
	}
}

// addWalls emits one outward facing quad per contour edge. Outer contours are
// counter-clockwise and holes clockwise, so the right side of each edge is outside.
func (b *meshBuilder) addWalls(c []point) {
	if b.depth == 0 {
		return
	}
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a0 := b.vertex(p, 0)
		b0 := b.vertex(q, 0)
		b1 := b.vertex(q, b.depth)
		a1 := b.vertex(p, b.depth)
		b.indices = append(b.indices, a0, b0, b1, a0, b1, a1)
	}
}

func (b *meshBuilder) geometry() *scene.Geometry {
	g := &scene.Geometry{
		Positions: b.positions,
		Indices:   b.indices,
	}
	if len(b.positions) == 0 {
		return g
	}
	minV := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxV := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := 0; i+2 < len(b.positions); i += 3 {
		for k := 0; k < 3; k++ {
			v := b.positions[i+k]
			minV[k] = min(minV[k], v)
			maxV[k] = max(maxV[k], v)
		}
	}
	g.BoundingMin = minV
	g.BoundingMax = maxV
	return g
}
