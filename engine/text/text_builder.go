package text

type textOptions struct {
	size          float32
	depth         float32
	curveSegments int
}

// TextBuilderOption is a functional option for configuring text geometry generation.
type TextBuilderOption func(*textOptions)

// WithSize sets the em size of the text in world units. Non-positive values are ignored.
//
// Parameters:
//   - size: the em size
//
// Returns:
//   - TextBuilderOption: option function to apply
func WithSize(size float32) TextBuilderOption {
	return func(o *textOptions) {
		if size > 0 {
			o.size = size
		}
	}
}

// WithDepth sets the extrusion depth along +z. Negative values are ignored; zero
// produces flat text with no side walls.
//
// Parameters:
//   - depth: the extrusion depth
//
// Returns:
//   - TextBuilderOption: option function to apply
func WithDepth(depth float32) TextBuilderOption {
	return func(o *textOptions) {
		if depth >= 0 {
			o.depth = depth
		}
	}
}

// WithCurveSegments sets how many line segments approximate each curved outline piece.
//
// Parameters:
//   - n: segments per curve, at least 1
//
// Returns:
//   - TextBuilderOption: option function to apply
func WithCurveSegments(n int) TextBuilderOption {
	return func(o *textOptions) {
		if n >= 1 {
			o.curveSegments = n
		}
	}
}
