package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeHemisphere represents an ambient light that fades from a sky color
	// above to a ground color below. Position only sets the sky direction.
	LightTypeHemisphere LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeHemisphere:
		return "hemisphere"
	case LightTypeDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	position    [3]float32
	direction   [3]float32
	color       [3]float32
	groundColor [3]float32
	intensity   float32
	enabled     bool
}

// Light defines the interface for a light source in the scene.
//
// Type-specific properties (e.g. the ground color of a hemisphere light) return
// zero values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light. For hemisphere
	// lights this points from the origin toward the sky.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light. For hemisphere lights this is the
	// sky color.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// GroundColor returns the ground color of a hemisphere light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	GroundColor() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Ambient returns the flat ambient contribution of the light: the average of
	// its sky and ground colors scaled by intensity for hemisphere lights, zero
	// otherwise or when disabled.
	//
	// Returns:
	//   - [3]float32: the ambient RGB contribution
	Ambient() [3]float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light. Hemisphere lights
	// also derive their sky direction from it.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:   lightType,
		direction:   [3]float32{0, 1, 0},
		color:       [3]float32{1, 1, 1},
		groundColor: [3]float32{1, 1, 1},
		intensity:   1.0,
		enabled:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) GroundColor() [3]float32 {
	if l.lightType != LightTypeHemisphere {
		return [3]float32{}
	}
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Ambient() [3]float32 {
	if !l.enabled || l.lightType != LightTypeHemisphere {
		return [3]float32{}
	}
	var out [3]float32
	for i := range out {
		out[i] = (l.color[i] + l.groundColor[i]) * 0.5 * l.intensity
	}
	return out
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
	if l.lightType == LightTypeHemisphere {
		l.direction = normalize3(x, y, z)
	}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
