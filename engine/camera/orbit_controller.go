package camera

import (
	"math"
	"sync"
)

type orbitControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32 // horizontal angle around Y, 0 looks down -Z
	elevation float32 // angle above the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32

	pendingEye *[3]float32
}

// OrbitController places a camera on a sphere around a target point. Dragging
// rotates around the target and scrolling changes the distance to it.
type OrbitController interface {
	// Position returns the eye position.
	Position() (x, y, z float32)

	// Target returns the point the camera orbits and looks at.
	Target() (x, y, z float32)

	// SetTarget moves the orbit center, keeping radius and angles.
	//
	// Parameters:
	//   - x, y, z: the new target
	SetTarget(x, y, z float32)

	// SetPosition places the eye, deriving radius and angles relative to the target.
	// The result is clamped to the configured bounds.
	//
	// Parameters:
	//   - x, y, z: the eye position
	SetPosition(x, y, z float32)

	// Drag rotates the eye around the target by a pointer movement.
	//
	// Parameters:
	//   - dx: horizontal movement in pixels, positive to the right
	//   - dy: vertical movement in pixels, positive downward
	Drag(dx, dy float32)

	// Zoom moves the eye toward (positive) or away from (negative) the target.
	//
	// Parameters:
	//   - delta: scroll amount
	Zoom(delta float32)

	// Radius returns the distance from eye to target.
	Radius() float32

	// Azimuth returns the horizontal orbit angle in radians.
	Azimuth() float32

	// Elevation returns the vertical orbit angle in radians.
	Elevation() float32
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an OrbitController looking at the origin from a
// radius of 10.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the new controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu: &sync.Mutex{},

		radius:    10.0,
		elevation: float32(math.Pi / 6),

		minRadius:    1.0,
		maxRadius:    50.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
	}
	for _, option := range options {
		option(oc)
	}
	oc.clamp()
	oc.updatePosition()
	if oc.pendingEye != nil {
		oc.setPosition(oc.pendingEye[0], oc.pendingEye[1], oc.pendingEye[2])
		oc.pendingEye = nil
	}
	return oc
}

// updatePosition recomputes the eye from the spherical coordinates.
func (oc *orbitControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	oc.position[0] = oc.target[0] + oc.radius*cosElev*sinAzim
	oc.position[1] = oc.target[1] + oc.radius*sinElev
	oc.position[2] = oc.target[2] + oc.radius*cosElev*cosAzim
}

func (oc *orbitControllerImpl) clamp() {
	oc.radius = min(max(oc.radius, oc.minRadius), oc.maxRadius)
	oc.elevation = min(max(oc.elevation, oc.minElevation), oc.maxElevation)
}

func (oc *orbitControllerImpl) Position() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position[0], oc.position[1], oc.position[2]
}

func (oc *orbitControllerImpl) Target() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target[0], oc.target[1], oc.target[2]
}

func (oc *orbitControllerImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) SetPosition(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.setPosition(x, y, z)
}

func (oc *orbitControllerImpl) setPosition(x, y, z float32) {
	dx := float64(x - oc.target[0])
	dy := float64(y - oc.target[1])
	dz := float64(z - oc.target[2])
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if r < 1e-8 {
		return
	}
	oc.radius = float32(r)
	oc.elevation = float32(math.Asin(dy / r))
	oc.azimuth = float32(math.Atan2(dx, dz))
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Drag(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= dx * oc.mouseSensitivity
	oc.elevation += dy * oc.mouseSensitivity
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius -= delta * oc.zoomSpeed
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControllerImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}
