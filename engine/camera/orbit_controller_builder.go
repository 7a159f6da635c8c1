package camera

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithTarget sets the orbit center.
//
// Parameters:
//   - x, y, z: the target point
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithTarget(x, y, z float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithEye places the eye at an absolute position. It is applied after every
// other option, so the angles are derived relative to the final target.
//
// Parameters:
//   - x, y, z: the eye position
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithEye(x, y, z float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.pendingEye = &[3]float32{x, y, z}
	}
}

// WithRadiusBounds sets the zoom limits.
//
// Parameters:
//   - min: closest distance to the target
//   - max: farthest distance from the target
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if min > 0 && max >= min {
			oc.minRadius = min
			oc.maxRadius = max
		}
	}
}

// WithMouseSensitivity sets radians of rotation per dragged pixel.
//
// Parameters:
//   - sensitivity: the sensitivity
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithMouseSensitivity(sensitivity float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the distance moved per unit of scroll.
//
// Parameters:
//   - speed: the zoom speed
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}
