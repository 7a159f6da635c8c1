package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend uses b instead of creating a GPU backend for the window.
//
// Parameters:
//   - b: the backend
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(b RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the background color.
//
// Parameters:
//   - rgb: the color, components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithClearColor(rgb [3]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = [4]float64{float64(rgb[0]), float64(rgb[1]), float64(rgb[2]), 1}
	}
}

// WithDefaultColor sets the base color of nodes with no color of their own.
//
// Parameters:
//   - rgba: the color
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithDefaultColor(rgba [4]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.defaultColor = rgba
	}
}

// WithNodeColor sets the base color of the named node and its descendants.
//
// Parameters:
//   - name: the node name
//   - rgba: the color
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithNodeColor(name string, rgba [4]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.colors[name] = rgba
	}
}
