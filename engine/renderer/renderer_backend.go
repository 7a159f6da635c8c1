package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU-facing half of the Renderer. The Renderer decides what
// to draw; the backend owns every GPU resource.
//
// Meshes are keyed by the id of the scene node they belong to. All methods are
// called from the frame goroutine.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and depth targets for a new size.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. Applied on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to.
	//
	// Parameters:
	//   - rgba: the clear color, components in [0, 1]
	SetClearColor(rgba [4]float64)

	// UploadMesh creates GPU buffers for a mesh, replacing any mesh stored under id.
	//
	// Parameters:
	//   - id: the mesh key
	//   - label: debug label
	//   - positions: xyz vertex positions
	//   - indices: triangle list indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(id uint64, label string, positions []float32, indices []uint32) error

	// ReleaseMesh frees the GPU buffers stored under id. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the mesh key
	ReleaseMesh(id uint64)

	// BeginFrame acquires the next swapchain texture, writes the frame uniform and
	// begins the render pass. Must be paired with EndFrame.
	//
	// Parameters:
	//   - frame: camera and light data for this frame
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(frame FrameUniform) error

	// DrawMesh encodes a draw of the mesh stored under id within the current pass.
	//
	// Parameters:
	//   - id: the mesh key
	//   - draw: the mesh's world matrix and color
	DrawMesh(id uint64, draw DrawUniform)

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees every GPU resource.
	Release()
}
