package renderer

import (
	"errors"
	"log"
	"sync"

	"github.com/Carmen-Shannon/boxdrop/common"
	"github.com/Carmen-Shannon/boxdrop/engine/camera"
	"github.com/Carmen-Shannon/boxdrop/engine/light"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
	"github.com/Carmen-Shannon/boxdrop/engine/window"
)

// ErrReleased is returned by Render after Release.
var ErrReleased = errors.New("renderer released")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// meshes maps node id to the geometry uploaded for it
	meshes map[uint64]*scene.Geometry

	colors       map[string][4]float32
	defaultColor [4]float32
	clearColor   [4]float64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount

	released bool
}

// Renderer draws a scene graph through a camera.
//
// Every node carrying Geometry is drawn with its world transform, flat shaded by
// the scene's first enabled hemisphere light. GPU meshes are created the first
// time a node is seen and freed once it leaves the scene, so replacing a node
// (for example the text mesh) never leaks or double-draws.
type Renderer interface {
	// Render draws one frame of s as seen by cam.
	//
	// Parameters:
	//   - s: the scene; inactive scenes render as just the clear color
	//   - cam: the camera
	//
	// Returns:
	//   - error: an error if the frame could not be started
	Render(s scene.Scene, cam camera.Camera) error

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetNodeColor sets the base color of the named node and its descendants.
	//
	// Parameters:
	//   - name: the node name
	//   - rgba: the color
	SetNodeColor(name string, rgba [4]float32)

	// MeshCount returns the number of meshes currently resident on the GPU.
	MeshCount() int

	// Release frees every GPU resource. Further Render calls return ErrReleased.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer presenting to win.
//
// Parameters:
//   - backendType: the GPU backend to create
//   - win: the window providing the surface
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if the GPU backend could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:           &sync.Mutex{},
		backendType:  backendType,
		meshes:       make(map[uint64]*scene.Geometry),
		colors:       make(map[string][4]float32),
		defaultColor: [4]float32{0.8, 0.8, 0.8, 1},
		clearColor:   [4]float64{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		msaa := MSAA4x
		if r.pendingMSAA != nil {
			msaa = *r.pendingMSAA
		}
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			b, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
			if err != nil {
				return nil, err
			}
			r.backend = b
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(r.clearColor)
	if win != nil {
		r.backend.ConfigureSurface(win.Width(), win.Height())
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetNodeColor(name string, rgba [4]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colors[name] = rgba
}

func (r *renderer) MeshCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meshes)
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ErrReleased
	}

	frame := FrameUniform{}
	if cam != nil {
		frame.ViewProjection = cam.ViewProjectionMatrix()
	} else {
		common.Identity(frame.ViewProjection[:])
	}
	var roots []*scene.Node
	if s != nil && s.Active() {
		roots = s.Roots()
		frameLight(&frame, s.Lights())
	} else {
		frameLight(&frame, nil)
	}

	if err := r.backend.BeginFrame(frame); err != nil {
		return err
	}

	seen := make(map[uint64]bool)
	var identity [16]float32
	common.Identity(identity[:])
	for _, root := range roots {
		r.drawNode(root, identity, r.defaultColor, seen)
	}

	r.backend.EndFrame()
	r.backend.Present()

	for id := range r.meshes {
		if !seen[id] {
			r.backend.ReleaseMesh(id)
			delete(r.meshes, id)
		}
	}
	return nil
}

// drawNode draws n and its descendants. parent is the parent's world matrix.
func (r *renderer) drawNode(n *scene.Node, parent [16]float32, color [4]float32, seen map[uint64]bool) {
	pose := n.Pose()
	var local, world [16]float32
	common.ComposeTRS(local[:], pose.Translation, pose.Rotation, pose.Scale)
	common.Mul4(world[:], parent[:], local[:])

	if c, ok := r.colors[n.Name()]; ok {
		color = c
	}

	if g := n.Geometry; g != nil && len(g.Indices) > 0 && g.VertexCount() > 0 {
		if r.ensureMesh(n, g) {
			seen[n.ID()] = true
			r.backend.DrawMesh(n.ID(), DrawUniform{Model: world, Color: color})
		}
	}

	for _, child := range n.Children() {
		r.drawNode(child, world, color, seen)
	}
}

// ensureMesh uploads g for n unless the same geometry is already resident.
func (r *renderer) ensureMesh(n *scene.Node, g *scene.Geometry) bool {
	if r.meshes[n.ID()] == g {
		return true
	}
	if err := r.backend.UploadMesh(n.ID(), n.Name(), g.Positions, g.Indices); err != nil {
		log.Printf("[Renderer] upload mesh %q: %v", n.Name(), err)
		return false
	}
	r.meshes[n.ID()] = g
	return true
}

// frameLight fills the light fields from the first enabled hemisphere or
// directional light, falling back to plain white ambient light.
func frameLight(frame *FrameUniform, lights []light.Light) {
	frame.SkyColor = [4]float32{1, 1, 1, 1}
	frame.GroundColor = [4]float32{1, 1, 1, 1}
	frame.LightDirection = [4]float32{0, 1, 0, 0}

	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		sky, ground := l.Color(), l.GroundColor()
		dir := l.Direction()
		if l.Type() == light.LightTypeDirectional {
			// the shader wants the sky side, directional lights point away from it
			dir = [3]float32{-dir[0], -dir[1], -dir[2]}
		}
		frame.SkyColor = [4]float32{sky[0], sky[1], sky[2], l.Intensity()}
		frame.GroundColor = [4]float32{ground[0], ground[1], ground[2], 1}
		if dir != [3]float32{} {
			frame.LightDirection = [4]float32{dir[0], dir[1], dir[2], 0}
		}
		return
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	for id := range r.meshes {
		r.backend.ReleaseMesh(id)
	}
	r.meshes = nil
	r.backend.Release()
}
