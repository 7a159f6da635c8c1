package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/boxdrop/engine/animator"
	"github.com/Carmen-Shannon/boxdrop/engine/camera"
	"github.com/Carmen-Shannon/boxdrop/engine/clock"
	"github.com/Carmen-Shannon/boxdrop/engine/config"
	"github.com/Carmen-Shannon/boxdrop/engine/light"
	"github.com/Carmen-Shannon/boxdrop/engine/loader"
	"github.com/Carmen-Shannon/boxdrop/engine/model"
	"github.com/Carmen-Shannon/boxdrop/engine/profiler"
	"github.com/Carmen-Shannon/boxdrop/engine/renderer"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
	"github.com/Carmen-Shannon/boxdrop/engine/sequence"
	"github.com/Carmen-Shannon/boxdrop/engine/store"
	"github.com/Carmen-Shannon/boxdrop/engine/text"
	"github.com/Carmen-Shannon/boxdrop/engine/window"
	"golang.org/x/image/font/sfnt"
)

const builtinFontPath = "<builtin font>"

// engine implements the Engine interface.
// Owns the scene, players and sequence controller; everything except the command
// queue is touched only from the frame goroutine.
type engine struct {
	cfg *config.Config

	window   window.Window
	renderer renderer.Renderer
	loader   loader.AsyncLoader
	store    store.TextStore

	scene      scene.Scene
	camera     camera.Camera
	clock      clock.FrameClock
	controller sequence.Controller

	profiler         *profiler.Profiler
	profilingEnabled bool

	mu       sync.Mutex
	commands []func()

	stage        atomic.Int32
	pendingStops atomic.Int32
	loadOnce     sync.Once
	quitOnce sync.Once

	box        model.Model
	boxPlayer  animator.Animator
	font       *sfnt.Font
	text       string
	textNode   *scene.Node
	textPlayer animator.Animator
}

// Engine is the main entry point for the box sequence.
// It wires the scene, camera, renderer, frame clock, asset loader and sequence
// controller together and exposes the operations a UI needs.
//
// Start, Stop, SetText and OnResize may be called from any goroutine. They are
// queued and applied at the start of the next frame, so every scene and player
// mutation happens on the frame goroutine.
type Engine interface {
	// Start requests a new box sequence.
	//
	// Returns:
	//   - bool: false if a sequence is running and no Stop is queued ahead of this
	//     call, in which case nothing is queued
	Start() bool

	// Stop halts the running sequence and returns it to Idle on the next frame.
	Stop()

	// SetText replaces the dropped text. Before the font and model have loaded the
	// text is remembered and used once they arrive.
	//
	// Parameters:
	//   - s: the new text
	SetText(s string)

	// OnFrame runs one frame: queued commands, finished loads, player updates and
	// rendering. Run calls it on a ticker; hosts with their own loop may call it
	// directly instead.
	//
	// Returns:
	//   - error: the render error, if any
	OnFrame() error

	// OnResize adapts the camera and renderer to a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	OnResize(width, height int)

	// LoadAssets starts loading the font and the box model in the background.
	// Calling it again is a no-op.
	LoadAssets()

	// Run loads the assets and ticks frames until Quit is called or the window
	// closes, then releases the renderer and window. Blocks the calling goroutine.
	Run()

	// Quit stops Run. Safe to call multiple times.
	Quit()

	// Stage returns the stage as of the last completed frame.
	Stage() sequence.Stage

	// Scene returns the scene graph.
	Scene() scene.Scene

	// Camera returns the camera.
	Camera() camera.Camera

	// Text returns the current text.
	Text() string
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Without options it uses config.Default(), a pooled asset loader and no window
// or renderer, which is enough to run the sequence headless.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		cfg: config.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	cfg := e.cfg

	if e.loader == nil {
		e.loader = loader.NewAsyncLoader()
	}

	e.text = cfg.Text.Initial
	if cfg.Text.Persist && e.store != nil {
		if saved, ok := e.store.Load(); ok {
			e.text = saved
		}
	}

	e.scene = scene.NewScene("boxdrop", scene.WithLights(light.NewLight(light.LightTypeHemisphere,
		light.WithHexColor(cfg.Light.Color),
		light.WithGroundColor(cfg.Light.GroundColor),
		light.WithIntensity(cfg.Light.Intensity),
		light.WithPosition(cfg.Light.Position[0], cfg.Light.Position[1], cfg.Light.Position[2]),
	)))

	camOpts := []camera.CameraBuilderOption{
		camera.WithFovDegrees(cfg.Camera.Fov),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(camera.NewOrbitController(
			camera.WithTarget(cfg.Camera.Target[0], cfg.Camera.Target[1], cfg.Camera.Target[2]),
			camera.WithEye(cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]),
		)),
	}
	if e.window != nil && e.window.Height() > 0 {
		camOpts = append(camOpts, camera.WithAspect(float32(e.window.Width())/float32(e.window.Height())))
	}
	e.camera = camera.NewCamera(camOpts...)

	e.controller = sequence.NewController(sequence.SourceFunc(e.resolve),
		sequence.WithClipNames(sequence.ClipNames{
			Open:  cfg.Clips.Open.Name,
			Drop:  cfg.Clips.Drop.Name,
			Close: cfg.Clips.Close.Name,
		}),
		sequence.WithDebug(cfg.Debug),
	)
	e.controller.OnStageChange(func(_, to sequence.Stage) {
		e.stage.Store(int32(to))
	})

	clockOpts := []clock.FrameClockBuilderOption{
		clock.WithStep(cfg.Clock.Step),
		clock.WithFrameRate(cfg.Clock.FrameRate),
	}
	if e.profilingEnabled {
		if e.profiler == nil {
			e.profiler = profiler.NewProfiler(profiler.WithReporter(e.report))
		}
		clockOpts = append(clockOpts, clock.WithProfiler(e.profiler))
	}
	e.clock = clock.NewFrameClock(clockOpts...)
	if e.window != nil {
		e.clock.OnPreFrame(e.pollWindow)
	}
	e.clock.OnPreFrame(e.drain)
	e.clock.OnPreFrame(func() { e.loader.Poll() })
	e.clock.SetRender(e.render)

	if e.window != nil {
		e.window.SetResizeCallback(e.OnResize)
		e.window.SetDragCallback(func(dx, dy float32) {
			e.camera.Controller().Drag(dx, dy)
		})
		e.window.SetScrollCallback(func(delta float32) {
			e.camera.Controller().Zoom(delta)
		})
	}
	if e.renderer != nil {
		for name, rgba := range cfg.Colors {
			e.renderer.SetNodeColor(name, rgba)
		}
	}

	return e
}

func (e *engine) Start() bool {
	// a queued Stop will have returned the sequence to Idle by the time this runs
	if e.Stage() != sequence.Idle && e.pendingStops.Load() == 0 {
		return false
	}
	e.enqueue(func() {
		e.controller.Start()
	})
	return true
}

func (e *engine) Stop() {
	e.pendingStops.Add(1)
	e.enqueue(func() {
		e.controller.Stop()
		e.pendingStops.Add(-1)
	})
}

func (e *engine) SetText(s string) {
	e.enqueue(func() {
		e.mu.Lock()
		e.text = s
		e.mu.Unlock()
		if e.cfg.Text.Persist && e.store != nil {
			if err := e.store.Save(s); err != nil {
				log.Printf("[Engine] %v", err)
			}
		}
		e.rebuildText()
	})
}

func (e *engine) OnFrame() error {
	return e.clock.Tick()
}

func (e *engine) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.enqueue(func() {
		e.camera.SetAspect(float32(width) / float32(height))
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
	})
}

func (e *engine) LoadAssets() {
	e.loadOnce.Do(func() {
		fontPath := e.cfg.Assets.Font
		label := fontPath
		if label == "" {
			label = builtinFontPath
		}
		e.loader.Go(label, func() (any, error) {
			return text.LoadFont(fontPath)
		}, e.onFont)
		e.loader.LoadModel(e.cfg.Assets.Model, e.onModel)
	})
}

func (e *engine) Run() {
	e.LoadAssets()
	e.clock.Run()

	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	}
}

// Quit signals the frame loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(e.clock.Stop)
}

func (e *engine) Stage() sequence.Stage {
	return sequence.Stage(e.stage.Load())
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *engine) enqueue(fn func()) {
	e.mu.Lock()
	e.commands = append(e.commands, fn)
	e.mu.Unlock()
}

// drain applies queued commands in submission order.
func (e *engine) drain() {
	e.mu.Lock()
	cmds := e.commands
	e.commands = nil
	e.mu.Unlock()

	for _, fn := range cmds {
		fn()
	}
}

// pollWindow processes window events and quits once the window asks to close.
func (e *engine) pollWindow() {
	if !e.window.PollEvents() {
		e.Quit()
	}
}

func (e *engine) render() error {
	e.camera.Update()
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Render(e.scene, e.camera)
}

func (e *engine) report() string {
	playing := 0
	for _, p := range e.clock.Players() {
		playing += p.PlayingCount()
	}
	return fmt.Sprintf("Stage: %s | Playing: %d", e.Stage(), playing)
}

func (e *engine) onFont(v any, err error) {
	if err != nil {
		log.Printf("[Engine] text disabled: %v", err)
		return
	}
	e.font = v.(*sfnt.Font)
	e.rebuildText()
}

func (e *engine) onModel(m model.Model, err error) {
	if err != nil {
		log.Printf("[Engine] box disabled: %v", err)
		return
	}
	log.Printf("[Engine] loaded %s with clips %v", m.Name(), m.AnimationNames())

	e.box = m
	e.scene.Add(m.Root())
	e.boxPlayer = animator.NewAnimator(m.Root(),
		animator.WithClips(m.Clips()),
		animator.WithName("box"),
	)
	e.boxPlayer.AddListener(e.controller.HandleEvent)
	e.clock.Add(e.boxPlayer)

	e.rebuildText()

	if e.cfg.AutoStart {
		e.controller.Start()
	}
}

// rebuildText replaces the text node with one for the current text. It waits for
// both the font and the box model, since the drop clip ships with the model.
func (e *engine) rebuildText() {
	if e.font == nil || e.box == nil {
		return
	}

	e.mu.Lock()
	s := e.text
	e.mu.Unlock()

	g, err := text.NewTextGeometry(e.font, s,
		text.WithSize(e.cfg.Text.Size),
		text.WithDepth(e.cfg.Text.Depth),
		text.WithCurveSegments(e.cfg.Text.CurveSegments),
	)
	if err != nil {
		log.Printf("[Engine] text %q: %v", s, err)
		return
	}

	if e.textNode != nil {
		e.scene.Remove(e.textNode)
		e.clock.Remove(e.textPlayer)
		e.textPlayer.Release()
	}

	e.textNode = text.NewTextNode(g)
	e.scene.Add(e.textNode)
	e.textPlayer = animator.NewAnimator(e.textNode,
		animator.WithClips(e.box.Clips()),
		animator.WithName("text"),
	)
	e.textPlayer.AddListener(e.controller.HandleEvent)
	e.clock.Add(e.textPlayer)

	e.controller.Rebind(sequence.TextDropping)
}

// resolve supplies the player and configured action for a stage.
func (e *engine) resolve(stage sequence.Stage) (animator.Animator, animator.Action, bool) {
	var player animator.Animator
	var clip config.ClipConfig
	switch stage {
	case sequence.BoxOpening:
		player, clip = e.boxPlayer, e.cfg.Clips.Open
	case sequence.TextDropping:
		player, clip = e.textPlayer, e.cfg.Clips.Drop
	case sequence.BoxClosing:
		player, clip = e.boxPlayer, e.cfg.Clips.Close
	default:
		return nil, nil, false
	}
	if player == nil || player.Released() {
		return nil, nil, false
	}
	action := player.ActionByName(clip.Name)
	if action == nil {
		return player, nil, false
	}
	action.SetLoop(clip.LoopMode())
	action.SetClampWhenFinished(clip.Clamp)
	return player, action, true
}
