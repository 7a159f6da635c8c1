package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/boxdrop/engine/camera"
	"github.com/Carmen-Shannon/boxdrop/engine/config"
	"github.com/Carmen-Shannon/boxdrop/engine/loader"
	"github.com/Carmen-Shannon/boxdrop/engine/loader/loadertest"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
	"github.com/Carmen-Shannon/boxdrop/engine/sequence"
	"github.com/Carmen-Shannon/boxdrop/engine/store"
	"github.com/Carmen-Shannon/boxdrop/engine/text"
)

type fakeRenderer struct {
	frames  int
	resized [2]int
	colors  map[string][4]float32
}

func (r *fakeRenderer) Render(scene.Scene, camera.Camera) error { r.frames++; return nil }
func (r *fakeRenderer) Resize(w, h int)                         { r.resized = [2]int{w, h} }
func (r *fakeRenderer) MeshCount() int                          { return 0 }
func (r *fakeRenderer) Release()                                {}

func (r *fakeRenderer) SetNodeColor(name string, rgba [4]float32) {
	if r.colors == nil {
		r.colors = make(map[string][4]float32)
	}
	r.colors[name] = rgba
}

func writeBox(t *testing.T, opts loadertest.BoxOptions) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box_open_close2.glb")
	if err := os.WriteFile(path, loadertest.BoxGLB(opts), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func newTestEngine(t *testing.T, modelPath string, mutate func(*config.Config), options ...EngineBuilderOption) Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Assets.Model = modelPath
	if mutate != nil {
		mutate(cfg)
	}
	options = append([]EngineBuilderOption{
		WithConfig(cfg),
		WithAsyncLoader(loader.NewAsyncLoader(loader.WithExecutor(loader.InlineExecutor{}))),
	}, options...)
	return NewEngine(options...)
}

func runFrames(t *testing.T, e Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.OnFrame(); err != nil {
			t.Fatalf("OnFrame: %v", err)
		}
	}
}

func textNodes(s scene.Scene) int {
	n := 0
	for _, root := range s.Roots() {
		if root.Name() == text.NodeName {
			n++
		}
	}
	return n
}

func TestSequenceStartsWhenModelLoads(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil)
	e.LoadAssets()

	checkpoints := []struct {
		frame int
		want  sequence.Stage
	}{
		{1, sequence.BoxOpening},
		{49, sequence.BoxOpening},
		{50, sequence.TextDropping},
		{98, sequence.TextDropping},
		{99, sequence.BoxClosing},
		{148, sequence.BoxClosing},
		{149, sequence.Idle},
	}
	frame := 0
	for _, cp := range checkpoints {
		runFrames(t, e, cp.frame-frame)
		frame = cp.frame
		if got := e.Stage(); got != cp.want {
			t.Fatalf("after frame %d stage = %s, want %s", frame, got, cp.want)
		}
	}
	if textNodes(e.Scene()) != 1 {
		t.Errorf("text nodes = %d, want 1", textNodes(e.Scene()))
	}
}

func TestAutoStartDisabled(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), func(c *config.Config) {
		c.AutoStart = false
	})
	e.LoadAssets()
	runFrames(t, e, 5)
	if e.Stage() != sequence.Idle {
		t.Fatalf("stage = %s, want Idle", e.Stage())
	}

	if !e.Start() {
		t.Fatal("Start() from Idle returned false")
	}
	runFrames(t, e, 1)
	if e.Stage() != sequence.BoxOpening {
		t.Errorf("stage = %s, want BoxOpening", e.Stage())
	}
	if e.Start() {
		t.Error("Start() while running returned true")
	}
}

func TestStopThenStartReplays(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil)
	e.LoadAssets()
	runFrames(t, e, 60)

	e.Stop()
	runFrames(t, e, 1)
	if e.Stage() != sequence.Idle {
		t.Fatalf("stage after Stop = %s, want Idle", e.Stage())
	}

	e.Start()
	runFrames(t, e, 1)
	if e.Stage() != sequence.BoxOpening {
		t.Errorf("stage after restart = %s, want BoxOpening", e.Stage())
	}
}

func TestStopStartWithinOneFrameReplays(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil)
	e.LoadAssets()
	runFrames(t, e, 10)
	if e.Stage() != sequence.BoxOpening {
		t.Fatalf("stage = %s, want BoxOpening", e.Stage())
	}

	// both keys handled by one event poll, before any queued command runs
	e.Stop()
	if !e.Start() {
		t.Fatal("Start() after a queued Stop returned false")
	}
	runFrames(t, e, 1)
	if e.Stage() != sequence.BoxOpening {
		t.Fatalf("stage = %s, want BoxOpening after replay", e.Stage())
	}

	// the replay starts from the beginning: box_open completes 50 frames later
	runFrames(t, e, 48)
	if e.Stage() != sequence.BoxOpening {
		t.Fatalf("stage = %s, want BoxOpening on frame 49 of the replay", e.Stage())
	}
	runFrames(t, e, 1)
	if e.Stage() != sequence.TextDropping {
		t.Errorf("stage = %s, want TextDropping", e.Stage())
	}

	if e.Start() {
		t.Error("Start() while running with no queued Stop returned true")
	}
}

func TestSetTextTwiceLeavesOneTextNode(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil)
	e.LoadAssets()
	runFrames(t, e, 1)

	e.SetText("first")
	e.SetText("second")
	runFrames(t, e, 1)

	if got := textNodes(e.Scene()); got != 1 {
		t.Fatalf("text nodes = %d, want 1", got)
	}
	if e.Text() != "second" {
		t.Errorf("Text() = %q, want second", e.Text())
	}
}

func TestSetTextBeforeAssetsLoad(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil)
	e.SetText("early")
	e.LoadAssets()
	runFrames(t, e, 1)

	if e.Text() != "early" || textNodes(e.Scene()) != 1 {
		t.Errorf("Text() = %q with %d text nodes, want early with 1", e.Text(), textNodes(e.Scene()))
	}
}

func TestSetTextMidDropRestartsDrop(t *testing.T) {
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil)
	e.LoadAssets()
	runFrames(t, e, 60)
	if e.Stage() != sequence.TextDropping {
		t.Fatalf("stage = %s, want TextDropping", e.Stage())
	}

	e.SetText("again")
	runFrames(t, e, 49) // frame 109
	if e.Stage() != sequence.TextDropping {
		t.Fatalf("stage = %s, want TextDropping while the new drop runs", e.Stage())
	}
	runFrames(t, e, 1)
	if e.Stage() != sequence.BoxClosing {
		t.Errorf("stage = %s, want BoxClosing", e.Stage())
	}
	if got := textNodes(e.Scene()); got != 1 {
		t.Errorf("text nodes = %d, want 1", got)
	}
}

func TestDropClipMissingSkipsToClose(t *testing.T) {
	opts := loadertest.DefaultBoxOptions()
	opts.OmitDrop = true
	e := newTestEngine(t, writeBox(t, opts), nil)
	e.LoadAssets()

	runFrames(t, e, 50)
	if e.Stage() != sequence.BoxClosing {
		t.Fatalf("stage = %s, want BoxClosing", e.Stage())
	}
	runFrames(t, e, 50)
	if e.Stage() != sequence.Idle {
		t.Errorf("stage = %s, want Idle", e.Stage())
	}
}

func TestModelLoadFailureLeavesStaticScene(t *testing.T) {
	e := newTestEngine(t, filepath.Join(t.TempDir(), "missing.glb"), nil)
	e.LoadAssets()
	runFrames(t, e, 2)

	if e.Scene().Count() != 0 {
		t.Errorf("scene roots = %d, want 0", e.Scene().Count())
	}
	e.Start()
	runFrames(t, e, 1)
	if e.Stage() != sequence.Idle {
		t.Errorf("stage = %s, want Idle", e.Stage())
	}
}

func TestRendererAndResize(t *testing.T) {
	r := &fakeRenderer{}
	e := newTestEngine(t, writeBox(t, loadertest.DefaultBoxOptions()), nil, WithRenderer(r))

	if _, ok := r.colors[text.NodeName]; !ok {
		t.Error("configured text color was not applied")
	}

	e.OnResize(800, 400)
	e.OnResize(0, 10)
	runFrames(t, e, 3)
	if r.frames != 3 {
		t.Errorf("rendered %d frames, want 3", r.frames)
	}
	if r.resized != [2]int{800, 400} {
		t.Errorf("resized to %v, want [800 400]", r.resized)
	}
	if got := e.Camera().Aspect(); got != 2 {
		t.Errorf("aspect = %v, want 2", got)
	}
}

func TestPersistedTextRestored(t *testing.T) {
	s := store.NewTextStore(nil)
	persist := func(c *config.Config) { c.Text.Persist = true }
	path := writeBox(t, loadertest.DefaultBoxOptions())

	first := newTestEngine(t, path, persist, WithTextStore(s))
	first.SetText("remember me")
	runFrames(t, first, 1)

	second := newTestEngine(t, path, persist, WithTextStore(s))
	if second.Text() != "remember me" {
		t.Errorf("Text() = %q, want restored text", second.Text())
	}
}
