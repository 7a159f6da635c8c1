package sequence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/boxdrop/engine/animator"
	"github.com/Carmen-Shannon/boxdrop/engine/model"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
)

const step = 0.02

// recorder wraps an animator and logs every Play and Stop call in order.
type recorder struct {
	animator.Animator
	log *[]string
}

func (r recorder) Play(a animator.Action) {
	*r.log = append(*r.log, "play "+a.Clip().Name)
	r.Animator.Play(a)
}

func (r recorder) Stop(a animator.Action) {
	*r.log = append(*r.log, "stop "+a.Clip().Name)
	r.Animator.Stop(a)
}

func clip(name string, duration float64) *model.AnimationClip {
	return &model.AnimationClip{Name: name, Duration: duration}
}

// rig is a box player, an optional text player and a controller wired together.
type rig struct {
	box   animator.Animator
	text  animator.Animator
	calls []string
	ctrl  Controller
	errs  []error
	ticks int
}

func newRig(t *testing.T, boxClips []*model.AnimationClip, withText bool) *rig {
	t.Helper()
	r := &rig{}
	r.box = recorder{animator.NewAnimator(scene.NewNode("box"),
		animator.WithClips(model.NewClipLibrary(boxClips...))), &r.calls}
	if withText {
		r.attachText()
	}

	src := SourceFunc(func(s Stage) (animator.Animator, animator.Action, bool) {
		var p animator.Animator
		var name string
		switch s {
		case BoxOpening:
			p, name = r.box, "box_open"
		case TextDropping:
			p, name = r.text, "empty_falling"
		case BoxClosing:
			p, name = r.box, "box_close"
		}
		if p == nil || p.Released() {
			return nil, nil, false
		}
		a := p.ActionByName(name)
		return p, a, a != nil
	})
	r.ctrl = NewController(src, WithErrorHandler(func(err error) { r.errs = append(r.errs, err) }))
	r.box.AddListener(r.ctrl.HandleEvent)
	return r
}

// attachText creates a fresh text player sharing the box library's drop clip.
func (r *rig) attachText() {
	drop := r.box.Clips().ByName("empty_falling")
	if drop == nil {
		drop = clip("empty_falling", 1)
	}
	r.text = recorder{animator.NewAnimator(scene.NewNode("text"),
		animator.WithClips(model.NewClipLibrary(drop))), &r.calls}
	if r.ctrl != nil {
		r.text.AddListener(r.ctrl.HandleEvent)
	}
}

func (r *rig) tick(n int) {
	for i := 0; i < n; i++ {
		r.ticks++
		r.box.Update(step)
		if r.text != nil {
			r.text.Update(step)
		}
	}
}

func (r *rig) stages() *[]Stage {
	var got []Stage
	r.ctrl.OnStageChange(func(_, to Stage) { got = append(got, to) })
	return &got
}

func allClips() []*model.AnimationClip {
	return []*model.AnimationClip{clip("box_open", 1), clip("box_close", 1), clip("empty_falling", 1)}
}

func TestFullSequenceOrder(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.text.AddListener(r.ctrl.HandleEvent)
	stages := r.stages()

	if !r.ctrl.Start() {
		t.Fatal("Start() = false from Idle")
	}
	r.tick(200)

	want := []Stage{BoxOpening, TextDropping, BoxClosing, Idle}
	if fmt.Sprint(*stages) != fmt.Sprint(want) {
		t.Fatalf("stages = %v, want %v", *stages, want)
	}

	wantCalls := []string{
		"play box_open",
		"stop box_open", "play empty_falling",
		"stop empty_falling", "play box_close",
		"stop box_close",
	}
	if fmt.Sprint(r.calls) != fmt.Sprint(wantCalls) {
		t.Fatalf("calls = %v, want %v", r.calls, wantCalls)
	}
	if r.box.PlayingCount()+r.text.PlayingCount() != 0 {
		t.Error("actions still playing after sequence")
	}
	if len(r.errs) != 0 {
		t.Errorf("unexpected errors: %v", r.errs)
	}
}

func TestStageTiming(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.text.AddListener(r.ctrl.HandleEvent)
	r.ctrl.Start()

	r.tick(49)
	if r.ctrl.Stage() != BoxOpening {
		t.Fatalf("stage after 49 ticks = %v, want BoxOpening", r.ctrl.Stage())
	}
	r.tick(1)
	if r.ctrl.Stage() != TextDropping {
		t.Fatalf("stage after 50 ticks = %v, want TextDropping", r.ctrl.Stage())
	}
	r.tick(50)
	if r.ctrl.Stage() != BoxClosing {
		t.Fatalf("stage after 100 ticks = %v, want BoxClosing", r.ctrl.Stage())
	}
	r.tick(50)
	if r.ctrl.Stage() != Idle {
		t.Fatalf("stage after 150 ticks = %v, want Idle", r.ctrl.Stage())
	}
}

func TestTextNotLoadedSkipsDrop(t *testing.T) {
	r := newRig(t, allClips(), false)
	stages := r.stages()

	r.ctrl.Start()
	r.tick(200)

	want := []Stage{BoxOpening, BoxClosing, Idle}
	if fmt.Sprint(*stages) != fmt.Sprint(want) {
		t.Fatalf("stages = %v, want %v", *stages, want)
	}
	var mce *MissingClipError
	if len(r.errs) != 1 || !errors.As(r.errs[0], &mce) || mce.Stage != TextDropping {
		t.Fatalf("errs = %v, want one MissingClipError for TextDropping", r.errs)
	}
}

func TestDropClipAbsentSkipsDrop(t *testing.T) {
	r := newRig(t, allClips()[:2], false)
	// a text player exists but its library lacks the drop clip
	r.text = recorder{animator.NewAnimator(scene.NewNode("text")), &r.calls}
	stages := r.stages()

	r.ctrl.Start()
	r.tick(200)

	want := []Stage{BoxOpening, BoxClosing, Idle}
	if fmt.Sprint(*stages) != fmt.Sprint(want) {
		t.Fatalf("stages = %v, want %v", *stages, want)
	}
}

func TestOnlyCloseClip(t *testing.T) {
	r := newRig(t, []*model.AnimationClip{clip("box_close", 1)}, false)
	stages := r.stages()

	if !r.ctrl.Start() {
		t.Fatal("Start() = false")
	}
	if r.ctrl.Stage() != BoxClosing {
		t.Fatalf("stage = %v, want BoxClosing", r.ctrl.Stage())
	}
	r.tick(60)
	want := []Stage{BoxClosing, Idle}
	if fmt.Sprint(*stages) != fmt.Sprint(want) {
		t.Fatalf("stages = %v, want %v", *stages, want)
	}
}

func TestNoClipsEndsIdle(t *testing.T) {
	r := newRig(t, nil, false)
	r.ctrl.Start()
	if r.ctrl.Stage() != Idle {
		t.Fatalf("stage = %v, want Idle", r.ctrl.Stage())
	}
	if len(r.errs) != 3 {
		t.Errorf("errors = %d, want one per stage", len(r.errs))
	}
}

func TestStartWhileActiveIsNoOp(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.ctrl.Start()
	r.tick(25)
	open := r.box.ActionByName("box_open")
	before := open.Time()

	if r.ctrl.Start() {
		t.Fatal("Start() = true while BoxOpening")
	}
	if r.ctrl.Stage() != BoxOpening || open.Time() != before {
		t.Fatalf("repeated Start changed state: stage=%v time %v -> %v", r.ctrl.Stage(), before, open.Time())
	}
}

func TestStopThenStartReplays(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.ctrl.Start()
	r.tick(25)

	r.ctrl.Stop()
	if r.ctrl.Stage() != Idle {
		t.Fatalf("stage after Stop = %v, want Idle", r.ctrl.Stage())
	}
	if r.box.PlayingCount() != 0 {
		t.Fatal("box action still playing after Stop")
	}

	if !r.ctrl.Start() {
		t.Fatal("Start() after Stop = false")
	}
	if got := r.box.ActionByName("box_open").Time(); got != 0 {
		t.Errorf("replayed box_open time = %v, want 0", got)
	}
	r.tick(49)
	if r.ctrl.Stage() != BoxOpening {
		t.Errorf("replay completed early: %v", r.ctrl.Stage())
	}
}

func TestStrayEventsIgnored(t *testing.T) {
	r := newRig(t, allClips(), true)
	closeAct := r.box.ActionByName("box_close")
	openAct := r.box.ActionByName("box_open")

	// Idle: any completion is stray
	r.ctrl.HandleEvent(animator.Event{Type: animator.EventLoopCompleted, Action: openAct})
	if r.ctrl.Stage() != Idle {
		t.Fatalf("stray event moved Idle to %v", r.ctrl.Stage())
	}

	r.ctrl.Start()
	// wrong clip for BoxOpening
	r.ctrl.HandleEvent(animator.Event{Type: animator.EventLoopCompleted, Action: closeAct})
	if r.ctrl.Stage() != BoxOpening {
		t.Fatalf("wrong-clip event moved to %v", r.ctrl.Stage())
	}

	// right clip name, but from another player
	other := animator.NewAnimator(scene.NewNode("other"), animator.WithClips(model.NewClipLibrary(clip("box_open", 1))))
	r.ctrl.HandleEvent(animator.Event{Type: animator.EventLoopCompleted, Action: other.ActionByName("box_open")})
	if r.ctrl.Stage() != BoxOpening {
		t.Fatalf("foreign player's event moved to %v", r.ctrl.Stage())
	}
}

func TestFinishedEventCompletesStage(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.box.ActionByName("box_open").SetLoop(model.LoopOnce)
	r.ctrl.Start()
	r.tick(50)
	if r.ctrl.Stage() != TextDropping {
		t.Fatalf("stage = %v, want TextDropping after once clip finished", r.ctrl.Stage())
	}
}

func TestRebindReplacedTextMidDrop(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.text.AddListener(r.ctrl.HandleEvent)
	r.ctrl.Start()
	r.tick(60)
	if r.ctrl.Stage() != TextDropping {
		t.Fatalf("stage = %v, want TextDropping", r.ctrl.Stage())
	}

	old := r.text
	old.Release()
	r.attachText()
	r.ctrl.Rebind(TextDropping)

	if r.ctrl.Stage() != TextDropping || r.text.PlayingCount() != 1 {
		t.Fatalf("after rebind stage=%v playing=%d", r.ctrl.Stage(), r.text.PlayingCount())
	}
	r.tick(50)
	if r.ctrl.Stage() != BoxClosing {
		t.Fatalf("new text drop did not complete the stage: %v", r.ctrl.Stage())
	}
}

func TestRebindWithoutReplacementSkips(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.text.AddListener(r.ctrl.HandleEvent)
	r.ctrl.Start()
	r.tick(60)

	r.text.Release()
	r.ctrl.Rebind(TextDropping)
	if r.ctrl.Stage() != BoxClosing {
		t.Fatalf("stage = %v, want BoxClosing", r.ctrl.Stage())
	}
}

func TestRebindOtherStageIsNoOp(t *testing.T) {
	r := newRig(t, allClips(), true)
	r.ctrl.Start()
	before := len(r.calls)
	r.ctrl.Rebind(TextDropping)
	r.ctrl.Rebind(BoxOpening)
	if len(r.calls) != before || r.ctrl.Stage() != BoxOpening {
		t.Errorf("rebind changed state: calls %v stage %v", r.calls[before:], r.ctrl.Stage())
	}
}

func TestCustomClipNames(t *testing.T) {
	c := NewController(SourceFunc(func(Stage) (animator.Animator, animator.Action, bool) {
		return nil, nil, false
	}), WithClipNames(ClipNames{Drop: "text_fall"})).(*controller)

	if c.clips.Drop != "text_fall" || c.clips.Open != "box_open" {
		t.Errorf("clips = %+v", c.clips)
	}
	if _, ok := c.table[transitionKey{TextDropping, "text_fall"}]; !ok {
		t.Error("transition table not keyed by custom drop clip")
	}
}
