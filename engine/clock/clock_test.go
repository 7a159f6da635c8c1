package clock

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/boxdrop/engine/animator"
	"github.com/Carmen-Shannon/boxdrop/engine/model"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
)

func newPlayer(name string) animator.Animator {
	return animator.NewAnimator(scene.NewNode(name))
}

func TestTickOrder(t *testing.T) {
	var order []string
	c := NewFrameClock()
	c.OnPreFrame(func() { order = append(order, "pre1") })
	c.OnPreFrame(func() { order = append(order, "pre2") })
	c.SetRender(func() error {
		order = append(order, "render")
		return nil
	})

	p := newPlayer("box")
	c.Add(p)
	c.OnPreFrame(func() { order = append(order, fmt.Sprintf("elapsed=%.2f", p.Elapsed())) })

	if err := c.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	want := []string{"pre1", "pre2", "elapsed=0.00", "render"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if p.Elapsed() != DefaultStep {
		t.Errorf("elapsed = %v, want %v", p.Elapsed(), DefaultStep)
	}
	if c.Frames() != 1 {
		t.Errorf("frames = %d", c.Frames())
	}
}

func TestClipCompletesOnTick50(t *testing.T) {
	lib := model.NewClipLibrary(&model.AnimationClip{Name: "box_open", Duration: 1})
	p := animator.NewAnimator(scene.NewNode("box"), animator.WithClips(lib))
	p.Play(p.ActionByName("box_open"))

	c := NewFrameClock()
	c.Add(p)
	fired := 0
	p.AddListener(func(animator.Event) { fired = int(c.Frames()) + 1 })

	for i := 0; i < 60 && fired == 0; i++ {
		c.Tick()
	}
	if fired != 50 {
		t.Errorf("completion on tick %d, want 50", fired)
	}
}

func TestAddRemoveAndRelease(t *testing.T) {
	c := NewFrameClock(WithStep(0.5))
	a, b := newPlayer("a"), newPlayer("b")
	c.Add(a)
	c.Add(a)
	c.Add(b)
	c.Add(nil)
	if n := len(c.Players()); n != 2 {
		t.Fatalf("players = %d, want 2", n)
	}

	c.Remove(a)
	c.Remove(newPlayer("unknown"))
	c.Tick()
	if a.Elapsed() != 0 || b.Elapsed() != 0.5 {
		t.Errorf("elapsed a=%v b=%v", a.Elapsed(), b.Elapsed())
	}

	b.Release()
	c.Tick()
	if n := len(c.Players()); n != 0 {
		t.Errorf("released player still registered: %d", n)
	}
}

func TestRenderErrorReturned(t *testing.T) {
	boom := errors.New("surface lost")
	c := NewFrameClock()
	c.SetRender(func() error { return boom })
	if err := c.Tick(); !errors.Is(err, boom) {
		t.Errorf("Tick() error = %v, want %v", err, boom)
	}
	if c.Frames() != 1 {
		t.Error("frame not counted on render error")
	}
}

func TestOptions(t *testing.T) {
	c := NewFrameClock(WithStep(-1), WithFrameRate(0)).(*frameClock)
	if c.step != DefaultStep || c.interval != time.Second/DefaultFrameRate {
		t.Errorf("invalid options applied: step=%v interval=%v", c.step, c.interval)
	}
	c = NewFrameClock(WithStep(0.01), WithFrameRate(100)).(*frameClock)
	if c.Step() != 0.01 || c.interval != 10*time.Millisecond {
		t.Errorf("step=%v interval=%v", c.Step(), c.interval)
	}
}

func TestMeasuredDeltaCapped(t *testing.T) {
	c := NewFrameClock(WithMeasuredDelta()).(*frameClock)
	if dt := c.delta(); dt != DefaultStep {
		t.Errorf("first measured delta = %v, want %v", dt, DefaultStep)
	}
	c.lastTick = time.Now().Add(-time.Hour)
	if dt := c.delta(); dt != maxMeasuredStep {
		t.Errorf("stalled delta = %v, want %v", dt, maxMeasuredStep)
	}
}

func TestRunStops(t *testing.T) {
	c := NewFrameClock(WithFrameRate(1000))
	var mu sync.Mutex
	ticks := 0
	c.OnPreFrame(func() {
		mu.Lock()
		ticks++
		n := ticks
		mu.Unlock()
		if n == 3 {
			c.Stop()
		}
	})

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	c.Stop()
}

func TestNoFrameAfterStop(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := NewFrameClock(WithFrameRate(1e6))
		renders := 0
		c.SetRender(func() error {
			renders++
			c.Stop()
			return nil
		})

		done := make(chan struct{})
		go func() {
			c.Run()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after Stop")
		}

		if renders != 1 {
			t.Fatalf("run %d: %d renders, want 1", i, renders)
		}
		if c.Frames() != 1 {
			t.Fatalf("run %d: %d frames, want 1", i, c.Frames())
		}
	}
}

func TestFramesReadWhileRunning(t *testing.T) {
	c := NewFrameClock(WithFrameRate(1000))
	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for c.Frames() < 3 {
		select {
		case <-deadline:
			c.Stop()
			t.Fatalf("Frames() = %d after 5s, want at least 3", c.Frames())
		default:
			time.Sleep(time.Millisecond)
		}
	}
	c.Stop()
	<-done

	stopped := c.Frames()
	time.Sleep(10 * time.Millisecond)
	if c.Frames() != stopped {
		t.Errorf("Frames() moved from %d to %d after Run returned", stopped, c.Frames())
	}
}
