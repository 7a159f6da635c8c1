package clock

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/boxdrop/engine/animator"
	"github.com/Carmen-Shannon/boxdrop/engine/profiler"
)

// DefaultStep is the fixed animation delta applied per frame, in seconds.
const DefaultStep = 0.02

// DefaultFrameRate is the tick rate Run drives frames at.
const DefaultFrameRate = 60

// maxMeasuredStep caps the measured delta after a stall so animations never jump
// by more than a few frames.
const maxMeasuredStep = 0.1

// frameClock is the implementation of the FrameClock interface.
type frameClock struct {
	mu      sync.Mutex
	players []animator.Animator

	step     float64
	measured bool
	lastTick time.Time
	interval time.Duration

	preFrame []func()
	render   func() error

	profiler *profiler.Profiler
	frames   atomic.Uint64

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// FrameClock drives the per-frame tick: pre-frame hooks, then Update on every live
// player, then the render function.
//
// Tick must be called from the frame goroutine, which is also the only goroutine
// allowed to touch players and the scene. Add and Remove may be called from
// anywhere; changes take effect on the next Tick.
type FrameClock interface {
	// Add registers a player to be advanced every frame. Adding a player twice is
	// a no-op.
	//
	// Parameters:
	//   - p: the player
	Add(p animator.Animator)

	// Remove unregisters a player. Unknown players are ignored.
	//
	// Parameters:
	//   - p: the player
	Remove(p animator.Animator)

	// Players returns a snapshot of the registered players.
	//
	// Returns:
	//   - []animator.Animator: the players in registration order
	Players() []animator.Animator

	// OnPreFrame registers a hook run at the start of every Tick, before players
	// advance. Hooks run in registration order.
	//
	// Parameters:
	//   - fn: the hook
	OnPreFrame(fn func())

	// SetRender sets the function called after players advance.
	//
	// Parameters:
	//   - fn: the render function; its error is returned from Tick
	SetRender(fn func() error)

	// Step returns the delta the next Tick would apply in fixed mode.
	//
	// Returns:
	//   - float64: the step in seconds
	Step() float64

	// Frames returns the number of completed ticks. Safe to call from any goroutine.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Tick runs one frame.
	//
	// Returns:
	//   - error: the render error, if any
	Tick() error

	// Run ticks at the configured frame rate until Stop is called, blocking the
	// calling goroutine. Render errors are logged and do not stop the loop.
	Run()

	// Stop ends Run. Safe to call multiple times and from any goroutine. Once Stop
	// has returned Run starts no further ticks; a tick already in progress finishes.
	Stop()
}

var _ FrameClock = &frameClock{}

// NewFrameClock creates a FrameClock with a fixed step of DefaultStep at
// DefaultFrameRate.
//
// Parameters:
//   - options: functional options to configure the clock
//
// Returns:
//   - FrameClock: the new clock
func NewFrameClock(options ...FrameClockBuilderOption) FrameClock {
	c := &frameClock{
		step:        DefaultStep,
		interval:    time.Second / DefaultFrameRate,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *frameClock) Add(p animator.Animator) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.players {
		if existing == p {
			return
		}
	}
	c.players = append(c.players, p)
}

func (c *frameClock) Remove(p animator.Animator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.players {
		if existing == p {
			c.players = append(c.players[:i:i], c.players[i+1:]...)
			return
		}
	}
}

func (c *frameClock) Players() []animator.Animator {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]animator.Animator, len(c.players))
	copy(out, c.players)
	return out
}

func (c *frameClock) OnPreFrame(fn func()) {
	if fn == nil {
		return
	}
	c.preFrame = append(c.preFrame, fn)
}

func (c *frameClock) SetRender(fn func() error) {
	c.render = fn
}

func (c *frameClock) Step() float64 {
	return c.step
}

func (c *frameClock) Frames() uint64 {
	return c.frames.Load()
}

func (c *frameClock) Tick() error {
	for _, fn := range c.preFrame {
		fn()
	}

	dt := c.delta()
	for _, p := range c.live() {
		p.Update(dt)
	}

	var err error
	if c.render != nil {
		err = c.render()
	}
	c.frames.Add(1)
	if c.profiler != nil {
		c.profiler.Tick()
	}
	return err
}

// delta returns the step for this frame.
func (c *frameClock) delta() float64 {
	if !c.measured {
		return c.step
	}
	now := time.Now()
	if c.lastTick.IsZero() {
		c.lastTick = now
		return c.step
	}
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	return min(dt, maxMeasuredStep)
}

// live snapshots the registered players, dropping any that were released.
func (c *frameClock) live() []animator.Animator {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, p := range c.players {
		if !p.Released() {
			c.players[n] = p
			n++
		}
	}
	clear(c.players[n:])
	c.players = c.players[:n]
	out := make([]animator.Animator, n)
	copy(out, c.players)
	return out
}

func (c *frameClock) Run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.quitChannel:
			return
		case <-ticker.C:
			// select picks randomly when both are ready; Stop wins
			select {
			case <-c.quitChannel:
				return
			default:
			}
			if err := c.Tick(); err != nil {
				log.Printf("[Clock] frame %d: %v", c.frames.Load(), err)
			}
		}
	}
}

func (c *frameClock) Stop() {
	c.quitOnce.Do(func() {
		close(c.quitChannel)
	})
}
