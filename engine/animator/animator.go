package animator

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/boxdrop/engine/model"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
)

// completionEpsilon absorbs float accumulation error so a clip of duration D
// completes on the tick where elapsed time first reaches D.
const completionEpsilon = 1e-9

// animator is the implementation of the Animator interface.
type animator struct {
	name      string
	target    *scene.Node
	clips     model.ClipLibrary
	timeScale float64

	actions   []*action
	byClip    map[*model.AnimationClip]*action
	nextID    uint64
	listeners []listenerEntry
	nextLID   int
	elapsed   float64
	released  bool
}

type listenerEntry struct {
	id int
	fn Listener
}

// Animator plays clips on exactly one target node (the "mixer").
//
// The Animator owns its target's pose: no other component writes the nodes it
// drives. All methods must be called from the frame goroutine. Completion events
// raised while advancing are delivered synchronously at the end of Update, after
// every action has advanced, so listeners may freely Play or Stop actions.
type Animator interface {
	// Name returns the animator's identifier used in logs.
	Name() string

	// Target returns the node this animator drives, or nil once released.
	//
	// Returns:
	//   - *scene.Node: the target node
	Target() *scene.Node

	// Clips returns the clip library actions are resolved from.
	//
	// Returns:
	//   - model.ClipLibrary: the library
	Clips() model.ClipLibrary

	// ClipAction returns the action for clip, creating it on first use. Each clip has
	// at most one action per animator.
	//
	// Parameters:
	//   - clip: the clip to play
	//
	// Returns:
	//   - Action: the action, or nil if clip is nil or the animator is released
	ClipAction(clip *model.AnimationClip) Action

	// ActionByName resolves name through the clip library and returns its action.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - Action: the action, or nil if the clip is absent or the animator is released
	ActionByName(name string) Action

	// Actions returns every action created so far, in creation order.
	//
	// Returns:
	//   - []Action: the actions
	Actions() []Action

	// Play starts an action. Playing an action that is already playing is a no-op
	// and keeps its elapsed time. Actions owned by another animator are ignored.
	//
	// Parameters:
	//   - a: the action to play
	Play(a Action)

	// Stop halts an action and rewinds it to the start. The nodes it drove return
	// to their rest pose unless the action clamps when finished, in which case they
	// hold the last sampled pose.
	//
	// Parameters:
	//   - a: the action to stop
	Stop(a Action)

	// StopAll stops every action.
	StopAll()

	// Update advances every playing action by dt seconds, writes the blended pose
	// to the target and then delivers completion events. dt <= 0 advances nothing
	// and emits nothing.
	//
	// Parameters:
	//   - dt: the step in seconds
	Update(dt float64)

	// AddListener registers fn for completion events.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - func(): removes the listener; safe to call more than once
	AddListener(fn Listener) func()

	// PlayingCount returns the number of actions currently playing.
	//
	// Returns:
	//   - int: the playing count
	PlayingCount() int

	// Elapsed returns the total scaled time this animator has advanced.
	//
	// Returns:
	//   - float64: seconds
	Elapsed() float64

	// Release detaches the animator from its target, dropping every action and
	// listener. Later calls on the animator are no-ops.
	Release()

	// Released reports whether Release has been called.
	Released() bool
}

var _ Animator = &animator{}

// NewAnimator creates an Animator bound to target. Panics if target is nil, since
// an animator only exists once the object it animates has loaded.
//
// Parameters:
//   - target: the node to animate
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the new animator
func NewAnimator(target *scene.Node, options ...AnimatorBuilderOption) Animator {
	if target == nil {
		panic("animator: nil target")
	}
	a := &animator{
		name:      target.Name(),
		target:    target,
		timeScale: 1,
		byClip:    make(map[*model.AnimationClip]*action),
	}
	for _, opt := range options {
		opt(a)
	}
	if a.clips == nil {
		a.clips = model.NewClipLibrary()
	}
	return a
}

func (m *animator) Name() string {
	return m.name
}

func (m *animator) Target() *scene.Node {
	return m.target
}

func (m *animator) Clips() model.ClipLibrary {
	return m.clips
}

func (m *animator) ClipAction(clip *model.AnimationClip) Action {
	if m.released || clip == nil {
		return nil
	}
	if a, ok := m.byClip[clip]; ok {
		return a
	}
	m.nextID++
	a := newAction(m.nextID, m, clip)
	m.byClip[clip] = a
	m.actions = append(m.actions, a)
	return a
}

func (m *animator) ActionByName(name string) Action {
	if m.released {
		return nil
	}
	clip := m.clips.ByName(name)
	if clip == nil {
		return nil
	}
	return m.ClipAction(clip)
}

func (m *animator) Actions() []Action {
	out := make([]Action, len(m.actions))
	for i, a := range m.actions {
		out[i] = a
	}
	return out
}

// own returns the concrete action if it belongs to this animator.
func (m *animator) own(a Action) *action {
	act, ok := a.(*action)
	if !ok || act == nil || act.owner != m || m.released {
		return nil
	}
	return act
}

func (m *animator) Play(a Action) {
	act := m.own(a)
	if act == nil {
		if a != nil {
			log.Printf("[Animator] %s: ignoring play of foreign action", m.name)
		}
		return
	}
	if act.playing {
		return
	}
	if act.finished {
		act.time = 0
		act.finished = false
	}
	act.playing = true
}

func (m *animator) Stop(a Action) {
	act := m.own(a)
	if act == nil {
		return
	}
	wasActive := act.applies()
	act.playing = false
	act.finished = false
	act.time = 0
	if wasActive && !act.clamp {
		act.restore()
	}
}

func (m *animator) StopAll() {
	for _, a := range m.actions {
		m.Stop(a)
	}
}

func (m *animator) Update(dt float64) {
	if m.released {
		return
	}

	var events []Event
	if dt > 0 {
		step := dt * m.timeScale
		m.elapsed += step
		for _, a := range m.actions {
			if a.playing {
				events = a.advance(step, events)
			}
		}
	}

	m.applyPose()

	if len(events) == 0 {
		return
	}
	listeners := make([]Listener, len(m.listeners))
	for i, l := range m.listeners {
		listeners[i] = l.fn
	}
	for _, e := range events {
		for _, fn := range listeners {
			fn(e)
		}
	}
}

// advance moves a playing action forward and appends any completion events.
func (a *action) advance(step float64, events []Event) []Event {
	d := a.clip.Duration
	a.time += step
	if a.time < d-completionEpsilon {
		return events
	}

	if a.loop == model.LoopOnce {
		a.time = d
		a.playing = false
		a.finished = true
		if !a.clamp {
			a.restore()
		}
		return append(events, Event{Type: EventFinished, Action: a})
	}

	if d <= 0 {
		a.time = 0
		return append(events, Event{Type: EventLoopCompleted, Action: a})
	}
	wraps := math.Floor((a.time + completionEpsilon) / d)
	a.time = max(a.time-wraps*d, 0)
	for i := 0; i < int(wraps); i++ {
		events = append(events, Event{Type: EventLoopCompleted, Action: a})
	}
	return events
}

// applyPose rebuilds the pose of every node driven by an active action: rest pose
// first, then each action blended in creation order.
func (m *animator) applyPose() {
	reset := make(map[*scene.Node]bool)
	for _, a := range m.actions {
		if !a.applies() {
			continue
		}
		for _, b := range a.bindings {
			if !reset[b.node] {
				reset[b.node] = true
				b.node.SetPose(b.node.RestPose())
			}
		}
	}
	for _, a := range m.actions {
		if a.applies() {
			a.sample()
		}
	}
}

func (m *animator) AddListener(fn Listener) func() {
	if m.released || fn == nil {
		return func() {}
	}
	m.nextLID++
	id := m.nextLID
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *animator) PlayingCount() int {
	n := 0
	for _, a := range m.actions {
		if a.playing {
			n++
		}
	}
	return n
}

func (m *animator) Elapsed() float64 {
	return m.elapsed
}

func (m *animator) Release() {
	if m.released {
		return
	}
	m.released = true
	m.actions = nil
	m.byClip = nil
	m.listeners = nil
	m.target = nil
}

func (m *animator) Released() bool {
	return m.released
}
