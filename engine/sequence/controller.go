package sequence

import (
	"log"

	"github.com/Carmen-Shannon/boxdrop/engine/animator"
)

// ClipNames names the clip each stage plays. Completion events are matched by
// these names, never by clip index.
type ClipNames struct {
	Open  string
	Drop  string
	Close string
}

// DefaultClipNames returns the clip names authored in the box asset.
func DefaultClipNames() ClipNames {
	return ClipNames{Open: "box_open", Drop: "empty_falling", Close: "box_close"}
}

// forStage returns the clip name a stage plays.
func (c ClipNames) forStage(s Stage) string {
	switch s {
	case BoxOpening:
		return c.Open
	case TextDropping:
		return c.Drop
	case BoxClosing:
		return c.Close
	default:
		return ""
	}
}

// transitionKey identifies a completion that moves the sequence forward.
type transitionKey struct {
	stage Stage
	clip  string
}

// running is the action currently driving the sequence.
type running struct {
	player animator.Animator
	action animator.Action
}

// controller is the implementation of the Controller interface.
type controller struct {
	source    ActionSource
	clips     ClipNames
	table     map[transitionKey]Stage
	stage     Stage
	active    running
	observers []func(from, to Stage)
	onError   func(error)
	debug     bool
}

// Controller is the box sequence state machine: Idle, BoxOpening, TextDropping,
// BoxClosing, back to Idle.
//
// It is driven by completion events from the players it plays actions on and must
// be used from the frame goroutine only. The exiting stage's action is always
// stopped before the entering stage's action is played. A stage whose action is
// not available is skipped.
type Controller interface {
	// Stage returns the current stage.
	Stage() Stage

	// Start begins the sequence from Idle.
	//
	// Returns:
	//   - bool: false if a sequence is already running, in which case nothing changes
	Start() bool

	// Stop halts the running stage's action and returns to Idle. A later Start
	// replays the sequence from the beginning.
	Stop()

	// HandleEvent processes a completion event. Register it as a listener on every
	// player the source can return. Events that do not complete the current stage
	// are ignored.
	//
	// Parameters:
	//   - e: the completion event
	HandleEvent(e animator.Event)

	// Rebind re-resolves the running stage's action after the resource behind it
	// was replaced, stopping the old action and playing the new one. If the stage
	// can no longer run it is skipped. No-op unless stage is the current stage.
	//
	// Parameters:
	//   - stage: the stage whose resource changed
	Rebind(stage Stage)

	// OnStageChange registers an observer called after every stage change.
	//
	// Parameters:
	//   - fn: receives the previous and new stage
	OnStageChange(fn func(from, to Stage))
}

var _ Controller = &controller{}

// NewController creates a Controller that resolves stage actions through source.
// Panics if source is nil.
//
// Parameters:
//   - source: resolves the player and action for each stage
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller, in Idle
func NewController(source ActionSource, options ...ControllerBuilderOption) Controller {
	if source == nil {
		panic("sequence: nil action source")
	}
	c := &controller{
		source: source,
		clips:  DefaultClipNames(),
		stage:  Idle,
	}
	for _, opt := range options {
		opt(c)
	}
	c.table = map[transitionKey]Stage{
		{BoxOpening, c.clips.Open}:   BoxOpening.following(),
		{TextDropping, c.clips.Drop}: TextDropping.following(),
		{BoxClosing, c.clips.Close}:  BoxClosing.following(),
	}
	return c
}

func (c *controller) Stage() Stage {
	return c.stage
}

func (c *controller) Start() bool {
	if c.stage != Idle {
		return false
	}
	c.enter(BoxOpening)
	return true
}

func (c *controller) Stop() {
	if c.stage == Idle {
		return
	}
	c.exit()
	c.setStage(Idle)
}

func (c *controller) HandleEvent(e animator.Event) {
	clip := e.ClipName()
	next, ok := c.table[transitionKey{c.stage, clip}]
	if !ok || e.Action != c.active.action {
		if c.debug {
			log.Printf("[Sequence] %v", &InvalidStateTransition{Stage: c.stage, Clip: clip})
		}
		return
	}

	c.exit()
	c.enter(next)
}

func (c *controller) Rebind(stage Stage) {
	if stage == Idle || stage != c.stage {
		return
	}

	player, action, ok := c.source.Resolve(stage)
	if ok && action == c.active.action {
		return
	}

	c.exit()
	if ok {
		c.play(player, action)
		return
	}
	c.report(&MissingClipError{Stage: stage, Clip: c.clips.forStage(stage)})
	c.enter(stage.following())
}

func (c *controller) OnStageChange(fn func(from, to Stage)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// enter moves to stage, skipping forward past every stage whose action cannot be
// resolved.
func (c *controller) enter(stage Stage) {
	for stage != Idle {
		player, action, ok := c.source.Resolve(stage)
		if ok {
			c.play(player, action)
			c.setStage(stage)
			return
		}
		c.report(&MissingClipError{Stage: stage, Clip: c.clips.forStage(stage)})
		stage = stage.following()
	}
	c.setStage(Idle)
}

// play starts action and records it as the running one.
func (c *controller) play(player animator.Animator, action animator.Action) {
	player.Play(action)
	c.active = running{player: player, action: action}
}

// exit stops the running action, if any.
func (c *controller) exit() {
	if c.active.player != nil && !c.active.player.Released() {
		c.active.player.Stop(c.active.action)
	}
	c.active = running{}
}

func (c *controller) setStage(to Stage) {
	from := c.stage
	c.stage = to
	if from == to {
		return
	}
	if c.debug {
		log.Printf("[Sequence] %s -> %s", from, to)
	}
	for _, fn := range c.observers {
		fn(from, to)
	}
}

func (c *controller) report(err error) {
	log.Printf("[Sequence] %v", err)
	if c.onError != nil {
		c.onError(err)
	}
}
