package model

import (
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
)

// model is the implementation of the Model interface.
type model struct {
	name  string
	root  *scene.Node
	clips ClipLibrary
}

// Model defines the interface for a loaded 3D model.
// A Model holds the imported node hierarchy and the animation clips bundled with it.
// It is produced by the Loader after importing a model file. The node hierarchy is
// a template: callers that place the model in a scene should animate the returned
// root directly, since a model is only ever instanced once per session.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Root retrieves the root node of the imported hierarchy.
	//
	// Returns:
	//   - *scene.Node: the root node
	Root() *scene.Node

	// Clips retrieves the animation clips bundled with this model.
	//
	// Returns:
	//   - ClipLibrary: the clip library, never nil
	Clips() ClipLibrary

	// AnimationCount returns the number of available animation clips.
	//
	// Returns:
	//   - int: the animation count
	AnimationCount() int

	// AnimationNames returns the names of all animation clips.
	//
	// Returns:
	//   - []string: the animation clip names
	AnimationNames() []string

	// GetAnimationIndex returns the index of an animation by name, or -1 if not found.
	//
	// Parameters:
	//   - name: the animation clip name to search for
	//
	// Returns:
	//   - int: the animation index, or -1 if not found
	GetAnimationIndex(name string) int
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.root == nil {
		m.root = scene.NewNode(m.name)
	}
	if m.clips == nil {
		m.clips = NewClipLibrary()
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Root() *scene.Node {
	return m.root
}

func (m *model) Clips() ClipLibrary {
	return m.clips
}

func (m *model) AnimationCount() int {
	return m.clips.Count()
}

func (m *model) AnimationNames() []string {
	return m.clips.Names()
}

func (m *model) GetAnimationIndex(name string) int {
	for i, n := range m.clips.Names() {
		if n == name {
			return i
		}
	}
	return -1
}
