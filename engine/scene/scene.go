package scene

import (
	"sync"

	"github.com/Carmen-Shannon/boxdrop/engine/light"
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu     sync.RWMutex
	name   string
	active bool
	roots  []*Node
	lights []light.Light
}

// Scene holds the ordered set of root nodes rendered each frame, plus the lights
// illuminating them.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Add appends a root node to the scene. Adding a node that is already present
	// is a no-op.
	//
	// Parameters:
	//   - n: the node to add
	Add(n *Node)

	// Remove detaches a root node from the scene.
	//
	// Parameters:
	//   - n: the node to remove
	//
	// Returns:
	//   - bool: true if the node was present
	Remove(n *Node) bool

	// Contains reports whether n is a root of the scene.
	//
	// Parameters:
	//   - n: the node to look for
	//
	// Returns:
	//   - bool: true if present
	Contains(n *Node) bool

	// Count returns the number of root nodes.
	//
	// Returns:
	//   - int: the root count
	Count() int

	// Roots returns a snapshot of the root nodes in insertion order.
	//
	// Returns:
	//   - []*Node: the root nodes
	Roots() []*Node

	// FindByName searches every root subtree for a node with the given name.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - *Node: the first match or nil
	FindByName(name string) *Node

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// Clear removes all nodes and lights from the scene.
	Clear()
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given name and options.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:   name,
		active: true,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Add(n *Node) {
	if n == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.roots {
		if r == n {
			return
		}
	}
	s.roots = append(s.roots, n)
}

func (s *scene) Remove(n *Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.roots {
		if r == n {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return true
		}
	}
	return false
}

func (s *scene) Contains(n *Node) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roots {
		if r == n {
			return true
		}
	}
	return false
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roots)
}

func (s *scene) Roots() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Node, len(s.roots))
	copy(out, s.roots)
	return out
}

func (s *scene) FindByName(name string) *Node {
	for _, r := range s.Roots() {
		if n := r.FindByName(name); n != nil {
			return n
		}
	}
	return nil
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = nil
	s.lights = nil
}
