package scene

import (
	"sync/atomic"
)

var nextNodeID atomic.Uint64

// Geometry is renderable vertex data attached to a Node.
type Geometry struct {
	// Positions are the vertex positions as flat (x, y, z) triples.
	Positions []float32

	// Indices are the triangle indices into Positions.
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// VertexCount returns the number of vertices in the geometry.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Pose is a decomposed local transform.
type Pose struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityPose returns a pose with no translation, no rotation and unit scale.
func IdentityPose() Pose {
	return Pose{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Node is a named transform in the scene graph. Nodes are not safe for concurrent
// mutation; only the Animator bound to a node writes its pose.
type Node struct {
	id       uint64
	name     string
	pose     Pose
	rest     Pose
	parent   *Node
	children []*Node

	// Geometry is the optional mesh data rendered at this node.
	Geometry *Geometry
}

// NewNode creates a node with the given name and identity pose. The identity pose is
// also recorded as the rest pose.
//
// Parameters:
//   - name: the node name used for animation targeting
//
// Returns:
//   - *Node: the new node
func NewNode(name string) *Node {
	return &Node{
		id:   nextNodeID.Add(1),
		name: name,
		pose: IdentityPose(),
		rest: IdentityPose(),
	}
}

// ID returns the process-unique node identifier.
func (n *Node) ID() uint64 {
	return n.id
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// Pose returns the current local pose.
func (n *Node) Pose() Pose {
	return n.pose
}

// SetPose replaces the current local pose.
func (n *Node) SetPose(p Pose) {
	n.pose = p
}

// RestPose returns the pose the node reverts to when animation stops.
func (n *Node) RestPose() Pose {
	return n.rest
}

// SetRestPose sets both the rest pose and the current pose.
//
// Parameters:
//   - p: the new rest pose
func (n *Node) SetRestPose(p Pose) {
	n.rest = p
	n.pose = p
}

// SetTranslation sets the current translation.
func (n *Node) SetTranslation(t [3]float32) {
	n.pose.Translation = t
}

// SetRotation sets the current rotation quaternion (x, y, z, w).
func (n *Node) SetRotation(r [4]float32) {
	n.pose.Rotation = r
}

// SetScale sets the current scale.
func (n *Node) SetScale(s [3]float32) {
	n.pose.Scale = s
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children of the node.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild attaches child under n, detaching it from any previous parent.
//
// Parameters:
//   - child: the node to attach
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. It is a no-op if child is not a direct child.
//
// Parameters:
//   - child: the node to detach
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Walk visits n and all of its descendants depth-first. Returning false from fn stops
// the walk.
//
// Parameters:
//   - fn: the visitor
//
// Returns:
//   - bool: false if the walk was stopped early
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindByName returns the first node named name in the subtree rooted at n, or nil.
//
// Parameters:
//   - name: the node name to search for
//
// Returns:
//   - *Node: the matching node or nil
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// ResetPose restores the rest pose on n and every descendant.
func (n *Node) ResetPose() {
	n.Walk(func(c *Node) bool {
		c.pose = c.rest
		return true
	})
}
