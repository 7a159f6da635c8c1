package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/boxdrop/common"
	"github.com/Carmen-Shannon/boxdrop/engine/scene"
)

// gltfNodeExtractorImpl is the implementation of the gltfNodeExtractor interface.
type gltfNodeExtractorImpl struct {
	parser gltfParser
	names  []string
}

// gltfNodeExtractor rebuilds the glTF node hierarchy as scene nodes.
// Node names are what animation channels target, so unnamed nodes get a
// stable generated name.
type gltfNodeExtractor interface {
	// ExtractHierarchy builds the default scene's node tree under a new root node.
	//
	// Parameters:
	//   - rootName: the name given to the synthetic root node
	//
	// Returns:
	//   - *scene.Node: the root node
	//   - error: error if the hierarchy references missing nodes or meshes
	ExtractHierarchy(rootName string) (*scene.Node, error)

	// NodeName returns the resolved name of a glTF node index.
	//
	// Parameters:
	//   - nodeIndex: the glTF node index
	//
	// Returns:
	//   - string: the node name
	//   - bool: false if the index is out of range
	NodeName(nodeIndex int) (string, bool)
}

var _ gltfNodeExtractor = &gltfNodeExtractorImpl{}

// newGLTFNodeExtractor creates a new node extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfNodeExtractor: the node extractor
func newGLTFNodeExtractor(parser gltfParser) gltfNodeExtractor {
	e := &gltfNodeExtractorImpl{parser: parser}
	if doc := parser.Document(); doc != nil {
		e.names = make([]string, len(doc.Nodes))
		for i, n := range doc.Nodes {
			e.names[i] = n.Name
			if e.names[i] == "" {
				e.names[i] = fmt.Sprintf("node_%d", i)
			}
		}
	}
	return e
}

func (e *gltfNodeExtractorImpl) NodeName(nodeIndex int) (string, bool) {
	if nodeIndex < 0 || nodeIndex >= len(e.names) {
		return "", false
	}
	return e.names[nodeIndex], true
}

func (e *gltfNodeExtractorImpl) ExtractHierarchy(rootName string) (*scene.Node, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}

	root := scene.NewNode(rootName)
	visiting := make(map[int]bool)

	var build func(idx int) (*scene.Node, error)
	build = func(idx int) (*scene.Node, error) {
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil, fmt.Errorf("node index %d out of range", idx)
		}
		if visiting[idx] {
			return nil, fmt.Errorf("node %d: cycle in hierarchy", idx)
		}
		visiting[idx] = true
		defer delete(visiting, idx)

		src := &doc.Nodes[idx]
		n := scene.NewNode(e.names[idx])
		n.SetRestPose(gltfNodePose(src))

		if src.Mesh != nil {
			geom, err := e.extractMesh(*src.Mesh)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", e.names[idx], err)
			}
			n.Geometry = geom
		}

		for _, c := range src.Children {
			child, err := build(c)
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
		}
		return n, nil
	}

	for _, idx := range e.rootIndices(doc) {
		n, err := build(idx)
		if err != nil {
			return nil, err
		}
		root.AddChild(n)
	}
	return root, nil
}

// rootIndices returns the nodes of the default scene, or every parentless node
// when the document declares no scenes.
func (e *gltfNodeExtractorImpl) rootIndices(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		return doc.Scenes[s].Nodes
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}

// extractMesh merges the triangle primitives of a mesh into one position/index set.
func (e *gltfNodeExtractorImpl) extractMesh(meshIndex int) (*scene.Geometry, error) {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	geom := &scene.Geometry{}
	first := true
	for pi, prim := range doc.Meshes[meshIndex].Primitives {
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}
		posAccessor, ok := prim.Attributes["POSITION"]
		if !ok {
			return nil, fmt.Errorf("mesh %d primitive %d has no POSITION attribute", meshIndex, pi)
		}
		positions, err := e.parser.ReadVec3Accessor(posAccessor)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d positions: %w", meshIndex, pi, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = e.parser.ReadIndicesAccessor(*prim.Indices); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d indices: %w", meshIndex, pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		offset := uint32(geom.VertexCount())
		for _, p := range positions {
			geom.Positions = append(geom.Positions, p[0], p[1], p[2])
			for c := 0; c < 3; c++ {
				if first || p[c] < geom.BoundingMin[c] {
					geom.BoundingMin[c] = p[c]
				}
				if first || p[c] > geom.BoundingMax[c] {
					geom.BoundingMax[c] = p[c]
				}
			}
			first = false
		}
		for _, idx := range indices {
			geom.Indices = append(geom.Indices, idx+offset)
		}
	}
	return geom, nil
}

// gltfNodePose converts a node's TRS or matrix into a pose.
func gltfNodePose(n *gltfNode) scene.Pose {
	if n.Matrix != nil {
		return decomposeMatrix(*n.Matrix)
	}
	p := scene.IdentityPose()
	if n.Translation != nil {
		p.Translation = *n.Translation
	}
	if n.Rotation != nil {
		p.Rotation = common.Normalize4(*n.Rotation)
	}
	if n.Scale != nil {
		p.Scale = *n.Scale
	}
	return p
}

// decomposeMatrix splits a column-major affine matrix into translation, rotation
// and scale. Shear is discarded.
func decomposeMatrix(m [16]float32) scene.Pose {
	p := scene.IdentityPose()
	p.Translation = [3]float32{m[12], m[13], m[14]}

	col := func(c int) [3]float32 { return [3]float32{m[c*4], m[c*4+1], m[c*4+2]} }
	length := func(v [3]float32) float32 {
		return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	}

	var r [3][3]float32
	for c := 0; c < 3; c++ {
		v := col(c)
		s := length(v)
		p.Scale[c] = s
		if s == 0 {
			continue
		}
		r[c] = [3]float32{v[0] / s, v[1] / s, v[2] / s}
	}

	// r[c][row] holds column c; rotation matrix element (row, col) = r[col][row].
	m00, m11, m22 := r[0][0], r[1][1], r[2][2]
	trace := m00 + m11 + m22
	var q [4]float32
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		q = [4]float32{(r[1][2] - r[2][1]) / s, (r[2][0] - r[0][2]) / s, (r[0][1] - r[1][0]) / s, 0.25 * s}
	case m00 > m11 && m00 > m22:
		s := float32(math.Sqrt(float64(1+m00-m11-m22))) * 2
		q = [4]float32{0.25 * s, (r[1][0] + r[0][1]) / s, (r[2][0] + r[0][2]) / s, (r[1][2] - r[2][1]) / s}
	case m11 > m22:
		s := float32(math.Sqrt(float64(1+m11-m00-m22))) * 2
		q = [4]float32{(r[1][0] + r[0][1]) / s, 0.25 * s, (r[2][1] + r[1][2]) / s, (r[2][0] - r[0][2]) / s}
	default:
		s := float32(math.Sqrt(float64(1+m22-m00-m11))) * 2
		q = [4]float32{(r[2][0] + r[0][2]) / s, (r[2][1] + r[1][2]) / s, 0.25 * s, (r[0][1] - r[1][0]) / s}
	}
	p.Rotation = common.Normalize4(q)
	return p
}
