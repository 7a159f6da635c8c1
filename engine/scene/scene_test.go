package scene

import (
	"testing"
)

func TestSceneAddRemove(t *testing.T) {
	s := NewScene("main")
	a := NewNode("a")
	b := NewNode("b")

	s.Add(a)
	s.Add(b)
	s.Add(a)
	if got := s.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}

	if !s.Remove(a) {
		t.Fatal("Remove(a) = false, want true")
	}
	if s.Remove(a) {
		t.Fatal("second Remove(a) = true, want false")
	}
	if s.Contains(a) || !s.Contains(b) {
		t.Fatalf("Contains after remove: a=%v b=%v", s.Contains(a), s.Contains(b))
	}
}

func TestSceneRootsIsSnapshot(t *testing.T) {
	s := NewScene("main", WithNodes(NewNode("a")))
	roots := s.Roots()
	roots[0] = nil
	if s.Roots()[0] == nil {
		t.Fatal("Roots() returned internal slice")
	}
}

func TestSceneFindByName(t *testing.T) {
	root := NewNode("box")
	lid := NewNode("lid")
	root.AddChild(lid)
	s := NewScene("main", WithNodes(root, NewNode("text")))

	tests := []struct {
		name string
		want bool
	}{
		{"box", true},
		{"lid", true},
		{"text", true},
		{"missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FindByName(tt.name)
			if (got != nil) != tt.want {
				t.Fatalf("FindByName(%q) = %v, want found=%v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNodeResetPose(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.AddChild(child)

	rest := IdentityPose()
	rest.Translation = [3]float32{1, 2, 3}
	child.SetRestPose(rest)

	child.SetTranslation([3]float32{9, 9, 9})
	root.SetScale([3]float32{2, 2, 2})
	root.ResetPose()

	if got := child.Pose().Translation; got != [3]float32{1, 2, 3} {
		t.Errorf("child translation = %v, want rest", got)
	}
	if got := root.Pose().Scale; got != [3]float32{1, 1, 1} {
		t.Errorf("root scale = %v, want identity", got)
	}
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.AddChild(c)
	b.AddChild(c)

	if len(a.Children()) != 0 {
		t.Errorf("a still has %d children", len(a.Children()))
	}
	if c.Parent() != b {
		t.Errorf("c.Parent() = %v, want b", c.Parent())
	}
}

func TestNodeIDsUnique(t *testing.T) {
	if NewNode("x").ID() == NewNode("x").ID() {
		t.Fatal("node IDs collide")
	}
}
