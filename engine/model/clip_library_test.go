package model

import (
	"errors"
	"testing"
)

func testClips() []*AnimationClip {
	return []*AnimationClip{
		{Name: "box_open", Duration: 1},
		{Name: "box_close", Duration: 1},
		{Name: "empty_falling", Duration: 2},
	}
}

func TestClipLibraryByIndex(t *testing.T) {
	lib := NewClipLibrary(testClips()...)

	tests := []struct {
		name    string
		index   int
		want    string
		wantErr bool
	}{
		{"first", 0, "box_open", false},
		{"last", 2, "empty_falling", false},
		{"negative", -1, "", true},
		{"count", 3, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip, err := lib.ByIndex(tt.index)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("ByIndex(%d) error = %v, want ErrOutOfRange", tt.index, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ByIndex(%d) unexpected error: %v", tt.index, err)
			}
			if clip.Name != tt.want {
				t.Errorf("ByIndex(%d).Name = %q, want %q", tt.index, clip.Name, tt.want)
			}
		})
	}
}

func TestClipLibraryByNameMissing(t *testing.T) {
	lib := NewClipLibrary(testClips()[:2]...)
	if clip := lib.ByName("empty_falling"); clip != nil {
		t.Fatalf("ByName(missing) = %v, want nil", clip)
	}
	if clip := lib.ByName("box_close"); clip == nil || clip.Name != "box_close" {
		t.Fatalf("ByName(box_close) = %v", clip)
	}
}

func TestClipLibraryIsolatedFromCaller(t *testing.T) {
	clips := testClips()
	lib := NewClipLibrary(clips...)
	clips[0] = &AnimationClip{Name: "mutated"}

	if got := lib.Names()[0]; got != "box_open" {
		t.Errorf("Names()[0] = %q after caller mutation, want box_open", got)
	}
}

func TestModelAnimationIndex(t *testing.T) {
	m := NewModel(WithName("box"), WithAnimations(testClips()))
	if got := m.GetAnimationIndex("box_close"); got != 1 {
		t.Errorf("GetAnimationIndex(box_close) = %d, want 1", got)
	}
	if got := m.GetAnimationIndex("nope"); got != -1 {
		t.Errorf("GetAnimationIndex(nope) = %d, want -1", got)
	}
	if m.Root() == nil || m.Root().Name() != "box" {
		t.Errorf("Root() = %v, want default node named box", m.Root())
	}
}

func TestParseLoopMode(t *testing.T) {
	tests := []struct {
		in      string
		want    LoopMode
		wantErr bool
	}{
		{"", LoopRepeat, false},
		{"repeat", LoopRepeat, false},
		{"once", LoopOnce, false},
		{"pingpong", LoopRepeat, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLoopMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLoopMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLoopMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
