package model

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a clip index falls outside [0, Count).
var ErrOutOfRange = errors.New("clip index out of range")

// clipLibrary is the implementation of the ClipLibrary interface.
type clipLibrary struct {
	clips  []*AnimationClip
	byName map[string]*AnimationClip
}

// ClipLibrary is an immutable set of animation clips taken from a loaded asset.
// Clips resolve by ordinal index or by name. A library is safe for concurrent
// reads since nothing mutates it after construction.
type ClipLibrary interface {
	// Count returns the number of clips in the library.
	//
	// Returns:
	//   - int: the clip count
	Count() int

	// ByIndex returns the clip at ordinal index i within its source asset.
	//
	// Parameters:
	//   - i: the clip index
	//
	// Returns:
	//   - *AnimationClip: the clip
	//   - error: wraps ErrOutOfRange if i is outside [0, Count)
	ByIndex(i int) (*AnimationClip, error)

	// ByName returns the first clip with the given name. A missing clip is not an
	// error; callers must handle nil since partial asset sets are valid.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - *AnimationClip: the clip, or nil if absent
	ByName(name string) *AnimationClip

	// Names returns the clip names in index order.
	//
	// Returns:
	//   - []string: the clip names
	Names() []string
}

var _ ClipLibrary = &clipLibrary{}

// NewClipLibrary creates a ClipLibrary over the given clips. The slice is copied, so
// later changes by the caller do not affect the library. Nil clips are dropped.
//
// Parameters:
//   - clips: the clips in source order
//
// Returns:
//   - ClipLibrary: the library
func NewClipLibrary(clips ...*AnimationClip) ClipLibrary {
	l := &clipLibrary{
		clips:  make([]*AnimationClip, 0, len(clips)),
		byName: make(map[string]*AnimationClip, len(clips)),
	}
	for _, c := range clips {
		if c == nil {
			continue
		}
		l.clips = append(l.clips, c)
		if _, dup := l.byName[c.Name]; !dup {
			l.byName[c.Name] = c
		}
	}
	return l
}

func (l *clipLibrary) Count() int {
	return len(l.clips)
}

func (l *clipLibrary) ByIndex(i int) (*AnimationClip, error) {
	if i < 0 || i >= len(l.clips) {
		return nil, fmt.Errorf("clip %d of %d: %w", i, len(l.clips), ErrOutOfRange)
	}
	return l.clips[i], nil
}

func (l *clipLibrary) ByName(name string) *AnimationClip {
	return l.byName[name]
}

func (l *clipLibrary) Names() []string {
	names := make([]string, len(l.clips))
	for i, c := range l.clips {
		names[i] = c.Name
	}
	return names
}
