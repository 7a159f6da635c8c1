package store

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

const (
	textObject   = "text"
	textProperty = "last"
)

// TextStore remembers the most recently applied text between runs.
type TextStore interface {
	// Load returns the saved text.
	//
	// Returns:
	//   - string: the saved text
	//   - bool: false when nothing has been saved
	Load() (string, bool)

	// Save records s as the most recent text.
	//
	// Parameters:
	//   - s: the text to save
	//
	// Returns:
	//   - error: error if the text cannot be written
	Save(s string) error
}

// textStore persists through gdata. A nil manager keeps the text in memory only.
type textStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
	cached  string
	ok      bool
}

var _ TextStore = &textStore{}

// OpenTextStore opens the per-user data directory for appName. When the directory
// cannot be opened the store falls back to memory and logs a warning.
//
// Parameters:
//   - appName: the application name used for the data directory
//
// Returns:
//   - TextStore: the store
func OpenTextStore(appName string) TextStore {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Store] Warning: persistent storage unavailable: %v (text kept in memory)", err)
		manager = nil
	}
	return NewTextStore(manager)
}

// NewTextStore wraps an existing manager, which may be nil.
func NewTextStore(manager *gdata.Manager) TextStore {
	return &textStore{manager: manager}
}

func (s *textStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ok || s.manager == nil {
		return s.cached, s.ok
	}
	if !s.manager.ObjectPropExists(textObject, textProperty) {
		return "", false
	}
	data, err := s.manager.LoadObjectProp(textObject, textProperty)
	if err != nil {
		log.Printf("[Store] Warning: failed to load text: %v", err)
		return "", false
	}
	s.cached, s.ok = string(data), true
	return s.cached, true
}

func (s *textStore) Save(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached, s.ok = text, true
	if s.manager == nil {
		return nil
	}
	if err := s.manager.SaveObjectProp(textObject, textProperty, []byte(text)); err != nil {
		return fmt.Errorf("failed to save text: %w", err)
	}
	return nil
}
