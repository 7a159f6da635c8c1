package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit for a single save.
const DefaultDebounce = 100 * time.Millisecond

// TextWatcher reports the contents of one file every time it is written.
type TextWatcher interface {
	// Close stops watching. Safe to call multiple times.
	//
	// Returns:
	//   - error: error from the underlying watcher
	Close() error
}

type textWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(string)
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

var _ TextWatcher = &textWatcher{}

// NewTextWatcher watches path and calls onChange with its trimmed contents after
// each write. The parent directory is watched so editors that save by renaming a
// temporary file are still seen. onChange runs on the watcher goroutine.
//
// Parameters:
//   - path: the file to watch
//   - onChange: receives the new contents
//   - options: functional options to configure the watcher
//
// Returns:
//   - TextWatcher: the running watcher
//   - error: error if the directory cannot be watched
func NewTextWatcher(path string, onChange func(string), options ...TextWatcherBuilderOption) (TextWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	tw := &textWatcher{
		watcher:  w,
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(tw)
	}
	go tw.run()
	return tw, nil
}

func (w *textWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *textWatcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.emit()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watch] %s: %v", w.path, err)
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *textWatcher) emit() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// renamed away mid-save; the following create event retries
		return
	}
	w.onChange(strings.TrimRight(string(data), "\r\n"))
}
