package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTextWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "text.txt")
	if err := os.WriteFile(path, []byte("before\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan string, 4)
	w, err := NewTextWatcher(path, func(s string) { got <- s }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewTextWatcher: %v", err)
	}
	defer w.Close()

	// other files in the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("after\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-got:
		if s != "after" {
			t.Errorf("onChange(%q), want after", s)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestTextWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	w, err := NewTextWatcher(path, func(string) {})
	if err != nil {
		t.Fatalf("NewTextWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestTextWatcherMissingDirectory(t *testing.T) {
	if _, err := NewTextWatcher(filepath.Join(t.TempDir(), "nope", "text.txt"), func(string) {}); err == nil {
		t.Error("expected error for missing directory")
	}
}
