package store

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openManager(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("gdata.Open: %v", err)
	}
	return m
}

func TestTextStoreRoundTrip(t *testing.T) {
	m := openManager(t, "boxdrop_test")

	s := NewTextStore(m)
	if _, ok := s.Load(); ok {
		t.Fatal("fresh store reported saved text")
	}
	if err := s.Save("Goodbye"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// a second store over the same directory sees the saved value
	got, ok := NewTextStore(m).Load()
	if !ok || got != "Goodbye" {
		t.Errorf("Load() = %q, %v; want Goodbye, true", got, ok)
	}
}

func TestTextStoreWithoutManager(t *testing.T) {
	s := NewTextStore(nil)
	if _, ok := s.Load(); ok {
		t.Fatal("empty memory store reported saved text")
	}
	if err := s.Save("x"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, ok := s.Load(); !ok || got != "x" {
		t.Errorf("Load() = %q, %v; want x, true", got, ok)
	}
}
