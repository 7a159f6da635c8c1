package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/boxdrop/engine/model"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Clock.Step != 0.02 || cfg.Camera.Fov != 75 || cfg.Text.Initial != "Hello World!" {
		t.Errorf("unexpected defaults: step %v fov %v text %q", cfg.Clock.Step, cfg.Camera.Fov, cfg.Text.Initial)
	}
	if cfg.Clips.Drop.Name != "empty_falling" || cfg.Clips.Drop.LoopMode() != model.LoopRepeat {
		t.Errorf("drop clip = %+v", cfg.Clips.Drop)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
clips:
  close:
    name: lid_shut
    loop: once
    clamp: true
clock:
  step: 0.01
light:
  color: 0xff0000
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Clips.Close.Name != "lid_shut" || cfg.Clips.Close.LoopMode() != model.LoopOnce || !cfg.Clips.Close.Clamp {
		t.Errorf("close clip = %+v", cfg.Clips.Close)
	}
	if cfg.Clips.Open.Name != "box_open" {
		t.Errorf("open clip name = %q, want default", cfg.Clips.Open.Name)
	}
	if cfg.Clock.Step != 0.01 || cfg.Clock.FrameRate != 60 {
		t.Errorf("clock = %+v", cfg.Clock)
	}
	if cfg.Light.Color != 0xff0000 || cfg.Light.Intensity != 3 {
		t.Errorf("light = %+v", cfg.Light)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero step", "clock: {step: 0}"},
		{"bad loop", "clips: {open: {name: a, loop: pingpong}}"},
		{"empty clip", "clips: {drop: {name: \"\"}}"},
		{"camera range", "camera: {near: 5, far: 1}"},
		{"malformed", "clock: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxdrop.yaml")
	if err := os.WriteFile(path, []byte("text: {initial: hi}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Text.Initial != "hi" {
		t.Errorf("initial text = %q, want hi", cfg.Text.Initial)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
