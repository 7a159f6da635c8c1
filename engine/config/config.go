package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/boxdrop/engine/model"
	"gopkg.in/yaml.v3"
)

// AssetsConfig locates the files loaded at startup.
type AssetsConfig struct {
	// Model is the glTF/GLB file holding the box and its clips.
	Model string `yaml:"model"`

	// Font is a TrueType/OpenType file; empty uses the built-in font.
	Font string `yaml:"font"`
}

// ClipConfig names one stage clip and how it plays.
type ClipConfig struct {
	Name  string `yaml:"name"`
	Loop  string `yaml:"loop"` // "repeat" or "once"
	Clamp bool   `yaml:"clamp"`
}

// LoopMode converts Loop into a model.LoopMode. Anything other than "once" repeats.
func (c ClipConfig) LoopMode() model.LoopMode {
	if c.Loop == "once" {
		return model.LoopOnce
	}
	return model.LoopRepeat
}

// ClipsConfig holds the three stage clips.
type ClipsConfig struct {
	Open  ClipConfig `yaml:"open"`
	Drop  ClipConfig `yaml:"drop"`
	Close ClipConfig `yaml:"close"`
}

// ClockConfig controls animation stepping.
type ClockConfig struct {
	// Step is the fixed animation advance per frame in seconds.
	Step float64 `yaml:"step"`

	// FrameRate is the number of frames scheduled per second.
	FrameRate float64 `yaml:"frame_rate"`
}

// TextConfig controls the dropped text mesh.
type TextConfig struct {
	Initial       string  `yaml:"initial"`
	Size          float32 `yaml:"size"`
	Depth         float32 `yaml:"depth"`
	CurveSegments int     `yaml:"curve_segments"`

	// Persist remembers the last text set and restores it on the next run.
	Persist bool `yaml:"persist"`
}

// CameraConfig places the perspective camera.
type CameraConfig struct {
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// LightConfig describes the hemisphere light.
type LightConfig struct {
	Color       uint32     `yaml:"color"`
	GroundColor uint32     `yaml:"ground_color"`
	Intensity   float32    `yaml:"intensity"`
	Position    [3]float32 `yaml:"position"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Config is the full application configuration.
type Config struct {
	Assets     AssetsConfig          `yaml:"assets"`
	Clips      ClipsConfig           `yaml:"clips"`
	Clock      ClockConfig           `yaml:"clock"`
	Text       TextConfig            `yaml:"text"`
	Camera     CameraConfig          `yaml:"camera"`
	Light      LightConfig           `yaml:"light"`
	Window     WindowConfig          `yaml:"window"`
	Background [3]float32            `yaml:"background"`
	Colors     map[string][4]float32 `yaml:"colors"`

	// AutoStart starts the sequence as soon as the box model has loaded.
	AutoStart bool `yaml:"auto_start"`
	Debug     bool `yaml:"debug"`
}

// Default returns the configuration the application runs with when no file is given.
//
// Returns:
//   - *Config: a fresh default configuration
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Model: "assets/box_open_close2.glb",
		},
		Clips: ClipsConfig{
			Open:  ClipConfig{Name: "box_open", Loop: "repeat"},
			Drop:  ClipConfig{Name: "empty_falling", Loop: "repeat"},
			Close: ClipConfig{Name: "box_close", Loop: "repeat"},
		},
		Clock: ClockConfig{
			Step:      0.02,
			FrameRate: 60,
		},
		Text: TextConfig{
			Initial:       "Hello World!",
			Size:          0.5,
			Depth:         0.5,
			CurveSegments: 12,
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{5.531509444292354, 3.851383153444635, 1.6028883532758373},
		},
		Light: LightConfig{
			Color:     0x404040,
			Intensity: 3,
			Position:  [3]float32{-5, -3, -1},
		},
		Window: WindowConfig{
			Title:  "boxdrop",
			Width:  1280,
			Height: 720,
		},
		Background: [3]float32{0.1, 0.1, 0.12},
		Colors: map[string][4]float32{
			"text": {0.95, 0.75, 0.2, 1},
		},
		AutoStart: true,
	}
}

// Load reads a YAML file on top of Default, so a file only needs the keys it changes.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the file cannot be read, parsed or fails validation
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data on top of Default.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the document cannot be parsed or fails validation
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that values are usable.
//
// Returns:
//   - error: the first problem found, or nil
func (c *Config) Validate() error {
	if c.Clock.Step <= 0 {
		return errors.New("clock.step must be positive")
	}
	if c.Clock.FrameRate <= 0 {
		return errors.New("clock.frame_rate must be positive")
	}
	for _, clip := range []ClipConfig{c.Clips.Open, c.Clips.Drop, c.Clips.Close} {
		if clip.Name == "" {
			return errors.New("clip names must not be empty")
		}
		if clip.Loop != "" && clip.Loop != "repeat" && clip.Loop != "once" {
			return fmt.Errorf("clip %s: loop must be \"repeat\" or \"once\", got %q", clip.Name, clip.Loop)
		}
	}
	if c.Text.Size <= 0 {
		return errors.New("text.size must be positive")
	}
	if c.Text.Depth < 0 {
		return errors.New("text.depth must not be negative")
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera range %v..%v is invalid", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
