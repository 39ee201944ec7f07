package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the scene looks for its configuration file.
const DefaultPath = "dicescene.toml"

// ErrInvalid is returned (wrapped) when a loaded value is out of range.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Window WindowConfig `toml:"window"`
	Scene  SceneConfig  `toml:"scene"`
	Spin   SpinConfig   `toml:"spin"`
	Sway   SwayConfig   `toml:"sway"`
	Camera CameraConfig `toml:"camera"`
	Audio  AudioConfig  `toml:"audio"`
	Panel  PanelConfig  `toml:"panel"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width        int32  `toml:"width"`
	Height       int32  `toml:"height"`
	Title        string `toml:"title"`
	X            int    `toml:"x"`
	Y            int    `toml:"y"`
	VSync        bool   `toml:"vsync"`
	MSAASamples  int    `toml:"msaa_samples"`
	DarkTitleBar bool   `toml:"dark_title_bar"`
}

type SceneConfig struct {
	TextureDir     string `toml:"texture_dir"`
	BladeCount     int    `toml:"blade_count"`
	Text           string `toml:"text"`
	Seed           int64  `toml:"seed"` // 0 seeds from the clock
	FrustumCulling bool   `toml:"frustum_culling"`
	LightHelpers   bool   `toml:"light_helpers"`
}

// SpinConfig tunes the die spin session started by a click.
type SpinConfig struct {
	MaxSpeed  float32 `toml:"max_speed"` // radians per frame, each axis drawn from [-MaxSpeed, MaxSpeed)
	Decay     float32 `toml:"decay"`
	Threshold float32 `toml:"threshold"`
}

// SwayConfig tunes the vertical blade drift. Frequency is per millisecond of
// wall-clock time.
type SwayConfig struct {
	Amplitude float32 `toml:"amplitude"`
	Frequency float64 `toml:"frequency"`
}

type CameraConfig struct {
	Fov         float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Position    [3]float32 `toml:"position"`
	RotateSpeed float32    `toml:"rotate_speed"`
	PanSpeed    float32    `toml:"pan_speed"`
	ZoomSpeed   float32    `toml:"zoom_speed"`
	ClickSlop   float64    `toml:"click_slop"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type PanelConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the values the scene was designed around.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:        1280,
			Height:       800,
			Title:        "DiceScene",
			X:            100,
			Y:            100,
			VSync:        true,
			MSAASamples:  4,
			DarkTitleBar: true,
		},
		Scene: SceneConfig{
			TextureDir:   "numbers",
			BladeCount:   100,
			Text:         "TO GAMBLE IS TO EVENTUALLY LOSE",
			LightHelpers: true,
		},
		Spin: SpinConfig{
			MaxSpeed:  0.1,
			Decay:     0.99,
			Threshold: 0.001,
		},
		Sway: SwayConfig{
			Amplitude: 0.01,
			Frequency: 0.001,
		},
		Camera: CameraConfig{
			Fov:         10,
			Near:        1,
			Far:         1000,
			Position:    [3]float32{0, 20, 100},
			RotateSpeed: 0.25,
			PanSpeed:    0.05,
			ZoomSpeed:   0.1,
			ClickSlop:   4,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Panel: PanelConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path on top of Default. A missing file is not an
// error and yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out of range value.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Scene.BladeCount <= 0:
		return fmt.Errorf("%w: scene.blade_count must be positive, got %d", ErrInvalid, c.Scene.BladeCount)
	case c.Spin.Decay <= 0 || c.Spin.Decay >= 1:
		return fmt.Errorf("%w: spin.decay must be in (0, 1), got %v", ErrInvalid, c.Spin.Decay)
	case c.Spin.Threshold <= 0:
		// decayed velocities bottom out at denormals, never at zero
		return fmt.Errorf("%w: spin.threshold must be positive, got %v", ErrInvalid, c.Spin.Threshold)
	case c.Spin.MaxSpeed < 0:
		return fmt.Errorf("%w: spin.max_speed must not be negative, got %v", ErrInvalid, c.Spin.MaxSpeed)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera.fov must be in (0, 180), got %v", ErrInvalid, c.Camera.Fov)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be in [0, 1], got %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
