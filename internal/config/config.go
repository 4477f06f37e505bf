// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Spin modes for the sphere's idle rotation.
const (
	// SpinPerFrame adds a fixed angle every frame, so speed follows the
	// display refresh rate.
	SpinPerFrame = "frame"
	// SpinPerTime scales the per-frame angle by elapsed time against a
	// 60 Hz reference.
	SpinPerTime = "time"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Globe      GlobeConfig      `yaml:"globe"`
	Stars      StarsConfig      `yaml:"stars"`
	Logging    LoggingConfig    `yaml:"logging"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	Fullscreen    bool       `yaml:"fullscreen"`
	VSync         bool       `yaml:"vsync"`
	MSAASamples   int        `yaml:"msaa_samples"`
	MaxPixelRatio float64    `yaml:"max_pixel_ratio"`
	ClearColor    [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds projection and orbit control settings.
type CameraConfig struct {
	FOV           float32 `yaml:"fov"` // vertical, degrees
	Near          float32 `yaml:"near"`
	Far           float32 `yaml:"far"`
	Distance      float32 `yaml:"distance"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	PanSpeed      float32 `yaml:"pan_speed"`
}

// GlobeConfig holds the sphere, atmosphere and animation settings.
type GlobeConfig struct {
	Texture         string        `yaml:"texture"`
	Radius          float32       `yaml:"radius"`
	WidthSegments   int           `yaml:"width_segments"`
	HeightSegments  int           `yaml:"height_segments"`
	AtmosphereScale float32       `yaml:"atmosphere_scale"`
	SpinPerFrame    float32       `yaml:"spin_per_frame"`
	SpinMode        string        `yaml:"spin_mode"`
	PointerGain     float32       `yaml:"pointer_gain"`
	ClampPointer    bool          `yaml:"clamp_pointer"`
	TweenDuration   time.Duration `yaml:"tween_duration"`
	TweenEase       string        `yaml:"tween_ease"`
}

// StarsConfig holds starfield generation settings.
type StarsConfig struct {
	Count  int        `yaml:"count"`
	Spread float32    `yaml:"spread"`
	Depth  float32    `yaml:"depth"`
	Size   float32    `yaml:"size"`
	Color  [3]float32 `yaml:"color"`
	Seed   uint64     `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MSAASamples:   4,
			MaxPixelRatio: 2,
			ClearColor:    [3]float32{0, 0, 0},
		},
		Camera: CameraConfig{
			FOV:           75,
			Near:          0.1,
			Far:           1000,
			Distance:      15,
			MinDistance:   0,
			MaxDistance:   0,
			EnableDamping: false,
			DampingFactor: 0.05,
			RotateSpeed:   1,
			ZoomSpeed:     1,
			PanSpeed:      1,
		},
		Globe: GlobeConfig{
			Texture:         "image/texture/2k_mars.jpeg",
			Radius:          5,
			WidthSegments:   50,
			HeightSegments:  50,
			AtmosphereScale: 1.1,
			SpinPerFrame:    0.003,
			SpinMode:        SpinPerFrame,
			PointerGain:     0.5,
			ClampPointer:    false,
			TweenDuration:   2 * time.Second,
			TweenEase:       "outQuad",
		},
		Stars: StarsConfig{
			Count:  10000,
			Spread: 2000,
			Depth:  1000,
			Size:   0.5,
			Color:  [3]float32{1, 1, 1},
			Seed:   0,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "mars",
		},
	}
}

// Validate reports every setting that cannot be used as is.
// easeKnown checks tween ease names; pass nil to skip that check.
func (c *Config) Validate(easeKnown func(string) bool) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.MaxPixelRatio >= 1,
		"graphics: max_pixel_ratio %v must be at least 1", c.Graphics.MaxPixelRatio)
	check(c.Graphics.MSAASamples >= 0,
		"graphics: msaa_samples %d must not be negative", c.Graphics.MSAASamples)

	check(c.Camera.FOV > 0 && c.Camera.FOV < 180,
		"camera: fov %v must be in (0, 180)", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near,
		"camera: near %v / far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	check(c.Camera.Distance > 0,
		"camera: distance %v must be positive", c.Camera.Distance)
	check(c.Camera.DampingFactor > 0 && c.Camera.DampingFactor <= 1,
		"camera: damping_factor %v must be in (0, 1]", c.Camera.DampingFactor)

	check(c.Globe.Texture != "", "globe: texture path is empty")
	check(c.Globe.Radius > 0, "globe: radius %v must be positive", c.Globe.Radius)
	check(c.Globe.WidthSegments >= 3 && c.Globe.HeightSegments >= 2,
		"globe: segments %dx%d must be at least 3x2", c.Globe.WidthSegments, c.Globe.HeightSegments)
	check(c.Globe.AtmosphereScale > 0,
		"globe: atmosphere_scale %v must be positive", c.Globe.AtmosphereScale)
	check(c.Globe.SpinMode == SpinPerFrame || c.Globe.SpinMode == SpinPerTime,
		"globe: spin_mode %q must be %q or %q", c.Globe.SpinMode, SpinPerFrame, SpinPerTime)
	check(c.Globe.TweenDuration > 0,
		"globe: tween_duration %v must be positive", c.Globe.TweenDuration)
	if easeKnown != nil {
		check(easeKnown(c.Globe.TweenEase), "globe: unknown tween_ease %q", c.Globe.TweenEase)
	}

	check(c.Stars.Count >= 0, "stars: count %d must not be negative", c.Stars.Count)
	check(c.Stars.Spread > 0 && c.Stars.Depth > 0,
		"stars: spread %v / depth %v must be positive", c.Stars.Spread, c.Stars.Depth)

	_, err := zapcore.ParseLevel(c.Logging.Level)
	check(err == nil, "logging: unknown level %q", c.Logging.Level)

	return errors.Join(errs...)
}
