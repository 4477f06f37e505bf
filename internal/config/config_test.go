package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.MaxPixelRatio != 2 {
		t.Errorf("expected max pixel ratio 2, got %v", cfg.Graphics.MaxPixelRatio)
	}

	// Test camera defaults
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 {
		t.Errorf("expected near/far 0.1/1000, got %v/%v", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.Distance != 15 {
		t.Errorf("expected camera distance 15, got %v", cfg.Camera.Distance)
	}

	// Test globe defaults
	if cfg.Globe.Radius != 5 {
		t.Errorf("expected radius 5, got %v", cfg.Globe.Radius)
	}
	if cfg.Globe.WidthSegments != 50 || cfg.Globe.HeightSegments != 50 {
		t.Errorf("expected 50x50 segments, got %dx%d", cfg.Globe.WidthSegments, cfg.Globe.HeightSegments)
	}
	if cfg.Globe.AtmosphereScale != 1.1 {
		t.Errorf("expected atmosphere scale 1.1, got %v", cfg.Globe.AtmosphereScale)
	}
	if cfg.Globe.SpinPerFrame != 0.003 {
		t.Errorf("expected spin 0.003, got %v", cfg.Globe.SpinPerFrame)
	}
	if cfg.Globe.SpinMode != SpinPerFrame {
		t.Errorf("expected spin mode %q, got %q", SpinPerFrame, cfg.Globe.SpinMode)
	}
	if cfg.Globe.TweenDuration != 2*time.Second {
		t.Errorf("expected tween duration 2s, got %v", cfg.Globe.TweenDuration)
	}
	if cfg.Globe.ClampPointer {
		t.Error("expected clamp_pointer to be false by default")
	}

	// Test star defaults
	if cfg.Stars.Count != 10000 {
		t.Errorf("expected 10000 stars, got %d", cfg.Stars.Count)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(nil); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  max_pixel_ratio: 1.5

camera:
  fov: 60
  enable_damping: true

globe:
  texture: "textures/mars_8k.jpg"
  spin_mode: time
  clamp_pointer: true
  tween_duration: 500ms
  tween_ease: linear

stars:
  count: 2500
  seed: 1234

logging:
  level: "debug"
  log_file: "globe.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.MaxPixelRatio != 1.5 {
		t.Errorf("expected max pixel ratio 1.5, got %v", cfg.Graphics.MaxPixelRatio)
	}

	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Camera.FOV)
	}
	if !cfg.Camera.EnableDamping {
		t.Error("expected damping to be enabled")
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Distance != 15 {
		t.Errorf("expected default distance 15, got %v", cfg.Camera.Distance)
	}

	if cfg.Globe.Texture != "textures/mars_8k.jpg" {
		t.Errorf("expected texture textures/mars_8k.jpg, got %s", cfg.Globe.Texture)
	}
	if cfg.Globe.SpinMode != SpinPerTime {
		t.Errorf("expected spin mode %q, got %q", SpinPerTime, cfg.Globe.SpinMode)
	}
	if !cfg.Globe.ClampPointer {
		t.Error("expected clamp_pointer to be true")
	}
	if cfg.Globe.TweenDuration != 500*time.Millisecond {
		t.Errorf("expected tween duration 500ms, got %v", cfg.Globe.TweenDuration)
	}

	if cfg.Stars.Count != 2500 || cfg.Stars.Seed != 1234 {
		t.Errorf("expected 2500 stars with seed 1234, got %d / %d", cfg.Stars.Count, cfg.Stars.Seed)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "globe.log" {
		t.Errorf("expected log file 'globe.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "graphics: size"},
		{"pixel ratio below one", func(c *Config) { c.Graphics.MaxPixelRatio = 0.5 }, "max_pixel_ratio"},
		{"near beyond far", func(c *Config) { c.Camera.Near = 2000 }, "near"},
		{"bad spin mode", func(c *Config) { c.Globe.SpinMode = "wobble" }, "spin_mode"},
		{"zero tween", func(c *Config) { c.Globe.TweenDuration = 0 }, "tween_duration"},
		{"few segments", func(c *Config) { c.Globe.WidthSegments = 2 }, "segments"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging"},
		{"unknown ease", func(c *Config) { c.Globe.TweenEase = "elastic" }, "tween_ease"},
	}

	known := func(name string) bool { return name == "outQuad" }
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate(known)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = -1
	cfg.Stars.Spread = 0

	err := cfg.Validate(nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "graphics") || !strings.Contains(err.Error(), "stars") {
		t.Errorf("expected both problems reported, got %q", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Keep the user's real config dir out of the search.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "texture flag",
			setup: func() {
				*flagTexture = "other.png"
			},
			verify: func(cfg *Config) {
				if cfg.Globe.Texture != "other.png" {
					t.Errorf("expected texture other.png, got %s", cfg.Globe.Texture)
				}
			},
			teardown: func() {
				*flagTexture = ""
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 77
			},
			verify: func(cfg *Config) {
				if cfg.Stars.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.Stars.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Globe.Texture = "saved.jpeg"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Globe.Texture != "saved.jpeg" {
		t.Errorf("expected texture saved.jpeg after reload, got %s", loaded.Globe.Texture)
	}
	if loaded.Globe.TweenDuration != 2*time.Second {
		t.Errorf("expected tween duration 2s after reload, got %v", loaded.Globe.TweenDuration)
	}
}
