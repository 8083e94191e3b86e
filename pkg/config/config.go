package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config aggregates all application configuration.
type Config struct {
	// Preset selects capture resolution and still JPEG quality:
	// low, medium, high, max.
	Preset string `yaml:"preset"`
	// StartDevice optionally pins the first camera by its enumeration ID
	// (e.g. "/dev/video2"). Empty means the first enumerated device.
	StartDevice string `yaml:"start_device"`
	// ThumbnailWidth is the rendered width of the last-capture thumbnail.
	ThumbnailWidth int `yaml:"thumbnail_width"`
	// FrameIntervalMs is the preview poll interval in milliseconds.
	FrameIntervalMs int `yaml:"frame_interval_ms"`
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Preset:          "medium",
		ThumbnailWidth:  240,
		FrameIntervalMs: 33, // ~30 FPS
		LogLevel:        "info",
	}
}

// Load reads a YAML file and returns the configuration. A missing file is not
// an error: defaults apply. Zero or out-of-range values fall back to defaults
// field by field.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal yaml")
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	switch c.Preset {
	case "low", "medium", "high", "max":
	default:
		c.Preset = def.Preset
	}
	if c.ThumbnailWidth <= 0 || c.ThumbnailWidth > 2000 {
		c.ThumbnailWidth = def.ThumbnailWidth
	}
	if c.FrameIntervalMs <= 0 {
		c.FrameIntervalMs = def.FrameIntervalMs
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// FrameInterval returns the preview poll interval as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}
