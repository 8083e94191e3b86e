package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "camview.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Preset != def.Preset || cfg.ThumbnailWidth != def.ThumbnailWidth {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
preset: high
start_device: /dev/video2
thumbnail_width: 320
frame_interval_ms: 50
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preset != "high" {
		t.Errorf("preset = %q, want high", cfg.Preset)
	}
	if cfg.StartDevice != "/dev/video2" {
		t.Errorf("start_device = %q", cfg.StartDevice)
	}
	if cfg.FrameInterval() != 50*time.Millisecond {
		t.Errorf("frame interval = %v, want 50ms", cfg.FrameInterval())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadNormalizesBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "unknown preset",
			content: "preset: ultra\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Preset != "medium" {
					t.Errorf("preset = %q, want medium", cfg.Preset)
				}
			},
		},
		{
			name:    "negative thumbnail width",
			content: "thumbnail_width: -5\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.ThumbnailWidth != 240 {
					t.Errorf("thumbnail_width = %d, want 240", cfg.ThumbnailWidth)
				}
			},
		},
		{
			name:    "zero frame interval",
			content: "frame_interval_ms: 0\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.FrameIntervalMs != 33 {
					t.Errorf("frame_interval_ms = %d, want 33", cfg.FrameIntervalMs)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "preset: [unterminated")); err == nil {
		t.Fatal("expected yaml error")
	}
}
