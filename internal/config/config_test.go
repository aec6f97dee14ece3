package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Style != "normal" {
		t.Errorf("style = %q", cfg.Style)
	}
	if cfg.BufferDepth != DefaultBuffer {
		t.Errorf("buffer depth = %d", cfg.BufferDepth)
	}
	if cfg.Step != "" || cfg.Screenshot {
		t.Errorf("defaults should not pick a frame cadence: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.Width = 100
		cfg.Height = 100
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"no size no background", func(c *Config) { c.Width = 0 }, false},
		{"size from background", func(c *Config) { c.Width = 0; c.Background = "seed.png" }, true},
		{"unknown style", func(c *Config) { c.Style = "vaporwave" }, false},
		{"valid step", func(c *Config) { c.Step = "1h30m" }, true},
		{"bad step", func(c *Config) { c.Step = "five minutes" }, false},
		{"negative step", func(c *Config) { c.Step = "-5m" }, false},
		{"region four values", func(c *Config) { c.Region = []int{0, 0, 9, 9} }, true},
		{"region too many", func(c *Config) { c.Region = []int{0, 0, 9, 9, 1} }, false},
		{"rgba color", func(c *Config) { c.BackgroundColor = []uint8{255, 255, 255, 255} }, true},
		{"short color", func(c *Config) { c.BackgroundColor = []uint8{255, 255, 255} }, false},
		{"screenshot suppressing final", func(c *Config) { c.Screenshot = true; c.SuppressFinal = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate should have failed")
			}
		})
	}
}

func TestStepDuration(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StepDuration() != 0 {
		t.Error("empty step should parse to zero")
	}
	cfg.Step = "5m"
	if cfg.StepDuration() != 5*time.Minute {
		t.Errorf("step = %v", cfg.StepDuration())
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Width = 500
	cfg.Height = 300
	cfg.Step = "10m"
	cfg.Filter.Colors = []int{3, 7}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 500 || got.Height != 300 || got.Step != "10m" {
		t.Errorf("loaded = %+v", got)
	}
	if len(got.Filter.Colors) != 2 || got.Filter.Colors[1] != 7 {
		t.Errorf("filter colors = %v", got.Filter.Colors)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(path, []byte("width: 64\nheight: 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Style != DefaultStyle || cfg.BufferDepth != DefaultBuffer {
		t.Errorf("partial config lost defaults: %+v", cfg)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	os.WriteFile(path, []byte("width: [not a number\n"), 0o644)
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestPresets(t *testing.T) {
	p := GetPreset("pxls")
	if p == nil || p.Width != 2000 || p.Height != 2000 {
		t.Fatalf("pxls preset = %+v", p)
	}
	p.Width = 1
	if GetPreset("pxls").Width != 2000 {
		t.Error("GetPreset must return a copy")
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset should be nil")
	}
	if len(ListPresets()) != 3 {
		t.Errorf("presets = %v", ListPresets())
	}
}
