package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pixelapse/internal/style"
)

const (
	DefaultStyle  = "normal"
	DefaultBuffer = 1024
)

// Config mirrors the render command's flag surface so a run can live in a
// YAML file instead of a long command line.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Region is the render window: up to four values, x1 y1 x2 y2.
	Region []int  `yaml:"region"`
	Style  string `yaml:"style"`
	// Step is a Go duration string ("5m", "1h30m"); empty means screenshot.
	Step          string `yaml:"step"`
	Screenshot    bool   `yaml:"screenshot"`
	SuppressFinal bool   `yaml:"suppress_final"`

	Palette         string  `yaml:"palette"`
	Background      string  `yaml:"background"`
	BackgroundColor []uint8 `yaml:"background_color"`
	BackgroundScale bool    `yaml:"background_scale"`

	Output      string `yaml:"output"`
	NoClobber   bool   `yaml:"no_clobber"`
	DryRun      bool   `yaml:"dry_run"`
	SkipErrors  bool   `yaml:"skip_errors"`
	BufferDepth int    `yaml:"buffer_depth"`

	Filter FilterConfig `yaml:"filter"`
}

// FilterConfig enables filter clauses ahead of rendering.
type FilterConfig struct {
	After    string   `yaml:"after"`
	Before   string   `yaml:"before"`
	Colors   []int    `yaml:"colors"`
	Region   []int    `yaml:"region"`
	Actions  []string `yaml:"actions"`
	Users    []string `yaml:"users"`
	UserFile string   `yaml:"user_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Style:       DefaultStyle,
		BufferDepth: DefaultBuffer,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes a config out as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configurations the engine cannot honor. All failures
// here are configuration errors: fatal, before any replay begins.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		if c.Background == "" {
			return fmt.Errorf("config: cannot infer canvas size: set width/height or a background image")
		}
	}
	if _, err := style.Parse(c.Style); err != nil {
		return err
	}
	if c.Step != "" {
		d, err := time.ParseDuration(c.Step)
		if err != nil {
			return fmt.Errorf("config: bad step %q: %w", c.Step, err)
		}
		if d < 0 {
			return fmt.Errorf("config: step must not be negative")
		}
	}
	if len(c.Region) > 4 {
		return fmt.Errorf("config: region takes at most 4 values")
	}
	if len(c.BackgroundColor) != 0 && len(c.BackgroundColor) != 4 {
		return fmt.Errorf("config: background_color needs exactly 4 values (RGBA)")
	}
	if c.Screenshot && c.SuppressFinal {
		return fmt.Errorf("config: screenshot with suppress_final renders nothing")
	}
	return nil
}

// StepDuration returns the parsed step. Validate must have passed.
func (c *Config) StepDuration() time.Duration {
	if c.Step == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Step)
	return d
}
