// Package config loads the run configuration: embedded defaults, an optional
// YAML overlay and command-line overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the run configuration shared by the viewer and the trace tool.
type Config struct {
	Sim     string            `yaml:"sim"`
	Seed    int64             `yaml:"seed"`
	Window  WindowConfig      `yaml:"window"`
	Trace   TraceConfig       `yaml:"trace"`
	Logging LoggingConfig     `yaml:"logging"`
	Params  map[string]string `yaml:"params"`
}

// WindowConfig holds viewer settings.
type WindowConfig struct {
	Scale   int  `yaml:"scale"`
	TPS     int  `yaml:"tps"`
	Preview bool `yaml:"preview"`
}

// TraceConfig holds headless run settings. An empty path writes to stdout.
type TraceConfig struct {
	Frames int    `yaml:"frames"`
	Path   string `yaml:"path"`
}

// LoggingConfig selects the log level and optional rotated log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	return cfg
}

// Load reads path over the embedded defaults. Fields absent from the file
// keep their default values and params are merged key by key.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	base := cfg.Params
	cfg.Params = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	merged := make(map[string]string, len(base)+len(cfg.Params))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range cfg.Params {
		merged[k] = v
	}
	cfg.Params = merged
	return cfg, cfg.Validate()
}

// Validate checks the ranges the commands rely on.
func (c *Config) Validate() error {
	switch {
	case c.Sim == "":
		return fmt.Errorf("%w: empty sim name", ErrInvalid)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale %d", ErrInvalid, c.Window.Scale)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window.tps %d", ErrInvalid, c.Window.TPS)
	case c.Trace.Frames < 0:
		return fmt.Errorf("%w: trace.frames %d", ErrInvalid, c.Trace.Frames)
	}
	return nil
}

// SceneParams returns the factory overrides with the seed folded in.
func (c *Config) SceneParams() map[string]string {
	out := make(map[string]string, len(c.Params)+1)
	for k, v := range c.Params {
		out[k] = v
	}
	if _, ok := out["seed"]; !ok {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return out
}

// SaveTo writes the configuration as YAML, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
