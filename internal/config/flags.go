package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds the command-line overrides. Only flags present on the command
// line replace file or default values.
type Flags struct {
	Config   string
	Sim      string
	Seed     int64
	TPS      int
	Scale    int
	Preview  bool
	Frames   int
	Trace    string
	LogLevel string
	LogFile  string
	Set      paramFlag
	Save     string

	fs *flag.FlagSet
}

// Bind attaches the flags to fs.
func (f *Flags) Bind(fs *flag.FlagSet) {
	f.fs = fs
	if f.Set == nil {
		f.Set = paramFlag{}
	}
	fs.StringVar(&f.Config, "config", "", "path to a YAML config file")
	fs.StringVar(&f.Sim, "sim", "", "scene to run")
	fs.Int64Var(&f.Seed, "seed", 0, "seed for scene reset")
	fs.IntVar(&f.TPS, "tps", 0, "ticks per second")
	fs.IntVar(&f.Scale, "scale", 0, "pixel scale multiplier")
	fs.BoolVar(&f.Preview, "preview", false, "inject a random drop every two seconds")
	fs.IntVar(&f.Frames, "frames", 0, "frames to run headless")
	fs.StringVar(&f.Trace, "trace", "", "CSV trace output path")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.LogFile, "log-file", "", "rotated log file path")
	fs.Var(f.Set, "set", "scene override key=value (repeatable)")
	fs.StringVar(&f.Save, "save-config", "", "write the resolved config to this path")
}

// Resolve loads the config file named by -config and applies the flags that
// were set.
func (f *Flags) Resolve() (*Config, error) {
	cfg, err := Load(f.Config)
	if err != nil {
		return nil, err
	}
	f.apply(cfg)
	return cfg, cfg.Validate()
}

func (f *Flags) apply(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sim":
			cfg.Sim = f.Sim
		case "seed":
			cfg.Seed = f.Seed
		case "tps":
			cfg.Window.TPS = f.TPS
		case "scale":
			cfg.Window.Scale = f.Scale
		case "preview":
			cfg.Window.Preview = f.Preview
		case "frames":
			cfg.Trace.Frames = f.Frames
		case "trace":
			cfg.Trace.Path = f.Trace
		case "log-level":
			cfg.Logging.Level = f.LogLevel
		case "log-file":
			cfg.Logging.File = f.LogFile
		}
	})
	for k, v := range f.Set {
		cfg.Params[k] = v
	}
}

// paramFlag collects repeated key=value pairs.
type paramFlag map[string]string

func (p paramFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p paramFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	p[k] = strings.TrimSpace(v)
	return nil
}
