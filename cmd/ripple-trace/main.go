// Command ripple-trace runs a scene headless on a fixed-step clock and
// writes one CSV row of frame statistics per frame.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"riverbed/internal/config"
	"riverbed/internal/core"
	"riverbed/internal/logger"
	"riverbed/internal/runner"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "ripple-trace:", err)
		os.Exit(1)
	}
}

// run resolves the config from args and writes the trace to the configured
// path, or to stdout when none is set. Deferred closes and the logger sync
// run on every return.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("ripple-trace", flag.ContinueOnError)
	var flags config.Flags
	flags.Bind(fs)
	var dropList string
	fs.StringVar(&dropList, "drops", "", "pointer drops as frame:x:y, comma separated")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.Resolve()
	if err != nil {
		return err
	}
	drops, err := parseDrops(dropList)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}
	defer logger.Sync()

	sim, err := runner.NewScene(cfg)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	out := stdout
	if cfg.Trace.Path != "" {
		f, err := os.Create(cfg.Trace.Path)
		if err != nil {
			return fmt.Errorf("creating trace: %w", err)
		}
		defer f.Close()
		out = f
	}
	if flags.Save != "" {
		if err := cfg.SaveTo(flags.Save); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	if _, err := runner.Headless(sim, cfg.Trace.Frames, cfg.Window.TPS, cfg.Window.Preview, drops, out); err != nil {
		logger.Log.Error("trace failed", zap.Error(err))
		return err
	}
	return nil
}

// parseDrops reads "frame:x:y,frame:x:y".
func parseDrops(list string) (map[int]core.Point, error) {
	drops := map[int]core.Point{}
	if strings.TrimSpace(list) == "" {
		return drops, nil
	}
	for _, item := range strings.Split(list, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("drop %q: want frame:x:y", item)
		}
		frame, err := strconv.Atoi(parts[0])
		if err != nil || frame < 1 {
			return nil, fmt.Errorf("drop %q: bad frame", item)
		}
		x, errX := strconv.ParseFloat(parts[1], 32)
		y, errY := strconv.ParseFloat(parts[2], 32)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("drop %q: bad position", item)
		}
		drops[frame] = core.Point{X: float32(x), Y: float32(y)}
	}
	return drops, nil
}
