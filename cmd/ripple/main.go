//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"riverbed/internal/app"
	"riverbed/internal/config"
	"riverbed/internal/logger"
	"riverbed/internal/runner"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "ripple:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ripple", flag.ContinueOnError)
	var flags config.Flags
	flags.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.Resolve()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return err
	}
	defer logger.Sync()

	if flags.Save != "" {
		if err := cfg.SaveTo(flags.Save); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	sim, err := runner.NewScene(cfg)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	opts := app.OptionsFrom(cfg)
	game := app.New(sim, opts)
	size := sim.Size()

	ebiten.SetWindowTitle("riverbed - " + sim.Name())
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowSize(opts.WindowSize(size.W, size.H))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Log.Info("viewer starting",
		zap.String("sim", sim.Name()),
		zap.Int("w", size.W), zap.Int("h", size.H),
		zap.Int64("seed", cfg.Seed),
		zap.Bool("preview", cfg.Window.Preview),
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.Error("viewer stopped", zap.Error(err))
		return err
	}
	return nil
}
