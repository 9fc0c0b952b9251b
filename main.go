package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"wavecollapse/pkg/engine/input"
	"wavecollapse/pkg/engine/rng"
	"wavecollapse/pkg/engine/terminal"
	"wavecollapse/pkg/engine/wfc"
	"wavecollapse/pkg/game/config"
	"wavecollapse/pkg/game/devtools"
	"wavecollapse/pkg/game/export"
	"wavecollapse/pkg/game/gameplay"
	"wavecollapse/pkg/game/generator"
	"wavecollapse/pkg/game/renderer"
	"wavecollapse/pkg/game/renderer/ebiten"
	"wavecollapse/pkg/game/renderer/tui"
	"wavecollapse/pkg/game/state"
	"wavecollapse/pkg/game/tiled"
)

const (
	localeDir  = "locales"
	guiWidth   = 48
	guiHeight  = 32
	renderRate = 30 // max frames per second drawn in the terminal
)

// loadConfig parses flags, reading the -config file first when one is given
// so that flags override it.
func loadConfig(args []string) (*config.Config, error) {
	cfg := config.Default()
	fs := flag.NewFlagSet("wavecollapse", flag.ExitOnError)
	path := fs.String("config", "", "YAML config file")
	cfg.Bind(fs)
	fs.Parse(args)

	if *path == "" {
		return cfg, cfg.Validate()
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return nil, err
	}
	fs = flag.NewFlagSet("wavecollapse", flag.ExitOnError)
	fs.String("config", "", "YAML config file")
	cfg.Bind(fs)
	fs.Parse(args)
	return cfg, cfg.Validate()
}

func initLogging(cfg *config.Config) {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.Level())
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	wfc.SetLogger(logrus.StandardLogger())
}

// loadCatalog resolves the configured tile source. The tileset is returned
// when one was loaded so that the window can draw its image.
func loadCatalog(cfg *config.Config) (wfc.Catalog, *tiled.Tileset, error) {
	src, err := generator.Source(cfg.Tileset.Path, cfg.Tileset.Wangset, cfg.Tileset.Builtin)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := src.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("load tiles from %s: %w", src.Name(), err)
	}

	var ts *tiled.Tileset
	if tsrc, ok := src.(*generator.TilesetSource); ok {
		ts, _ = tsrc.Tileset()
	}
	logrus.WithFields(logrus.Fields{
		"source": src.Name(),
		"tiles":  len(catalog),
	}).Debug("catalog loaded")
	return catalog, ts, nil
}

// gridSize fills unset dimensions from the terminal, or a fixed size for the window
func gridSize(cfg *config.Config) (width, height int) {
	width, height = cfg.Grid.Width, cfg.Grid.Height
	fitW, fitH := guiWidth, guiHeight
	if !cfg.Run.GUI {
		fitW, fitH = terminal.GridSize(tui.ReservedRows)
	}
	if width == 0 {
		width = fitW
	}
	if height == 0 {
		height = fitH
	}
	return width, height
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	initLogging(cfg)
	gotext.Configure(localeDir, cfg.Locale, "default")
	if err := input.Rebind(cfg.Keys); err != nil {
		logrus.WithError(err).Fatal("cannot bind keys")
	}

	catalog, tileset, err := loadCatalog(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("cannot load tiles")
	}

	seed := cfg.Run.Seed
	if seed == 0 {
		seed = rng.TimeSeed()
	}
	width, height := gridSize(cfg)
	s, err := state.NewSession(catalog, width, height, seed)
	if err != nil {
		logrus.WithError(err).Fatal("cannot create generator")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case cfg.Run.GUI:
		err = runGUI(s, cfg, tileset)
	case cfg.Run.Interactive:
		err = runInteractive(ctx, s, cfg)
	default:
		err = runBatch(ctx, s, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Fatal("run failed")
	}
	if cfg.Run.Interactive && !cfg.Run.GUI {
		fmt.Println(gotext.Get("GOODBYE"))
	}

	if err := writeOutputs(s, cfg); err != nil {
		logrus.WithError(err).Fatal("cannot write output")
	}
}

func runGUI(s *state.Session, cfg *config.Config, ts *tiled.Tileset) error {
	r := ebiten.New(s, ebiten.Options{
		CellSize:    cfg.Output.CellSize,
		TPS:         cfg.Run.TPS,
		Tileset:     ts,
		ShowEntropy: cfg.Output.CellSize >= 12,
	})
	renderer.SetRenderer(r)
	return r.Run()
}

// runBatch generates the grid, scrolls in the configured rows and prints the result
func runBatch(ctx context.Context, s *state.Session, cfg *config.Config) error {
	if err := s.Run(ctx); err != nil {
		return err
	}
	for i := 0; i < cfg.Run.Rows; i++ {
		if err := s.Scroll(); err != nil {
			return err
		}
		if err := s.Run(ctx); err != nil {
			return err
		}
	}

	if !terminal.IsTerminal() {
		color.Enable = false
	}
	renderer.SetRenderer(tui.New())
	renderer.Init()
	renderer.RenderFrame(s.Frame())
	return nil
}

// runInteractive steps the session at the configured rate, drawing frames and
// reading keys until the user quits.
func runInteractive(ctx context.Context, s *state.Session, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys, restore, err := input.Keys(ctx)
	if err != nil {
		return err
	}
	defer restore()

	r := tui.NewWithWriter(terminal.RawWriter(os.Stdout))
	renderer.SetRenderer(r)
	renderer.Init()

	tick := time.NewTicker(time.Second / time.Duration(cfg.Run.TPS))
	defer tick.Stop()
	frameEvery := time.Second / renderRate
	var lastFrame time.Time

	draw := func() {
		renderer.Clear()
		renderer.RenderFrame(s.Frame())
		lastFrame = time.Now()
	}

	s.Start()
	draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-keys:
			if !ok || gameplay.ProcessKey(s, k) {
				return nil
			}
			draw()
		case <-tick.C:
			if s.Step() && time.Since(lastFrame) >= frameEvery {
				draw()
			} else if s.Model.IsComplete() && time.Since(lastFrame) >= time.Second {
				draw()
			}
		}
	}
}

func writeOutputs(s *state.Session, cfg *config.Config) error {
	f := s.Frame()
	if cfg.Output.PNG != "" {
		if err := export.SavePNG(cfg.Output.PNG, f, cfg.Output.CellSize); err != nil {
			return err
		}
		logrus.WithField("path", cfg.Output.PNG).Info("image written")
	}
	if cfg.Output.Dump != "" {
		path, err := devtools.DumpMatrixToFile(f, cfg.Output.Dump)
		if err != nil {
			return err
		}
		logrus.WithField("path", path).Info("dump written")
	}
	return nil
}
