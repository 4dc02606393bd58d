package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"bead-mixer/config"
	"bead-mixer/data"
	"bead-mixer/systems"
)

// options holds the command line
type options struct {
	scenePath    string
	presetsDir   string
	preset       string
	headless     bool
	duration     float64
	ambiencePath string
	textureDir   string

	// Scene overrides, applied only when given on the command line
	backend    string
	outerMode  int
	innerMode  int
	fillMode   int
	beadRadius float64
	motorSpeed float64

	set map[string]bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	defaults := config.DefaultScene()

	fs := flag.NewFlagSet("bead-mixer", flag.ContinueOnError)
	fs.StringVar(&opts.scenePath, "scene", "", "JSON scene file")
	fs.StringVar(&opts.presetsDir, "presets", "", "directory of JSON scene presets to choose from")
	fs.StringVar(&opts.preset, "preset", "", "preset id to run directly (needs --presets)")
	fs.BoolVar(&opts.headless, "headless", false, "run without a window and print a report")
	fs.Float64Var(&opts.duration, "duration", 2, "simulated seconds of a headless run")
	fs.StringVar(&opts.ambiencePath, "ambience", "", "mp3 or ogg file looped while the mixer turns")
	fs.StringVar(&opts.textureDir, "texture-dir", "", "directory with greenwhite.png and bluwhite.png bead textures")

	fs.StringVar(&opts.backend, "backend", defaults.Backend, "physics backend: dem or planar")
	fs.IntVar(&opts.outerMode, "outer-mode", defaults.OuterMode, "outer wall packing mode (1-3)")
	fs.IntVar(&opts.innerMode, "inner-mode", defaults.InnerMode, "inner wall packing mode (1-3)")
	fs.IntVar(&opts.fillMode, "fill-mode", defaults.FillMode, "fill packing mode (1 columns, 2 drop)")
	fs.Float64Var(&opts.beadRadius, "bead-radius", defaults.BeadRadius, "bead radius")
	fs.Float64Var(&opts.motorSpeed, "motor-speed", defaults.MotorSpeed, "mixer speed in rad/s")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// resolveScene loads the base scene from a file or preset and applies the
// overrides given on the command line
func resolveScene(opts options) (config.Scene, *data.PresetManager, error) {
	cfg := config.DefaultScene()
	var presets *data.PresetManager

	if opts.presetsDir != "" {
		presets = data.NewPresetManager()
		if err := presets.LoadPresetsFromDirectory(opts.presetsDir); err != nil {
			return cfg, nil, err
		}
	}

	switch {
	case opts.scenePath != "":
		preset, err := data.NewPresetManager().LoadPresetFromFile(opts.scenePath)
		if err != nil {
			return cfg, nil, fmt.Errorf("failed to load scene %s: %w", opts.scenePath, err)
		}
		cfg = preset.Scene
	case opts.preset != "":
		if presets == nil {
			return cfg, nil, fmt.Errorf("--preset %s needs --presets", opts.preset)
		}
		preset, ok := presets.Get(opts.preset)
		if !ok {
			return cfg, nil, fmt.Errorf("unknown preset %q", opts.preset)
		}
		cfg = preset.Scene
		presets = nil
	}

	if opts.set["backend"] {
		cfg.Backend = opts.backend
	}
	if opts.set["outer-mode"] {
		cfg.OuterMode = opts.outerMode
	}
	if opts.set["inner-mode"] {
		cfg.InnerMode = opts.innerMode
	}
	if opts.set["fill-mode"] {
		cfg.FillMode = opts.fillMode
	}
	if opts.set["bead-radius"] {
		cfg.BeadRadius = opts.beadRadius
	}
	if opts.set["motor-speed"] {
		cfg.MotorSpeed = opts.motorSpeed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, presets, nil
}

func runHeadless(cfg config.Scene, duration float64) error {
	systems.GetMessageLog().SetEcho(os.Stderr)

	sim, err := NewSimulation(cfg)
	if err != nil {
		return err
	}
	sim.PrintLastBead(os.Stdout)

	sim.Run(duration)
	fmt.Println(RenderReport(Summarize(sim)))
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, presets, err := resolveScene(opts)
	if err != nil {
		log.Fatal(err)
	}

	if opts.headless {
		if err := runHeadless(cfg, opts.duration); err != nil {
			log.Fatal(err)
		}
		return
	}

	game, err := NewGame(cfg, presets, opts.ambiencePath, opts.textureDir)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	windowWidth, windowHeight := config.GetWindowSize()
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
