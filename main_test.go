package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"bead-mixer/config"
	"bead-mixer/systems"
)

func smallScene() config.Scene {
	cfg := config.DefaultScene()
	cfg.OuterRadius = 6
	cfg.InnerRadius = 3
	cfg.Height = 3
	cfg.FillHeight = 4
	cfg.OuterMode = 1
	cfg.InnerMode = 1
	return cfg
}

func TestParseFlags_RecordsOnlyGivenFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--headless", "--motor-speed", "2", "--fill-mode=2"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if !opts.headless || opts.motorSpeed != 2 || opts.fillMode != 2 {
		t.Errorf("opts = %+v", opts)
	}
	if !opts.set["motor-speed"] || !opts.set["fill-mode"] {
		t.Errorf("set = %v", opts.set)
	}
	if opts.set["backend"] || opts.set["bead-radius"] {
		t.Errorf("defaults recorded as given: %v", opts.set)
	}
	if opts.duration != 2 {
		t.Errorf("duration = %g, want 2", opts.duration)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	if _, err := parseFlags([]string{"--nope"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestResolveScene(t *testing.T) {
	opts, err := parseFlags([]string{"--backend", "planar", "--outer-mode", "1"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, presets, err := resolveScene(opts)
	if err != nil {
		t.Fatalf("resolveScene() error = %v", err)
	}
	if presets != nil {
		t.Error("presets returned without --presets")
	}
	def := config.DefaultScene()
	if cfg.Backend != config.BackendPlanar || cfg.OuterMode != 1 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.InnerMode != def.InnerMode || cfg.MotorSpeed != def.MotorSpeed {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestResolveScene_Preset(t *testing.T) {
	opts, err := parseFlags([]string{"--presets", "data/presets", "--preset", "drop", "--motor-speed", "3"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, presets, err := resolveScene(opts)
	if err != nil {
		t.Fatalf("resolveScene() error = %v", err)
	}
	if presets != nil {
		t.Error("start screen requested although a preset was named")
	}
	if cfg.FillMode != 2 || cfg.MotorSpeed != 3 {
		t.Errorf("cfg = %+v", cfg)
	}

	opts, _ = parseFlags([]string{"--presets", "data/presets"})
	if _, presets, err = resolveScene(opts); err != nil || presets == nil || len(presets.IDs()) < 3 {
		t.Errorf("preset directory: presets = %v, err = %v", presets, err)
	}
}

func TestResolveScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"preset without directory", []string{"--preset", "drop"}},
		{"unknown preset", []string{"--presets", "data/presets", "--preset", "nope"}},
		{"missing scene file", []string{"--scene", "does-not-exist.json"}},
		{"invalid override", []string{"--bead-radius", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if _, _, err := resolveScene(opts); err == nil {
				t.Error("expected an error")
			}
		})
	}

	opts, _ := parseFlags([]string{"--backend", "bogus"})
	if _, _, err := resolveScene(opts); !errors.Is(err, config.ErrInvalidScene) {
		t.Errorf("error = %v, want ErrInvalidScene", err)
	}
}

func TestNewSimulation_PrintsLastBead(t *testing.T) {
	systems.GetMessageLog().Clear()
	defer systems.GetMessageLog().Clear()

	sim, err := NewSimulation(smallScene())
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	if len(sim.Scene.Fill) == 0 || len(sim.Scene.OuterWall) == 0 || len(sim.Scene.InnerWall) == 0 {
		t.Fatalf("empty lists: %d outer, %d inner, %d fill",
			len(sim.Scene.OuterWall), len(sim.Scene.InnerWall), len(sim.Scene.Fill))
	}
	if sim.Planar != nil {
		t.Error("planar backend built for the dem scene")
	}

	var out bytes.Buffer
	sim.PrintLastBead(&out)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "Body name: bead-fill-") {
		t.Errorf("name line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Position: (") || strings.Count(lines[1], ",") != 2 {
		t.Errorf("position line = %q", lines[1])
	}
}

func TestNewSimulation_InvalidScene(t *testing.T) {
	cfg := smallScene()
	cfg.InnerRadius = 10
	if _, err := NewSimulation(cfg); !errors.Is(err, config.ErrInvalidScene) {
		t.Errorf("error = %v, want ErrInvalidScene", err)
	}
}

func TestNewSimulation_InvalidModeStillBuilds(t *testing.T) {
	log := systems.GetMessageLog()
	log.Clear()
	defer log.Clear()

	cfg := smallScene()
	cfg.OuterMode = 7
	sim, err := NewSimulation(cfg)
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	if len(sim.Scene.OuterWall) != 0 || len(sim.Scene.InnerWall) == 0 {
		t.Errorf("lists = %d outer, %d inner", len(sim.Scene.OuterWall), len(sim.Scene.InnerWall))
	}
	errs := log.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0], "outer placement skipped, packing mode 7") {
		t.Errorf("logged errors = %q", errs)
	}
}

func TestSimulation_RunAndReport(t *testing.T) {
	systems.GetMessageLog().Clear()
	defer systems.GetMessageLog().Clear()

	sim, err := NewSimulation(smallScene())
	if err != nil {
		t.Fatal(err)
	}
	sim.Run(0.02)

	s := Summarize(sim)
	if s.Time < 0.02-sim.Physics.TimeStep() {
		t.Errorf("time = %g, want about 0.02", s.Time)
	}
	if s.Steps == 0 {
		t.Error("no steps taken")
	}
	if s.Fill != len(sim.Scene.Fill) || s.Hidden != 0 {
		t.Errorf("fill = %d, hidden = %d", s.Fill, s.Hidden)
	}
	if s.MotorSpeed != sim.Config.MotorSpeed {
		t.Errorf("motor speed = %g", s.MotorSpeed)
	}
	if s.MeanHeight <= 0 || s.MaxHeight < s.MeanHeight {
		t.Errorf("heights mean %g max %g", s.MeanHeight, s.MaxHeight)
	}

	report := RenderReport(s)
	for _, want := range []string{"bead mixer", "dem backend", "fill height", "escaped", "Body "} {
		if !strings.Contains(report, want) {
			t.Errorf("report misses %q:\n%s", want, report)
		}
	}
}

func TestSimulation_Planar(t *testing.T) {
	systems.GetMessageLog().Clear()
	defer systems.GetMessageLog().Clear()

	cfg := smallScene()
	cfg.Backend = config.BackendPlanar
	sim, err := NewSimulation(cfg)
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	if sim.Planar == nil {
		t.Fatal("planar backend not built")
	}
	if sim.Physics.TimeStep() < 1.0/600 {
		t.Errorf("time step = %g, below the planar minimum", sim.Physics.TimeStep())
	}

	sim.Run(0.1)
	s := Summarize(sim)
	if s.Hidden == 0 || s.Hidden >= s.Fill {
		t.Errorf("hidden fill beads = %d of %d", s.Hidden, s.Fill)
	}
	if sim.Motor.MixerAngle() <= 0 {
		t.Errorf("mixer did not turn, angle %g", sim.Motor.MixerAngle())
	}
}
