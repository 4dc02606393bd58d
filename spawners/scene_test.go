package spawners

import (
	"math"
	"strings"
	"testing"

	"bead-mixer/components"
	"bead-mixer/config"
	"bead-mixer/ecs"
	"bead-mixer/physics"
)

func smallScene() config.Scene {
	cfg := config.DefaultScene()
	cfg.OuterRadius = 7
	cfg.Height = 3
	cfg.FillHeight = 3
	return cfg
}

type harness struct {
	world    *ecs.World
	space    *physics.Space
	spawner  *EntitySpawner
	messages []string
	skipped  []PlacementSkippedEvent
}

func newHarness(cfg config.Scene) *harness {
	h := &harness{world: ecs.NewWorld(), space: NewSpace(cfg)}
	h.spawner = NewEntitySpawner(h.world, h.space, MaterialFromScene(cfg), func(msg string) {
		h.messages = append(h.messages, msg)
	})
	h.world.GetEventManager().Subscribe(EventPlacementSkipped, func(e ecs.Event) {
		h.skipped = append(h.skipped, e.(PlacementSkippedEvent))
	})
	return h
}

func TestBuildScene_Default(t *testing.T) {
	cfg := smallScene()
	h := newHarness(cfg)

	sc, err := h.spawner.BuildScene(cfg)
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}

	if len(sc.InnerWall) == 0 || len(sc.OuterWall) == 0 || len(sc.Fill) == 0 {
		t.Fatalf("empty lists: inner %d, outer %d, fill %d", len(sc.InnerWall), len(sc.OuterWall), len(sc.Fill))
	}
	if len(h.skipped) != 0 {
		t.Errorf("unexpected skipped placements: %v", h.skipped)
	}

	// floor + mixer + beads are bodies; motor and camera are not
	if got, want := len(h.space.Bodies()), 2+sc.BeadCount(); got != want {
		t.Errorf("space has %d bodies, want %d", got, want)
	}
	if len(h.space.Motors()) != 1 {
		t.Errorf("space has %d motors, want 1", len(h.space.Motors()))
	} else if axis := h.space.Motors()[0].Axis; axis != MixerAxis {
		t.Errorf("motor axis = %v, want %v", axis, MixerAxis)
	}

	mixer := BodyOf(h.world, sc.Mixer)
	if mixer.Kind != physics.BodyKinematic {
		t.Errorf("mixer kind = %v, want kinematic", mixer.Kind)
	}

	for _, e := range sc.InnerWall {
		lock, ok := ecs.GetTyped[*components.LockComponent](h.world, e.ID, components.Lock)
		if !ok || lock.Parent != sc.Mixer.ID {
			t.Fatalf("%s not locked to the mixer", e.Name)
		}
		if b := BodyOf(h.world, e); b.Parent() != mixer || b.Kind != physics.BodyLocked {
			t.Fatalf("%s body not locked: %v", e.Name, b)
		}
	}
	for _, e := range sc.OuterWall {
		if b := BodyOf(h.world, e); b.Kind != physics.BodyFixed {
			t.Fatalf("%s kind = %v, want fixed", e.Name, b.Kind)
		}
	}
	for _, e := range sc.Fill {
		if b := BodyOf(h.world, e); b.Kind != physics.BodyDynamic {
			t.Fatalf("%s kind = %v, want dynamic", e.Name, b.Kind)
		}
		rend, _ := ecs.GetTyped[*components.RenderableComponent](h.world, e.ID, components.Renderable)
		if rend.Texture != components.TextureBead {
			t.Fatalf("%s texture = %v, want bead texture", e.Name, rend.Texture)
		}
	}

	last := sc.LastBead()
	if last != sc.Fill[len(sc.Fill)-1] {
		t.Errorf("LastBead() = %v, want last fill bead", last.Name)
	}
	if !strings.HasPrefix(last.Name, "bead-fill-") {
		t.Errorf("last bead name = %q", last.Name)
	}
}

func TestBuildScene_InvalidModeSkipsPlacement(t *testing.T) {
	cfg := smallScene()
	cfg.OuterMode = 4
	cfg.FillMode = 9
	h := newHarness(cfg)

	sc, err := h.spawner.BuildScene(cfg)
	if err != nil {
		t.Fatalf("BuildScene() error = %v", err)
	}

	if len(sc.OuterWall) != 0 || len(sc.Fill) != 0 {
		t.Errorf("invalid modes still placed beads: outer %d, fill %d", len(sc.OuterWall), len(sc.Fill))
	}
	if len(sc.InnerWall) == 0 {
		t.Error("valid inner wall was not placed")
	}
	if len(h.skipped) != 2 {
		t.Fatalf("got %d skip events, want 2", len(h.skipped))
	}
	if h.skipped[0].Kind != KindOuterWall || h.skipped[0].Mode != 4 {
		t.Errorf("first skip = %+v", h.skipped[0])
	}

	for _, e := range h.skipped {
		if !e.InvalidMode() {
			t.Errorf("skip %+v not reported as an invalid mode", e)
		}
	}
	for _, msg := range h.messages {
		if strings.HasPrefix(msg, "ERROR:") {
			t.Errorf("spawner logged %q itself", msg)
		}
	}

	if last := sc.LastBead(); last != sc.InnerWall[len(sc.InnerWall)-1] {
		t.Errorf("LastBead() should fall back to the inner wall, got %v", last)
	}
}

func TestBuildScene_InitialPackingIsStable(t *testing.T) {
	cfg := smallScene()
	h := newHarness(cfg)
	sc, err := h.spawner.BuildScene(cfg)
	if err != nil {
		t.Fatal(err)
	}

	start := make(map[*physics.Body][3]float64)
	for _, e := range sc.Fill {
		b := BodyOf(h.world, e)
		start[b] = b.Position
	}

	for i := 0; i < 100; i++ {
		h.space.Step(cfg.TimeStep)
	}

	for b, p := range start {
		d := math.Sqrt(math.Pow(b.Position[0]-p[0], 2) + math.Pow(b.Position[1]-p[1], 2) + math.Pow(b.Position[2]-p[2], 2))
		if d > 0.01 {
			t.Fatalf("%s jumped %v in 10ms; initial lattice overlaps", b.Name, d)
		}
	}
}
