package spawners

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/components"
	"bead-mixer/config"
	"bead-mixer/ecs"
	"bead-mixer/generation"
	"bead-mixer/physics"
)

// EventPlacementSkipped is the type of PlacementSkippedEvent
const EventPlacementSkipped ecs.EventType = "placement_skipped"

// PlacementSkippedEvent is emitted when a packing mode is invalid and no beads were placed
type PlacementSkippedEvent struct {
	Kind string // KindInnerWall, KindOuterWall or KindFill
	Mode int
	Err  error
}

func (e PlacementSkippedEvent) Type() ecs.EventType {
	return EventPlacementSkipped
}

// InvalidMode reports whether placement was skipped for an unknown packing mode
func (e PlacementSkippedEvent) InvalidMode() bool {
	return errors.Is(e.Err, generation.ErrInvalidMode) || errors.Is(e.Err, generation.ErrInvalidFillMode)
}

// Scene is the result of building the mixer: the fixed parts and the three bead lists
type Scene struct {
	Floor  *ecs.Entity
	Mixer  *ecs.Entity
	Motor  *ecs.Entity
	Camera *ecs.Entity

	InnerWall []*ecs.Entity
	OuterWall []*ecs.Entity
	Fill      []*ecs.Entity
}

// Lists returns the bead lists in the order inner wall, outer wall, fill
func (sc *Scene) Lists() [][]*ecs.Entity {
	return [][]*ecs.Entity{sc.InnerWall, sc.OuterWall, sc.Fill}
}

// LastBead returns the last bead of the last non-empty list
func (sc *Scene) LastBead() *ecs.Entity {
	lists := sc.Lists()
	for i := len(lists) - 1; i >= 0; i-- {
		if n := len(lists[i]); n > 0 {
			return lists[i][n-1]
		}
	}
	return nil
}

// BeadCount returns the number of beads in all lists
func (sc *Scene) BeadCount() int {
	return len(sc.InnerWall) + len(sc.OuterWall) + len(sc.Fill)
}

// MaterialFromScene builds the shared surface material of every body
func MaterialFromScene(cfg config.Scene) *physics.Material {
	return &physics.Material{
		Restitution:  cfg.Restitution,
		Friction:     cfg.Friction,
		Adhesion:     cfg.Adhesion,
		YoungModulus: cfg.YoungModulus,
		PoissonRatio: cfg.PoissonRatio,
	}
}

// NewSpace creates a physics space sized for the scene's beads
func NewSpace(cfg config.Scene) *physics.Space {
	space := physics.NewSpace(mgl64.Vec3{0, cfg.Gravity, 0}, 2*cfg.BeadRadius)
	space.Model = physics.DefaultContactModel(cfg.BeadRadius)
	return space
}

// BuildScene creates the floor, the motor-driven mixer and the three bead lattices.
// An invalid packing mode skips that lattice and emits a PlacementSkippedEvent;
// the rest of the scene is still built.
func (s *EntitySpawner) BuildScene(cfg config.Scene) (*Scene, error) {
	sc := &Scene{}
	r := cfg.BeadRadius

	sc.Floor = s.CreateFloor(cfg.OuterRadius)
	sc.Mixer = s.CreateMixer(cfg.InnerRadius, cfg.Height-1, cfg.MixerMass, cfg.MixerInertia)

	motor, err := s.CreateMotor(sc.Mixer, sc.Floor, cfg.MotorSpeed)
	if err != nil {
		return nil, fmt.Errorf("failed to create motor: %w", err)
	}
	sc.Motor = motor

	outer, err := generation.OuterWall(r, cfg.OuterRadius, cfg.Height, generation.Mode(cfg.OuterMode))
	if s.skipped(KindOuterWall, cfg.OuterMode, err) {
		outer = nil
	}
	for _, pos := range outer {
		sc.OuterWall = append(sc.OuterWall, s.CreateBead(KindOuterWall, r, cfg.Mass, pos, true, true))
	}

	inner, err := generation.InnerWall(r, cfg.InnerRadius, cfg.Height, generation.Mode(cfg.InnerMode))
	if s.skipped(KindInnerWall, cfg.InnerMode, err) {
		inner = nil
	}
	for _, pos := range inner {
		bead := s.CreateBead(KindInnerWall, r, cfg.Mass, pos, false, true)
		if err := s.LockTo(bead, sc.Mixer); err != nil {
			return nil, fmt.Errorf("failed to lock %s to mixer: %w", bead.Name, err)
		}
		sc.InnerWall = append(sc.InnerWall, bead)
	}

	fill, err := generation.Fill(r, cfg.InnerRadius, cfg.OuterRadius, cfg.FillHeight, generation.FillMode(cfg.FillMode))
	if s.skipped(KindFill, cfg.FillMode, err) {
		fill = nil
	}
	for _, pos := range fill {
		sc.Fill = append(sc.Fill, s.CreateBead(KindFill, r, cfg.Mass, pos, false, false))
	}

	sc.Camera = s.CreateCamera(mgl64.Vec3{}, 30)

	s.log("Placed %d beads: %d outer, %d inner, %d fill",
		sc.BeadCount(), len(sc.OuterWall), len(sc.InnerWall), len(sc.Fill))
	return sc, nil
}

// skipped reports whether placement failed, emitting a PlacementSkippedEvent when it did
func (s *EntitySpawner) skipped(kind string, mode int, err error) bool {
	if err == nil {
		return false
	}
	s.world.EmitEvent(PlacementSkippedEvent{Kind: kind, Mode: mode, Err: err})
	return true
}

// BodyOf returns the simulated body of an entity
func BodyOf(world *ecs.World, entity *ecs.Entity) *physics.Body {
	if entity == nil {
		return nil
	}
	bc, ok := ecs.GetTyped[*components.BodyComponent](world, entity.ID, components.Body)
	if !ok {
		return nil
	}
	return bc.Body
}
