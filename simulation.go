package main

import (
	"fmt"
	"io"
	"math"

	"bead-mixer/config"
	"bead-mixer/ecs"
	"bead-mixer/physics"
	"bead-mixer/planar"
	"bead-mixer/spawners"
	"bead-mixer/systems"
)

// planarDamping is the share of bead velocity the cross-section keeps per second
const planarDamping = 0.8

// Simulation is one built scene together with the systems that advance it
type Simulation struct {
	Config config.Scene
	World  *ecs.World
	Space  *physics.Space
	Planar *planar.Space // nil unless the planar backend runs
	Scene  *spawners.Scene

	Physics *systems.PhysicsSystem
	Motor   *systems.MotorSystem
	Camera  *systems.CameraSystem
}

// NewSimulation validates cfg, builds the scene and registers the systems
func NewSimulation(cfg config.Scene) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	systems.GetMessageLog().WatchPlacement(world)
	space := spawners.NewSpace(cfg)
	spawner := spawners.NewEntitySpawner(world, space, spawners.MaterialFromScene(cfg), systems.GetMessageLog().Add)

	scene, err := spawner.BuildScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	sim := &Simulation{
		Config: cfg,
		World:  world,
		Space:  space,
		Scene:  scene,
	}

	var backend systems.Backend = space
	timeStep := cfg.TimeStep
	if cfg.Backend == config.BackendPlanar {
		sim.Planar, err = planar.New(space, planarDamping)
		if err != nil {
			return nil, fmt.Errorf("failed to build planar backend: %w", err)
		}
		backend = sim.Planar
		timeStep = math.Max(timeStep, planar.MinTimeStep)
		systems.GetMessageLog().Addf("Planar cross-section: %d beads simulated, %d hidden",
			sim.Planar.Active(), sim.Planar.Hidden())
	}

	sim.Physics = systems.NewPhysicsSystem(backend, timeStep, cfg.OutStep)
	sim.Motor = systems.NewMotorSystem(sim.Physics)
	sim.Camera = systems.NewCameraSystem(config.GetWindowSize())

	world.AddSystem(sim.Motor)
	world.AddSystem(sim.Physics)
	world.AddSystem(sim.Camera)
	sim.Motor.Update(world, 0)

	return sim, nil
}

// Run advances the simulation until time t without rendering
func (sim *Simulation) Run(t float64) {
	sim.Physics.RunUntil(sim.World, t)
	sim.Motor.Update(sim.World, 0)
}

// LastBead returns the body of the last bead placed
func (sim *Simulation) LastBead() *physics.Body {
	return spawners.BodyOf(sim.World, sim.Scene.LastBead())
}

// PrintLastBead writes the name and position of the last bead placed
func (sim *Simulation) PrintLastBead(w io.Writer) {
	body := sim.LastBead()
	if body == nil {
		fmt.Fprintln(w, "No bead placed")
		return
	}
	fmt.Fprintf(w, "Body name: %s\n", body.Name)
	fmt.Fprintf(w, "Position: (%f,%f,%f)\n", body.Position.X(), body.Position.Y(), body.Position.Z())
}
