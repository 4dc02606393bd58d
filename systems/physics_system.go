package systems

import (
	"bead-mixer/ecs"
)

// Backend is a simulation that advances in fixed steps
type Backend interface {
	Step(dt float64)
	Time() float64
}

// PhysicsSystem advances the backend by fixed sub-steps until it reaches the
// output time of the current frame, then moves the output time one frame on.
type PhysicsSystem struct {
	backend  Backend
	timeStep float64
	outStep  float64
	outTime  float64

	paused     bool
	totalSteps int
}

// NewPhysicsSystem creates a physics system taking steps of timeStep and
// covering outStep of simulated time per frame
func NewPhysicsSystem(backend Backend, timeStep, outStep float64) *PhysicsSystem {
	return &PhysicsSystem{
		backend:  backend,
		timeStep: timeStep,
		outStep:  outStep,
		outTime:  backend.Time(),
	}
}

// Update advances one frame unless paused. The frame duration is outStep, not dt.
func (s *PhysicsSystem) Update(world *ecs.World, dt float64) {
	if s.paused {
		return
	}
	s.Advance(world)
}

// Advance runs the sub-steps of one frame and returns how many were taken
func (s *PhysicsSystem) Advance(world *ecs.World) int {
	// Half a step of slack keeps rounding in the summed time from adding a step.
	limit := s.outTime - s.timeStep/2
	steps := 0
	for s.backend.Time() < limit {
		s.backend.Step(s.timeStep)
		steps++
	}
	s.outTime += s.outStep

	s.totalSteps += steps
	if world != nil {
		world.EmitEvent(FrameAdvancedEvent{Time: s.backend.Time(), OutTime: s.outTime, Steps: steps})
	}
	return steps
}

// RunUntil advances whole frames until the simulated time reaches t
func (s *PhysicsSystem) RunUntil(world *ecs.World, t float64) {
	for s.backend.Time() < t-s.timeStep/2 {
		s.Advance(world)
	}
}

// SetPaused pauses or resumes the simulation
func (s *PhysicsSystem) SetPaused(world *ecs.World, paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	if world != nil {
		world.EmitEvent(PauseEvent{Paused: paused})
	}
}

// TogglePause flips the paused state
func (s *PhysicsSystem) TogglePause(world *ecs.World) {
	s.SetPaused(world, !s.paused)
}

// Paused reports whether the simulation is paused
func (s *PhysicsSystem) Paused() bool {
	return s.paused
}

// Time returns the simulated time of the backend
func (s *PhysicsSystem) Time() float64 {
	return s.backend.Time()
}

// OutTime returns the time the next frame advances to
func (s *PhysicsSystem) OutTime() float64 {
	return s.outTime
}

// TotalSteps returns the number of sub-steps taken so far
func (s *PhysicsSystem) TotalSteps() int {
	return s.totalSteps
}

// TimeStep returns the sub-step length
func (s *PhysicsSystem) TimeStep() float64 {
	return s.timeStep
}
