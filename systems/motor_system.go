package systems

import (
	"math"

	"bead-mixer/components"
	"bead-mixer/ecs"
	"bead-mixer/physics"
)

// Clock reports the simulated time
type Clock interface {
	Time() float64
}

// MotorSystem tracks the speed imposed by the motors and lets the user change it
type MotorSystem struct {
	clock Clock
	speed float64
	angle float64
}

// NewMotorSystem creates a motor system reading time from clock
func NewMotorSystem(clock Clock) *MotorSystem {
	return &MotorSystem{clock: clock}
}

func (s *MotorSystem) motors(world *ecs.World) []*ecs.Entity {
	return world.GetEntitiesWithComponent(components.Motor)
}

// Update samples the current speed and mixer angle of the first motor
func (s *MotorSystem) Update(world *ecs.World, dt float64) {
	for _, entity := range s.motors(world) {
		mc, ok := ecs.GetTyped[*components.MotorComponent](world, entity.ID, components.Motor)
		if !ok {
			continue
		}
		s.speed = mc.Motor.CurrentSpeed(s.clock.Time())
		q := mc.Motor.Driven.Rotation
		s.angle = 2 * math.Atan2(q.V.Dot(mc.Motor.Axis), q.W)
		return
	}
}

// SetSpeed gives every motor the constant speed w in rad/s
func (s *MotorSystem) SetSpeed(world *ecs.World, w float64) {
	for _, entity := range s.motors(world) {
		mc, ok := ecs.GetTyped[*components.MotorComponent](world, entity.ID, components.Motor)
		if !ok {
			continue
		}
		mc.Motor.Speed = physics.ConstantSpeed(w)
		world.EmitEvent(MotorSpeedEvent{MotorID: entity.ID, Speed: w})
	}
	s.speed = w
	GetMessageLog().Addf("Motor speed set to %.3f rad/s", w)
}

// AdjustSpeed changes the motor speed by delta rad/s
func (s *MotorSystem) AdjustSpeed(world *ecs.World, delta float64) {
	s.SetSpeed(world, s.speed+delta)
}

// Speed returns the last sampled motor speed in rad/s
func (s *MotorSystem) Speed() float64 {
	return s.speed
}

// MixerAngle returns the rotation of the driven body about the motor axis, in (-2pi, 2pi]
func (s *MotorSystem) MixerAngle() float64 {
	return s.angle
}
