package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/components"
	"bead-mixer/ecs"
	"bead-mixer/physics"
)

type fixedClock float64

func (c fixedClock) Time() float64 { return float64(c) }

func motorWorld(speed float64) (*ecs.World, *physics.RotationMotor) {
	world := ecs.NewWorld()
	mixer := physics.NewBody("mixer", 10, physics.Cylinder{Radius: 4, Bottom: 0, Top: 9}, mgl64.Vec3{})
	motor := physics.NewRotationMotor(mixer, nil, mgl64.Vec3{0, 1, 0}, physics.ConstantSpeed(speed))
	entity := world.CreateEntity()
	world.AddComponent(entity.ID, components.Motor, &components.MotorComponent{Motor: motor})
	return world, motor
}

func TestMotorSystem_SamplesSpeedAndAngle(t *testing.T) {
	world, motor := motorWorld(math.Pi / 2)
	motor.Driven.Rotation = mgl64.QuatRotate(0.75, mgl64.Vec3{0, 1, 0})

	system := NewMotorSystem(fixedClock(1))
	system.Update(world, 0)

	if system.Speed() != math.Pi/2 {
		t.Errorf("speed = %v, want pi/2", system.Speed())
	}
	if math.Abs(system.MixerAngle()-0.75) > 1e-12 {
		t.Errorf("angle = %v, want 0.75", system.MixerAngle())
	}
}

func TestMotorSystem_SetSpeed(t *testing.T) {
	world, motor := motorWorld(1)
	system := NewMotorSystem(fixedClock(0))

	var events []MotorSpeedEvent
	world.GetEventManager().Subscribe(EventMotorSpeed, func(e ecs.Event) {
		events = append(events, e.(MotorSpeedEvent))
	})

	system.Update(world, 0)
	system.AdjustSpeed(world, 0.5)

	if got := motor.CurrentSpeed(10); got != 1.5 {
		t.Errorf("motor speed = %v, want 1.5", got)
	}
	if len(events) != 1 || events[0].Speed != 1.5 {
		t.Errorf("events = %+v, want one at 1.5", events)
	}

	motor.Apply(0)
	if w := motor.Driven.AngularVelocity.Y(); w != 1.5 {
		t.Errorf("mixer angular velocity = %v, want 1.5", w)
	}
}
