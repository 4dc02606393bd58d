package physics

import "github.com/go-gl/mathgl/mgl64"

// SpeedFunction returns an angular speed in rad/s at simulation time t
type SpeedFunction func(t float64) float64

// ConstantSpeed returns a SpeedFunction that always yields w
func ConstantSpeed(w float64) SpeedFunction {
	return func(float64) float64 { return w }
}

// RotationMotor imposes an angular speed on Driven relative to Base about Axis.
// The driven body becomes kinematic: contacts never slow it down.
type RotationMotor struct {
	Driven *Body
	Base   *Body
	Axis   mgl64.Vec3 // World-space unit axis
	Speed  SpeedFunction
}

// NewRotationMotor creates a motor spinning driven about axis with the given speed
func NewRotationMotor(driven, base *Body, axis mgl64.Vec3, speed SpeedFunction) *RotationMotor {
	if driven.Kind == BodyDynamic {
		driven.Kind = BodyKinematic
	}
	return &RotationMotor{
		Driven: driven,
		Base:   base,
		Axis:   axis.Normalize(),
		Speed:  speed,
	}
}

// Apply sets the driven body's angular velocity for time t
func (m *RotationMotor) Apply(t float64) {
	var base mgl64.Vec3
	if m.Base != nil {
		base = m.Base.AngularVelocity
	}
	m.Driven.AngularVelocity = base.Add(m.Axis.Mul(m.Speed(t)))
}

// CurrentSpeed returns the imposed speed at time t
func (m *RotationMotor) CurrentSpeed(t float64) float64 {
	return m.Speed(t)
}
