package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyKind describes how a body takes part in the simulation
type BodyKind int

const (
	// BodyDynamic bodies respond to gravity and contact forces
	BodyDynamic BodyKind = iota
	// BodyFixed bodies never move
	BodyFixed
	// BodyKinematic bodies move with their own velocities, set by motors
	BodyKinematic
	// BodyLocked bodies are rigidly attached to a parent body
	BodyLocked
)

func (k BodyKind) String() string {
	switch k {
	case BodyDynamic:
		return "dynamic"
	case BodyFixed:
		return "fixed"
	case BodyKinematic:
		return "kinematic"
	case BodyLocked:
		return "locked"
	default:
		return fmt.Sprintf("BodyKind(%d)", int(k))
	}
}

// Body is a rigid body in a Space
type Body struct {
	ID   int
	Name string
	Kind BodyKind

	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	Mass    float64
	Inertia mgl64.Vec3 // Principal moments of inertia

	Shape    Shape
	Material *Material
	Collide  bool

	// Hidden bodies are left out of the active simulation by a backend
	Hidden bool

	force  mgl64.Vec3
	torque mgl64.Vec3

	parent        *Body
	localPosition mgl64.Vec3
	localRotation mgl64.Quat
}

// NewBody creates a dynamic body at pos
func NewBody(name string, mass float64, shape Shape, pos mgl64.Vec3) *Body {
	b := &Body{
		Name:     name,
		Kind:     BodyDynamic,
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Mass:     mass,
		Shape:    shape,
		Material: DefaultMaterial(),
		Collide:  true,
	}
	if shape != nil {
		b.Inertia = shape.Inertia(mass)
	}
	return b
}

// SetFixed makes the body immovable
func (b *Body) SetFixed(fixed bool) {
	if fixed {
		b.Kind = BodyFixed
		b.Velocity = mgl64.Vec3{}
		b.AngularVelocity = mgl64.Vec3{}
		return
	}
	if b.Kind == BodyFixed {
		b.Kind = BodyDynamic
	}
}

// LockTo rigidly attaches b to parent, keeping the current relative pose
func (b *Body) LockTo(parent *Body) {
	inv := parent.Rotation.Conjugate()
	b.Kind = BodyLocked
	b.parent = parent
	b.localPosition = inv.Rotate(b.Position.Sub(parent.Position))
	b.localRotation = inv.Mul(b.Rotation)
}

// Parent returns the body b is locked to, or nil
func (b *Body) Parent() *Body {
	return b.parent
}

// LocalPosition returns the offset from the parent in the parent's frame
func (b *Body) LocalPosition() mgl64.Vec3 {
	return b.localPosition
}

// Movable reports whether contact forces change the body's motion
func (b *Body) Movable() bool {
	return b.Kind == BodyDynamic
}

// InverseMass returns 0 for bodies that contacts cannot move
func (b *Body) InverseMass() float64 {
	if !b.Movable() || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// VelocityAt returns the velocity of the material point at world position p
func (b *Body) VelocityAt(p mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(p.Sub(b.Position)))
}

// ApplyForce accumulates a force acting at world point p
func (b *Body) ApplyForce(f, p mgl64.Vec3) {
	b.force = b.force.Add(f)
	b.torque = b.torque.Add(p.Sub(b.Position).Cross(f))
}

// KineticEnergy returns the translational plus rotational energy of the body
func (b *Body) KineticEnergy() float64 {
	lin := 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
	w := b.AngularVelocity
	rot := 0.5 * (b.Inertia[0]*w[0]*w[0] + b.Inertia[1]*w[1]*w[1] + b.Inertia[2]*w[2]*w[2])
	return lin + rot
}

func (b *Body) String() string {
	return fmt.Sprintf("%s(%s) at (%.3f, %.3f, %.3f)", b.Name, b.Kind,
		b.Position.X(), b.Position.Y(), b.Position.Z())
}

// followParent moves a locked body with its parent
func (b *Body) followParent() {
	p := b.parent
	if p == nil {
		return
	}
	b.Position = p.Position.Add(p.Rotation.Rotate(b.localPosition))
	b.Rotation = p.Rotation.Mul(b.localRotation)
	b.Velocity = p.VelocityAt(b.Position)
	b.AngularVelocity = p.AngularVelocity
}

// integrate advances a dynamic body by one semi-implicit Euler step
func (b *Body) integrate(dt float64, gravity mgl64.Vec3) {
	if b.Mass <= 0 {
		b.advancePose(dt)
		return
	}
	accel := gravity.Add(b.force.Mul(1 / b.Mass))
	b.Velocity = b.Velocity.Add(accel.Mul(dt))

	for i := 0; i < 3; i++ {
		if b.Inertia[i] > 0 {
			b.AngularVelocity[i] += b.torque[i] / b.Inertia[i] * dt
		}
	}

	b.advancePose(dt)
}

// advancePose moves the body along its current velocities
func (b *Body) advancePose(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	w := b.AngularVelocity
	if w.Len() == 0 {
		return
	}
	spin := mgl64.Quat{W: 0, V: w}.Mul(b.Rotation).Scale(0.5 * dt)
	b.Rotation = b.Rotation.Add(spin).Normalize()
}

func (b *Body) clearForces() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}
