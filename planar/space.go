// Package planar runs a horizontal cross-section of the mixer on the
// Chipmunk2D port. Positions map as (x, z) -> (X, Y) = (x, -z) so that a
// counter-clockwise plane angle equals a rotation about +y.
package planar

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp/v2"

	"bead-mixer/physics"
)

// MinTimeStep is the smallest step worth taking with an impulse solver
const MinTimeStep = 1.0 / 600

// ErrNoMixer is returned when the source space has no motor-driven body
var ErrNoMixer = errors.New("no motor-driven mixer")

// ErrMassless is returned for a mixer without positive mass and inertia about y
var ErrMassless = errors.New("mixer needs positive mass and inertia")

var up = mgl64.Vec3{0, 1, 0}

type bead struct {
	body   *physics.Body
	cp     *cp.Body  // nil for beads riding on the static body or the mixer
	offset cp.Vector // position on the mixer for locked beads
	y      float64
}

// Space mirrors the lowest layer of a physics.Space in a 2-D Chipmunk space.
// Beads outside that layer are marked Hidden.
type Space struct {
	space *cp.Space

	mixer     *physics.Body
	mixerBody *cp.Body
	motor     *physics.RotationMotor
	rate      *cp.SimpleMotor

	beads  []bead
	hidden int
	time   float64
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: -v.Z()}
}

func fromPlane(p cp.Vector, y float64) mgl64.Vec3 {
	return mgl64.Vec3{p.X, y, -p.Y}
}

// yaw returns the rotation angle of q about +y
func yaw(q mgl64.Quat) float64 {
	return 2 * math.Atan2(q.V.Y(), q.W)
}

func applyMaterial(shape *cp.Shape, m *physics.Material) {
	if m == nil {
		return
	}
	shape.SetElasticity(m.Restitution)
	shape.SetFriction(m.Friction)
}

// New builds the cross-section of src. The first motor of src drives the mixer.
// damping is the fraction of bead velocity kept after one second and stands in
// for the floor friction the plane cannot see.
func New(src *physics.Space, damping float64) (*Space, error) {
	motors := src.Motors()
	if len(motors) == 0 {
		return nil, ErrNoMixer
	}
	motor := motors[0]
	mixer := motor.Driven
	cyl, ok := mixer.Shape.(physics.Cylinder)
	if !ok {
		return nil, fmt.Errorf("mixer %s is a %T, want a cylinder", mixer.Name, mixer.Shape)
	}
	if mixer.Mass <= 0 || mixer.Inertia.Y() <= 0 {
		return nil, fmt.Errorf("%w: mixer %s has mass %g and inertia %g", ErrMassless, mixer.Name, mixer.Mass, mixer.Inertia.Y())
	}

	space := cp.NewSpace()
	space.Iterations = 10
	space.SetDamping(damping)

	p := &Space{space: space, mixer: mixer, motor: motor}

	p.mixerBody = space.AddBody(cp.NewBody(mixer.Mass, mixer.Inertia.Y()))
	p.mixerBody.SetPosition(toPlane(mixer.Position))
	p.mixerBody.SetAngle(yaw(mixer.Rotation))
	applyMaterial(space.AddShape(cp.NewCircle(p.mixerBody, cyl.Radius, cp.Vector{})), mixer.Material)

	space.AddConstraint(cp.NewPivotJoint(p.mixerBody, space.StaticBody, toPlane(mixer.Position)))
	p.rate = space.AddConstraint(cp.NewSimpleMotor(p.mixerBody, space.StaticBody, p.planeRate())).Class.(*cp.SimpleMotor)

	wallY, fillY := lowestLayers(src.Bodies())
	for _, b := range src.Bodies() {
		sphere, ok := b.Shape.(physics.Sphere)
		if !ok {
			continue
		}
		layer := fillY
		if b.Kind != physics.BodyDynamic {
			layer = wallY
		}
		if math.Abs(b.Position.Y()-layer) > sphere.Radius/2 || !p.add(b, sphere.Radius) {
			b.Hidden = true
			p.hidden++
		}
	}
	return p, nil
}

// lowestLayers returns the height of the lowest wall layer and the lowest fill layer
func lowestLayers(bodies []*physics.Body) (wall, fill float64) {
	wall, fill = math.Inf(1), math.Inf(1)
	for _, b := range bodies {
		if _, ok := b.Shape.(physics.Sphere); !ok {
			continue
		}
		y := b.Position.Y()
		if b.Kind == physics.BodyDynamic {
			fill = math.Min(fill, y)
		} else {
			wall = math.Min(wall, y)
		}
	}
	return wall, fill
}

func (p *Space) add(b *physics.Body, radius float64) bool {
	var shape *cp.Shape
	bd := bead{body: b, y: b.Position.Y()}

	switch b.Kind {
	case physics.BodyFixed:
		shape = cp.NewCircle(p.space.StaticBody, radius, toPlane(b.Position))
	case physics.BodyLocked:
		if b.Parent() != p.mixer {
			return false
		}
		bd.offset = toPlane(b.LocalPosition())
		shape = cp.NewCircle(p.mixerBody, radius, bd.offset)
	case physics.BodyDynamic:
		bd.cp = p.space.AddBody(cp.NewBody(b.Mass, cp.MomentForCircle(b.Mass, 0, radius, cp.Vector{})))
		bd.cp.SetPosition(toPlane(b.Position))
		bd.cp.SetVelocityVector(toPlane(b.Velocity))
		shape = cp.NewCircle(bd.cp, radius, cp.Vector{})
	default:
		return false
	}

	applyMaterial(p.space.AddShape(shape), b.Material)
	p.beads = append(p.beads, bd)
	return true
}

// planeRate is the motor speed about +y, the only axis the plane can turn about
func (p *Space) planeRate() float64 {
	return p.motor.CurrentSpeed(p.time) * p.motor.Axis.Dot(up)
}

// Step advances the plane by dt and writes the new poses back to the 3-D bodies
func (p *Space) Step(dt float64) {
	p.rate.Rate = p.planeRate()
	p.space.Step(dt)
	p.time += dt
	p.sync()
}

func (p *Space) sync() {
	angle := p.mixerBody.Angle()
	p.mixer.Rotation = mgl64.QuatRotate(angle, up)
	p.mixer.AngularVelocity = up.Mul(p.mixerBody.AngularVelocity())

	for _, bd := range p.beads {
		switch {
		case bd.cp != nil:
			bd.body.Position = fromPlane(bd.cp.Position(), bd.y)
			bd.body.Velocity = fromPlane(bd.cp.Velocity(), 0)
		case bd.body.Kind == physics.BodyLocked:
			bd.body.Position = fromPlane(p.mixerBody.LocalToWorld(bd.offset), bd.y)
			bd.body.Rotation = p.mixer.Rotation
		}
	}
}

// Time returns the simulated time
func (p *Space) Time() float64 {
	return p.time
}

// Active returns the number of beads simulated in the plane
func (p *Space) Active() int {
	return len(p.beads)
}

// Hidden returns the number of beads left out of the plane
func (p *Space) Hidden() int {
	return p.hidden
}

// MixerAngle returns the mixer rotation in radians
func (p *Space) MixerAngle() float64 {
	return p.mixerBody.Angle()
}

// KineticEnergy returns the energy of the loose beads in the plane
func (p *Space) KineticEnergy() float64 {
	total := 0.0
	for _, bd := range p.beads {
		if bd.cp == nil {
			continue
		}
		v := bd.cp.Velocity()
		total += 0.5 * bd.cp.Mass() * v.Dot(v)
	}
	return total
}
