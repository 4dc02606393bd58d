package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Space owns the bodies and motors of a simulation and advances them in time
type Space struct {
	Gravity mgl64.Vec3
	Model   ContactModel

	bodies   []*Body
	motors   []*RotationMotor
	grid     *SpatialGrid
	contacts []Contact
	shear    map[pairKey]mgl64.Vec3
	time     float64
	nextID   int
}

// NewSpace creates an empty space. cellSize should be at least the largest sphere diameter.
func NewSpace(gravity mgl64.Vec3, cellSize float64) *Space {
	return &Space{
		Gravity: gravity,
		Model:   DefaultContactModel(cellSize / 2),
		grid:    NewSpatialGrid(cellSize),
		shear:   make(map[pairKey]mgl64.Vec3),
	}
}

type pairKey struct {
	a, b int
}

// AddBody registers b and assigns it an ID
func (s *Space) AddBody(b *Body) *Body {
	s.nextID++
	b.ID = s.nextID
	if b.Name == "" {
		b.Name = fmt.Sprintf("body%d", b.ID)
	}
	s.bodies = append(s.bodies, b)
	return b
}

// AddMotor registers a rotation motor
func (s *Space) AddMotor(m *RotationMotor) *RotationMotor {
	s.motors = append(s.motors, m)
	return m
}

// Bodies returns the registered bodies in insertion order
func (s *Space) Bodies() []*Body {
	return s.bodies
}

// Motors returns the registered motors
func (s *Space) Motors() []*RotationMotor {
	return s.motors
}

// Contacts returns the contacts found during the last step
func (s *Space) Contacts() []Contact {
	return s.contacts
}

// Time returns the simulated time
func (s *Space) Time() float64 {
	return s.time
}

// Step advances the simulation by dt
func (s *Space) Step(dt float64) {
	for _, m := range s.motors {
		m.Apply(s.time)
	}

	for _, b := range s.bodies {
		b.clearForces()
		if b.Kind == BodyKinematic {
			b.advancePose(dt)
		}
	}
	for _, b := range s.bodies {
		if b.Kind == BodyLocked {
			b.followParent()
		}
	}

	s.contacts = s.contacts[:0]
	s.grid.Rebuild(s.bodies)
	s.grid.Pairs(s.bodies, func(a, b *Body) {
		if c, ok := collide(a, b); ok {
			c.Shear = s.shear[pairKey{a.ID, b.ID}]
			s.Model.Apply(&c, dt)
			s.contacts = append(s.contacts, c)
		}
	})

	// Springs of pairs that separated are released.
	clear(s.shear)
	for _, c := range s.contacts {
		if c.Shear != (mgl64.Vec3{}) {
			s.shear[pairKey{c.A.ID, c.B.ID}] = c.Shear
		}
	}

	for _, b := range s.bodies {
		if b.Kind == BodyDynamic && !b.Hidden {
			b.integrate(dt, s.Gravity)
		}
	}

	s.time += dt
}

// KineticEnergy returns the total kinetic energy of the dynamic bodies
func (s *Space) KineticEnergy() float64 {
	total := 0.0
	for _, b := range s.bodies {
		if b.Kind == BodyDynamic {
			total += b.KineticEnergy()
		}
	}
	return total
}
