package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the collision geometry of a body, expressed in the body frame
type Shape interface {
	// Bounds returns the world-space bounding box of the shape on body b
	Bounds(b *Body) AABB
	// Inertia returns the principal moments of inertia for the given mass
	Inertia(mass float64) mgl64.Vec3
}

// AABB is an axis-aligned bounding box
type AABB struct {
	Min, Max mgl64.Vec3
}

// Overlaps reports whether two boxes intersect
func (a AABB) Overlaps(b AABB) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1] &&
		a.Min[2] <= b.Max[2] && a.Max[2] >= b.Min[2]
}

// Sphere is a ball centered on the body position
type Sphere struct {
	Radius float64
}

func (s Sphere) Bounds(b *Body) AABB {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: b.Position.Sub(r), Max: b.Position.Add(r)}
}

// Inertia of a solid sphere, 2/5 m r^2 about every axis
func (s Sphere) Inertia(mass float64) mgl64.Vec3 {
	i := 0.4 * mass * s.Radius * s.Radius
	return mgl64.Vec3{i, i, i}
}

// Box is centered on the body position with the given half extents
type Box struct {
	HalfExtents mgl64.Vec3
}

func (s Box) Bounds(b *Body) AABB {
	// Conservative: the box may be rotated.
	r := s.HalfExtents.Len()
	e := mgl64.Vec3{r, r, r}
	return AABB{Min: b.Position.Sub(e), Max: b.Position.Add(e)}
}

func (s Box) Inertia(mass float64) mgl64.Vec3 {
	x, y, z := 2*s.HalfExtents[0], 2*s.HalfExtents[1], 2*s.HalfExtents[2]
	return mgl64.Vec3{
		mass / 12 * (y*y + z*z),
		mass / 12 * (x*x + z*z),
		mass / 12 * (x*x + y*y),
	}
}

// Cylinder is a solid cylinder along the body's local y axis,
// spanning Bottom..Top in the body frame.
type Cylinder struct {
	Radius      float64
	Bottom, Top float64
}

func (s Cylinder) Bounds(b *Body) AABB {
	half := (s.Top - s.Bottom) / 2
	r := math.Hypot(s.Radius, half)
	center := b.Position.Add(b.Rotation.Rotate(mgl64.Vec3{0, (s.Top + s.Bottom) / 2, 0}))
	e := mgl64.Vec3{r, r, r}
	return AABB{Min: center.Sub(e), Max: center.Add(e)}
}

func (s Cylinder) Inertia(mass float64) mgl64.Vec3 {
	h := s.Top - s.Bottom
	side := mass / 12 * (3*s.Radius*s.Radius + h*h)
	return mgl64.Vec3{side, 0.5 * mass * s.Radius * s.Radius, side}
}
