package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact is a single touching point between two bodies
type Contact struct {
	A, B   *Body
	Normal mgl64.Vec3 // Unit vector pointing from A to B
	Depth  float64    // Overlap, positive while touching
	Point  mgl64.Vec3 // World-space contact point
	Force  float64    // Normal force magnitude from the last evaluation

	// Shear is the tangential spring elongation carried over from earlier
	// steps of the same contact. Apply updates it.
	Shear mgl64.Vec3
}

// collide runs the narrow phase for a pair. One of the shapes must be a sphere.
func collide(a, b *Body) (Contact, bool) {
	sa, aSphere := a.Shape.(Sphere)
	sb, bSphere := b.Shape.(Sphere)

	switch {
	case aSphere && bSphere:
		return sphereSphere(a, sa, b, sb)
	case aSphere:
		return sphereOther(a, sa, b)
	case bSphere:
		c, ok := sphereOther(b, sb, a)
		if !ok {
			return c, false
		}
		c.A, c.B = a, b
		c.Normal = c.Normal.Mul(-1)
		return c, true
	}
	return Contact{}, false
}

func sphereSphere(a *Body, sa Sphere, b *Body, sb Sphere) (Contact, bool) {
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	depth := sa.Radius + sb.Radius - dist
	if depth <= 0 {
		return Contact{}, false
	}

	normal := mgl64.Vec3{0, 1, 0}
	if dist > 1e-12 {
		normal = d.Mul(1 / dist)
	}
	point := a.Position.Add(normal.Mul(sa.Radius - depth/2))
	return Contact{A: a, B: b, Normal: normal, Depth: depth, Point: point}, true
}

// sphereOther collides sphere body s against a non-sphere body o.
// The returned normal points from s to o.
func sphereOther(s *Body, ss Sphere, o *Body) (Contact, bool) {
	inv := o.Rotation.Conjugate()
	local := inv.Rotate(s.Position.Sub(o.Position))

	var closest, outward mgl64.Vec3
	var inside bool
	switch shape := o.Shape.(type) {
	case Box:
		closest, outward, inside = closestOnBox(shape, local)
	case Cylinder:
		closest, outward, inside = closestOnCylinder(shape, local)
	default:
		return Contact{}, false
	}

	var normal mgl64.Vec3
	var depth float64
	if inside {
		// Center is inside the solid: push out through the nearest face.
		normal = outward.Mul(-1)
		depth = ss.Radius + local.Sub(closest).Len()
	} else {
		d := closest.Sub(local)
		dist := d.Len()
		depth = ss.Radius - dist
		if depth <= 0 {
			return Contact{}, false
		}
		if dist > 1e-12 {
			normal = d.Mul(1 / dist)
		} else {
			normal = outward.Mul(-1)
		}
	}

	point := o.Position.Add(o.Rotation.Rotate(closest))
	return Contact{
		A:      s,
		B:      o,
		Normal: o.Rotation.Rotate(normal),
		Depth:  depth,
		Point:  point,
	}, true
}

// closestOnBox returns the closest surface point to p, the outward surface
// normal there, and whether p lies inside the box.
func closestOnBox(box Box, p mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	h := box.HalfExtents
	var c mgl64.Vec3
	inside := true
	for i := 0; i < 3; i++ {
		c[i] = mgl64.Clamp(p[i], -h[i], h[i])
		if p[i] < -h[i] || p[i] > h[i] {
			inside = false
		}
	}
	if !inside {
		return c, p.Sub(c).Normalize(), false
	}

	axis, best := 0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if d := h[i] - math.Abs(p[i]); d < best {
			axis, best = i, d
		}
	}
	var n mgl64.Vec3
	n[axis] = math.Copysign(1, p[axis])
	c = p
	c[axis] = n[axis] * h[axis]
	return c, n, true
}

func closestOnCylinder(cyl Cylinder, p mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	radial := math.Hypot(p[0], p[2])
	dir := mgl64.Vec3{1, 0, 0}
	if radial > 1e-12 {
		dir = mgl64.Vec3{p[0] / radial, 0, p[2] / radial}
	}

	inside := radial <= cyl.Radius && p[1] >= cyl.Bottom && p[1] <= cyl.Top
	if !inside {
		r := math.Min(radial, cyl.Radius)
		c := mgl64.Vec3{dir[0] * r, mgl64.Clamp(p[1], cyl.Bottom, cyl.Top), dir[2] * r}
		return c, p.Sub(c).Normalize(), false
	}

	toSide := cyl.Radius - radial
	toTop := cyl.Top - p[1]
	toBottom := p[1] - cyl.Bottom
	switch {
	case toSide <= toTop && toSide <= toBottom:
		return mgl64.Vec3{dir[0] * cyl.Radius, p[1], dir[2] * cyl.Radius}, dir, true
	case toTop <= toBottom:
		return mgl64.Vec3{p[0], cyl.Top, p[2]}, mgl64.Vec3{0, 1, 0}, true
	default:
		return mgl64.Vec3{p[0], cyl.Bottom, p[2]}, mgl64.Vec3{0, -1, 0}, true
	}
}
