package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ContactModel computes smooth-contact (penalty) forces
type ContactModel struct {
	// CurvatureRadius is used for contacts that do not involve two spheres
	CurvatureRadius float64
	// MinRestitution keeps the damping coefficient finite for perfectly plastic materials
	MinRestitution float64
}

// DefaultContactModel returns a Hertz model with the given default curvature radius
func DefaultContactModel(curvature float64) ContactModel {
	return ContactModel{
		CurvatureRadius: curvature,
		MinRestitution:  0.01,
	}
}

func (m ContactModel) effectiveRadius(c *Contact) float64 {
	sa, aSphere := c.A.Shape.(Sphere)
	sb, bSphere := c.B.Shape.(Sphere)
	if aSphere && bSphere {
		return sa.Radius * sb.Radius / (sa.Radius + sb.Radius)
	}
	return m.CurvatureRadius
}

func effectiveMass(a, b *Body) float64 {
	ia, ib := a.InverseMass(), b.InverseMass()
	switch {
	case ia == 0 && ib == 0:
		return 0
	case ia == 0:
		return b.Mass
	case ib == 0:
		return a.Mass
	}
	return 1 / (ia + ib)
}

// Apply evaluates the Hertz spring-dashpot force for c over a step of
// length dt and accumulates it on both bodies. The tangential spring
// stretches by the slip of this step on top of c.Shear and is capped by
// Coulomb friction. It returns the normal force magnitude.
func (m ContactModel) Apply(c *Contact, dt float64) float64 {
	a, b := c.A, c.B
	mat := combine(a.Material, b.Material)
	mass := effectiveMass(a, b)
	if mass == 0 {
		return 0
	}

	relVel := b.VelocityAt(c.Point).Sub(a.VelocityAt(c.Point))
	vn := relVel.Dot(c.Normal)
	vt := relVel.Sub(c.Normal.Mul(vn))

	sqrtRd := math.Sqrt(m.effectiveRadius(c) * c.Depth)
	sn := 2 * mat.youngEff * sqrtRd
	st := 8 * mat.shearEff * sqrtRd

	e := math.Max(mat.restitution, m.MinRestitution)
	loge := math.Log(e)
	beta := loge / math.Sqrt(loge*loge+math.Pi*math.Pi)

	kn := 2.0 / 3.0 * sn
	kt := st
	gn := -2 * math.Sqrt(5.0/6.0) * beta * math.Sqrt(sn*mass)
	gt := -2 * math.Sqrt(5.0/6.0) * beta * math.Sqrt(st*mass)

	fn := kn*c.Depth - gn*vn
	if fn < 0 {
		fn = 0
	}
	fn -= mat.adhesion

	force := c.Normal.Mul(-fn)

	// The spring elongation stays in the tangent plane as the contact rolls.
	shear := c.Shear.Sub(c.Normal.Mul(c.Shear.Dot(c.Normal)))
	if fn > 0 {
		shear = shear.Add(vt.Mul(dt))
		ft := shear.Mul(kt).Add(vt.Mul(gt))
		if limit := mat.friction * fn; ft.Len() > limit {
			// sliding: the spring holds only what Coulomb friction allows
			ft = ft.Mul(limit / ft.Len())
			if kt > 0 {
				shear = ft.Sub(vt.Mul(gt)).Mul(1 / kt)
			}
		}
		force = force.Add(ft)
	} else {
		shear = mgl64.Vec3{}
	}
	c.Shear = shear

	// force acts on A; B receives the reaction
	a.ApplyForce(force, c.Point)
	b.ApplyForce(force.Mul(-1), c.Point)

	c.Force = fn
	return fn
}
