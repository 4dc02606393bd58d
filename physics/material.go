package physics

import "math"

// Material holds the smooth-contact surface properties of a body
type Material struct {
	Restitution  float64
	Friction     float64
	Adhesion     float64 // Constant attractive force while in contact
	YoungModulus float64
	PoissonRatio float64
}

// DefaultMaterial returns the bead material used by the mixer demo
func DefaultMaterial() *Material {
	return &Material{
		Restitution:  0.1,
		Friction:     0.4,
		Adhesion:     0,
		YoungModulus: 2e5,
		PoissonRatio: 0.3,
	}
}

// compositeMaterial is the combined material of a contact pair
type compositeMaterial struct {
	restitution float64
	friction    float64
	adhesion    float64
	youngEff    float64
	shearEff    float64
}

func combine(a, b *Material) compositeMaterial {
	invE := (1-a.PoissonRatio*a.PoissonRatio)/a.YoungModulus +
		(1-b.PoissonRatio*b.PoissonRatio)/b.YoungModulus

	shearA := a.YoungModulus / (2 * (1 + a.PoissonRatio))
	shearB := b.YoungModulus / (2 * (1 + b.PoissonRatio))
	invG := (2-a.PoissonRatio)/shearA + (2-b.PoissonRatio)/shearB

	return compositeMaterial{
		restitution: math.Min(a.Restitution, b.Restitution),
		friction:    math.Min(a.Friction, b.Friction),
		adhesion:    math.Min(a.Adhesion, b.Adhesion),
		youngEff:    1 / invE,
		shearEff:    1 / invG,
	}
}
