package config

import (
	"errors"
	"fmt"
	"math"
)

// Backend names accepted by Scene.Backend
const (
	BackendDEM    = "dem"
	BackendPlanar = "planar"
)

// Scene holds every parameter of the mixer scene and its simulation
type Scene struct {
	Gravity     float64 `json:"gravity"`
	BeadRadius  float64 `json:"bead_radius"`
	OuterRadius float64 `json:"outer_radius"`
	InnerRadius float64 `json:"inner_radius"`
	Height      float64 `json:"height"`      // Wall stack height
	FillHeight  float64 `json:"fill_height"` // Fill stack height
	Mass        float64 `json:"mass"`        // Mass of one bead

	MixerMass    float64 `json:"mixer_mass"`
	MixerInertia float64 `json:"mixer_inertia"`
	MotorSpeed   float64 `json:"motor_speed"` // rad/s about +y

	OuterMode int `json:"outer_mode"`
	InnerMode int `json:"inner_mode"`
	FillMode  int `json:"fill_mode"`

	Restitution  float64 `json:"restitution"`
	Friction     float64 `json:"friction"`
	Adhesion     float64 `json:"adhesion"`
	YoungModulus float64 `json:"young_modulus"`
	PoissonRatio float64 `json:"poisson_ratio"`

	TimeStep float64 `json:"time_step"` // Physics sub-step
	OutStep  float64 `json:"out_step"`  // Simulated time advanced per rendered frame

	Backend string `json:"backend"`
}

// DefaultScene returns the parameters of the reference mixer demo
func DefaultScene() Scene {
	return Scene{
		Gravity:     -9.81,
		BeadRadius:  0.5,
		OuterRadius: 10,
		InnerRadius: 4,
		Height:      10,
		FillHeight:  10,
		Mass:        1,

		MixerMass:    10,
		MixerInertia: 50,
		MotorSpeed:   math.Pi / 2,

		OuterMode: 3,
		InnerMode: 3,
		FillMode:  1,

		Restitution:  0.1,
		Friction:     0.4,
		Adhesion:     0,
		YoungModulus: 2e5,
		PoissonRatio: 0.3,

		TimeStep: 1e-4,
		OutStep:  0.02,

		Backend: BackendDEM,
	}
}

// ErrInvalidScene is wrapped by every Validate failure
var ErrInvalidScene = errors.New("invalid scene")

// Validate checks the geometric and numeric consistency of the scene.
// Packing modes are not checked here: an unknown mode only skips that placement.
func (s Scene) Validate() error {
	switch {
	case s.BeadRadius <= 0:
		return fmt.Errorf("%w: bead radius must be positive, got %g", ErrInvalidScene, s.BeadRadius)
	case s.InnerRadius <= 0:
		return fmt.Errorf("%w: inner radius must be positive, got %g", ErrInvalidScene, s.InnerRadius)
	case s.OuterRadius <= s.InnerRadius+2*s.BeadRadius:
		return fmt.Errorf("%w: outer radius %g leaves no room around inner radius %g",
			ErrInvalidScene, s.OuterRadius, s.InnerRadius)
	case s.Height <= 1:
		return fmt.Errorf("%w: height must exceed 1, got %g", ErrInvalidScene, s.Height)
	case s.FillHeight < 0:
		return fmt.Errorf("%w: fill height must not be negative, got %g", ErrInvalidScene, s.FillHeight)
	case s.Mass <= 0:
		return fmt.Errorf("%w: bead mass must be positive, got %g", ErrInvalidScene, s.Mass)
	case s.MixerMass <= 0:
		return fmt.Errorf("%w: mixer mass must be positive, got %g", ErrInvalidScene, s.MixerMass)
	case s.MixerInertia <= 0:
		return fmt.Errorf("%w: mixer inertia must be positive, got %g", ErrInvalidScene, s.MixerInertia)
	case math.IsNaN(s.MotorSpeed) || math.IsInf(s.MotorSpeed, 0):
		return fmt.Errorf("%w: motor speed must be finite, got %g", ErrInvalidScene, s.MotorSpeed)
	case math.IsNaN(s.Gravity) || math.IsInf(s.Gravity, 0):
		return fmt.Errorf("%w: gravity must be finite, got %g", ErrInvalidScene, s.Gravity)
	case s.TimeStep <= 0:
		return fmt.Errorf("%w: time step must be positive, got %g", ErrInvalidScene, s.TimeStep)
	case s.OutStep < s.TimeStep:
		return fmt.Errorf("%w: output step %g is shorter than time step %g", ErrInvalidScene, s.OutStep, s.TimeStep)
	case s.Restitution < 0 || s.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0,1], got %g", ErrInvalidScene, s.Restitution)
	case s.Friction < 0:
		return fmt.Errorf("%w: friction must not be negative, got %g", ErrInvalidScene, s.Friction)
	case s.YoungModulus <= 0:
		return fmt.Errorf("%w: Young's modulus must be positive, got %g", ErrInvalidScene, s.YoungModulus)
	case s.PoissonRatio <= -1 || s.PoissonRatio >= 0.5:
		return fmt.Errorf("%w: Poisson ratio must be in (-1,0.5), got %g", ErrInvalidScene, s.PoissonRatio)
	case s.Backend != BackendDEM && s.Backend != BackendPlanar:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidScene, s.Backend)
	}
	return nil
}
