package planar

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/physics"
)

// mixerSpace builds a small drum: a motor-driven mixer of radius 2, one outer
// and one inner bead ring per layer and a few loose beads in two layers.
func mixerSpace(speed float64) (*physics.Space, map[string]*physics.Body) {
	return mixerSpaceAbout(speed, mgl64.Vec3{0, 1, 0})
}

func mixerSpaceAbout(speed float64, axis mgl64.Vec3) (*physics.Space, map[string]*physics.Body) {
	s := physics.NewSpace(mgl64.Vec3{0, -9.81, 0}, 1)
	floor := physics.NewBody("floor", 1, physics.Box{HalfExtents: mgl64.Vec3{6, 0.5, 6}}, mgl64.Vec3{0, -0.5, 0})
	floor.SetFixed(true)
	s.AddBody(floor)

	mixer := s.AddBody(physics.NewBody("mixer", 10, physics.Cylinder{Radius: 2, Bottom: 0, Top: 3}, mgl64.Vec3{}))
	mixer.Inertia = mgl64.Vec3{50, 50, 50}
	s.AddMotor(physics.NewRotationMotor(mixer, floor, axis, physics.ConstantSpeed(speed)))

	named := map[string]*physics.Body{"mixer": mixer}
	for _, y := range []float64{0.5, 1.5} {
		outer := physics.NewBody("", 1, physics.Sphere{Radius: 0.5}, mgl64.Vec3{5.5, y, 0})
		outer.SetFixed(true)
		s.AddBody(outer)

		inner := s.AddBody(physics.NewBody("", 1, physics.Sphere{Radius: 0.5}, mgl64.Vec3{2.5, y, 0}))
		inner.LockTo(mixer)

		loose := s.AddBody(physics.NewBody("", 1, physics.Sphere{Radius: 0.5}, mgl64.Vec3{-4, y, 0}))

		if y == 0.5 {
			named["outer"], named["inner"], named["loose"] = outer, inner, loose
		} else {
			named["upper"] = loose
		}
	}
	return s, named
}

func TestNew_RequiresMotor(t *testing.T) {
	s := physics.NewSpace(mgl64.Vec3{}, 1)
	s.AddBody(physics.NewBody("ball", 1, physics.Sphere{Radius: 0.5}, mgl64.Vec3{}))

	if _, err := New(s, 0.5); !errors.Is(err, ErrNoMixer) {
		t.Errorf("err = %v, want ErrNoMixer", err)
	}
}

func TestNew_RejectsMasslessMixer(t *testing.T) {
	for _, tt := range []struct {
		name    string
		mass    float64
		inertia float64
	}{
		{"no mass", 0, 50},
		{"no inertia", 10, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s, named := mixerSpace(math.Pi / 2)
			named["mixer"].Mass = tt.mass
			named["mixer"].Inertia = mgl64.Vec3{tt.inertia, tt.inertia, tt.inertia}
			if _, err := New(s, 0.5); !errors.Is(err, ErrMassless) {
				t.Errorf("err = %v, want ErrMassless", err)
			}
		})
	}
}

func TestNew_KeepsLowestLayer(t *testing.T) {
	s, named := mixerSpace(math.Pi / 2)
	p, err := New(s, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if p.Active() != 3 {
		t.Errorf("active = %d, want 3", p.Active())
	}
	if p.Hidden() != 3 {
		t.Errorf("hidden = %d, want 3", p.Hidden())
	}
	for _, name := range []string{"outer", "inner", "loose"} {
		if named[name].Hidden {
			t.Errorf("%s bead hidden", name)
		}
	}
	if !named["upper"].Hidden {
		t.Error("upper loose bead not hidden")
	}
}

func TestSpace_MotorTurnsMixerAndWall(t *testing.T) {
	s, named := mixerSpace(math.Pi / 2)
	p, err := New(s, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 600; i++ {
		p.Step(MinTimeStep)
	}

	if math.Abs(p.Time()-1) > 1e-9 {
		t.Errorf("time = %v, want 1", p.Time())
	}
	if w := named["mixer"].AngularVelocity.Y(); math.Abs(w-math.Pi/2) > 0.05 {
		t.Errorf("mixer angular velocity = %v, want about pi/2", w)
	}
	if a := p.MixerAngle(); math.Abs(a-math.Pi/2) > 0.1 {
		t.Errorf("mixer angle = %v, want about pi/2", a)
	}

	inner := named["inner"].Position
	if r := math.Hypot(inner.X(), inner.Z()); math.Abs(r-2.5) > 1e-9 {
		t.Errorf("inner bead radius = %v, want 2.5", r)
	}
	if inner.Z() > -2 {
		t.Errorf("inner bead at %v, want carried towards -z", inner)
	}
	if inner.Y() != 0.5 {
		t.Errorf("inner bead height = %v, want 0.5", inner.Y())
	}

	if named["outer"].Position != (mgl64.Vec3{5.5, 0.5, 0}) {
		t.Errorf("outer bead moved to %v", named["outer"].Position)
	}
	if named["upper"].Position != (mgl64.Vec3{-4, 1.5, 0}) {
		t.Errorf("hidden bead moved to %v", named["upper"].Position)
	}
}

func TestSpace_DownwardAxisTurnsClockwise(t *testing.T) {
	s, named := mixerSpaceAbout(math.Pi/2, mgl64.Vec3{0, -1, 0})
	p, err := New(s, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 600; i++ {
		p.Step(MinTimeStep)
	}

	if w := named["mixer"].AngularVelocity.Y(); math.Abs(w+math.Pi/2) > 0.05 {
		t.Errorf("mixer angular velocity = %v, want about -pi/2", w)
	}
	if inner := named["inner"].Position; inner.Z() < 2 {
		t.Errorf("inner bead at %v, want carried towards +z", inner)
	}
}

func TestSpace_LooseBeadKeepsItsHeight(t *testing.T) {
	s, named := mixerSpace(0)
	named["loose"].Velocity = mgl64.Vec3{0, 0, 1}
	p, err := New(s, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 60; i++ {
		p.Step(MinTimeStep)
	}

	loose := named["loose"]
	if loose.Position.Y() != 0.5 {
		t.Errorf("loose bead height = %v, want 0.5", loose.Position.Y())
	}
	if loose.Position.Z() <= 0 {
		t.Errorf("loose bead at %v, want moved towards +z", loose.Position)
	}
	if p.KineticEnergy() <= 0 {
		t.Error("kinetic energy = 0, want the loose bead moving")
	}
}

func TestYawRoundTrip(t *testing.T) {
	for _, angle := range []float64{0, 0.3, -1.2, 2.5} {
		if got := yaw(mgl64.QuatRotate(angle, up)); math.Abs(got-angle) > 1e-12 {
			t.Errorf("yaw(%v) = %v", angle, got)
		}
	}
}
