package spawners

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/components"
	"bead-mixer/ecs"
	"bead-mixer/physics"
)

// Bead kinds, used as entity tags and in body names
const (
	KindInnerWall = "inner"
	KindOuterWall = "outer"
	KindFill      = "fill"
)

var (
	wallColor  = color.RGBA{230, 102, 51, 255}
	floorColor = color.RGBA{255, 0, 255, 255}
	mixerColor = color.RGBA{0, 0, 255, 255}
)

// EntitySpawner creates scene entities and registers their bodies with the physics space
type EntitySpawner struct {
	world      *ecs.World
	space      *physics.Space
	material   *physics.Material
	logMessage func(string) // Function for logging messages
	counts     map[string]int
}

// NewEntitySpawner creates a new entity spawner
func NewEntitySpawner(world *ecs.World, space *physics.Space, material *physics.Material, logFunc func(string)) *EntitySpawner {
	return &EntitySpawner{
		world:      world,
		space:      space,
		material:   material,
		logMessage: logFunc,
		counts:     make(map[string]int),
	}
}

func (s *EntitySpawner) log(format string, args ...any) {
	if s.logMessage != nil {
		s.logMessage(fmt.Sprintf(format, args...))
	}
}

func (s *EntitySpawner) addBody(name string, body *physics.Body, tags ...string) *ecs.Entity {
	entity := s.world.CreateEntity()
	entity.Name = name
	for _, tag := range tags {
		s.world.TagEntity(entity.ID, tag)
	}

	body.Name = name
	body.Material = s.material
	s.space.AddBody(body)
	s.world.AddComponent(entity.ID, components.Body, &components.BodyComponent{Body: body})
	return entity
}

// CreateFloor creates the fixed base plate whose top face is the plane y = 0
func (s *EntitySpawner) CreateFloor(halfWidth float64) *ecs.Entity {
	body := physics.NewBody("floor", 1,
		physics.Box{HalfExtents: mgl64.Vec3{halfWidth, 0.5, halfWidth}},
		mgl64.Vec3{0, -0.5, 0})
	body.SetFixed(true)

	entity := s.addBody("floor", body, "floor")
	renderable := components.NewRenderableComponent(floorColor, components.TextureFloor)
	renderable.Fading = 0.6
	s.world.AddComponent(entity.ID, components.Renderable, renderable)
	return entity
}

// CreateMixer creates the rotating inner cylinder standing on the floor
func (s *EntitySpawner) CreateMixer(radius, height, mass, inertia float64) *ecs.Entity {
	body := physics.NewBody("mixer", mass,
		physics.Cylinder{Radius: radius, Bottom: 0, Top: height},
		mgl64.Vec3{})
	body.Inertia = mgl64.Vec3{inertia, inertia, inertia}

	entity := s.addBody("mixer", body, "mixer")
	renderable := components.NewRenderableComponent(mixerColor, components.TextureBead)
	renderable.Fading = 0.6
	s.world.AddComponent(entity.ID, components.Renderable, renderable)
	return entity
}

// MixerAxis is the motor axis. It points down, so a positive speed turns the
// mixer clockwise seen from above.
var MixerAxis = mgl64.Vec3{0, -1, 0}

// CreateMotor spins mixer about MixerAxis relative to base at a constant speed
func (s *EntitySpawner) CreateMotor(mixer, base *ecs.Entity, speed float64) (*ecs.Entity, error) {
	mixerBody, ok := ecs.GetTyped[*components.BodyComponent](s.world, mixer.ID, components.Body)
	if !ok {
		return nil, fmt.Errorf("mixer entity %d has no body", mixer.ID)
	}
	baseBody, ok := ecs.GetTyped[*components.BodyComponent](s.world, base.ID, components.Body)
	if !ok {
		return nil, fmt.Errorf("base entity %d has no body", base.ID)
	}

	motor := physics.NewRotationMotor(mixerBody.Body, baseBody.Body, MixerAxis, physics.ConstantSpeed(speed))
	s.space.AddMotor(motor)

	entity := s.world.CreateEntity()
	entity.Name = "motor"
	s.world.TagEntity(entity.ID, "motor")
	s.world.AddComponent(entity.ID, components.Motor, &components.MotorComponent{Motor: motor})

	s.log("Motor spinning mixer at %.3f rad/s", speed)
	return entity, nil
}

// CreateBead creates a sphere of the given kind at pos.
// Fixed beads never move; wall beads are drawn with the wall texture.
func (s *EntitySpawner) CreateBead(kind string, radius, mass float64, pos mgl64.Vec3, fixed, wall bool) *ecs.Entity {
	s.counts[kind]++
	name := fmt.Sprintf("bead-%s-%04d", kind, s.counts[kind])

	body := physics.NewBody(name, mass, physics.Sphere{Radius: radius}, pos)
	body.SetFixed(fixed)

	texture := components.TextureBead
	if wall {
		texture = components.TextureWall
	}

	entity := s.addBody(name, body, "bead", kind)
	s.world.AddComponent(entity.ID, components.Renderable, components.NewRenderableComponent(wallColor, texture))
	return entity
}

// LockTo rigidly attaches child to parent, the way wall beads ride on the mixer
func (s *EntitySpawner) LockTo(child, parent *ecs.Entity) error {
	childBody, ok := ecs.GetTyped[*components.BodyComponent](s.world, child.ID, components.Body)
	if !ok {
		return fmt.Errorf("entity %d has no body", child.ID)
	}
	parentBody, ok := ecs.GetTyped[*components.BodyComponent](s.world, parent.ID, components.Body)
	if !ok {
		return fmt.Errorf("entity %d has no body", parent.ID)
	}

	childBody.Body.LockTo(parentBody.Body)
	s.world.AddComponent(child.ID, components.Lock, &components.LockComponent{Parent: parent.ID})
	return nil
}

// CreateCamera creates the orbit camera looking down at the drum
func (s *EntitySpawner) CreateCamera(target mgl64.Vec3, distance float64) *ecs.Entity {
	entity := s.world.CreateEntity()
	entity.Name = "camera"
	s.world.TagEntity(entity.ID, "camera")
	s.world.AddComponent(entity.ID, components.Camera, &components.CameraComponent{
		Target:   target,
		Distance: distance,
		Pitch:    mgl64.DegToRad(89),
		Yaw:      mgl64.DegToRad(90),
		FOV:      mgl64.DegToRad(60),
	})
	return entity
}
