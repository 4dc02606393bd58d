package systems

import (
	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/components"
	"bead-mixer/ecs"
)

var (
	minPitch = mgl64.DegToRad(5)
	maxPitch = mgl64.DegToRad(89)
)

const (
	minDistance = 2.0
	maxDistance = 200.0
)

// CameraSystem keeps the orbit camera within its limits and projects the scene through it
type CameraSystem struct {
	width  int
	height int
	last   components.CameraComponent
}

// NewCameraSystem creates a camera system for a width x height viewport
func NewCameraSystem(width, height int) *CameraSystem {
	return &CameraSystem{width: width, height: height}
}

// SetViewport changes the size of the projected image
func (s *CameraSystem) SetViewport(width, height int) {
	s.width, s.height = width, height
}

// Camera returns the first camera entity and its component
func (s *CameraSystem) Camera(world *ecs.World) (*ecs.Entity, *components.CameraComponent) {
	for _, entity := range world.GetEntitiesWithTag("camera") {
		if cam, ok := ecs.GetTyped[*components.CameraComponent](world, entity.ID, components.Camera); ok {
			return entity, cam
		}
	}
	return nil, nil
}

// Orbit turns the camera around its target by dyaw and dpitch radians
func (s *CameraSystem) Orbit(world *ecs.World, dyaw, dpitch float64) {
	if _, cam := s.Camera(world); cam != nil {
		cam.Yaw += dyaw
		cam.Pitch = mgl64.Clamp(cam.Pitch+dpitch, minPitch, maxPitch)
	}
}

// Zoom multiplies the camera distance by factor
func (s *CameraSystem) Zoom(world *ecs.World, factor float64) {
	if _, cam := s.Camera(world); cam != nil {
		cam.Distance = mgl64.Clamp(cam.Distance*factor, minDistance, maxDistance)
	}
}

// Update clamps the camera and emits a CameraUpdateEvent when it moved
func (s *CameraSystem) Update(world *ecs.World, dt float64) {
	entity, cam := s.Camera(world)
	if cam == nil {
		return
	}
	cam.Pitch = mgl64.Clamp(cam.Pitch, minPitch, maxPitch)
	cam.Distance = mgl64.Clamp(cam.Distance, minDistance, maxDistance)

	if *cam != s.last {
		s.last = *cam
		world.EmitEvent(CameraUpdateEvent{
			CameraID: entity.ID,
			Yaw:      cam.Yaw,
			Pitch:    cam.Pitch,
			Distance: cam.Distance,
		})
	}
}

// Projection returns the projection through the world's camera
func (s *CameraSystem) Projection(world *ecs.World) (Projection, bool) {
	_, cam := s.Camera(world)
	if cam == nil {
		return Projection{}, false
	}
	return NewProjection(cam, s.width, s.height), true
}
