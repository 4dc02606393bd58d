package components

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/ecs"
	"bead-mixer/physics"
)

// BodyComponent links an entity to its simulated body
type BodyComponent struct {
	Body *physics.Body
}

// Texture selects the surface pattern a body is drawn with
type Texture int

const (
	TextureNone  Texture = iota
	TextureWall          // green and white, wall beads
	TextureBead          // blue and white, loose beads and the mixer
	TextureFloor         // plain blue
)

// RenderableComponent stores how a body is drawn
type RenderableComponent struct {
	Color   color.RGBA
	Texture Texture
	Fading  float64 // 0 opaque .. 1 invisible
	Hidden  bool
}

// NewRenderableComponent creates a renderable with the given base color and texture
func NewRenderableComponent(c color.RGBA, texture Texture) *RenderableComponent {
	return &RenderableComponent{Color: c, Texture: texture}
}

// Alpha returns the draw alpha after fading
func (r *RenderableComponent) Alpha() uint8 {
	return uint8(255 * (1 - r.Fading))
}

// MotorComponent holds the motor that spins the mixer
type MotorComponent struct {
	Motor *physics.RotationMotor
}

// LockComponent records that an entity is rigidly fixed to another one
type LockComponent struct {
	Parent ecs.EntityID
}

// CameraComponent is an orbit camera looking at Target
type CameraComponent struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64 // Radians around the vertical axis
	Pitch    float64 // Radians above the horizontal plane
	FOV      float64 // Vertical field of view in radians
}

// Eye returns the camera position in world space
func (c *CameraComponent) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{cp * math.Cos(c.Yaw), math.Sin(c.Pitch), cp * math.Sin(c.Yaw)}
	return c.Target.Add(offset.Mul(c.Distance))
}
