package systems

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bead-mixer/components"
	"bead-mixer/config"
	"bead-mixer/ecs"
	"bead-mixer/physics"
)

var (
	backgroundColor = color.RGBA{190, 205, 220, 255}
	gridColor       = color.RGBA{80, 100, 100, 255}
	axisColor       = color.RGBA{0, 0, 0, 255}
	panelColor      = color.RGBA{0, 0, 0, 160}
)

const (
	gridSpacing = 0.2
	gridCells   = 20
	rimSegments = 48
)

// DrawItem is one bead ready to be drawn
type DrawItem struct {
	X, Y    float64 // Screen center
	Radius  float64 // Screen radius in pixels
	Depth   float64 // Distance in front of the camera
	Texture components.Texture
	Color   color.RGBA
	Alpha   float64
}

// Status is what the status line shows about the simulation clock and the camera
type Status struct {
	Time   float64
	Steps  int // Sub-steps of the last frame
	Paused bool

	Yaw, Pitch, Distance float64
}

// RenderSystem draws the scene through the orbit camera
type RenderSystem struct {
	cameraSystem *CameraSystem
	motorSystem  *MotorSystem
	textures     *Textures

	// Backend is shown in the status line
	Backend string
	status  Status

	items []DrawItem
}

// NewRenderSystem creates a rendering system that follows the clock and
// camera events of world
func NewRenderSystem(world *ecs.World, textures *Textures) *RenderSystem {
	s := &RenderSystem{textures: textures}

	events := world.GetEventManager()
	events.Subscribe(EventFrameAdvanced, func(e ecs.Event) {
		frame := e.(FrameAdvancedEvent)
		s.status.Time = frame.Time
		s.status.Steps = frame.Steps
	})
	events.Subscribe(EventPause, func(e ecs.Event) {
		s.status.Paused = e.(PauseEvent).Paused
	})
	events.Subscribe(EventCameraUpdate, func(e ecs.Event) {
		cam := e.(CameraUpdateEvent)
		s.status.Yaw, s.status.Pitch, s.status.Distance = cam.Yaw, cam.Pitch, cam.Distance
	})
	return s
}

// Status returns the state shown in the status line
func (s *RenderSystem) Status() Status {
	return s.status
}

// SetCameraSystem sets the camera system to be used for rendering
func (s *RenderSystem) SetCameraSystem(cameraSystem *CameraSystem) {
	s.cameraSystem = cameraSystem
}

// Update looks up the camera and motor systems
func (s *RenderSystem) Update(world *ecs.World, dt float64) {
	for _, system := range world.GetSystems() {
		switch sys := system.(type) {
		case *CameraSystem:
			if s.cameraSystem == nil {
				s.cameraSystem = sys
			}
		case *MotorSystem:
			s.motorSystem = sys
		}
	}
}

// Draw renders the grid, the axis, the mixer and the beads, then the status
// line and the latest messages
func (s *RenderSystem) Draw(world *ecs.World, screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if s.cameraSystem == nil {
		return
	}
	proj, ok := s.cameraSystem.Projection(world)
	if !ok {
		return
	}

	s.drawGrid(screen, proj)
	s.drawSegment(screen, proj, mgl64.Vec3{0, -100, 0}, mgl64.Vec3{0, 100, 0}, axisColor, 1)
	s.drawSolids(world, screen, proj)

	s.items = BuildDrawList(world, proj, s.items[:0])
	for _, item := range s.items {
		s.drawBead(screen, item)
	}

	s.drawStatus(screen, len(s.items))
	s.drawMessages(screen)
}

func (s *RenderSystem) drawSegment(screen *ebiten.Image, proj Projection, a, b mgl64.Vec3, clr color.Color, width float32) {
	x0, y0, x1, y1, ok := proj.ProjectSegment(a, b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
}

// drawGrid draws the reference grid in the plane y = 0
func (s *RenderSystem) drawGrid(screen *ebiten.Image, proj Projection) {
	half := gridSpacing * gridCells / 2
	for i := 0; i <= gridCells; i++ {
		c := -half + float64(i)*gridSpacing
		s.drawSegment(screen, proj, mgl64.Vec3{c, 0, -half}, mgl64.Vec3{c, 0, half}, gridColor, 1)
		s.drawSegment(screen, proj, mgl64.Vec3{-half, 0, c}, mgl64.Vec3{half, 0, c}, gridColor, 1)
	}
}

// drawSolids outlines the floor and the mixer
func (s *RenderSystem) drawSolids(world *ecs.World, screen *ebiten.Image, proj Projection) {
	for _, entity := range world.GetEntitiesWithComponent(components.Renderable) {
		body, renderable := bodyAndRenderable(world, entity.ID)
		if body == nil || renderable.Hidden {
			continue
		}
		c := renderable.Color
		clr := color.NRGBA{R: c.R, G: c.G, B: c.B, A: renderable.Alpha()}

		switch shape := body.Shape.(type) {
		case physics.Box:
			h := shape.HalfExtents
			top := []mgl64.Vec3{{-h[0], h[1], -h[2]}, {h[0], h[1], -h[2]}, {h[0], h[1], h[2]}, {-h[0], h[1], h[2]}}
			for i := range top {
				a := body.Position.Add(body.Rotation.Rotate(top[i]))
				b := body.Position.Add(body.Rotation.Rotate(top[(i+1)%len(top)]))
				s.drawSegment(screen, proj, a, b, clr, 2)
			}
		case physics.Cylinder:
			s.drawRim(screen, proj, body, shape.Radius, shape.Bottom, clr)
			s.drawRim(screen, proj, body, shape.Radius, shape.Top, clr)
			// A spoke on the top face shows the rotation.
			center := body.Position.Add(body.Rotation.Rotate(mgl64.Vec3{0, shape.Top, 0}))
			edge := body.Position.Add(body.Rotation.Rotate(mgl64.Vec3{shape.Radius, shape.Top, 0}))
			s.drawSegment(screen, proj, center, edge, clr, 2)
		}
	}
}

func (s *RenderSystem) drawRim(screen *ebiten.Image, proj Projection, body *physics.Body, radius, y float64, clr color.Color) {
	point := func(i int) mgl64.Vec3 {
		a := 2 * math.Pi * float64(i) / rimSegments
		return body.Position.Add(body.Rotation.Rotate(mgl64.Vec3{radius * math.Cos(a), y, radius * math.Sin(a)}))
	}
	for i := 0; i < rimSegments; i++ {
		s.drawSegment(screen, proj, point(i), point(i+1), clr, 2)
	}
}

func (s *RenderSystem) drawBead(screen *ebiten.Image, item DrawItem) {
	var sprite *ebiten.Image
	if s.textures != nil {
		sprite = s.textures.Sprite(item.Texture)
	}
	if sprite == nil {
		c := item.Color
		clr := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * item.Alpha)}
		vector.DrawFilledCircle(screen, float32(item.X), float32(item.Y), float32(item.Radius), clr, true)
		return
	}

	size := float64(sprite.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*item.Radius/size, 2*item.Radius/size)
	op.GeoM.Translate(item.X-item.Radius, item.Y-item.Radius)
	op.ColorScale.ScaleAlpha(float32(item.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

func (s *RenderSystem) drawStatus(screen *ebiten.Image, beads int) {
	status := fmt.Sprintf("FPS: %.1f  beads: %d", ebiten.ActualFPS(), beads)
	if s.Backend != "" {
		status += "  backend: " + s.Backend
	}
	status += fmt.Sprintf("\nt = %.3f s  steps/frame: %d", s.status.Time, s.status.Steps)
	if s.status.Paused {
		status += "  PAUSED"
	}
	if s.motorSystem != nil {
		status += fmt.Sprintf("\nmotor: %.3f rad/s  mixer angle: %.1f deg",
			s.motorSystem.Speed(), mgl64.RadToDeg(s.motorSystem.MixerAngle()))
	}
	if s.status.Distance > 0 {
		status += fmt.Sprintf("\ncamera: yaw %.0f deg  pitch %.0f deg  distance %.1f",
			mgl64.RadToDeg(s.status.Yaw), mgl64.RadToDeg(s.status.Pitch), s.status.Distance)
	}
	ebitenutil.DebugPrintAt(screen, status, 4, 4)
}

// drawMessages shows the latest messages at the bottom of the window
func (s *RenderSystem) drawMessages(screen *ebiten.Image) {
	messages := GetMessageLog().RecentMessages(config.MessageLines)
	if len(messages) == 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	top := h - (config.MessageLines+1)*config.LineHeight
	vector.DrawFilledRect(screen, 0, float32(top), float32(w), float32(h-top), panelColor, false)

	// Oldest at the top, newest just above the key help.
	for i, msg := range messages {
		y := h - (i+2)*config.LineHeight
		ebitenutil.DebugPrintAt(screen, msg, 4, y)
	}
	ebitenutil.DebugPrintAt(screen, "Space pause  Arrows orbit  +/- zoom  [ ] motor  F1 log  H help  R rebuild", 4, h-config.LineHeight)
}

func bodyAndRenderable(world *ecs.World, id ecs.EntityID) (*physics.Body, *components.RenderableComponent) {
	renderable, ok := ecs.GetTyped[*components.RenderableComponent](world, id, components.Renderable)
	if !ok {
		return nil, nil
	}
	bc, ok := ecs.GetTyped[*components.BodyComponent](world, id, components.Body)
	if !ok {
		return nil, nil
	}
	return bc.Body, renderable
}

// BuildDrawList projects every visible bead and sorts the result far to near,
// so drawing in order paints nearer beads over farther ones
func BuildDrawList(world *ecs.World, proj Projection, items []DrawItem) []DrawItem {
	for _, entity := range world.GetEntitiesWithComponent(components.Renderable) {
		body, renderable := bodyAndRenderable(world, entity.ID)
		if body == nil || renderable.Hidden || body.Hidden {
			continue
		}
		sphere, ok := body.Shape.(physics.Sphere)
		if !ok {
			continue
		}
		x, y, depth, ok := proj.Project(body.Position)
		if !ok {
			continue
		}
		items = append(items, DrawItem{
			X:       x,
			Y:       y,
			Radius:  sphere.Radius * proj.Scale(depth),
			Depth:   depth,
			Texture: renderable.Texture,
			Color:   renderable.Color,
			Alpha:   1 - renderable.Fading,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Depth > items[j].Depth
	})
	return items
}
