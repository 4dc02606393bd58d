package screens

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"bead-mixer/ecs"
	"bead-mixer/systems"
)

const (
	frameTime  = 1.0 / 60.0
	orbitSpeed = 1.5  // rad/s while an arrow key is held
	zoomStep   = 0.98 // distance factor per frame while zooming in
	speedStep  = 0.25 // rad/s per key press
)

// SimulationScreen runs the mixer and handles the viewer controls
type SimulationScreen struct {
	BaseScreen
	world         *ecs.World
	physicsSystem *systems.PhysicsSystem
	motorSystem   *systems.MotorSystem
	cameraSystem  *systems.CameraSystem
	renderSystem  *systems.RenderSystem
	screenStack   *ScreenStack
}

// NewSimulationScreen creates the main screen. The world must already hold
// the physics, motor and camera systems.
func NewSimulationScreen(
	world *ecs.World,
	physicsSystem *systems.PhysicsSystem,
	motorSystem *systems.MotorSystem,
	cameraSystem *systems.CameraSystem,
	renderSystem *systems.RenderSystem,
) *SimulationScreen {
	return &SimulationScreen{
		world:         world,
		physicsSystem: physicsSystem,
		motorSystem:   motorSystem,
		cameraSystem:  cameraSystem,
		renderSystem:  renderSystem,
		screenStack:   NewScreenStack(),
	}
}

// toggle closes the open modal, or opens the one built by open
func (s *SimulationScreen) toggle(open func() Screen) {
	if s.screenStack.Peek() != nil {
		s.screenStack.Pop()
		return
	}
	s.screenStack.Push(open())
}

// Update handles input and advances the simulation by one frame.
// It returns ErrRebuild when the user asks for a fresh scene.
func (s *SimulationScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.toggle(func() Screen { return NewMessageScreen() })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.toggle(func() Screen { return NewHelpScreen() })
	}

	// A modal takes the keyboard and freezes the simulation.
	if s.screenStack.Peek() != nil {
		return s.screenStack.Update()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return ErrRebuild
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.physicsSystem.TogglePause(s.world)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		s.motorSystem.AdjustSpeed(s.world, speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		s.motorSystem.AdjustSpeed(s.world, -speedStep)
	}
	s.handleCamera()

	s.world.Update(frameTime)
	s.renderSystem.Update(s.world, frameTime)
	return nil
}

func (s *SimulationScreen) handleCamera() {
	var dyaw, dpitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dyaw -= orbitSpeed * frameTime
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dyaw += orbitSpeed * frameTime
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dpitch += orbitSpeed * frameTime
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dpitch -= orbitSpeed * frameTime
	}
	if dyaw != 0 || dpitch != 0 {
		s.cameraSystem.Orbit(s.world, dyaw, dpitch)
	}

	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		s.cameraSystem.Zoom(s.world, zoomStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		s.cameraSystem.Zoom(s.world, 1/zoomStep)
	}
}

// Draw draws the scene and any open modal
func (s *SimulationScreen) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(s.world, screen)
	s.screenStack.Draw(screen)
}

// Layout keeps the camera viewport in step with the window
func (s *SimulationScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := s.BaseScreen.Layout(outsideWidth, outsideHeight)
	s.cameraSystem.SetViewport(w, h)
	return w, h
}
