package screens

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bead-mixer/config"
	"bead-mixer/data"
	"bead-mixer/generation"
)

// DefaultSceneOption is the first entry of the scene menu
const DefaultSceneOption = "default"

var (
	startBackground = color.RGBA{30, 40, 55, 255}
	selectedBar     = color.RGBA{80, 110, 150, 255}
)

// StartScreen lets the user pick the scene preset to run
type StartScreen struct {
	BaseScreen
	selectedOption int
	options        []string
	descriptions   []string
}

// NewStartScreen creates a menu with defaultScene followed by the loaded presets
func NewStartScreen(defaultScene config.Scene, presets *data.PresetManager) *StartScreen {
	s := &StartScreen{
		options:      []string{DefaultSceneOption},
		descriptions: []string{describeScene(defaultScene)},
	}
	for _, id := range presets.IDs() {
		p, _ := presets.Get(id)
		desc := describeScene(p.Scene)
		if p.Description != "" {
			desc = fmt.Sprintf("%s, %d beads", p.Description, plannedBeads(p.Scene))
		}
		s.options = append(s.options, id)
		s.descriptions = append(s.descriptions, desc)
	}
	return s
}

// plannedBeads counts the beads cfg places. A lattice with an invalid mode counts as empty.
func plannedBeads(cfg config.Scene) int {
	r := cfg.BeadRadius
	outer, _ := generation.OuterWall(r, cfg.OuterRadius, cfg.Height, generation.Mode(cfg.OuterMode))
	inner, _ := generation.InnerWall(r, cfg.InnerRadius, cfg.Height, generation.Mode(cfg.InnerMode))
	fill, _ := generation.Fill(r, cfg.InnerRadius, cfg.OuterRadius, cfg.FillHeight, generation.FillMode(cfg.FillMode))
	return len(outer) + len(inner) + len(fill)
}

func describeScene(cfg config.Scene) string {
	return fmt.Sprintf("%d beads around a cylinder of radius %g spinning at %g rad/s",
		plannedBeads(cfg), cfg.InnerRadius, cfg.MotorSpeed)
}

// Update handles menu navigation; Enter returns ErrStartScene
func (s *StartScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.Move(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.Move(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return ErrStartScene
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Move changes the selection by delta, wrapping around
func (s *StartScreen) Move(delta int) {
	n := len(s.options)
	s.selectedOption = ((s.selectedOption+delta)%n + n) % n
}

// Selected returns the chosen preset id, or DefaultSceneOption
func (s *StartScreen) Selected() string {
	return s.options[s.selectedOption]
}

// Draw renders the scene menu
func (s *StartScreen) Draw(screen *ebiten.Image) {
	screen.Fill(startBackground)
	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()

	title := "Collisions between objects: choose a scene"
	ebitenutil.DebugPrintAt(screen, title, (screenWidth-len(title)*6)/2, 60)

	optionSpacing := 30
	startY := screenHeight/2 - (len(s.options)*optionSpacing)/2
	for i, option := range s.options {
		y := startY + i*optionSpacing
		if i == s.selectedOption {
			vector.DrawFilledRect(screen, 80, float32(y-4), float32(screenWidth-160), float32(optionSpacing-6), selectedBar, false)
		}
		ebitenutil.DebugPrintAt(screen, option, 100, y)
		ebitenutil.DebugPrintAt(screen, s.descriptions[i], 260, y)
	}

	ebitenutil.DebugPrintAt(screen, "Up/Down: Select  Enter: Start  Esc: Quit", 100, screenHeight-40)
}
