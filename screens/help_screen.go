package screens

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bead-mixer/config"
)

// Controls lists the viewer key bindings shown by the help screen
var Controls = [][2]string{
	{"Space", "pause / resume"},
	{"Arrows", "orbit the camera"},
	{"+ / -", "zoom in / out"},
	{"[ / ]", "slow down / speed up the motor"},
	{"R", "rebuild the scene"},
	{"F1", "message log"},
	{"H", "this help"},
}

// HelpScreen is a modal window listing the controls
type HelpScreen struct {
	BaseScreen
	title   string
	content string
	width   int
	height  int
}

// NewHelpScreen creates the controls window
func NewHelpScreen() *HelpScreen {
	var b strings.Builder
	for _, c := range Controls {
		b.WriteString(c[0])
		b.WriteString(strings.Repeat(" ", 10-len(c[0])))
		b.WriteString(c[1])
		b.WriteByte('\n')
	}
	return &HelpScreen{
		title:   "CONTROLS",
		content: b.String(),
		width:   360,
		height:  (len(Controls) + 4) * config.LineHeight,
	}
}

// Update closes the window on Escape
func (s *HelpScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	return nil
}

// Draw implements the Screen interface
func (s *HelpScreen) Draw(screen *ebiten.Image) {
	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := (screenWidth - s.width) / 2
	y := (screenHeight - s.height) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(s.width), float32(s.height), modalBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(s.width), float32(s.height), 2, color.White, false)

	titleX := x + (s.width-len(s.title)*6)/2
	ebitenutil.DebugPrintAt(screen, s.title, titleX, y+10)
	ebitenutil.DebugPrintAt(screen, s.content, x+10, y+30)
}
