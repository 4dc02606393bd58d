package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"bead-mixer/config"
	"bead-mixer/systems"
)

var (
	modalBackground = color.RGBA{0, 0, 0, 230}
	errorText       = color.RGBA{255, 100, 100, 255}
)

// MessageScreen shows the whole message log in a scrollable modal window
type MessageScreen struct {
	BaseScreen
	scrollOffset int
	width        int
	height       int
	lines        *ebiten.Image
}

// NewMessageScreen creates a new message screen
func NewMessageScreen() *MessageScreen {
	return &MessageScreen{
		width:  640,
		height: 440,
	}
}

func (s *MessageScreen) visibleLines() int {
	return (s.height - 50) / config.LineHeight
}

// Update handles scrolling; Escape closes the window
func (s *MessageScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		s.Scroll(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		s.Scroll(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrCloseScreen
	}
	return nil
}

// Scroll moves the first visible message by delta lines, keeping a full page in view
func (s *MessageScreen) Scroll(delta int) {
	total := len(systems.GetMessageLog().Messages)
	s.scrollOffset = max(0, min(s.scrollOffset+delta, total-s.visibleLines()))
}

// Draw renders the message window centered on the screen
func (s *MessageScreen) Draw(screen *ebiten.Image) {
	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := float32(screenWidth-s.width) / 2
	y := float32(screenHeight-s.height) / 2
	w, h := float32(s.width), float32(s.height)

	vector.DrawFilledRect(screen, x, y, w, h, modalBackground, false)
	vector.StrokeRect(screen, x, y, w, h, 2, color.White, false)
	ebitenutil.DebugPrintAt(screen, "MESSAGE LOG", int(x)+s.width/2-33, int(y)+8)

	if s.lines == nil {
		s.lines = ebiten.NewImage(s.width, config.LineHeight)
	}

	messages := systems.GetMessageLog().Messages
	for i := 0; i < s.visibleLines() && s.scrollOffset+i < len(messages); i++ {
		msg := messages[s.scrollOffset+i]
		s.lines.Clear()
		ebitenutil.DebugPrintAt(s.lines, msg, 10, 0)

		op := &ebiten.DrawImageOptions{}
		if systems.IsErrorMessage(msg) {
			op.ColorScale.ScaleWithColor(errorText)
		}
		op.GeoM.Translate(float64(x), float64(y)+30+float64(i*config.LineHeight))
		screen.DrawImage(s.lines, op)
	}

	ebitenutil.DebugPrintAt(screen, "Up/Down: Scroll  Esc or F1: Close", int(x)+10, int(y)+s.height-20)
}
