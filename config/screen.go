package config

// Window layout configuration
const (
	// Window dimensions in pixels
	WindowWidth  = 800
	WindowHeight = 600

	// WindowTitle is shown in the title bar
	WindowTitle = "Collisions between objects"

	// Message panel at the bottom of the window, in text lines
	MessageLines = 6
	// LineHeight of ebitenutil debug text in pixels
	LineHeight = 16
)

// GetWindowSize returns the window size in pixels
func GetWindowSize() (width, height int) {
	return WindowWidth, WindowHeight
}
