package config

// Viewer layout configuration
const (
	// Size of one grid unit in pixels at zoom 1
	TileSize = 8

	// Window dimensions in pixels
	WindowWidth  = 1280
	WindowHeight = 960

	// Margin in grid units kept around the map when fitting it to the window
	ViewMargin = 5

	// Number of log lines shown in the message panel
	MessagePanelLines = 6
)

// GetScreenDimensions returns the screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}

// GetWindowSize returns the recommended window size
func GetWindowSize() (width, height int) {
	return WindowWidth, WindowHeight
}
