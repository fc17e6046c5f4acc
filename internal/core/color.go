package core

// Color represents a foreground color for a screen cell.
// The host maps each value to a terminal color.
type Color uint8

// Palette used by the game renderer and HUD.
const (
	ColorDefault Color = iota
	ColorSky
	ColorBird
	ColorBirdEye
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorHUD
	ColorAlert
)
