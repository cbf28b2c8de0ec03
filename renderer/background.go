package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer fills the screen with a vertical gradient.
type BackgroundRenderer struct {
	Top, Bottom rl.Color
	screenW     int32
	screenH     int32
}

// NewBackgroundRenderer creates a background for the given screen size.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		Top:     rl.Color{R: 8, G: 10, B: 18, A: 255},
		Bottom:  rl.Color{R: 16, G: 22, B: 36, A: 255},
		screenW: screenW,
		screenH: screenH,
	}
}

// Resize updates the screen size.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw renders the background.
func (b *BackgroundRenderer) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.Top, b.Bottom)
}
