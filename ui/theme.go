// Package ui draws the in-window panels: HUD, overlay toggles and the
// steering weight sliders.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	DimColor      rl.Color
	OnColor       rl.Color
	OffColor      rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the dark theme used by every panel.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 12, G: 14, B: 20, A: 230},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Color{R: 120, G: 200, B: 255, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		DimColor:      rl.Color{R: 150, G: 150, B: 150, A: 255},
		OnColor:       rl.Color{R: 100, G: 200, B: 100, A: 255},
		OffColor:      rl.Color{R: 80, G: 80, B: 80, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Renderer draws themed primitives shared by the panels.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the next line's Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label: value" and returns the next line's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawRightAligned draws text ending at right.
func (r *Renderer) DrawRightAligned(right, y int32, text string, color rl.Color) {
	w := rl.MeasureText(text, r.Theme.FontSize)
	rl.DrawText(text, right-w, y, r.Theme.FontSize, color)
}

// inRect reports whether a screen point lies inside the rectangle.
func inRect(px, py float32, x, y, w, h int32) bool {
	return px >= float32(x) && px <= float32(x+w) && py >= float32(y) && py <= float32(y+h)
}
