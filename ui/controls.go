package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlays by category. Rows toggle on click as
// well as by their key.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32 // from the last Draw
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	return c.visible && inRect(px, py, c.x, c.y, c.width, c.height)
}

// Height returns the panel height for the given registry.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := int32(0)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return rows*t.LineHeight + int32(len(overlays.Categories()))*4 + t.LineHeight + 4 + t.Padding*2
}

// Draw renders the panel, applies any row clicked this frame, and returns
// the Y just below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		c.height = 0
		return c.y
	}

	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	c.height = c.Height(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.height)

	mouse := rl.GetMousePosition()
	clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)

	y := c.y + pad
	rl.DrawText("Overlays", c.x+pad, y, 16, rl.White)
	y += lh + 4

	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+pad, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			if clicked && inRect(mouse.X, mouse.Y, c.x, y, c.width, lh) {
				overlays.Toggle(desc.ID)
			}
			c.drawToggle(c.x+pad, y, desc, overlays.IsEnabled(desc.ID), c.width-pad*2)
			y += lh
		}
		y += 4
	}
	return c.y + c.height
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	t := c.renderer.Theme

	status, name := t.OffColor, t.LabelColor
	if enabled {
		status, name = t.OnColor, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	rl.DrawText(desc.Name, x+14, y, t.FontSize, name)

	if desc.KeyLabel != "" {
		c.renderer.DrawRightAligned(x+width, y, "["+desc.KeyLabel+"]", t.DimColor)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
