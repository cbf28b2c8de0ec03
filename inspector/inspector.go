// Package inspector shows the component state of a selected agent.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/swarm"
	"github.com/pthm-cable/murmur/systems"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
	closeSize    = 20
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// section is one titled group of fields.
type section struct {
	title  string
	fields []Field
}

// Inspector tracks the selected agent and draws its panel.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool

	panelX, panelY int32
	panelHeight    int32
}

// NewInspector creates an inspector whose panel sits at the left edge.
func NewInspector() *Inspector {
	return &Inspector{panelX: 10}
}

// Select makes e the inspected agent.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether a screen point is over the visible panel.
func (ins *Inspector) Contains(x, y float32) bool {
	if !ins.hasSelected || ins.panelHeight == 0 {
		return false
	}
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY && int32(y) <= ins.panelY+ins.panelHeight
}

// OverClose reports whether a screen point is over the close button.
func (ins *Inspector) OverClose(x, y float32) bool {
	if !ins.Contains(x, y) {
		return false
	}
	cx := ins.panelX + PanelWidth - closeSize - 5
	cy := ins.panelY + 5
	return int32(x) >= cx && int32(x) <= cx+closeSize &&
		int32(y) >= cy && int32(y) <= cy+closeSize
}

func sections(d swarm.AgentDetail) []section {
	motion := []Field{
		{Name: "Position", Value: fmt.Sprintf("%.0f, %.0f", d.Position.X, d.Position.Y), Widget: WidgetLabel},
		{Name: "Velocity", Value: fmt.Sprintf("%.2f, %.2f", d.Velocity.X, d.Velocity.Y), Widget: WidgetLabel},
		{Name: "Speed", Value: systems.Magnitude(d.Velocity.X, d.Velocity.Y), Widget: WidgetLabel},
	}
	agent := append(ExtractFields(d.Agent), Field{Name: "Degree", Value: d.Degree, Widget: WidgetLabel})
	return []section{
		{"MOTION", motion},
		{"AGENT", agent},
		{"BREATH", ExtractFields(d.Breath)},
	}
}

// Draw renders the panel for the selected agent, anchored above the bottom
// of the screen. It deselects when the agent no longer exists.
func (ins *Inspector) Draw(s *swarm.Swarm, screenHeight int32) {
	if !ins.hasSelected {
		return
	}
	d, ok := s.Inspect(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}

	secs := sections(d)
	height := int32(HeaderHeight + PanelPadding*2)
	for _, sec := range secs {
		height += 24
		for _, f := range sec.fields {
			height += FieldHeight(f)
		}
	}
	ins.panelHeight = height
	ins.panelY = max(10, screenHeight-height-40)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1, ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("AGENT %d", ins.selected.ID()), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	cx := ins.panelX + PanelWidth - closeSize - 5
	cy := ins.panelY + 5
	rl.DrawRectangle(cx, cy, closeSize, closeSize, ColorCloseBtn)
	rl.DrawText("X", cx+6, cy+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, sec := range secs {
		rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
		rl.DrawText(sec.title, x+2, y, 14, ColorSectionText)
		y += 24
		for _, f := range sec.fields {
			y += DrawField(x, y, f)
		}
	}
}

// DrawSelectionHighlight rings the selected agent and shows its connection
// radius in world space.
func (ins *Inspector) DrawSelectionHighlight(s *swarm.Swarm, cam *camera.Camera, connectionRadius float32) {
	if !ins.hasSelected {
		return
	}
	d, ok := s.Inspect(ins.selected)
	if !ok {
		return
	}

	sx, sy := cam.WorldToScreen(d.Position.X, d.Position.Y)
	ring := max(d.Breath.Size*1.8, 6) * cam.Zoom
	rl.DrawCircleLines(int32(sx), int32(sy), ring, rl.Yellow)
	rl.DrawCircleLines(int32(sx), int32(sy), connectionRadius*cam.Zoom, rl.Color{R: 255, G: 255, B: 0, A: 60})
}
