package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
)

// WeightField describes one slider in the weights panel.
type WeightField struct {
	Label    string
	Min, Max float32
	Get      func(w *systems.Weights) *float32
}

// WeightFields lists the steering weights in panel order.
var WeightFields = []WeightField{
	{"Alignment", 0, 3, func(w *systems.Weights) *float32 { return &w.Alignment }},
	{"Cohesion", 0, 3, func(w *systems.Weights) *float32 { return &w.Cohesion }},
	{"Separation", 0, 5, func(w *systems.Weights) *float32 { return &w.Separation }},
	{"Seek", 0, 3, func(w *systems.Weights) *float32 { return &w.Seek }},
	{"Repulsion", 0, 5, func(w *systems.Weights) *float32 { return &w.Repulsion }},
	{"Wander", 0, 2, func(w *systems.Weights) *float32 { return &w.Wander }},
}

// WeightsPanel draws live sliders for the steering weights.
type WeightsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	defaults systems.Weights
}

// NewWeightsPanel creates a panel. defaults is restored by the Reset button.
func NewWeightsPanel(x, y, width int32, defaults systems.Weights) *WeightsPanel {
	return &WeightsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		defaults: defaults,
	}
}

// SetPosition updates the panel position.
func (p *WeightsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel's drawn height.
func (p *WeightsPanel) Height() int32 {
	return p.renderer.Theme.Padding*2 + p.renderer.Theme.LineHeight + int32(len(WeightFields))*34 + 30
}

// Draw renders the sliders and returns the edited weights and whether any changed.
func (p *WeightsPanel) Draw(w systems.Weights) (systems.Weights, bool) {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	y := r.DrawSectionHeader(p.x+pad, p.y+pad, "Steering Weights")
	sliderW := float32(p.width - pad*2 - 70)
	changed := false

	for _, f := range WeightFields {
		v := f.Get(&w)
		rl.DrawText(f.Label, p.x+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight

		next := gui.SliderBar(
			rl.Rectangle{X: float32(p.x + pad + 20), Y: float32(y), Width: sliderW - 40, Height: 14},
			fmt.Sprintf("%.0f", f.Min), fmt.Sprintf("%.0f", f.Max),
			*v, f.Min, f.Max,
		)
		rl.DrawText(fmt.Sprintf("%.2f", *v), p.x+pad+int32(sliderW)+10, y, r.Theme.FontSize, r.Theme.ValueColor)
		if next != *v {
			*v = next
			changed = true
		}
		y += 18
	}

	if gui.Button(rl.Rectangle{X: float32(p.x + pad), Y: float32(y + 4), Width: 100, Height: 22}, "Reset") {
		return p.defaults, w != p.defaults
	}
	return w, changed
}
