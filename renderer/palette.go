package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const paletteSteps = 64

// Palette maps activation in [0, 1] to a node color. The ramp is blended in
// Lab space once at construction so lookups are a table index.
type Palette struct {
	ramp [paletteSteps]rl.Color
}

// NewPalette builds a ramp from cold (activation 0) to hot (activation 1).
func NewPalette(cold, hot rl.Color) *Palette {
	c0 := toColorful(cold)
	c1 := toColorful(hot)

	p := &Palette{}
	for i := range p.ramp {
		t := float64(i) / float64(paletteSteps-1)
		r, g, b := c0.BlendLab(c1, t).Clamped().RGB255()
		a := uint8(float64(cold.A) + (float64(hot.A)-float64(cold.A))*t)
		p.ramp[i] = rl.Color{R: r, G: g, B: b, A: a}
	}
	return p
}

// DefaultPalette is a dim blue that heats to warm white.
func DefaultPalette() *Palette {
	return NewPalette(
		rl.Color{R: 90, G: 140, B: 210, A: 200},
		rl.Color{R: 255, G: 230, B: 170, A: 255},
	)
}

// At returns the color for activation a, clamped to [0, 1].
func (p *Palette) At(a float32) rl.Color {
	if a <= 0 {
		return p.ramp[0]
	}
	if a >= 1 {
		return p.ramp[paletteSteps-1]
	}
	return p.ramp[int(a*(paletteSteps-1)+0.5)]
}

func toColorful(c rl.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
