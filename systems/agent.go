package systems

import (
	"math"

	"github.com/pthm-cable/murmur/components"
)

// Bounds represents the simulation bounds.
// Margin > 0 lets agents drift off-screen before wrapping (soft wraparound).
type Bounds struct {
	Width, Height float32
	Margin        float32
}

// Integrate applies a summed force to an agent: v += f, |v| clamped to maxSpeed,
// p += v, then toroidal wraparound.
func Integrate(pos *components.Position, vel *components.Velocity, maxSpeed, fx, fy float32, b Bounds) {
	vel.X += fx
	vel.Y += fy

	// Limit speed
	vel.X, vel.Y = Limit(vel.X, vel.Y, maxSpeed)

	// Update position
	pos.X += vel.X
	pos.Y += vel.Y

	Wrap(pos, b)
}

// Wrap teleports a coordinate that left [-margin, dim+margin] to the opposite edge.
func Wrap(pos *components.Position, b Bounds) {
	pos.X = wrapAxis(pos.X, b.Width, b.Margin)
	pos.Y = wrapAxis(pos.Y, b.Height, b.Margin)
}

func wrapAxis(v, dim, margin float32) float32 {
	lo, hi := -margin, dim+margin
	switch {
	case v < lo:
		v = hi
	case v > hi:
		v = lo
	}
	return v
}

// ClampInside moves a position into [0,W]x[0,H]. Used when bounds shrink.
func ClampInside(pos *components.Position, width, height float32) {
	pos.X = clampFloat(pos.X, 0, width)
	pos.Y = clampFloat(pos.Y, 0, height)
}

// Activate raises an agent's activation by amount, saturating at 1.
func Activate(a *components.Agent, amount float32) {
	a.Activation = clamp01(a.Activation + amount)
}

// Decay applies passive per-tick activation decay.
// Values below epsilon snap to exactly 0.
func Decay(a *components.Agent, factor, epsilon float32) {
	a.Activation *= factor
	if a.Activation < epsilon {
		a.Activation = 0
	}
}

// Breathe advances the visual size oscillation by one tick.
func Breathe(b *components.Breath) {
	const twoPi = 2 * math.Pi
	b.Phase += b.Speed
	if b.Phase >= twoPi {
		b.Phase -= twoPi
	}
	b.Size = b.BaseSize * (1 + float32(math.Sin(float64(b.Phase)))*b.Amplitude)
}
