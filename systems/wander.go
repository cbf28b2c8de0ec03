package systems

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Wanderer produces a slowly turning drift direction per agent from a seeded
// Perlin field. Each agent samples its own row of the field (its noise seed),
// so nearby ticks give nearby headings.
//
// Safe for concurrent use: sampling only reads the permutation tables.
type Wanderer struct {
	noise     *perlin.Perlin
	frequency float64
}

// NewWanderer creates a wanderer. alpha and beta shape the noise spectrum,
// octaves sets its detail; frequency is the field distance advanced per tick.
func NewWanderer(alpha, beta float64, octaves int, frequency float64, seed int64) *Wanderer {
	return &Wanderer{
		noise:     perlin.NewPerlin(alpha, beta, int32(octaves), seed),
		frequency: frequency,
	}
}

// Direction returns the unit drift direction for an agent at the given tick.
func (w *Wanderer) Direction(noiseSeed float32, tick int64) (dx, dy float32) {
	n := w.noise.Noise2D(float64(noiseSeed), float64(tick)*w.frequency)
	// Noise is roughly in [-1, 1]; spread it over two full turns.
	angle := n * 4 * math.Pi
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}
