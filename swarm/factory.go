package swarm

import (
	"math"

	"github.com/pthm-cable/murmur/components"
)

// spawnInitialPopulation creates the starting agents.
// All randomness comes from the swarm's seeded RNG, in a fixed draw order.
func (s *Swarm) spawnInitialPopulation() {
	for i := 0; i < s.cfg.Agent.Count; i++ {
		x := s.rng.Float32() * s.bounds.Width
		y := s.rng.Float32() * s.bounds.Height
		s.createAgent(x, y)
	}
}

// createAgent adds one agent at (x, y) with a random drift velocity.
func (s *Swarm) createAgent(x, y float32) {
	ac := &s.cfg.Agent

	maxSpeed := float32(ac.MaxSpeed)
	if ac.MaxSpeedJitter > 0 {
		maxSpeed *= 1 + float32(ac.MaxSpeedJitter)*(2*s.rng.Float32()-1)
	}

	heading := s.rng.Float64() * 2 * math.Pi
	speed := float32(ac.InitialSpeedMin + s.rng.Float64()*(ac.InitialSpeedMax-ac.InitialSpeedMin))
	if speed > maxSpeed {
		speed = maxSpeed
	}

	pos := &components.Position{X: x, Y: y}
	vel := &components.Velocity{
		X: float32(math.Cos(heading)) * speed,
		Y: float32(math.Sin(heading)) * speed,
	}
	agent := &components.Agent{
		MaxSpeed: maxSpeed,
		MaxForce: float32(ac.MaxForce),
		// Fractional offset keeps each agent off the noise lattice.
		NoiseSeed: float32(s.count) + 0.5*s.rng.Float32() + 0.25,
	}
	breath := &components.Breath{
		Phase:     s.rng.Float32() * 2 * math.Pi,
		Speed:     lerp(ac.BreatheSpeedMin, ac.BreatheSpeedMax, s.rng.Float64()),
		BaseSize:  lerp(ac.SizeMin, ac.SizeMax, s.rng.Float64()),
		Amplitude: float32(ac.BreatheAmplitude),
	}
	breath.Size = breath.BaseSize

	s.mapper.NewEntity(pos, vel, agent, breath)
	s.count++
}

func lerp(lo, hi, t float64) float32 {
	return float32(lo + (hi-lo)*t)
}
