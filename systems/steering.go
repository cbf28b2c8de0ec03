package systems

import (
	"github.com/pthm-cable/murmur/components"
)

// Body is the read-only per-tick view of an agent that the steering
// behaviors work on. Neighbor handles index into a []Body arena.
type Body struct {
	Pos        components.Position
	Vel        components.Velocity
	Limits     components.Limits
	Activation float32
	NoiseSeed  float32
}

// Repulsor is a circular region agents are pushed out of (e.g. UI text).
type Repulsor struct {
	X, Y   float32
	Radius float32
}

// Weights holds the relative weight of each steering behavior.
type Weights struct {
	Alignment  float32
	Cohesion   float32
	Separation float32
	Seek       float32
	Repulsion  float32
	Wander     float32
}

// Steer returns the force that turns vel toward direction (tx, ty) at full speed:
// desired = unit(t) * MaxSpeed, force = desired - vel, clamped to MaxForce.
// A zero direction yields a zero force.
func Steer(vel components.Velocity, lim components.Limits, tx, ty float32) (fx, fy float32) {
	mag := Magnitude(tx, ty)
	if mag == 0 {
		return 0, 0
	}

	// Desired velocity
	desiredX := tx / mag * lim.MaxSpeed
	desiredY := ty / mag * lim.MaxSpeed

	// Steering = desired - current
	return Limit(desiredX-vel.X, desiredY-vel.Y, lim.MaxForce)
}

// Seek steers toward a target point.
func Seek(self Body, targetX, targetY float32) (fx, fy float32) {
	return Steer(self.Vel, self.Limits, targetX-self.Pos.X, targetY-self.Pos.Y)
}

// Align steers toward the average velocity of the neighbors.
func Align(self Body, neighbors []Neighbor, bodies []Body) (fx, fy float32) {
	var sumX, sumY float32
	n := 0
	for _, nb := range neighbors {
		if nb.DistSq == 0 {
			continue
		}
		v := bodies[nb.H].Vel
		sumX += v.X
		sumY += v.Y
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return Steer(self.Vel, self.Limits, sumX/float32(n), sumY/float32(n))
}

// Cohere steers toward the average position of the neighbors.
func Cohere(self Body, neighbors []Neighbor) (fx, fy float32) {
	var sumX, sumY float32
	n := 0
	for _, nb := range neighbors {
		if nb.DistSq == 0 {
			continue
		}
		// Average of deltas == average position - self position
		sumX += nb.DX
		sumY += nb.DY
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return Steer(self.Vel, self.Limits, sumX/float32(n), sumY/float32(n))
}

// Separate pushes away from neighbors closer than threshold, weighted by
// (threshold - d) / threshold. The result is not force-clamped so it can
// dominate at close range.
func Separate(neighbors []Neighbor, threshold float32) (fx, fy float32) {
	if threshold <= 0 {
		return 0, 0
	}
	thresholdSq := threshold * threshold
	for _, nb := range neighbors {
		if nb.DistSq == 0 || nb.DistSq >= thresholdSq {
			continue
		}
		d := sqrt32(nb.DistSq)
		w := (threshold - d) / threshold
		// (self - neighbor) / d
		fx -= nb.DX / d * w
		fy -= nb.DY / d * w
	}
	return fx, fy
}

// Repel pushes a point out of every repulsor that contains it, proportional
// to (radius - d) / radius.
func Repel(pos components.Position, repulsors []Repulsor) (fx, fy float32) {
	for _, r := range repulsors {
		if r.Radius <= 0 {
			continue
		}
		dx := pos.X - r.X
		dy := pos.Y - r.Y
		distSq := dx*dx + dy*dy
		if distSq == 0 || distSq >= r.Radius*r.Radius {
			continue
		}
		d := sqrt32(distSq)
		force := (r.Radius - d) / r.Radius
		fx += dx / d * force
		fy += dy / d * force
	}
	return fx, fy
}
