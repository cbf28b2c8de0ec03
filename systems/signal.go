package systems

// Edge connects two agents closer than the connection radius. A < B.
type Edge struct {
	A, B     Handle
	Strength float32 // 1 - d/radius, 1 when coincident
}

// Propagate accumulates activation transfers across edges into deltas.
// It reads only the pre-propagation snapshot, so the result does not depend
// on edge order. For each endpoint above threshold, the other endpoint
// receives increment if its snapshot activation is lower.
// Returns the number of transfers.
func Propagate(edges []Edge, snapshot []float32, threshold, increment float32, deltas []float32) int {
	transfers := 0
	for _, e := range edges {
		a, b := snapshot[e.A], snapshot[e.B]
		if a > threshold && b < a {
			deltas[e.B] += increment
			transfers++
		}
		if b > threshold && a < b {
			deltas[e.A] += increment
			transfers++
		}
	}
	return transfers
}

// CursorBoost returns the activation added to an agent at distance d from the
// cursor: boost * (1 - d/radius) inside radius, 0 outside.
func CursorBoost(distSq, radius, boost float32) float32 {
	if radius <= 0 || distSq >= radius*radius {
		return 0
	}
	return boost * (1 - sqrt32(distSq)/radius)
}
