package systems

import "math"

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampInt clamps an int value between min and max.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Vector functions

// sqrt32 is math.Sqrt for float32.
func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Magnitude returns the length of the vector (x, y).
func Magnitude(x, y float32) float32 {
	return sqrt32(x*x + y*y)
}

// Limit scales (x, y) down to max length if it is longer. Direction is preserved.
func Limit(x, y, maxLen float32) (float32, float32) {
	magSq := x*x + y*y
	if magSq <= maxLen*maxLen || magSq == 0 {
		return x, y
	}
	scale := maxLen / sqrt32(magSq)
	return x * scale, y * scale
}

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}
