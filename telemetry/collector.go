// Package telemetry collects swarm statistics, tick timings and bookmarks,
// and writes them to CSV.
package telemetry

import (
	"math"

	"github.com/pthm-cable/murmur/components"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	transfers  int
	cursorHits int

	// Reused sample buffers
	speeds []float64
}

// NewCollector creates a new stats collector.
// windowTicks: how many simulation ticks each stats window spans.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordTransfers records activation transfers from one tick.
func (c *Collector) RecordTransfers(n int) {
	c.transfers += n
}

// RecordCursorHits records agents boosted by the cursor in one tick.
func (c *Collector) RecordCursorHits(n int) {
	c.cursorHits += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// vels and activations describe every agent at currentTick, in the same order;
// edges is the connection count of the last tick.
func (c *Collector) Flush(currentTick int64, vels []components.Velocity, activations []float32, edges int) WindowStats {
	n := len(vels)

	c.speeds = c.speeds[:0]
	for _, v := range vels {
		c.speeds = append(c.speeds, math.Hypot(float64(v.X), float64(v.Y)))
	}
	speedMean, speedStd, p10, p50, p90 := ComputeSpeedStats(c.speeds)

	var actSum, actMax float64
	active := 0
	for _, a := range activations {
		v := float64(a)
		actSum += v
		actMax = math.Max(actMax, v)
		if a > 0 {
			active++
		}
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Agents: n,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,

		Polarization: Polarization(vels),
		Edges:        edges,

		ActivationMax: actMax,
		ActiveAgents:  active,

		Transfers:  c.transfers,
		CursorHits: c.cursorHits,
	}
	if n > 0 {
		stats.MeanDegree = 2 * float64(edges) / float64(n)
	}
	if len(activations) > 0 {
		stats.ActivationMean = actSum / float64(len(activations))
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.transfers = 0
	c.cursorHits = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
