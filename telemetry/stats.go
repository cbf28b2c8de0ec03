package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/murmur/components"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Population at window end
	Agents int `csv:"agents"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Alignment: 1 = everyone heading the same way, ~0 = disordered
	Polarization float64 `csv:"polarization"`

	// Network structure at window end
	Edges      int     `csv:"edges"`
	MeanDegree float64 `csv:"mean_degree"`

	// Activation (sampled at window end)
	ActivationMean float64 `csv:"activation_mean"`
	ActivationMax  float64 `csv:"activation_max"`
	ActiveAgents   int     `csv:"active_agents"`

	// Events during window
	Transfers  int `csv:"transfers"`
	CursorHits int `csv:"cursor_hits"`
}

// Quantile returns the p-th empirical quantile of an ascending slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeSpeedStats calculates mean, std, and percentiles from speed values.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Quantile(sorted, 0.10)
	p50 = Quantile(sorted, 0.50)
	p90 = Quantile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Polarization returns |Σ v/|v|| / N over the moving agents.
// Stationary agents are ignored; returns 0 when nothing moves.
func Polarization(vels []components.Velocity) float64 {
	var sumX, sumY float64
	n := 0
	for _, v := range vels {
		speed := math.Hypot(float64(v.X), float64(v.Y))
		if speed == 0 {
			continue
		}
		sumX += float64(v.X) / speed
		sumY += float64(v.Y) / speed
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Hypot(sumX, sumY) / float64(n)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("agents", s.Agents),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("polarization", s.Polarization),
		slog.Int("edges", s.Edges),
		slog.Float64("mean_degree", s.MeanDegree),
		slog.Float64("activation_mean", s.ActivationMean),
		slog.Float64("activation_max", s.ActivationMax),
		slog.Int("active_agents", s.ActiveAgents),
		slog.Int("transfers", s.Transfers),
		slog.Int("cursor_hits", s.CursorHits),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
