package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseSpatialGrid = "spatial_grid" // snapshot + grid rebuild
	PhaseCompute     = "compute"      // neighbour queries and steering forces
	PhaseApply       = "apply"        // integration, decay, breathing
	PhaseSignal      = "signal"       // cursor boost and propagation
	PhaseTelemetry   = "telemetry"
)

// phaseOrder is the order phases appear in logs and CSV output.
var phaseOrder = [...]string{PhaseSpatialGrid, PhaseCompute, PhaseApply, PhaseSignal, PhaseTelemetry}

const numPhases = len(phaseOrder)

// Phases returns the tick phase names in display order.
func Phases() []string {
	return phaseOrder[:]
}

func phaseIndex(name string) int {
	for i, p := range phaseOrder {
		if p == name {
			return i
		}
	}
	return -1
}

// perfSample holds timing data for a single tick.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector tracks phase timings over a rolling window of ticks.
// Samples live in a fixed ring, so recording does not allocate.
type PerfCollector struct {
	ring    []perfSample
	next    int
	filled  int
	current perfSample

	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into phaseOrder, -1 when idle

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:  make([]perfSample, windowSize),
		phase: -1,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.phase = -1
}

// StartPhase closes the running phase, if any, and starts timing the named one.
// Unknown names only close the running phase.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(name)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.current.tick = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i, sample := range p.ring[:p.filled] {
		total += sample.tick
		if i == 0 || sample.tick < s.MinTickDuration {
			s.MinTickDuration = sample.tick
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.tick)
		for j, d := range sample.phases {
			phaseSum[j] += d
		}
	}

	s.AvgTickDuration = total / time.Duration(p.filled)
	for j, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		name := phaseOrder[j]
		avg := sum / time.Duration(p.filled)
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int64   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	SpatialGridPct float64 `csv:"spatial_grid_pct"`
	ComputePct     float64 `csv:"compute_pct"`
	ApplyPct       float64 `csv:"apply_pct"`
	SignalPct      float64 `csv:"signal_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		SpatialGridPct: s.PhasePct[PhaseSpatialGrid],
		ComputePct:     s.PhasePct[PhaseCompute],
		ApplyPct:       s.PhasePct[PhaseApply],
		SignalPct:      s.PhasePct[PhaseSignal],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
