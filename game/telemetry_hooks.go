package game

import (
	"log/slog"

	"github.com/pthm-cable/murmur/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.swarm.Ticks()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	g.sampleAgents()
	stats := g.collector.Flush(tick, g.vels, g.activations, len(g.swarm.Edges()))
	perfStats := g.perfCollector.Stats()
	g.lastWindow = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if _, err := g.outputManager.WriteSnapshot(g.snapshot(&bm)); err != nil {
			slog.Error("failed to write snapshot", "error", err)
		}
	}
}

// snapshot captures the sampled agents. sampleAgents must have run this tick.
func (g *Game) snapshot(bm *telemetry.Bookmark) *telemetry.Snapshot {
	b := g.swarm.Bounds()
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		WorldWidth:  b.Width,
		WorldHeight: b.Height,
		Tick:        g.swarm.Ticks(),
		Edges:       len(g.swarm.Edges()),
		Agents:      make([]telemetry.AgentState, len(g.agents)),
		Bookmark:    bm,
	}
	for i, a := range g.agents {
		snap.Agents[i] = telemetry.AgentState{
			ID:         a.Entity.ID(),
			X:          a.Pos.X,
			Y:          a.Pos.Y,
			VelX:       a.Vel.X,
			VelY:       a.Vel.Y,
			Activation: a.Activation,
			Size:       a.Size,
		}
	}
	return snap
}

// sampleAgents refreshes the agent views and the per-agent sample slices.
func (g *Game) sampleAgents() {
	g.agents = g.swarm.Agents(g.agents[:0])
	g.vels = g.vels[:0]
	g.activations = g.activations[:0]
	for i := range g.agents {
		g.vels = append(g.vels, g.agents[i].Vel)
		g.activations = append(g.activations, g.agents[i].Activation)
	}
}
