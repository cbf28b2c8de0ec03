package game

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/murmur/components"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/swarm"
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/telemetry"
)

func newHeadlessGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Config == nil {
		cfg := config.Default()
		cfg.Agent.Count = 60
		cfg.Signal.Enabled = true
		opts.Config = cfg
	}
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRunWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats
	g := newHeadlessGame(t, Options{
		Seed:           7,
		StatsWindow:    10,
		StepsPerUpdate: 5,
		OutputDir:      dir,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for range 10 {
		g.UpdateHeadless()
	}

	if got := g.Tick(); got != 50 {
		t.Fatalf("Tick() = %d, want 50", got)
	}
	if len(windows) != 5 {
		t.Fatalf("got %d stats windows, want 5", len(windows))
	}
	for i, w := range windows {
		if w.Agents != 60 {
			t.Errorf("window %d: agents = %d, want 60", i, w.Agents)
		}
		if want := int64(10 * (i + 1)); w.WindowEndTick != want {
			t.Errorf("window %d: end tick = %d, want %d", i, w.WindowEndTick, want)
		}
	}

	// Flush files before reading them
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	if lines := bytes.Count(data, []byte("\n")); lines != 6 {
		t.Errorf("telemetry.csv has %d lines, want header + 5", lines)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.Count = -1

	if _, err := NewGameWithOptions(Options{Config: cfg, Headless: true}); err == nil {
		t.Fatal("expected error for negative agent count")
	}
}

func TestResizeFollowsScreen(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 1})

	g.resize(640, 480)

	b := g.swarm.Bounds()
	if b.Width != 640 || b.Height != 480 {
		t.Fatalf("bounds = %vx%v, want 640x480", b.Width, b.Height)
	}
	for _, a := range g.swarm.Agents(nil) {
		if a.Pos.X < 0 || a.Pos.X > 640 || a.Pos.Y < 0 || a.Pos.Y > 480 {
			t.Errorf("agent at (%v, %v) outside resized world", a.Pos.X, a.Pos.Y)
		}
	}
}

func TestResizeKeepsFixedWorld(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.Count = 10
	cfg.World.Width = 2000
	cfg.World.Height = 1000
	cfg.Refresh()
	g := newHeadlessGame(t, Options{Config: cfg})

	g.resize(640, 480)

	if b := g.swarm.Bounds(); b.Width != 2000 || b.Height != 1000 {
		t.Errorf("fixed world resized to %vx%v", b.Width, b.Height)
	}
}

func TestToggleRepulsor(t *testing.T) {
	var rs []systems.Repulsor

	rs = toggleRepulsor(rs, 100, 100, 50)
	rs = toggleRepulsor(rs, 400, 100, 50)
	if len(rs) != 2 {
		t.Fatalf("len = %d after two placements, want 2", len(rs))
	}

	// Clicking inside the first removes it
	rs = toggleRepulsor(rs, 120, 110, 50)
	if len(rs) != 1 || rs[0].X != 400 {
		t.Fatalf("after removal got %+v, want only the repulsor at x=400", rs)
	}
}

func TestNearestAgent(t *testing.T) {
	agents := []swarm.AgentView{
		{Pos: components.Position{X: 0, Y: 0}},
		{Pos: components.Position{X: 10, Y: 0}},
		{Pos: components.Position{X: 100, Y: 100}},
	}

	tests := []struct {
		name    string
		x, y    float32
		maxDist float32
		want    int
	}{
		{"exact hit", 10, 0, 5, 1},
		{"closer of two", 3, 0, 20, 0},
		{"out of reach", 50, 50, 5, -1},
		{"empty radius", 100, 100, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestAgent(agents, tt.x, tt.y, tt.maxDist); got != tt.want {
				t.Errorf("nearestAgent(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBookmarkSnapshotWritten(t *testing.T) {
	dir := t.TempDir()
	g := newHeadlessGame(t, Options{Seed: 3, OutputDir: dir})
	g.UpdateHeadless()
	g.sampleAgents()

	bm := telemetry.Bookmark{Type: telemetry.BookmarkSettled, Tick: g.Tick()}
	path, err := g.outputManager.WriteSnapshot(g.snapshot(&bm))
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(dir, "snapshots") {
		t.Errorf("snapshot written to %s, want under snapshots/", path)
	}

	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Agents) != 60 || snap.RNGSeed != 3 || snap.Tick != 1 {
		t.Errorf("snapshot has %d agents, seed %d, tick %d; want 60, 3, 1", len(snap.Agents), snap.RNGSeed, snap.Tick)
	}
}
