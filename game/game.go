// Package game wires the swarm to telemetry, input and rendering.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/components"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/inspector"
	"github.com/pthm-cable/murmur/renderer"
	"github.com/pthm-cable/murmur/swarm"
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/telemetry"
	"github.com/pthm-cable/murmur/ui"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool
	StatsWindow    int // ticks per stats window, 0 = config
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the simulation and everything around it.
type Game struct {
	cfg   *config.Config
	swarm *swarm.Swarm
	seed  int64

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	lastWindow       telemetry.WindowStats

	// Rendering (nil when headless)
	camera       *camera.Camera
	background   *renderer.BackgroundRenderer
	network      *renderer.NetworkRenderer
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	controls     *ui.ControlsPanel
	weightsPanel *ui.WeightsPanel
	overlays     *ui.OverlayRegistry
	inspector    *inspector.Inspector

	// Input state
	cursor             swarm.Cursor
	cursorActive       bool
	repulsors          []systems.Repulsor
	paused             bool
	stepsPerUpdate     int
	worldFollowsScreen bool
	screenWidth        float32
	screenHeight       float32

	// Scratch buffers reused across frames and flushes
	agents      []swarm.AgentView
	vels        []components.Velocity
	activations []float32
}

// NewGameWithOptions creates a game. In headless mode no raylib state is
// created and Draw must not be called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	s, err := swarm.New(cfg, swarm.Options{Seed: opts.Seed, Perf: perf})
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		s.Close()
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:                cfg,
		swarm:              s,
		seed:               opts.Seed,
		collector:          telemetry.NewCollector(statsWindow),
		perfCollector:      perf,
		bookmarkDetector:   telemetry.NewBookmarkDetector(10),
		outputManager:      om,
		logStats:           opts.LogStats,
		statsCallback:      opts.StatsCallback,
		stepsPerUpdate:     steps,
		worldFollowsScreen: cfg.World.Width == 0 && cfg.World.Height == 0,
		screenWidth:        cfg.Derived.ScreenW32,
		screenHeight:       cfg.Derived.ScreenH32,
	}

	if !opts.Headless {
		g.initRendering()
	}

	slog.Info("swarm created",
		"agents", s.Count(),
		"world_w", cfg.Derived.WorldW32,
		"world_h", cfg.Derived.WorldH32,
		"signal", cfg.Signal.Enabled,
		"seed", opts.Seed,
	)
	return g, nil
}

func (g *Game) initRendering() {
	b := g.swarm.Bounds()
	g.camera = camera.New(g.screenWidth, g.screenHeight, b.Width, b.Height)
	g.background = renderer.NewBackgroundRenderer(int32(g.screenWidth), int32(g.screenHeight))
	g.network = renderer.NewNetworkRenderer()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-270, 10)
	g.controls = ui.NewControlsPanel(10, 100, 200)
	g.weightsPanel = ui.NewWeightsPanel(int32(g.screenWidth)-300, 10, 290, g.swarm.Weights())
	g.overlays = ui.NewOverlayRegistry()
	g.inspector = inspector.NewInspector()
}

// Update handles input and runs stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for range g.stepsPerUpdate {
		g.step()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without input or rendering.
func (g *Game) UpdateHeadless() {
	for range g.stepsPerUpdate {
		g.step()
	}
}

// step runs a single tick and feeds telemetry.
func (g *Game) step() {
	g.perfCollector.StartTick()

	var cursor *swarm.Cursor
	if g.cursorActive {
		c := g.cursor
		cursor = &c
	}
	g.swarm.Tick(cursor, g.repulsors)

	last := g.swarm.LastTick()
	g.collector.RecordTransfers(last.Transfers)
	g.collector.RecordCursorHits(last.CursorHits)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.swarm.Ticks()
}

// Swarm returns the underlying simulation.
func (g *Game) Swarm() *swarm.Swarm {
	return g.swarm
}

// Unload stops the workers and closes output files.
func (g *Game) Unload() {
	g.swarm.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
