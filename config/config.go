// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	World     WorldConfig     `yaml:"world" toml:"world"`
	Grid      GridConfig      `yaml:"grid" toml:"grid"`
	Agent     AgentConfig     `yaml:"agent" toml:"agent"`
	Flocking  FlockingConfig  `yaml:"flocking" toml:"flocking"`
	Signal    SignalConfig    `yaml:"signal" toml:"signal"`
	Wander    WanderConfig    `yaml:"wander" toml:"wander"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width" toml:"width"`
	Height    int `yaml:"height" toml:"height"`
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

// WorldConfig holds simulation bounds.
// Zero dimensions fall back to the screen size.
type WorldConfig struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	WrapMargin float64 `yaml:"wrap_margin" toml:"wrap_margin"` // 0 = hard wrap, >0 = agents may drift off-screen first
}

// GridConfig holds spatial index parameters.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size" toml:"cell_size"` // close to the connection radius works best
}

// AgentConfig holds per-agent creation parameters.
// Ranges are sampled once per agent from the seeded RNG.
type AgentConfig struct {
	Count            int     `yaml:"count" toml:"count"`
	MaxSpeed         float64 `yaml:"max_speed" toml:"max_speed"`
	MaxSpeedJitter   float64 `yaml:"max_speed_jitter" toml:"max_speed_jitter"` // fraction, e.g. 0.1 = ±10%
	MaxForce         float64 `yaml:"max_force" toml:"max_force"`
	InitialSpeedMin  float64 `yaml:"initial_speed_min" toml:"initial_speed_min"`
	InitialSpeedMax  float64 `yaml:"initial_speed_max" toml:"initial_speed_max"`
	SizeMin          float64 `yaml:"size_min" toml:"size_min"`
	SizeMax          float64 `yaml:"size_max" toml:"size_max"`
	BreatheSpeedMin  float64 `yaml:"breathe_speed_min" toml:"breathe_speed_min"`
	BreatheSpeedMax  float64 `yaml:"breathe_speed_max" toml:"breathe_speed_max"`
	BreatheAmplitude float64 `yaml:"breathe_amplitude" toml:"breathe_amplitude"`
}

// FlockingConfig holds neighbourhood radii and force weights.
type FlockingConfig struct {
	ConnectionRadius   float64       `yaml:"connection_radius" toml:"connection_radius"`
	SeparationDistance float64       `yaml:"separation_distance" toml:"separation_distance"`
	Weights            WeightsConfig `yaml:"weights" toml:"weights"`
}

// WeightsConfig holds the relative weight of each steering behavior.
type WeightsConfig struct {
	Alignment  float64 `yaml:"alignment" toml:"alignment"`
	Cohesion   float64 `yaml:"cohesion" toml:"cohesion"`
	Separation float64 `yaml:"separation" toml:"separation"`
	Seek       float64 `yaml:"seek" toml:"seek"`
	Repulsion  float64 `yaml:"repulsion" toml:"repulsion"`
	Wander     float64 `yaml:"wander" toml:"wander"`
}

// SignalConfig holds activation decay and propagation parameters.
type SignalConfig struct {
	Enabled      bool    `yaml:"enabled" toml:"enabled"`
	Decay        float64 `yaml:"decay" toml:"decay"`     // per-tick multiplier
	Epsilon      float64 `yaml:"epsilon" toml:"epsilon"` // activation below this snaps to 0
	CursorRadius float64 `yaml:"cursor_radius" toml:"cursor_radius"`
	CursorBoost  float64 `yaml:"cursor_boost" toml:"cursor_boost"` // scaled by 1 - d/r
	Threshold    float64 `yaml:"threshold" toml:"threshold"`       // source activation needed to propagate
	Increment    float64 `yaml:"increment" toml:"increment"`       // transferred per edge per tick
}

// WanderConfig holds coherent drift noise parameters.
type WanderConfig struct {
	Frequency float64 `yaml:"frequency" toml:"frequency"` // noise units per tick
	Alpha     float64 `yaml:"alpha" toml:"alpha"`
	Beta      float64 `yaml:"beta" toml:"beta"`
	Octaves   int     `yaml:"octaves" toml:"octaves"`
}

// PhysicsConfig holds tick execution parameters.
type PhysicsConfig struct {
	ParallelThreshold int `yaml:"parallel_threshold" toml:"parallel_threshold"` // agents needed before the worker pool is used
	Workers           int `yaml:"workers" toml:"workers"`                       // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window" toml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window" toml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	WorldW32  float32 // Effective world width as float32
	WorldH32  float32 // Effective world height as float32
	CellSize  float32
	Margin32  float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults with derived values computed.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.overlay(path, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// overlay unmarshals data into the already-populated config.
// Only fields present in the file are overwritten.
func (c *Config) overlay(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}
	return nil
}

// Validate reports every malformed parameter at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		bad("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		bad("world size must not be negative, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.WrapMargin < 0 {
		bad("world.wrap_margin must not be negative, got %v", c.World.WrapMargin)
	}
	if c.Grid.CellSize <= 0 {
		bad("grid.cell_size must be positive, got %v", c.Grid.CellSize)
	}
	if c.Agent.Count < 0 {
		bad("agent.count must not be negative, got %d", c.Agent.Count)
	}
	if c.Agent.MaxSpeed <= 0 {
		bad("agent.max_speed must be positive, got %v", c.Agent.MaxSpeed)
	}
	if c.Agent.MaxSpeedJitter < 0 || c.Agent.MaxSpeedJitter >= 1 {
		bad("agent.max_speed_jitter must be in [0,1), got %v", c.Agent.MaxSpeedJitter)
	}
	if c.Agent.MaxForce <= 0 {
		bad("agent.max_force must be positive, got %v", c.Agent.MaxForce)
	}
	if c.Agent.InitialSpeedMin < 0 || c.Agent.InitialSpeedMax < c.Agent.InitialSpeedMin {
		bad("agent initial speed range [%v,%v] is invalid", c.Agent.InitialSpeedMin, c.Agent.InitialSpeedMax)
	}
	if c.Agent.SizeMin < 0 || c.Agent.SizeMax < c.Agent.SizeMin {
		bad("agent size range [%v,%v] is invalid", c.Agent.SizeMin, c.Agent.SizeMax)
	}
	if c.Agent.BreatheSpeedMax < c.Agent.BreatheSpeedMin {
		bad("agent breathe speed range [%v,%v] is invalid", c.Agent.BreatheSpeedMin, c.Agent.BreatheSpeedMax)
	}
	if c.Flocking.ConnectionRadius <= 0 {
		bad("flocking.connection_radius must be positive, got %v", c.Flocking.ConnectionRadius)
	}
	if c.Flocking.SeparationDistance < 0 || c.Flocking.SeparationDistance > c.Flocking.ConnectionRadius {
		bad("flocking.separation_distance must be in [0, connection_radius], got %v", c.Flocking.SeparationDistance)
	}
	if c.Signal.Decay <= 0 || c.Signal.Decay > 1 {
		bad("signal.decay must be in (0,1], got %v", c.Signal.Decay)
	}
	if c.Signal.Epsilon < 0 {
		bad("signal.epsilon must not be negative, got %v", c.Signal.Epsilon)
	}
	if c.Signal.CursorRadius < 0 {
		bad("signal.cursor_radius must not be negative, got %v", c.Signal.CursorRadius)
	}
	if c.Wander.Octaves < 1 {
		bad("wander.octaves must be at least 1, got %d", c.Wander.Octaves)
	}
	if c.Physics.ParallelThreshold < 0 || c.Physics.Workers < 0 {
		bad("physics.parallel_threshold and physics.workers must not be negative")
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
	c.Derived.CellSize = float32(c.Grid.CellSize)
	c.Derived.Margin32 = float32(c.World.WrapMargin)
}

// Refresh recomputes derived values after fields were edited in code.
func (c *Config) Refresh() {
	c.computeDerived()
}

// SetWorldSize overrides the world bounds (e.g. after a window resize).
func (c *Config) SetWorldSize(w, h int) {
	c.World.Width = w
	c.World.Height = h
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
