// Package swarm owns the agents and runs the per-tick simulation loop.
package swarm

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/murmur/components"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/telemetry"
)

// Cursor is the attractor point agents seek toward. A nil cursor means
// the pointer is outside the simulation.
type Cursor struct {
	X, Y float32
}

// Options holds optional construction parameters.
type Options struct {
	Seed int64
	Perf *telemetry.PerfCollector // phase timings, may be nil
}

// AgentView is a read-only copy of one agent for renderers and telemetry.
type AgentView struct {
	Entity     ecs.Entity
	Pos        components.Position
	Vel        components.Velocity
	Activation float32
	Size       float32
}

// TickStats holds event counts from the most recent tick.
type TickStats struct {
	Transfers  int // propagation transfers along edges
	CursorHits int // agents boosted by the cursor
}

// Swarm holds the complete simulation state.
type Swarm struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Agent,
		components.Breath,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Agent,
		components.Breath,
	]

	grid     *systems.SpatialGrid
	wanderer *systems.Wanderer
	weights  systems.Weights
	bounds   systems.Bounds
	perf     *telemetry.PerfCollector

	// Per-tick arenas, indexed by systems.Handle
	entities    []ecs.Entity
	bodies      []systems.Body
	intents     []intent
	edges       []systems.Edge
	activations []float32
	deltas      []float32

	parallel *parallelState

	tick  int64
	count int
	last  TickStats
}

// New creates a swarm with cfg.Agent.Count agents placed uniformly at random
// inside the world bounds. The swarm is running once New returns.
func New(cfg *config.Config, opts Options) (*Swarm, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Refresh()

	grid, err := systems.NewSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, cfg.Derived.CellSize)
	if err != nil {
		return nil, fmt.Errorf("creating spatial grid: %w", err)
	}

	world := ecs.NewWorld()
	s := &Swarm{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Agent,
			components.Breath,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Agent,
			components.Breath,
		](world),
		grid: grid,
		wanderer: systems.NewWanderer(
			cfg.Wander.Alpha, cfg.Wander.Beta, cfg.Wander.Octaves,
			cfg.Wander.Frequency, opts.Seed,
		),
		weights: WeightsFromConfig(cfg.Flocking.Weights),
		bounds: systems.Bounds{
			Width:  cfg.Derived.WorldW32,
			Height: cfg.Derived.WorldH32,
			Margin: cfg.Derived.Margin32,
		},
		perf:     opts.Perf,
		parallel: newParallelState(cfg.Physics.Workers),
	}

	s.spawnInitialPopulation()
	return s, nil
}

// WeightsFromConfig converts configured weights to the steering representation.
func WeightsFromConfig(w config.WeightsConfig) systems.Weights {
	return systems.Weights{
		Alignment:  float32(w.Alignment),
		Cohesion:   float32(w.Cohesion),
		Separation: float32(w.Separation),
		Seek:       float32(w.Seek),
		Repulsion:  float32(w.Repulsion),
		Wander:     float32(w.Wander),
	}
}

// Tick advances the simulation by one step.
// cursor may be nil; repulsors may be empty.
func (s *Swarm) Tick(cursor *Cursor, repulsors []systems.Repulsor) {
	s.last = TickStats{}

	s.startPhase(telemetry.PhaseSpatialGrid)
	s.snapshot()
	s.rebuildGrid()

	n := len(s.bodies)
	if n > 0 {
		s.startPhase(telemetry.PhaseCompute)
		s.computeIntents(cursor, repulsors)
		s.collectEdges()

		s.startPhase(telemetry.PhaseApply)
		s.applyIntents()

		if s.cfg.Signal.Enabled {
			s.startPhase(telemetry.PhaseSignal)
			s.updateSignal(cursor)
		}
	} else {
		s.edges = s.edges[:0]
	}

	s.tick++
}

// snapshot copies every agent into the body arena in query order.
func (s *Swarm) snapshot() {
	s.entities = s.entities[:0]
	s.bodies = s.bodies[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, agent, _ := query.Get()
		s.entities = append(s.entities, query.Entity())
		s.bodies = append(s.bodies, systems.Body{
			Pos:        *pos,
			Vel:        *vel,
			Limits:     agent.Limits(),
			Activation: agent.Activation,
			NoiseSeed:  agent.NoiseSeed,
		})
	}
}

// rebuildGrid reinserts every snapshot body into the spatial index.
func (s *Swarm) rebuildGrid() {
	s.grid.Clear()
	for i := range s.bodies {
		b := &s.bodies[i]
		s.grid.Insert(systems.Handle(i), b.Pos.X, b.Pos.Y)
	}
}

// collectEdges concatenates the per-agent edge lists in handle order.
func (s *Swarm) collectEdges() {
	s.edges = s.edges[:0]
	for i := range s.intents {
		s.edges = append(s.edges, s.intents[i].edges...)
	}
}

// applyIntents writes computed forces back to the ECS components.
// Single-threaded and in query order, matching the snapshot.
func (s *Swarm) applyIntents() {
	decay := float32(s.cfg.Signal.Decay)
	eps := float32(s.cfg.Signal.Epsilon)

	i := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, agent, breath := query.Get()
		in := &s.intents[i]
		i++

		systems.Integrate(pos, vel, agent.MaxSpeed, in.FX, in.FY, s.bounds)
		// Every tick, independent of signal.enabled
		systems.Decay(agent, decay, eps)
		systems.Breathe(breath)
	}
}

// updateSignal applies the cursor boost and then propagates activation
// along this tick's edges against a pre-propagation snapshot.
func (s *Swarm) updateSignal(cursor *Cursor) {
	n := len(s.entities)
	s.activations = resize(s.activations, n)
	s.deltas = resize(s.deltas, n)

	radius := float32(s.cfg.Signal.CursorRadius)
	boost := float32(s.cfg.Signal.CursorBoost)

	i := 0
	query := s.filter.Query()
	for query.Next() {
		pos, _, agent, _ := query.Get()
		if cursor != nil {
			dx := pos.X - cursor.X
			dy := pos.Y - cursor.Y
			if amount := systems.CursorBoost(dx*dx+dy*dy, radius, boost); amount > 0 {
				systems.Activate(agent, amount)
				s.last.CursorHits++
			}
		}
		s.activations[i] = agent.Activation
		s.deltas[i] = 0
		i++
	}

	s.last.Transfers = systems.Propagate(
		s.edges, s.activations,
		float32(s.cfg.Signal.Threshold), float32(s.cfg.Signal.Increment),
		s.deltas,
	)
	if s.last.Transfers == 0 {
		return
	}

	i = 0
	query = s.filter.Query()
	for query.Next() {
		_, _, agent, _ := query.Get()
		if d := s.deltas[i]; d > 0 {
			systems.Activate(agent, d)
		}
		i++
	}
}

// ActivateArea boosts every agent within radius of (x, y) by
// boost * (1 - d/radius), using the configured cursor boost.
// Returns the number of agents affected.
func (s *Swarm) ActivateArea(x, y, radius float32) int {
	boost := float32(s.cfg.Signal.CursorBoost)
	hits := 0
	query := s.filter.Query()
	for query.Next() {
		pos, _, agent, _ := query.Get()
		dx := pos.X - x
		dy := pos.Y - y
		if amount := systems.CursorBoost(dx*dx+dy*dy, radius, boost); amount > 0 {
			systems.Activate(agent, amount)
			hits++
		}
	}
	return hits
}

// Resize rebinds the world bounds and clamps any agent left outside them.
// The config is left untouched; Bounds reports the current world size.
func (s *Swarm) Resize(width, height float32) error {
	if err := s.grid.Resize(width, height); err != nil {
		return err
	}
	s.bounds.Width = width
	s.bounds.Height = height

	query := s.filter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		systems.ClampInside(pos, width, height)
	}
	return nil
}

// Agents appends a view of every agent to dst and returns it.
func (s *Swarm) Agents(dst []AgentView) []AgentView {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, agent, breath := query.Get()
		dst = append(dst, AgentView{
			Entity:     query.Entity(),
			Pos:        *pos,
			Vel:        *vel,
			Activation: agent.Activation,
			Size:       breath.Size,
		})
	}
	return dst
}

// AgentDetail is the full component state of one agent.
type AgentDetail struct {
	Position components.Position
	Velocity components.Velocity
	Agent    components.Agent
	Breath   components.Breath
	Degree   int // edges touching the agent in the last tick
}

// Inspect returns the components of e. ok is false once e is no longer alive.
func (s *Swarm) Inspect(e ecs.Entity) (AgentDetail, bool) {
	if !s.world.Alive(e) {
		return AgentDetail{}, false
	}
	pos, vel, agent, breath := s.mapper.Get(e)
	d := AgentDetail{Position: *pos, Velocity: *vel, Agent: *agent, Breath: *breath}

	h := systems.NoHandle
	for i, other := range s.entities {
		if other == e {
			h = systems.Handle(i)
			break
		}
	}
	if h == systems.NoHandle {
		return d, true
	}
	for _, edge := range s.edges {
		if edge.A == h || edge.B == h {
			d.Degree++
		}
	}
	return d, true
}

// Edges returns the connections found during the last tick.
// Handles index the agent order of Agents. The slice is reused by the next Tick.
func (s *Swarm) Edges() []systems.Edge {
	return s.edges
}

// SetWeights replaces the steering weights used from the next tick on.
func (s *Swarm) SetWeights(w systems.Weights) {
	s.weights = w
}

// Weights returns the current steering weights.
func (s *Swarm) Weights() systems.Weights {
	return s.weights
}

// Bounds returns the current world bounds.
func (s *Swarm) Bounds() systems.Bounds {
	return s.bounds
}

// Count returns the number of agents.
func (s *Swarm) Count() int {
	return s.count
}

// Ticks returns the number of completed ticks.
func (s *Swarm) Ticks() int64 {
	return s.tick
}

// LastTick returns event counts from the most recent tick.
func (s *Swarm) LastTick() TickStats {
	return s.last
}

// Config returns the configuration the swarm runs with.
func (s *Swarm) Config() *config.Config {
	return s.cfg
}

// Close stops the worker pool. The swarm must not be ticked afterwards.
func (s *Swarm) Close() {
	s.parallel.stopWorkers()
}

func (s *Swarm) startPhase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
