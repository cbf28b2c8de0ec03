package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/game"
	"github.com/pthm-cable/murmur/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how well the swarm
// flocks.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	lastQuality quality // from the most recent Evaluate call
}

// quality breaks a run's score into its parts, each in [0, 1].
type quality struct {
	Polarization float64
	Cohesion     float64
	Stability    float64
}

// Total is the weighted score.
func (q quality) Total() float64 {
	return qualityWeightPolarization*q.Polarization +
		qualityWeightCohesion*q.Cohesion +
		qualityWeightStability*q.Stability
}

// Quality component weights.
const (
	qualityWeightPolarization = 0.45
	qualityWeightCohesion     = 0.35
	qualityWeightStability    = 0.20

	qualityWarmupWindows = 2   // skip first N windows while the swarm organizes
	targetMeanDegree     = 6.0 // neighbours per agent that reads as one flock
)

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config, statsWindow int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: statsWindow,
	}
}

// LastQuality returns the quality breakdown from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() quality {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is the negated quality averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	results := make([]quality, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = computeQuality(windows)
		}(i, seed)
	}
	wg.Wait()

	var avg quality
	for i, q := range results {
		if errs[i] != nil {
			return 0, errs[i]
		}
		avg.Polarization += q.Polarization
		avg.Cohesion += q.Cohesion
		avg.Stability += q.Stability
	}
	n := float64(len(results))
	avg.Polarization /= n
	avg.Cohesion /= n
	avg.Stability /= n

	fe.mu.Lock()
	fe.lastQuality = avg
	fe.mu.Unlock()

	return -avg.Total(), nil
}

// runSimulation executes a single headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StatsWindow:    fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows, nil
}

// copyConfig returns a private copy of the base config. Seeds run
// concurrently, each on a single worker.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Physics.Workers = 1
	return &cfg
}

// computeQuality scores a run from its stats windows.
func computeQuality(windows []telemetry.WindowStats) quality {
	if len(windows) <= qualityWarmupWindows {
		return quality{}
	}
	valid := windows[qualityWarmupWindows:]

	polar := make([]float64, 0, len(valid))
	var cohesionSum float64
	for _, w := range valid {
		polar = append(polar, w.Polarization)

		// Peaks at the target degree, falls off for sparse or clumped swarms
		e := (w.MeanDegree - targetMeanDegree) / targetMeanDegree
		cohesionSum += math.Exp(-e * e)
	}

	q := quality{
		Polarization: stat.Mean(polar, nil),
		Cohesion:     cohesionSum / float64(len(valid)),
	}
	if len(polar) >= 2 {
		if mean := stat.Mean(polar, nil); mean > 0 {
			cv := stat.StdDev(polar, nil) / mean
			q.Stability = math.Exp(-cv * cv)
		}
	}
	return q
}
