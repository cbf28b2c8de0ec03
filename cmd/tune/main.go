// Command tune searches the flocking weights for a swarm that aligns and
// stays together, using Nelder-Mead over headless runs.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/murmur/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	Polarization float64 `csv:"polarization"`
	Cohesion     float64 `csv:"cohesion"`
	Stability    float64 `csv:"stability"`
	Alignment    float64 `csv:"alignment"`
	CohesionW    float64 `csv:"cohesion_weight"`
	Separation   float64 `csv:"separation"`
	Wander       float64 `csv:"wander"`
}

// weightsOverlay is the YAML written for the best weights. Loading it as a
// config overlay changes only flocking.weights.
type weightsOverlay struct {
	Flocking struct {
		Weights config.WeightsConfig `yaml:"weights"`
	} `yaml:"flocking"`
}

// formatDuration formats a duration as HhMMmSSs or MmSSs for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config overlay (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 3000, "Simulation ticks per run")
	statsWindow := flag.Int("stats-window", 300, "Ticks per stats window")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(*configPath, *outputDir, *maxTicks, *statsWindow, *seeds, *maxEvals); err != nil {
		slog.Error("tune failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks int64, statsWindow, seeds, maxEvals int) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, maxTicks, evalSeeds, baseCfg, statsWindow)

	logFile, err := os.Create(filepath.Join(outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 0.0
	var bestParams []float64
	var evalErr error
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness, err := evaluator.Evaluate(raw)
			if err != nil {
				// Invalid region: report a poor score and surface the error afterwards
				evalErr = err
				return 0
			}
			evalCount++
			q := evaluator.LastQuality()

			if bestParams == nil || fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			row := evalRow{
				Eval: evalCount, Fitness: fitness,
				Polarization: q.Polarization, Cohesion: q.Cohesion, Stability: q.Stability,
				Alignment: raw[0], CohesionW: raw[1], Separation: raw[2], Wander: raw[3],
			}
			if err := writeRow(logFile, row, evalCount == 1); err != nil {
				slog.Error("failed to write log row", "error", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			slog.Info("eval",
				"n", evalCount,
				"fitness", fitness,
				"polarization", q.Polarization,
				"cohesion", q.Cohesion,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{FuncEvaluations: maxEvals}
	method := &optimize.NelderMead{SimplexSize: 0.2}
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	slog.Info("starting Nelder-Mead", "params", params.Dim(), "seeds", seeds, "max_evals", maxEvals, "ticks", maxTicks)

	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if evalErr != nil {
		slog.Warn("some evaluations failed", "error", evalErr)
	}
	if bestParams == nil {
		return fmt.Errorf("no successful evaluations")
	}

	slog.Info("tuning complete",
		"evals", evalCount,
		"elapsed", formatDuration(time.Since(startTime)),
		"best_fitness", bestFitness,
	)

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)
	path := filepath.Join(outputDir, "best_weights.yaml")
	if err := writeOverlay(path, bestCfg.Flocking.Weights); err != nil {
		return err
	}
	slog.Info("best weights saved", "path", path, "weights", bestCfg.Flocking.Weights)
	return nil
}

// writeRow appends one record, with the header on the first call.
func writeRow(f *os.File, row evalRow, header bool) error {
	rows := []evalRow{row}
	if header {
		return gocsv.Marshal(rows, f)
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}

// writeOverlay writes weights as a config overlay usable with -config.
func writeOverlay(path string, w config.WeightsConfig) error {
	var overlay weightsOverlay
	overlay.Flocking.Weights = w
	data, err := yaml.Marshal(&overlay)
	if err != nil {
		return fmt.Errorf("marshaling weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}
	return nil
}
