package main

import (
	"github.com/pthm-cable/murmur/config"
)

// ParamSpec defines a single tunable weight.
type ParamSpec struct {
	Name string  // Human-readable name, also the CSV column
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
	get  func(w *config.WeightsConfig) *float64
}

// ParamVector holds the set of tunable parameters. The optimizer works in
// normalized [0, 1] space per parameter.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable weights. Seek and repulsion only act on
// a cursor or repulsors, which headless runs do not have.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "alignment", Path: "flocking.weights.alignment", Min: 0, Max: 3,
				get: func(w *config.WeightsConfig) *float64 { return &w.Alignment }},
			{Name: "cohesion", Path: "flocking.weights.cohesion", Min: 0, Max: 3,
				get: func(w *config.WeightsConfig) *float64 { return &w.Cohesion }},
			{Name: "separation", Path: "flocking.weights.separation", Min: 0, Max: 5,
				get: func(w *config.WeightsConfig) *float64 { return &w.Separation }},
			{Name: "wander", Path: "flocking.weights.wander", Min: 0, Max: 2,
				get: func(w *config.WeightsConfig) *float64 { return &w.Wander }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		*spec.get(&cfg.Flocking.Weights) = clamped[i]
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.get(&cfg.Flocking.Weights)
	}
	return v
}
