package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/murmur/config"
)

func TestParamVectorRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{1.0, 0.8, 1.2, 0.5}

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: roundtrip gave %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 10, 2, 3})
	want := []float64{0, 3, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: Clamp = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestParamVectorApplyExtract(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	seek := cfg.Flocking.Weights.Seek

	pv.ApplyToConfig(cfg, []float64{0.5, 1.5, 9, 0.25})

	w := cfg.Flocking.Weights
	if w.Alignment != 0.5 || w.Cohesion != 1.5 || w.Separation != 5 || w.Wander != 0.25 {
		t.Errorf("applied weights = %+v", w)
	}
	if w.Seek != seek {
		t.Errorf("seek changed to %v, want untouched %v", w.Seek, seek)
	}

	got := pv.ExtractFromConfig(cfg)
	want := []float64{0.5, 1.5, 5, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: extracted %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}
