package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()

	tests := []struct {
		id   OverlayID
		want bool
	}{
		{OverlayEdges, true},
		{OverlayActivation, true},
		{OverlayGrid, false},
		{OverlayPerf, false},
	}
	for _, tt := range tests {
		if got := r.IsEnabled(tt.id); got != tt.want {
			t.Errorf("IsEnabled(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestOverlayToggle(t *testing.T) {
	r := NewOverlayRegistry()

	if !r.Toggle(OverlayGrid) || !r.IsEnabled(OverlayGrid) {
		t.Error("first toggle should enable the grid overlay")
	}
	if r.Toggle(OverlayGrid) {
		t.Error("second toggle should disable the grid overlay")
	}
	if r.Toggle("missing") {
		t.Error("toggling an unknown overlay should report false")
	}

	r.SetEnabled(OverlayEdges, false)
	if r.IsEnabled(OverlayEdges) {
		t.Error("SetEnabled(false) did not disable edges")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	r := NewOverlayRegistry()

	id, state, ok := r.HandleKeyPress(rl.KeyC)
	if !ok || id != OverlayCursorRadius || !state {
		t.Errorf("HandleKeyPress(C) = %s, %v, %v; want cursor_radius, true, true", id, state, ok)
	}

	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}
}

func TestOverlayCategories(t *testing.T) {
	r := NewOverlayRegistry()

	cats := r.Categories()
	if len(cats) != 2 || cats[0] != "visual" || cats[1] != "debug" {
		t.Fatalf("Categories() = %v, want [visual debug]", cats)
	}
	if got := len(r.ByCategory("debug")); got != 4 {
		t.Errorf("len(ByCategory(debug)) = %d, want 4", got)
	}
}
