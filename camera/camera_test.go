package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	// Whole world fits: min(1280/2560, 720/1440) = 0.5
	if cam.Zoom != 0.5 || cam.MinZoom != 0.5 {
		t.Errorf("expected zoom 0.5, got %f (min %f)", cam.Zoom, cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	sx, sy := cam.WorldToScreen(640, 360)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("expected world origin at screen origin, got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2)
	cam.Pan(300, -100)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)

	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("after panning past the corner, view starts at (%f, %f), want (0, 0)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 1280) || !near(maxY, 720) {
		t.Errorf("after panning past the far corner, view ends at (%f, %f), want (1280, 720)", maxX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	cam.SetZoom(0.1)
	if cam.Zoom != 1 {
		t.Errorf("zoom below min: got %f, want 1", cam.Zoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom above max: got %f, want %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	wx, wy := cam.ScreenToWorld(400, 300)
	cam.ZoomAt(400, 300, 2)
	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("point under cursor moved to (%f, %f), want (400, 300)", sx, sy)
	}
}

func TestSetWorldRecenters(t *testing.T) {
	cam := New(800, 600, 800, 600)
	cam.Resize(1000, 600)
	cam.SetWorld(1000, 600)

	if cam.Zoom != 1 || cam.X != 500 || cam.Y != 300 {
		t.Errorf("after resize got zoom %f center (%f, %f), want 1 (500, 300)", cam.Zoom, cam.X, cam.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.SetZoom(2)
	cam.Pan(-10000, -10000) // view is [0,640] x [0,360]

	tests := []struct {
		name   string
		x, y   float32
		radius float32
		want   bool
	}{
		{"inside", 100, 100, 1, true},
		{"outside", 1000, 100, 1, false},
		{"overlapping edge", 645, 100, 10, true},
	}
	for _, tt := range tests {
		if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.want {
			t.Errorf("%s: IsVisible = %v, want %v", tt.name, got, tt.want)
		}
	}
}
