package systems

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewSpatialGridInvalid(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, cellSize float32
	}{
		{"zero width", 0, 100, 10},
		{"negative height", 100, -1, 10},
		{"zero cell size", 100, 100, 0},
		{"negative cell size", 100, 100, -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSpatialGrid(tc.width, tc.height, tc.cellSize)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("NewSpatialGrid(%v, %v, %v) error = %v, want ErrInvalidGrid",
					tc.width, tc.height, tc.cellSize, err)
			}
		})
	}
}

func TestSpatialGridCell(t *testing.T) {
	g, err := NewSpatialGrid(100, 50, 10)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name             string
		x, y             float32
		wantCol, wantRow int
	}{
		{"origin", 0, 0, 0, 0},
		{"interior", 25, 37, 2, 3},
		{"cell boundary", 10, 10, 1, 1},
		{"negative clamps", -15, -3, 0, 0},
		{"far outside clamps", 1e6, 1e6, 10, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := g.Cell(tc.x, tc.y)
			if col != tc.wantCol || row != tc.wantRow {
				t.Errorf("Cell(%v, %v) = (%d, %d), want (%d, %d)", tc.x, tc.y, col, row, tc.wantCol, tc.wantRow)
			}
		})
	}
}

func TestSpatialGridInsertOutOfBounds(t *testing.T) {
	g, _ := NewSpatialGrid(100, 100, 10)

	g.Insert(0, -50, -50)
	g.Insert(1, 500, 20)

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}

	// Both must still be reachable from the nearest in-bounds point
	got := g.QueryRadiusInto(nil, 0, 0, 100, NoHandle)
	found := false
	for _, n := range got {
		if n.H == 0 {
			found = true
		}
	}
	if !found {
		t.Error("agent inserted outside bounds was dropped")
	}

	cands := g.Candidates(nil, 99, 20, 1)
	found = false
	for _, e := range cands {
		if e.H == 1 {
			found = true
		}
	}
	if !found {
		t.Error("agent clamped to right edge missing from edge candidates")
	}
}

func TestSpatialGridClear(t *testing.T) {
	g, _ := NewSpatialGrid(100, 100, 10)
	for i := 0; i < 20; i++ {
		g.Insert(Handle(i), float32(i*5), float32(i*5))
	}
	g.Clear()

	if g.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", g.Len())
	}
	if got := g.Candidates(nil, 50, 50, 200); len(got) != 0 {
		t.Errorf("Candidates after Clear returned %d entries, want 0", len(got))
	}
}

// TestSpatialGridNoFalseNegatives checks that the candidate block always
// contains every point a brute-force scan finds within radius.
func TestSpatialGridNoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		width := 50 + rng.Float32()*500
		height := 50 + rng.Float32()*500
		cellSize := 5 + rng.Float32()*80
		radius := rng.Float32() * 120

		g, err := NewSpatialGrid(width, height, cellSize)
		if err != nil {
			t.Fatal(err)
		}

		n := 1 + rng.Intn(300)
		xs := make([]float32, n)
		ys := make([]float32, n)
		for i := 0; i < n; i++ {
			// Include a few points slightly outside the bounds
			xs[i] = rng.Float32()*(width+20) - 10
			ys[i] = rng.Float32()*(height+20) - 10
			g.Insert(Handle(i), xs[i], ys[i])
		}

		qx := rng.Float32() * width
		qy := rng.Float32() * height

		candidates := make(map[Handle]bool)
		for _, e := range g.Candidates(nil, qx, qy, radius) {
			candidates[e.H] = true
		}
		exact := make(map[Handle]bool)
		for _, nb := range g.QueryRadiusInto(nil, qx, qy, radius, NoHandle) {
			exact[nb.H] = true
		}

		for i := 0; i < n; i++ {
			within := distanceSq(xs[i], ys[i], qx, qy) < radius*radius
			if within && !candidates[Handle(i)] {
				t.Fatalf("trial %d: point %d at (%v, %v) within %v of (%v, %v) missing from candidates",
					trial, i, xs[i], ys[i], radius, qx, qy)
			}
			if within != exact[Handle(i)] {
				t.Fatalf("trial %d: point %d exact membership = %v, want %v", trial, i, exact[Handle(i)], within)
			}
		}
	}
}

func TestQueryRadiusBoundary(t *testing.T) {
	const radius = 60
	const eps = 0.01

	tests := []struct {
		name string
		gap  float32
		want bool
	}{
		{"just inside", radius - eps, true},
		{"just outside", radius + eps, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := NewSpatialGrid(400, 400, 50)
			g.Insert(0, 100, 200)
			g.Insert(1, 100+tc.gap, 200)

			got := g.QueryRadiusInto(nil, 100, 200, radius, 0)
			connected := len(got) == 1 && got[0].H == 1
			if connected != tc.want {
				t.Errorf("gap %v: connected = %v, want %v", tc.gap, connected, tc.want)
			}
		})
	}
}

func TestQueryRadiusExclude(t *testing.T) {
	g, _ := NewSpatialGrid(100, 100, 10)
	g.Insert(3, 50, 50)
	g.Insert(4, 52, 50)

	got := g.QueryRadiusInto(nil, 50, 50, 10, 3)
	if len(got) != 1 || got[0].H != 4 {
		t.Fatalf("got %+v, want only handle 4", got)
	}
	if got[0].DX != 2 || got[0].DY != 0 || got[0].DistSq != 4 {
		t.Errorf("delta = (%v, %v, %v), want (2, 0, 4)", got[0].DX, got[0].DY, got[0].DistSq)
	}
}

func TestSpatialGridResize(t *testing.T) {
	g, _ := NewSpatialGrid(100, 100, 10)
	g.Insert(0, 5, 5)

	if err := g.Resize(200, 50); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 0 {
		t.Errorf("Len() after Resize = %d, want 0", g.Len())
	}
	cols, rows := g.Dims()
	if cols != 21 || rows != 6 {
		t.Errorf("Dims() = (%d, %d), want (21, 6)", cols, rows)
	}
	if err := g.Resize(0, 50); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("Resize(0, 50) error = %v, want ErrInvalidGrid", err)
	}
}

func BenchmarkSpatialQuery(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	g, _ := NewSpatialGrid(1280, 800, 60)
	for i := 0; i < 1000; i++ {
		g.Insert(Handle(i), rng.Float32()*1280, rng.Float32()*800)
	}
	dst := make([]Neighbor, 0, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = g.QueryRadiusInto(dst[:0], 640, 400, 60, NoHandle)
	}
}
