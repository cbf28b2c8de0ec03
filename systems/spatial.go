// Package systems provides the per-tick building blocks of the swarm:
// the spatial index, agent integration, and steering behaviors.
package systems

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned when a grid is constructed with unusable dimensions.
var ErrInvalidGrid = errors.New("invalid spatial grid")

// Handle identifies an agent inside the per-tick snapshot arena.
// The grid never owns agents; handles are valid until the next Clear.
type Handle int32

// NoHandle excludes nothing in QueryRadiusInto.
const NoHandle Handle = -1

// Entry is a grid bucket element: a handle plus the position it was inserted at.
type Entry struct {
	H    Handle
	X, Y float32
}

// Neighbor holds a nearby agent with precomputed spatial data.
// This avoids recomputing delta and distance in the steering behaviors.
type Neighbor struct {
	H      Handle
	DX, DY float32 // Delta from query origin to the neighbor
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

// SpatialGrid provides O(1) cell lookups over the bounded domain [0,W)x[0,H).
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	height   float32
	cells    [][]Entry // flat grid of entry lists
	occupied []int     // indices of non-empty cells since the last Clear
	count    int
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) (*SpatialGrid, error) {
	if !(cellSize > 0) {
		return nil, fmt.Errorf("%w: cell size must be positive, got %v", ErrInvalidGrid, cellSize)
	}
	g := &SpatialGrid{cellSize: cellSize}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize rebinds the grid to new bounds. All entries are dropped.
func (g *SpatialGrid) Resize(width, height float32) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("%w: bounds must be positive, got %vx%v", ErrInvalidGrid, width, height)
	}

	cols := int(width/g.cellSize) + 1
	rows := int(height/g.cellSize) + 1

	cells := make([][]Entry, cols*rows)
	for i := range cells {
		cells[i] = make([]Entry, 0, 8) // pre-allocate small capacity
	}

	g.cols = cols
	g.rows = rows
	g.width = width
	g.height = height
	g.cells = cells
	g.occupied = g.occupied[:0]
	g.count = 0
	return nil
}

// Clear removes all entries from the grid. Cost is proportional to the
// number of occupied cells, not the grid size.
func (g *SpatialGrid) Clear() {
	for _, idx := range g.occupied {
		g.cells[idx] = g.cells[idx][:0]
	}
	g.occupied = g.occupied[:0]
	g.count = 0
}

// Insert adds a handle to the cell containing (x, y).
// Positions outside the bounds land in the nearest edge cell.
func (g *SpatialGrid) Insert(h Handle, x, y float32) {
	col, row := g.Cell(x, y)
	idx := row*g.cols + col
	if len(g.cells[idx]) == 0 {
		g.occupied = append(g.occupied, idx)
	}
	g.cells[idx] = append(g.cells[idx], Entry{H: h, X: x, Y: y})
	g.count++
}

// Len returns the number of entries inserted since the last Clear.
func (g *SpatialGrid) Len() int {
	return g.count
}

// Dims returns the grid dimensions in cells.
func (g *SpatialGrid) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// CellSize returns the side length of a cell.
func (g *SpatialGrid) CellSize() float32 {
	return g.cellSize
}

// Cell returns the clamped cell coordinate for a world position.
func (g *SpatialGrid) Cell(x, y float32) (col, row int) {
	col = clampInt(floorDiv(x, g.cellSize), 0, g.cols-1)
	row = clampInt(floorDiv(y, g.cellSize), 0, g.rows-1)
	return col, row
}

// Candidates appends every entry in the (2k+1)x(2k+1) block of cells around
// (x, y), k = ceil(radius/cellSize). The result is a superset of the entries
// within radius; callers must re-filter by exact distance.
func (g *SpatialGrid) Candidates(dst []Entry, x, y, radius float32) []Entry {
	c0, c1, r0, r1 := g.block(x, y, radius)
	for row := r0; row <= r1; row++ {
		base := row * g.cols
		for col := c0; col <= c1; col++ {
			dst = append(dst, g.cells[base+col]...)
		}
	}
	return dst
}

// QueryRadiusInto finds entries strictly closer than radius and appends them to dst.
// Returns the updated slice. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude Handle) []Neighbor {
	radiusSq := radius * radius
	c0, c1, r0, r1 := g.block(x, y, radius)

	for row := r0; row <= r1; row++ {
		base := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, e := range g.cells[base+col] {
				if e.H == exclude {
					continue
				}
				dx := e.X - x
				dy := e.Y - y
				distSq := dx*dx + dy*dy
				if distSq < radiusSq {
					dst = append(dst, Neighbor{H: e.H, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// block returns the inclusive cell range scanned for a query.
func (g *SpatialGrid) block(x, y, radius float32) (c0, c1, r0, r1 int) {
	if radius < 0 {
		radius = 0
	}
	// Anything wider than the grid scans the whole grid.
	k := g.cols + g.rows
	if kf := math.Ceil(float64(radius / g.cellSize)); kf < float64(k) {
		k = int(kf)
	}
	col, row := g.Cell(x, y)

	c0 = clampInt(col-k, 0, g.cols-1)
	c1 = clampInt(col+k, 0, g.cols-1)
	r0 = clampInt(row-k, 0, g.rows-1)
	r1 = clampInt(row+k, 0, g.rows-1)
	return c0, c1, r0, r1
}

func floorDiv(v, size float32) int {
	f := math.Floor(float64(v / size))
	// Guard the int conversion against NaN and huge values.
	if !(f > math.MinInt32) {
		return math.MinInt32
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
