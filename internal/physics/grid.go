package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a bounded board.
// Objects are inserted by their top-left corner and index, then nearby objects can be
// queried via a 3x3 neighborhood lookup.
//
// Cell size must be >= the largest object extent on either axis so that every pair of
// intersecting boxes lands in adjacent cells. Positions outside the board are clamped
// onto the edge cells, which only adds candidates.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given board dimensions.
func NewSpatialGrid(boardW, boardH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(boardW / cellSize))
	rows := int(math.Ceil(boardH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. Cells past the board edge are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// FirstAround returns the smallest index in the neighborhood accepted by match,
// or -1. Indices follow insertion order of the caller's slice, so the result
// is the earliest matching object regardless of cell layout.
func (g *SpatialGrid) FirstAround(x, y float64, match func(index int) bool) int {
	best := -1
	g.QueryAround(x, y, func(i int) bool {
		if best >= 0 && i >= best {
			return false
		}
		if match(i) {
			best = i
		}
		return false
	})
	return best
}

// posToCell converts board coordinates to grid cell coordinates.
// Clamps to valid range so off-board objects land on the edge cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
