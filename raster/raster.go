// Package raster computes the exact set of grid cells covered by polygons
// with integer vertices. Boundaries are traced with a supercover line
// walk, interiors are filled with a scanline parity pass and cells that
// are only grazed at a diagonal corner crossing are reported separately
// as ambiguous.
package raster

import (
	"errors"

	"golang.org/x/exp/slices"
)

var (
	// ErrEmptyRing is returned when a ring contains no vertices.
	ErrEmptyRing = errors.New("raster: ring contains no vertices")
	// ErrTraversalOverflow is returned when a segment walk exceeds its
	// step ceiling. This is an internal invariant violation and always
	// indicates bad inputs or a defect, never a recoverable condition.
	ErrTraversalOverflow = errors.New("raster: traversal exceeded its step limit")
)

// Cell is a single cell on the rasterisation grid.
type Cell struct {
	X, Y int32
}

// Compare orders cells row-major, by Y then by X.
func (c Cell) Compare(o Cell) int {
	if c.Y != o.Y {
		if c.Y < o.Y {
			return -1
		}
		return 1
	}
	if c.X != o.X {
		if c.X < o.X {
			return -1
		}
		return 1
	}
	return 0
}

// --------------------------------------------------------------------

// CellSet is a set of unique cells.
type CellSet map[Cell]struct{}

// Add adds a cell to the set.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Has reports whether the set contains c.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Merge adds every cell of o to the set.
func (s CellSet) Merge(o CellSet) {
	for c := range o {
		s[c] = struct{}{}
	}
}

// Subtract removes every cell of o from the set.
func (s CellSet) Subtract(o CellSet) {
	for c := range o {
		delete(s, c)
	}
}

// Cells returns the cells of the set in row-major order.
func (s CellSet) Cells() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, Cell.Compare)
	return cells
}

// --------------------------------------------------------------------

// Stats contains diagnostic counters for degenerate geometry
// encountered during the scanline fill. Degenerate edges are not
// errors, their cells are simply omitted, but the counters allow
// callers to observe that it happened.
type Stats struct {
	// HorizontalEdges is the number of ring edges skipped because both
	// vertices share the same Y coordinate.
	HorizontalEdges int
	// OddScanlines is the number of scanlines with an odd number of
	// edge intersections, where the unpaired trailing intersection was
	// dropped.
	OddScanlines int
}

// Merge accumulates the counters of o.
func (s *Stats) Merge(o Stats) {
	s.HorizontalEdges += o.HorizontalEdges
	s.OddScanlines += o.OddScanlines
}
