package geomx

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/bsm/rasterkit/raster"
)

// Grid maps planar coordinates onto the integer rasterization grid.
// This is pure grid-space scaling, coordinates are expected to be in a
// planar reference already.
type Grid struct {
	// Origin is the planar position of the lower-left corner of cell
	// (0, 0).
	Origin r2.Point
	// Size is the cell edge length, must be > 0.
	Size float64
}

// Snap returns the cell containing the planar point p.
func (g Grid) Snap(p r2.Point) raster.Cell {
	return raster.Cell{
		X: int32(math.Floor((p.X - g.Origin.X) / g.Size)),
		Y: int32(math.Floor((p.Y - g.Origin.Y) / g.Size)),
	}
}

// SnapRing snaps a planar ring onto the grid, dropping the consecutive
// duplicates produced by the snapping and the closing vertex.
func (g Grid) SnapRing(pts []r2.Point) Ring {
	ring := make(Ring, 0, len(pts))
	for _, p := range pts {
		c := g.Snap(p)
		if n := len(ring); n != 0 && ring[n-1] == c {
			continue
		}
		ring = append(ring, c)
	}
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	return ring
}

// CellRect returns the planar extent of the cell c.
func (g Grid) CellRect(c raster.Cell) r2.Rect {
	min := r2.Point{
		X: g.Origin.X + float64(c.X)*g.Size,
		Y: g.Origin.Y + float64(c.Y)*g.Size,
	}
	return r2.RectFromPoints(min, r2.Point{X: min.X + g.Size, Y: min.Y + g.Size})
}
