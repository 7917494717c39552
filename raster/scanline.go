package raster

import (
	"math"

	"golang.org/x/exp/slices"
)

// Fill returns the interior cells of the implicitly closed ring using
// the scanline edge-crossing parity rule. Horizontal edges never
// contribute an intersection and scanlines with an odd intersection
// count drop their unpaired trailing intersection; both conditions are
// reported through the returned Stats.
func Fill(ring []Cell) (CellSet, Stats) {
	var stats Stats

	set := make(CellSet, len(ring))
	if len(ring) == 0 {
		return set, stats
	} else if len(ring) == 1 {
		set.Add(ring[0])
		return set, stats
	}

	minY, maxY := ring[0].Y, ring[0].Y
	for _, c := range ring[1:] {
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	for i, p := range ring {
		if q := ring[(i+1)%len(ring)]; p.Y == q.Y {
			stats.HorizontalEdges++
		}
	}

	xs := make([]float64, 0, len(ring))
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i, p := range ring {
			q := ring[(i+1)%len(ring)]
			if p.Y == q.Y { // never intersects, would divide by zero
				continue
			}

			// half-open interval, prevents double-counting at shared vertices
			if (q.Y < y && y <= p.Y) || (p.Y < y && y <= q.Y) {
				xs = append(xs, interpolateX(p, q, y))
			}
		}

		slices.Sort(xs)
		fillSpans(set, y, xs, &stats)
	}
	return set, stats
}

// fillSpans fills the inclusive integer spans between consecutive pairs
// of sorted intersections on scanline y.
func fillSpans(set CellSet, y int32, xs []float64, stats *Stats) {
	if len(xs)%2 != 0 {
		stats.OddScanlines++
		xs = xs[:len(xs)-1]
	}

	for i := 0; i+1 < len(xs); i += 2 {
		x1, x2 := int32(math.Round(xs[i])), int32(math.Round(xs[i+1]))
		for x := x1; x <= x2; x++ {
			set.Add(Cell{X: x, Y: y})
		}
	}
}

// interpolateX returns the X value of the edge (p, q) at scanline y.
func interpolateX(p, q Cell, y int32) float64 {
	return float64(p.X) + float64(y-p.Y)*float64(q.X-p.X)/float64(q.Y-p.Y)
}
