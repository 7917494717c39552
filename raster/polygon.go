package raster

// Result holds the rasterisation output for a single ring.
type Result struct {
	// Polygon contains the confirmed boundary and interior cells.
	Polygon CellSet
	// Ambiguous contains the corner-grazed cells that were not
	// confirmed as polygon cells.
	Ambiguous CellSet
	// Stats contains the scanline diagnostic counters.
	Stats Stats
}

// RasterizeRing computes the full cell coverage of a single ring:
// the supercover of every edge, the scanline interior, and the
// remaining ambiguous corner cells. The ring is implicitly closed, a
// single vertex degenerates to a single occupied cell.
func RasterizeRing(ring []Cell) (*Result, error) {
	if len(ring) == 0 {
		return nil, ErrEmptyRing
	}

	res := &Result{
		Polygon:   make(CellSet, len(ring)),
		Ambiguous: make(CellSet),
	}

	for i, a := range ring {
		line, err := Traverse(a, ring[(i+1)%len(ring)])
		if err != nil {
			return nil, err
		}

		for _, c := range line.Cells {
			res.Polygon.Add(c)
		}
		for _, c := range line.Ambiguous {
			res.Ambiguous.Add(c)
		}
	}

	fill, stats := Fill(ring)
	res.Polygon.Merge(fill)
	res.Stats = stats

	// cells confirmed as boundary or interior are never ambiguous,
	// this must happen last
	res.Ambiguous.Subtract(res.Polygon)
	return res, nil
}
