// Package batch rasterizes whole vertex tables: it groups rows into
// rings, rasterizes every ring independently and merges the results
// into two cell tables, the confirmed in-geometry cells and the
// off-boundary candidates left after a final global correction pass.
package batch

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/bsm/rasterkit/raster"
)

// Vertex is a single row of the input vertex table. The external
// identifier type K is opaque to the driver, it is only compared.
// Untagged batches use K = struct{}: the shared zero identifier makes
// identical cells of distinct polygons collapse in the output.
type Vertex[K comparable] struct {
	X, Y int32
	// Subpolygon identifies the exploded ring the vertex belongs to.
	// It is assigned by the geometry preprocessing and must be unique
	// per ring across the whole table.
	Subpolygon int32
	// ID is the caller-supplied external identifier of the source
	// polygon, preserved on every output row.
	ID K
}

// Cell is a single row of an output cell table.
type Cell[K comparable] struct {
	X, Y int32
	ID   K
}

// Result holds the two output tables of a batch fill. Rows are emitted
// in deterministic order: rings in first-appearance order, cells
// row-major within each ring, duplicates skipped.
type Result[K comparable] struct {
	// InGeometry contains the confirmed boundary and interior cells.
	InGeometry []Cell[K]
	// OffBoundary contains the corner-grazed candidate cells that were
	// not confirmed in-geometry by any ring of the same identifier.
	OffBoundary []Cell[K]
	// Stats accumulates the scanline diagnostics across all rings.
	Stats raster.Stats
}

// Options configure a batch fill.
type Options struct {
	// The number of rings rasterized concurrently. Default: GOMAXPROCS.
	Concurrency int
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	if oo.Concurrency < 1 {
		oo.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &oo
}

// --------------------------------------------------------------------

type groupKey[K comparable] struct {
	sub int32
	id  K
}

type group[K comparable] struct {
	sub  int32
	id   K
	seen map[raster.Cell]struct{}
	ring []raster.Cell
	res  *raster.Result
}

// push appends a vertex to the ring, dropping duplicate coordinates
// and keeping the first occurrence. This sheds the closing vertex of
// pre-closed rings.
func (g *group[K]) push(c raster.Cell) {
	if _, ok := g.seen[c]; ok {
		return
	}
	g.seen[c] = struct{}{}
	g.ring = append(g.ring, c)
}

// --------------------------------------------------------------------

// Fill rasterizes every ring of the vertex table. Ring results are
// computed independently on a worker pool, the merge and the global
// off-boundary correction run single-threaded afterwards. Any ring
// failure aborts the whole batch.
func Fill[K comparable](vertices []Vertex[K], o *Options) (*Result[K], error) {
	o = o.norm()

	// group rows by (subpolygon, ID) in first-appearance order
	index := make(map[groupKey[K]]int)
	var groups []*group[K]
	for _, v := range vertices {
		key := groupKey[K]{sub: v.Subpolygon, id: v.ID}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, &group[K]{
				sub:  v.Subpolygon,
				id:   v.ID,
				seen: make(map[raster.Cell]struct{}),
			})
		}
		groups[pos].push(raster.Cell{X: v.X, Y: v.Y})
	}

	if err := rasterize(groups, o.Concurrency); err != nil {
		return nil, err
	}
	return merge(groups), nil
}

func rasterize[K comparable](groups []*group[K], concurrency int) error {
	tasks := make(chan *group[K], len(groups))
	for _, g := range groups {
		tasks <- g
	}
	close(tasks)

	errs := make(chan error, concurrency)

	var wg sync.WaitGroup
	for n := 0; n < concurrency; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for g := range tasks {
				res, err := raster.RasterizeRing(g.ring)
				if err != nil {
					errs <- fmt.Errorf("batch: subpolygon %d: %w", g.sub, err)
					return
				}
				g.res = res
			}
		}()
	}
	wg.Wait()
	close(errs)

	return <-errs
}

func merge[K comparable](groups []*group[K]) *Result[K] {
	// collect the full in-geometry set first, the off-boundary
	// correction below must be global, not per-ring
	inGeom := make(map[Cell[K]]struct{})
	for _, g := range groups {
		for c := range g.res.Polygon {
			inGeom[Cell[K]{X: c.X, Y: c.Y, ID: g.id}] = struct{}{}
		}
	}

	res := new(Result[K])
	seenIn := make(map[Cell[K]]struct{}, len(inGeom))
	seenOff := make(map[Cell[K]]struct{})
	for _, g := range groups {
		res.Stats.Merge(g.res.Stats)

		for _, c := range g.res.Polygon.Cells() {
			row := Cell[K]{X: c.X, Y: c.Y, ID: g.id}
			if _, ok := seenIn[row]; ok {
				continue
			}
			seenIn[row] = struct{}{}
			res.InGeometry = append(res.InGeometry, row)
		}

		for _, c := range g.res.Ambiguous.Cells() {
			row := Cell[K]{X: c.X, Y: c.Y, ID: g.id}
			if _, ok := inGeom[row]; ok { // confirmed by another ring
				continue
			}
			if _, ok := seenOff[row]; ok {
				continue
			}
			seenOff[row] = struct{}{}
			res.OffBoundary = append(res.OffBoundary, row)
		}
	}
	return res
}
