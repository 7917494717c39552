// Package geomx prepares polygon geometries for batch rasterization:
// it explodes multi-part features into single rings, validates their
// external identifiers and emits the vertex table consumed by
// batch.Fill. It also maps planar coordinates onto the integer grid.
package geomx

import (
	"errors"
	"fmt"

	"github.com/bsm/rasterkit/batch"
	"github.com/bsm/rasterkit/raster"
)

var (
	// ErrDuplicateID is returned when two features share an external
	// identifier.
	ErrDuplicateID = errors.New("geomx: duplicate feature ID")
	// ErrNoRings is returned when a feature contains no rings.
	ErrNoRings = errors.New("geomx: feature contains no rings")
)

// Ring is an ordered, implicitly closed polygon boundary on the grid.
type Ring []raster.Cell

// Feature is a single, possibly multi-part polygon tagged with an
// external identifier.
type Feature[K comparable] struct {
	ID    K
	Rings []Ring
}

// Vertices explodes the features into single rings and returns the
// vertex table for batch.Fill. Identifiers must be unique across
// features, this is validated before anything is exploded. Subpolygon
// IDs are assigned sequentially across the whole table so that every
// exploded ring forms its own group. Vertex order is preserved.
func Vertices[K comparable](features []Feature[K]) ([]batch.Vertex[K], error) {
	seen := make(map[K]struct{}, len(features))
	numVertices := 0
	for _, f := range features {
		if _, ok := seen[f.ID]; ok {
			return nil, fmt.Errorf("%w %v", ErrDuplicateID, f.ID)
		}
		seen[f.ID] = struct{}{}

		for _, ring := range f.Rings {
			numVertices += len(ring)
		}
	}

	var sub int32
	table := make([]batch.Vertex[K], 0, numVertices)
	for _, f := range features {
		if len(f.Rings) == 0 {
			return nil, fmt.Errorf("%w, feature %v", ErrNoRings, f.ID)
		}

		for _, ring := range f.Rings {
			if len(ring) == 0 {
				return nil, fmt.Errorf("geomx: feature %v: %w", f.ID, raster.ErrEmptyRing)
			}

			for _, c := range ring {
				table = append(table, batch.Vertex[K]{X: c.X, Y: c.Y, Subpolygon: sub, ID: f.ID})
			}
			sub++
		}
	}
	return table, nil
}

// RingVertices returns the vertex table for anonymous rings. The rings
// share the zero identifier, identical cells of distinct rings will
// collapse in the batch output.
func RingVertices(rings []Ring) []batch.Vertex[struct{}] {
	numVertices := 0
	for _, ring := range rings {
		numVertices += len(ring)
	}

	table := make([]batch.Vertex[struct{}], 0, numVertices)
	for i, ring := range rings {
		for _, c := range ring {
			table = append(table, batch.Vertex[struct{}]{X: c.X, Y: c.Y, Subpolygon: int32(i)})
		}
	}
	return table
}
