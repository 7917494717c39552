package raster

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fill", func() {
	It("should fill nothing for empty rings", func() {
		set, stats := Fill(nil)
		Expect(set).To(BeEmpty())
		Expect(stats).To(Equal(Stats{}))
	})

	It("should degenerate single vertices to a single cell", func() {
		set, stats := Fill([]Cell{{X: 3, Y: 3}})
		Expect(set.Cells()).To(Equal([]Cell{{X: 3, Y: 3}}))
		Expect(stats).To(Equal(Stats{}))
	})

	It("should fill squares", func() {
		set, stats := Fill([]Cell{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}})
		Expect(set.Cells()).To(Equal([]Cell{
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
			{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		}))
		Expect(stats).To(Equal(Stats{HorizontalEdges: 2}))
	})

	It("should fill triangles", func() {
		set, stats := Fill([]Cell{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 3, Y: 3}})
		Expect(set.Cells()).To(Equal([]Cell{
			{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 5, Y: 1},
			{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2},
			{X: 3, Y: 3},
		}))
		Expect(stats).To(Equal(Stats{HorizontalEdges: 1}))
	})

	It("should drop unpaired trailing intersections", func() {
		var stats Stats
		set := make(CellSet)
		fillSpans(set, 0, []float64{0, 2, 5}, &stats)

		Expect(set.Cells()).To(Equal([]Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}))
		Expect(stats).To(Equal(Stats{OddScanlines: 1}))
	})
})
