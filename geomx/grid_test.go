package geomx

import (
	"github.com/golang/geo/r2"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/bsm/rasterkit/raster"
)

var _ = Describe("Grid", func() {
	subject := Grid{Origin: r2.Point{X: 100, Y: 200}, Size: 10}

	DescribeTable("should snap planar points",
		func(p r2.Point, exp raster.Cell) {
			Expect(subject.Snap(p)).To(Equal(exp))
		},

		Entry("origin", r2.Point{X: 100, Y: 200}, raster.Cell{X: 0, Y: 0}),
		Entry("within a cell", r2.Point{X: 119.9, Y: 230.1}, raster.Cell{X: 1, Y: 3}),
		Entry("on a cell corner", r2.Point{X: 120, Y: 230}, raster.Cell{X: 2, Y: 3}),
		Entry("below the origin", r2.Point{X: 99.9, Y: 195}, raster.Cell{X: -1, Y: -1}),
	)

	It("should snap rings", func() {
		ring := subject.SnapRing([]r2.Point{
			{X: 101, Y: 201},
			{X: 102, Y: 202}, // same cell, dropped
			{X: 101, Y: 245},
			{X: 148, Y: 245},
			{X: 101, Y: 201}, // closing vertex, dropped
		})
		Expect(ring).To(Equal(Ring{
			{X: 0, Y: 0},
			{X: 0, Y: 4},
			{X: 4, Y: 4},
		}))
	})

	It("should compute cell extents", func() {
		rect := subject.CellRect(raster.Cell{X: 2, Y: -1})
		Expect(rect.X.Lo).To(Equal(120.0))
		Expect(rect.X.Hi).To(Equal(130.0))
		Expect(rect.Y.Lo).To(Equal(190.0))
		Expect(rect.Y.Hi).To(Equal(200.0))
	})
})
