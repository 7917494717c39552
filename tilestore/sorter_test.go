package tilestore

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/bsm/rasterkit/raster"
)

var _ = Describe("Sorter", func() {
	var subject *Sorter

	BeforeEach(func() {
		subject = NewSorter(nil)
	})

	AfterEach(func() {
		_ = subject.Close()
	})

	It("should close", func() {
		Expect(subject.Close()).To(Succeed())
	})

	It("should append/sort/iterate", func() {
		Expect(subject.Append(raster.Cell{X: 2, Y: 1}, []byte("data1"))).To(Succeed())
		Expect(subject.Append(raster.Cell{X: 0, Y: 0}, []byte("data2"))).To(Succeed())
		Expect(subject.Append(raster.Cell{X: 2, Y: 1}, []byte("data3"))).To(Succeed())
		Expect(subject.Append(raster.Cell{X: 1, Y: 1}, []byte("data4"))).To(Succeed())
		Expect(subject.Append(raster.Cell{X: -1, Y: 0}, []byte("data5"))).To(Succeed())

		iter, err := subject.Sort()
		Expect(err).NotTo(HaveOccurred())
		defer iter.Close()

		cell, data, err := iter.NextCell()
		Expect(err).NotTo(HaveOccurred())
		Expect(cell).To(Equal(raster.Cell{X: -1, Y: 0}))
		Expect(data).To(Equal([][]byte{[]byte("data5")}))

		cell, data, err = iter.NextCell()
		Expect(err).NotTo(HaveOccurred())
		Expect(cell).To(Equal(raster.Cell{X: 0, Y: 0}))
		Expect(data).To(Equal([][]byte{[]byte("data2")}))

		cell, data, err = iter.NextCell()
		Expect(err).NotTo(HaveOccurred())
		Expect(cell).To(Equal(raster.Cell{X: 1, Y: 1}))
		Expect(data).To(Equal([][]byte{[]byte("data4")}))

		cell, data, err = iter.NextCell()
		Expect(err).NotTo(HaveOccurred())
		Expect(cell).To(Equal(raster.Cell{X: 2, Y: 1}))
		Expect(data).To(Equal([][]byte{[]byte("data1"), []byte("data3")}))

		_, _, err = iter.NextCell()
		Expect(err).To(MatchError("EOF"))
	})
})
