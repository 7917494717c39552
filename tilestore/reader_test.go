package tilestore

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/bsm/rasterkit/raster"
)

var _ = Describe("Reader", func() {
	var subject *Reader

	seed := func(compression Compression) {
		buf := new(bytes.Buffer)
		w := NewWriter(buf, &Options{BlockSize: 2 * KiB, Compression: compression})
		for y := int32(0); y < 50; y++ {
			for x := int32(0); x < 50; x++ {
				Expect(w.Append(raster.Cell{X: x, Y: y}, []byte("value-data"))).To(Succeed())
			}
		}
		Expect(w.Close()).To(Succeed())

		var err error
		subject, err = NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		Expect(err).NotTo(HaveOccurred())
	}

	It("should reject bad footers", func() {
		junk := bytes.Repeat([]byte("junkdata"), 4)
		_, err := NewReader(bytes.NewReader(junk), int64(len(junk)))
		Expect(err).To(MatchError(errBadMagic))
	})

	It("should open empty stores", func() {
		buf := new(bytes.Buffer)
		Expect(NewWriter(buf, nil).Close()).To(Succeed())

		r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		Expect(err).NotTo(HaveOccurred())
		Expect(r.NumBlocks()).To(Equal(0))

		it, err := r.FindBlock(raster.Cell{})
		Expect(err).NotTo(HaveOccurred())
		defer it.Release()
		Expect(it.Next()).To(BeFalse())
	})

	for _, x := range []struct {
		name        string
		compression Compression
	}{
		{name: "plain", compression: NoCompression},
		{name: "snappy", compression: SnappyCompression},
	} {
		compression := x.compression

		Describe(x.name, func() {
			BeforeEach(func() {
				seed(compression)
			})

			It("should split into blocks", func() {
				Expect(subject.NumBlocks()).To(BeNumerically(">", 10))
			})

			It("should iterate", func() {
				it, err := subject.FindBlock(raster.Cell{X: 0, Y: 0})
				Expect(err).NotTo(HaveOccurred())
				defer it.Release()

				numRows := 0
				var last raster.Cell
				for {
					for it.Next() {
						last = it.Cell()
						numRows++
					}
					Expect(it.Err()).NotTo(HaveOccurred())

					if !it.NextBlock() {
						break
					}
				}
				Expect(numRows).To(Equal(2500))
				Expect(last).To(Equal(raster.Cell{X: 49, Y: 49}))
			})

			It("should find and seek cells", func() {
				it, err := subject.FindBlock(raster.Cell{X: 27, Y: 33})
				Expect(err).NotTo(HaveOccurred())
				defer it.Release()

				Expect(it.Seek(raster.Cell{X: 27, Y: 33})).To(BeTrue())
				Expect(it.Cell()).To(Equal(raster.Cell{X: 27, Y: 33}))
				Expect(string(it.Value())).To(Equal("value-data"))
			})

			It("should step between blocks", func() {
				it, err := subject.FindBlock(raster.Cell{X: 0, Y: 25})
				Expect(err).NotTo(HaveOccurred())
				defer it.Release()

				Expect(it.PrevBlock()).To(BeTrue())
				Expect(it.NextBlock()).To(BeTrue())
				Expect(it.Next()).To(BeTrue())
			})
		})
	}
})
