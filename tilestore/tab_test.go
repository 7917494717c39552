package tilestore

import (
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/bsm/rasterkit/raster"
)

var _ = Describe("Tab", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "tilestore-tab")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(dir)
	})

	seed := func(fname string) {
		w, err := AppendTab(fname)
		Expect(err).NotTo(HaveOccurred())
		defer w.Close()

		Expect(w.Put(raster.Cell{X: -3, Y: 0}, []byte("data1"))).To(Succeed())
		Expect(w.Put(raster.Cell{X: 4, Y: 1}, []byte("data2"))).To(Succeed())
		Expect(w.Put(raster.Cell{X: 4, Y: 1}, []byte("data3"))).To(Succeed())
		Expect(w.Put(raster.Cell{X: 5, Y: 2}, nil)).To(Succeed())
		Expect(w.Close()).To(Succeed())
	}

	for _, name := range []string{"cells.tab", "cells.tab.gz"} {
		fname := name

		Describe(fname, func() {
			It("should write/read", func() {
				full := filepath.Join(dir, fname)
				seed(full)

				r, err := OpenTab(full)
				Expect(err).NotTo(HaveOccurred())
				defer r.Close()

				cell, vals, err := r.Read()
				Expect(err).NotTo(HaveOccurred())
				Expect(cell).To(Equal(raster.Cell{X: -3, Y: 0}))
				Expect(vals).To(Equal([][]byte{[]byte("data1")}))

				cell, vals, err = r.Read()
				Expect(err).NotTo(HaveOccurred())
				Expect(cell).To(Equal(raster.Cell{X: 4, Y: 1}))
				Expect(vals).To(Equal([][]byte{[]byte("data2"), []byte("data3")}))

				cell, vals, err = r.Read()
				Expect(err).NotTo(HaveOccurred())
				Expect(cell).To(Equal(raster.Cell{X: 5, Y: 2}))
				Expect(vals).To(HaveLen(1))
				Expect(vals[0]).To(BeEmpty())

				_, _, err = r.Read()
				Expect(err).To(MatchError(io.EOF))
			})
		})
	}
})
