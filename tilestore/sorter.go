package tilestore

import (
	"encoding/binary"
	"io"

	"github.com/bsm/extsort"

	"github.com/bsm/rasterkit/raster"
)

// SorterOptions define Sorter specific options.
type SorterOptions struct {
	// An optional temporary directory. Default: os.TempDir()
	TempDir string
}

func (o *SorterOptions) norm() *SorterOptions {
	var oo SorterOptions
	if o != nil {
		oo = *o
	}
	return &oo
}

// Sorter pre-sorts cells into row-major order to avoid out-of-order
// appends to Writer instances. It spills to disk and can handle
// tables beyond memory.
type Sorter struct {
	x *extsort.Sorter
	t []byte
}

// NewSorter creates a sorter.
func NewSorter(o *SorterOptions) *Sorter {
	o = o.norm()
	return &Sorter{
		x: extsort.New(&extsort.Options{WorkDir: o.TempDir}),
	}
}

// Append appends a cell to the sorter.
func (s *Sorter) Append(cell raster.Cell, data []byte) error {
	if sz := 8 + len(data); sz < cap(s.t) {
		s.t = s.t[:sz]
	} else {
		s.t = make([]byte, sz)
	}

	binary.BigEndian.PutUint64(s.t[0:], cellKey(cell))
	copy(s.t[8:], data)
	return s.x.Append(s.t)
}

// Sort sorts appended cells and returns an iterator.
func (s *Sorter) Sort() (*SorterIterator, error) {
	iter, err := s.x.Sort()
	if err != nil {
		return nil, err
	}
	return &SorterIterator{it: iter}, nil
}

// Close closes the sorter and releases all resources.
func (s *Sorter) Close() error {
	return s.x.Close()
}

// --------------------------------------------------------------------

// SorterIterator iterates over sorted results.
type SorterIterator struct {
	it *extsort.Iterator

	started bool
	current [][]byte
	nextKey uint64
	next    [][]byte
}

// NextCell reads the next cell with all its appended values. This
// function will return io.EOF if no more cells can be read.
func (i *SorterIterator) NextCell() (raster.Cell, [][]byte, error) {
	currentKey := i.nextKey
	for i.it.Next() {
		rawdata := i.it.Data()
		i.nextKey = binary.BigEndian.Uint64(rawdata)

		if i.started && currentKey != i.nextKey {
			i.next = i.push(i.next, rawdata[8:])
			break
		}
		i.started = true
		currentKey = i.nextKey
		i.current = i.push(i.current, rawdata[8:])
	}

	if err := i.it.Err(); err != nil {
		return raster.Cell{}, nil, err
	}

	if size := len(i.current); size != 0 {
		i.current, i.next = i.next, i.current[:0]
		return keyCell(currentKey), i.next[:size], nil
	}

	return raster.Cell{}, nil, io.EOF
}

// Close closes iterator and releases resources.
func (i *SorterIterator) Close() error {
	return i.it.Close()
}

func (i *SorterIterator) push(chunks [][]byte, chunk []byte) [][]byte {
	if pos := len(chunks); pos+1 < cap(chunks) {
		chunks = chunks[:pos+1]
		chunks[pos] = append(chunks[pos][:0], chunk...)
	} else {
		cloned := make([]byte, len(chunk))
		copy(cloned, chunk)
		chunks = append(chunks, cloned)
	}
	return chunks
}
