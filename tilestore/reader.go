package tilestore

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/golang/snappy"

	"github.com/bsm/rasterkit/raster"
)

// Reader represents a tilestore reader.
type Reader struct {
	r io.ReaderAt

	index       []blockInfo
	indexOffset int64
}

// NewReader opens a reader.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	tmp := make([]byte, 16+binary.MaxVarintLen64)

	// read footer
	footerOffset := size - 16
	if _, err := r.ReadAt(tmp[:16], footerOffset); err != nil {
		return nil, err
	}

	// parse footer
	if !bytes.Equal(tmp[8:16], magic) {
		return nil, errBadMagic
	}
	indexOffset := int64(binary.LittleEndian.Uint64(tmp[:8]))

	// read index
	var index []blockInfo
	var info blockInfo

	for pos := indexOffset; pos < footerOffset; {
		tmp = tmp[:2*binary.MaxVarintLen64]
		if x := footerOffset - pos; x < int64(len(tmp)) {
			tmp = tmp[:int(x)]
		}

		if _, err := r.ReadAt(tmp, pos); err != nil {
			return nil, err
		}

		u1, n := binary.Uvarint(tmp[0:])
		pos += int64(n)

		u2, n := binary.Uvarint(tmp[n:])
		pos += int64(n)

		info.MaxKey += u1
		info.Offset += int64(u2)
		index = append(index, info)
	}

	return &Reader{
		r: r,

		index:       index,
		indexOffset: indexOffset,
	}, nil
}

// NumBlocks returns the number of stored blocks.
func (r *Reader) NumBlocks() int {
	return len(r.index)
}

// FindBlock returns an iterator over the block that may contain the
// given cell. The iterator of the last block is returned when the cell
// is beyond the stored range.
func (r *Reader) FindBlock(cell raster.Cell) (*Iterator, error) {
	if len(r.index) == 0 {
		return &Iterator{parent: r}, nil
	}

	key := cellKey(cell)
	blockNum := sort.Search(len(r.index), func(i int) bool {
		return r.index[i].MaxKey >= key
	})
	if blockNum >= len(r.index) {
		blockNum = len(r.index) - 1
	}
	return r.readBlock(blockNum)
}

func (r *Reader) readBlock(blockNum int) (*Iterator, error) {
	min := r.index[blockNum].Offset
	max := r.indexOffset
	if next := blockNum + 1; next < len(r.index) {
		max = r.index[next].Offset
	}

	raw := fetchBuffer(int(max - min))
	if _, err := r.r.ReadAt(raw, min); err != nil {
		releaseBuffer(raw)
		return nil, err
	}

	var buf []byte
	switch maxPos := len(raw) - 1; raw[maxPos] {
	case blockNoCompression:
		buf = raw[:maxPos]
	case blockSnappyCompression:
		defer releaseBuffer(raw)

		sz, err := snappy.DecodedLen(raw[:maxPos])
		if err != nil {
			return nil, err
		}

		pln := fetchBuffer(sz)
		res, err := snappy.Decode(pln, raw[:maxPos])
		if err != nil {
			releaseBuffer(pln)
			return nil, err
		}
		buf = res
	default:
		releaseBuffer(raw)
		return nil, errInvalidCompression
	}

	eob := len(buf) - 4
	numEntries := int(binary.LittleEndian.Uint32(buf[eob:]))
	return &Iterator{
		parent:     r,
		blockNum:   blockNum,
		numEntries: numEntries,
		buf:        buf[:eob],
	}, nil
}

// --------------------------------------------------------------------

// Iterator is a block iterator returned by the Reader.
type Iterator struct {
	parent     *Reader
	blockNum   int // block number
	numEntries int // total number of entries in the block

	buf    []byte // block buffer
	bufOff int    // number of buffer bytes read

	key   uint64
	value []byte
	err   error
}

// Next advances the cursor to the next entry.
func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}

	// read cell key
	if i.bufOff+1 > len(i.buf) {
		return false
	}
	key, n := binary.Uvarint(i.buf[i.bufOff:])
	i.key += key
	i.bufOff += n

	// read value length
	if i.bufOff+1 > len(i.buf) {
		return false
	}
	vln, n := binary.Uvarint(i.buf[i.bufOff:])
	i.bufOff += n

	// read value
	if i.bufOff+int(vln) > len(i.buf) {
		return false
	}
	i.value = i.buf[i.bufOff : i.bufOff+int(vln)]
	i.bufOff += int(vln)

	return true
}

// Seek advances the cursor to the first entry at or after the given
// cell in row-major order.
func (i *Iterator) Seek(cell raster.Cell) bool {
	key := cellKey(cell)
	if key >= i.key {
		for i.Next() {
			if i.key >= key {
				return true
			}
		}
	}
	return false
}

// NextBlock jumps to the next block, returns true if successful.
func (i *Iterator) NextBlock() bool {
	return i.advanceBlock(i.blockNum + 1)
}

// PrevBlock jumps to the previous block, returns true if successful.
func (i *Iterator) PrevBlock() bool {
	return i.advanceBlock(i.blockNum - 1)
}

func (i *Iterator) advanceBlock(blockNum int) bool {
	if i.err != nil {
		return false
	}

	if blockNum < 0 || blockNum >= len(i.parent.index) {
		return false
	}

	j, err := i.parent.readBlock(blockNum)
	if err != nil {
		i.err = err
		return false
	}

	i.Release()
	*i = *j
	return true
}

// Cell returns the cell of the current entry.
func (i *Iterator) Cell() raster.Cell {
	return keyCell(i.key)
}

// Value returns the value of the current entry. Please note that
// values are temporary buffers and must be copied if used beyond the
// next Next() or Release() function call.
func (i *Iterator) Value() []byte {
	return i.value
}

// Len returns the number of entries in the current block.
func (i *Iterator) Len() int {
	return i.numEntries
}

// Err returns iterator errors.
func (i *Iterator) Err() error {
	return i.err
}

// Release releases the iterator. It must not be used once this method
// is called.
func (i *Iterator) Release() {
	releaseBuffer(i.buf)
}
