package tilestore

import (
	"errors"
	"sync"

	"github.com/bsm/rasterkit/raster"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
)

var magic = []byte{142, 12, 57, 218, 101, 74, 33, 190}

var (
	errClosed             = errors.New("tilestore: is closed")
	errBadMagic           = errors.New("tilestore: bad magic byte sequence")
	errInvalidCompression = errors.New("tilestore: invalid compression setting")
)

const (
	blockNoCompression     = 0
	blockSnappyCompression = 1
)

// --------------------------------------------------------------------

type Compression byte

func (c Compression) isValid() bool {
	return c >= NoCompression && c <= unknownCompression
}

const (
	NoCompression Compression = iota + 1
	SnappyCompression
	unknownCompression
)

type Options struct {
	// The size of a block. Must be >= 1KiB. Default: 16KiB.
	BlockSize int

	// The compression algorithm to use. Default: SnappyCompression.
	Compression Compression
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.BlockSize < 1 {
		oo.BlockSize = 16 * KiB
	}
	if !oo.Compression.isValid() {
		oo.Compression = SnappyCompression
	}
	return &oo
}

// --------------------------------------------------------------------

// cellKey packs a cell into a row-major sortable key. Coordinates are
// offset into unsigned space so that numeric key order equals (Y, X)
// order across negative coordinates.
func cellKey(c raster.Cell) uint64 {
	return uint64(uint32(c.Y)^1<<31)<<32 | uint64(uint32(c.X)^1<<31)
}

func keyCell(key uint64) raster.Cell {
	return raster.Cell{
		X: int32(uint32(key) ^ 1<<31),
		Y: int32(uint32(key>>32) ^ 1<<31),
	}
}

type blockInfo struct {
	MaxKey uint64 // maximum cell key in the block
	Offset int64  // block offset position
}

// --------------------------------------------------------------------

var bufPool sync.Pool

func fetchBuffer(sz int) []byte {
	if v := bufPool.Get(); v != nil {
		if p := v.([]byte); sz <= cap(p) {
			return p[:sz]
		}
	}
	return make([]byte, sz)
}

func releaseBuffer(p []byte) {
	if cap(p) != 0 {
		bufPool.Put(p)
	}
}
