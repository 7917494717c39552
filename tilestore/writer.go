package tilestore

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/bsm/rasterkit/raster"
)

// Writer represents a tilestore Writer.
type Writer struct {
	w io.Writer
	o Options

	block blockInfo // the current block info
	blen  int       // the number of entries in the current block
	n     int       // the total number of entries

	buf []byte // plain buffer
	snp []byte // snappy buffer
	tmp []byte // scratch buffer

	index []blockInfo
}

// NewWriter wraps a writer and returns a tilestore Writer.
func NewWriter(w io.Writer, o *Options) *Writer {
	return &Writer{
		w:   w,
		o:   *o.norm(),
		tmp: make([]byte, 2*binary.MaxVarintLen64),
	}
}

// Append appends a cell with an optional value to the store. Cells
// must be appended in ascending row-major order.
func (w *Writer) Append(cell raster.Cell, data []byte) error {
	if w.tmp == nil {
		return errClosed
	}

	key := cellKey(cell)
	if w.n != 0 && key <= w.block.MaxKey {
		return fmt.Errorf("tilestore: attempted an out-of-order append, %v must be after %v", cell, keyCell(w.block.MaxKey))
	}

	if len(w.buf) != 0 && len(w.buf)+len(data)+2*binary.MaxVarintLen64 > w.o.BlockSize {
		if err := w.flush(); err != nil {
			return err
		}
	}

	enc := key
	if w.blen != 0 { // apply delta-encoding
		enc = key - w.block.MaxKey
	}

	n := binary.PutUvarint(w.tmp[0:], enc)
	n += binary.PutUvarint(w.tmp[n:], uint64(len(data)))
	w.buf = append(w.buf, w.tmp[:n]...)
	w.buf = append(w.buf, data...)

	w.blen++
	w.n++
	w.block.MaxKey = key

	return nil
}

// Close closes the writer.
func (w *Writer) Close() error {
	if w.tmp == nil {
		return errClosed
	}
	if err := w.flush(); err != nil {
		return err
	}

	indexOffset := w.block.Offset
	if err := w.writeIndex(); err != nil {
		return err
	}

	if err := w.writeFooter(indexOffset); err != nil {
		return err
	}
	w.tmp = nil
	return nil
}

func (w *Writer) writeIndex() error {
	var prev blockInfo

	for i, ent := range w.index {
		key := ent.MaxKey
		off := ent.Offset
		if i > 0 { // delta-encode
			key -= prev.MaxKey
			off -= prev.Offset
		}
		prev = ent

		n := binary.PutUvarint(w.tmp[0:], key)
		n += binary.PutUvarint(w.tmp[n:], uint64(off))

		if err := w.writeRaw(w.tmp[:n]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFooter(indexOffset int64) error {
	binary.LittleEndian.PutUint64(w.tmp[0:], uint64(indexOffset))
	if err := w.writeRaw(w.tmp[:8]); err != nil {
		return err
	}
	if err := w.writeRaw(magic); err != nil {
		return err
	}
	return nil
}

func (w *Writer) writeRaw(p []byte) error {
	n, err := w.w.Write(p)
	w.block.Offset += int64(n)
	return err
}

func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}

	binary.LittleEndian.PutUint32(w.tmp, uint32(w.blen))
	w.buf = append(w.buf, w.tmp[:4]...)

	var block []byte
	switch w.o.Compression {
	case SnappyCompression:
		w.snp = snappy.Encode(w.snp[:cap(w.snp)], w.buf)
		if len(w.snp) < len(w.buf)-len(w.buf)/8 {
			block = append(w.snp, blockSnappyCompression)
		} else {
			block = append(w.buf, blockNoCompression)
		}
	default:
		block = append(w.buf, blockNoCompression)
	}

	w.index = append(w.index, w.block)
	w.buf = w.buf[:0]
	w.blen = 0

	return w.writeRaw(block)
}
