package tilestore

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bsm/rasterkit/raster"
)

var b64std = base64.StdEncoding

// TabWriter writes cell tables as tab-separated lines, one cell per
// line: "x<TAB>y<TAB>base64(value)". Files ending in .gz are
// transparently gzipped, "-" writes to stdout.
type TabWriter struct {
	f *os.File
	z *gzip.Writer

	buf []byte
}

// AppendTab opens a TabWriter for appending.
func AppendTab(fname string) (*TabWriter, error) {
	if fname == "-" {
		return &TabWriter{}, nil
	}

	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}

	w := &TabWriter{f: f}
	if strings.HasSuffix(fname, ".gz") {
		w.z = gzip.NewWriter(f)
	}
	return w, nil
}

// Put stores a cell with a value.
func (w *TabWriter) Put(cell raster.Cell, val []byte) error {
	var out io.Writer
	if w.z != nil {
		out = w.z
	} else if w.f != nil {
		out = w.f
	} else {
		out = os.Stdout
	}

	n := b64std.EncodedLen(len(val))
	if cap(w.buf) < n {
		w.buf = make([]byte, n)
	} else {
		w.buf = w.buf[:n]
	}
	b64std.Encode(w.buf, val)

	if _, err := fmt.Fprintf(out, "%d\t%d\t", cell.X, cell.Y); err != nil {
		return err
	}
	if _, err := out.Write(w.buf); err != nil {
		return err
	}
	if _, err := out.Write([]byte{'\n'}); err != nil {
		return err
	}
	return nil
}

// Close closes the writer.
func (w *TabWriter) Close() error {
	var err error

	if w.z != nil {
		if e := w.z.Close(); e != nil {
			err = e
		}
	}
	if w.f != nil {
		if e := w.f.Close(); e != nil {
			err = e
		}
	} else {
		if e := os.Stdout.Sync(); e != nil {
			err = e
		}
	}
	return err
}

// --------------------------------------------------------------------

// TabReader reads a tab-separated cell table file.
type TabReader struct {
	f  *os.File
	z  *gzip.Reader
	in *bufio.Reader

	stashed struct {
		Cell raster.Cell
		Val  []byte
		Err  error
	}
}

// OpenTab opens a new TabReader iterator, "-" reads from stdin.
func OpenTab(fname string) (*TabReader, error) {
	if fname == "-" {
		return &TabReader{in: bufio.NewReader(os.Stdin)}, nil
	}

	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}

	r := &TabReader{f: f}
	if strings.HasSuffix(fname, ".gz") {
		r.z, err = gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		r.in = bufio.NewReader(r.z)
	} else {
		r.in = bufio.NewReader(r.f)
	}
	return r, nil
}

// Read reads the next cell with all its consecutively stored values.
func (r *TabReader) Read() (raster.Cell, [][]byte, error) {
	cell, val, err := r.readNext()
	if err != nil {
		return raster.Cell{}, nil, err
	}
	vals := [][]byte{val}

	for {
		nextCell, nextVal, nextErr := r.readNext()
		if nextErr != nil {
			r.stashed.Err = nextErr
			break
		}
		if nextCell != cell {
			r.stashed.Cell = nextCell
			r.stashed.Val = nextVal
			break
		}
		vals = append(vals, nextVal)
	}

	return cell, vals, nil
}

func (r *TabReader) readNext() (raster.Cell, []byte, error) {
	if r.stashed.Err != nil || r.stashed.Val != nil {
		val := r.stashed.Val
		r.stashed.Val = nil
		return r.stashed.Cell, val, r.stashed.Err
	}

	line, err := r.in.ReadBytes('\n')
	if err != nil {
		return raster.Cell{}, nil, err
	}

	parts := bytes.SplitN(bytes.TrimSuffix(line, []byte{'\n'}), []byte{'\t'}, 3)
	if len(parts) != 3 {
		return raster.Cell{}, nil, fmt.Errorf("tilestore: bad input %q", line)
	}

	x, err := strconv.ParseInt(string(parts[0]), 10, 32)
	if err != nil {
		return raster.Cell{}, nil, fmt.Errorf("tilestore: bad input %q", line)
	}
	y, err := strconv.ParseInt(string(parts[1]), 10, 32)
	if err != nil {
		return raster.Cell{}, nil, fmt.Errorf("tilestore: bad input %q", line)
	}

	val := parts[2]
	n, err := b64std.Decode(val, parts[2])
	if err != nil {
		return raster.Cell{}, nil, fmt.Errorf("tilestore: bad input %q", line)
	}
	return raster.Cell{X: int32(x), Y: int32(y)}, val[:n], nil
}

// Close closes the reader.
func (r *TabReader) Close() error {
	var err error

	if r.z != nil {
		if e := r.z.Close(); e != nil {
			err = e
		}
	}
	if r.f != nil {
		if e := r.f.Close(); e != nil {
			err = e
		}
	}
	return err
}
