// Package writer provides the flat value store used for incremental
// array saves.
//
// The store is a bare column of little-endian float64 values: the value
// at flat index i lives at byte offset 8*i. A persistence layer flushes
// an array's modified range by writing the contiguous run of values at
// the run's start offset; slots never written remain zero (or whatever
// the underlying medium held).
//
// Not thread-safe: designed for the single-threaded measurement loop.
package writer

import (
	"fmt"
	"io"

	"github.com/scigolib/sweep/internal/utils"
)

// ValueSize is the encoded size of one stored value in bytes.
const ValueSize = 8

// FlatWriter writes float64 runs into a seekable store at flat-index
// offsets.
type FlatWriter struct {
	ws io.WriteSeeker
}

// NewFlatWriter returns a FlatWriter over ws. The writer does not own
// ws; closing it is the caller's responsibility.
func NewFlatWriter(ws io.WriteSeeker) *FlatWriter {
	return &FlatWriter{ws: ws}
}

// WriteRange writes vals as a contiguous run starting at flat index
// start. An empty run is a no-op.
func (w *FlatWriter) WriteRange(start int, vals []float64) error {
	if start < 0 {
		return fmt.Errorf("negative start index %d", start)
	}
	if len(vals) == 0 {
		return nil
	}

	buf := utils.GetBuffer(ValueSize * len(vals))
	defer utils.ReleaseBuffer(buf)
	utils.EncodeFloat64s(buf, vals)

	if _, err := w.ws.Seek(int64(start)*ValueSize, io.SeekStart); err != nil {
		return utils.WrapError("value store seek failed", err)
	}
	if _, err := w.ws.Write(buf); err != nil {
		return utils.WrapError("value store write failed", err)
	}
	return nil
}
