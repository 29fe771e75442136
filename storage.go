// Copyright (c) 2025 SciGo Sweep Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package sweep

import (
	"io"

	"github.com/scigolib/sweep/internal/writer"
)

// ArrayWriter is a persistence consumer for one array: each Sync
// flushes the current modified range to a flat little-endian value
// store and advances the array's save cursor.
//
// The store layout is a bare float64 column, value i at byte offset
// 8*i. The writer does not own the underlying stream.
type ArrayWriter struct {
	arr *DataArray
	fw  *writer.FlatWriter
}

// NewArrayWriter binds a to a value store.
func NewArrayWriter(a *DataArray, ws io.WriteSeeker) *ArrayWriter {
	return &ArrayWriter{
		arr: a,
		fw:  writer.NewFlatWriter(ws),
	}
}

// Sync writes the array's unsaved run, then marks it saved. A no-op
// when nothing is modified.
func (w *ArrayWriter) Sync() error {
	r, ok := w.arr.ModifiedRange()
	if !ok {
		return nil
	}

	vals := w.arr.Values()[r.Low : r.High+1]
	if err := w.fw.WriteRange(r.Low, vals); err != nil {
		return err
	}

	w.arr.MarkSaved(r.High)
	return nil
}

// OpenStore supplies the value store for one array during dataset
// flushing, keyed by array ID.
type OpenStore func(arrayID string) (io.WriteSeeker, error)

// DataSetWriter flushes every array of a dataset incrementally.
type DataSetWriter struct {
	writers []*ArrayWriter
}

// NewDataSetWriter opens one store per array currently in the dataset.
func NewDataSetWriter(d *DataSet, open OpenStore) (*DataSetWriter, error) {
	arrays := d.Arrays()
	writers := make([]*ArrayWriter, 0, len(arrays))
	for _, a := range arrays {
		ws, err := open(a.ArrayID())
		if err != nil {
			return nil, err
		}
		writers = append(writers, NewArrayWriter(a, ws))
	}
	return &DataSetWriter{writers: writers}, nil
}

// Sync flushes all arrays, stopping at the first failure.
func (w *DataSetWriter) Sync() error {
	for _, aw := range w.writers {
		if err := aw.Sync(); err != nil {
			return err
		}
	}
	return nil
}
