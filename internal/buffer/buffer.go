// Package buffer implements the float64 backing store for measurement
// arrays: an N-dimensional buffer addressed in row-major flat order.
package buffer

import (
	"fmt"
	"math"

	"github.com/scigolib/sweep/internal/utils"
)

// Buffer is an N-dimensional float64 array. Values are stored in
// row-major order: the last (innermost) dimension varies fastest.
// Storage is always float64 so cleared slots can hold the NaN sentinel.
type Buffer struct {
	shape []int
	data  []float64
}

// New allocates a zeroed buffer of the given shape. The empty shape
// allocates a scalar (single element) buffer.
func New(shape []int) (*Buffer, error) {
	size, err := utils.TotalSize(shape)
	if err != nil {
		return nil, utils.WrapError("buffer alloc failed", err)
	}
	return &Buffer{
		shape: append([]int(nil), shape...),
		data:  make([]float64, size),
	}, nil
}

// FromValues builds a buffer around vals, which must have exactly as
// many elements as the shape describes. The slice is adopted, not
// copied.
func FromValues(vals []float64, shape []int) (*Buffer, error) {
	size, err := utils.TotalSize(shape)
	if err != nil {
		return nil, utils.WrapError("buffer alloc failed", err)
	}
	if len(vals) != size {
		return nil, fmt.Errorf("shape %v needs %d values, got %d", shape, size, len(vals))
	}
	return &Buffer{
		shape: append([]int(nil), shape...),
		data:  vals,
	}, nil
}

// Shape returns a copy of the buffer's dimension sizes, outermost first.
func (b *Buffer) Shape() []int {
	out := make([]int, len(b.shape))
	copy(out, b.shape)
	return out
}

// Size returns the total number of elements.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Values exposes the raw backing slice. Writes through it bypass all
// modification tracking in the owning array.
func (b *Buffer) Values() []float64 {
	return b.data
}

// FillNaN overwrites every element with the not-a-number sentinel.
func (b *Buffer) FillNaN() {
	nan := math.NaN()
	for i := range b.data {
		b.data[i] = nan
	}
}

// At returns the element at the given flat index.
func (b *Buffer) At(flat int) (float64, error) {
	if flat < 0 || flat >= len(b.data) {
		return 0, fmt.Errorf("flat index %d out of range [0, %d)", flat, len(b.data))
	}
	return b.data[flat], nil
}

// SetAt stores v at the given flat index.
func (b *Buffer) SetAt(flat int, v float64) error {
	if flat < 0 || flat >= len(b.data) {
		return fmt.Errorf("flat index %d out of range [0, %d)", flat, len(b.data))
	}
	b.data[flat] = v
	return nil
}

// Ravel converts a full multi-dimensional index into the flat index of
// this buffer.
func (b *Buffer) Ravel(indices []int) (int, error) {
	return Ravel(indices, b.shape)
}

// Unravel converts a flat index into the multi-dimensional index of
// this buffer.
func (b *Buffer) Unravel(flat int) ([]int, error) {
	return Unravel(flat, b.shape)
}

// Ravel converts a multi-dimensional index into a row-major flat index
// for the given shape. The index must address every dimension.
func Ravel(indices, shape []int) (int, error) {
	if len(indices) != len(shape) {
		return 0, fmt.Errorf("index has %d dimensions, shape has %d", len(indices), len(shape))
	}
	flat := 0
	for d, idx := range indices {
		if idx < 0 || idx >= shape[d] {
			return 0, fmt.Errorf("index %d out of range [0, %d) in dimension %d", idx, shape[d], d)
		}
		flat = flat*shape[d] + idx
	}
	return flat, nil
}

// Unravel converts a row-major flat index into a multi-dimensional
// index for the given shape.
func Unravel(flat int, shape []int) ([]int, error) {
	size, err := utils.TotalSize(shape)
	if err != nil {
		return nil, err
	}
	if flat < 0 || flat >= size {
		return nil, fmt.Errorf("flat index %d out of range [0, %d)", flat, size)
	}
	indices := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		indices[d] = flat % shape[d]
		flat /= shape[d]
	}
	return indices, nil
}
