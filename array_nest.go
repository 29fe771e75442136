package sweep

import (
	"fmt"
	"iter"

	"github.com/scigolib/sweep/internal/buffer"
	"github.com/scigolib/sweep/internal/utils"
)

// Nest adds one outer dimension of the given size with this array as
// its own setpoint. Only valid on an array with no set arrays yet: an
// array that is already nested cannot become a bare setpoint.
//
// Returns the array itself so nesting calls can be chained, innermost
// dimension first.
func (a *DataArray) Nest(size int) (*DataArray, error) {
	return a.nest(size, 0, nil, false)
}

// NestWith adds one outer dimension of the given size under an outer
// loop: actionIndex is the array's action position within that loop and
// setArray the array of the loop's setpoints. A nil setArray behaves
// like Nest with an action index recorded.
func (a *DataArray) NestWith(size, actionIndex int, setArray *DataArray) (*DataArray, error) {
	return a.nest(size, actionIndex, setArray, true)
}

func (a *DataArray) nest(size, actionIndex int, setArray *DataArray, hasAction bool) (*DataArray, error) {
	if size < 1 {
		return nil, fmt.Errorf("nest: dimension size %d: %w", size, ErrShapeMismatch)
	}
	if a.buf != nil && !a.preset {
		return nil, fmt.Errorf("nest %s: only preset arrays can be nested after data is initialized: %w",
			a, ErrInvalidNesting)
	}

	ref := a.arrayID
	if setArray != nil {
		ref = setArray.ArrayID()
	} else if len(a.setArrays) > 0 {
		return nil, fmt.Errorf("nest: a setpoint array must be its own inner loop: %w", ErrInvalidNesting)
	}

	newShape := append([]int{size}, a.shape...)

	// Preset data is copied into every slice of the new outer dimension.
	var nested *buffer.Buffer
	if a.preset && a.buf != nil {
		nb, err := buffer.New(newShape)
		if err != nil {
			return nil, err
		}
		inner := a.buf.Values()
		out := nb.Values()
		for i := 0; i < size; i++ {
			copy(out[i*len(inner):], inner)
		}
		nested = nb
	}

	a.shape = newShape
	if hasAction {
		a.actionIndices = append([]int{actionIndex}, a.actionIndices...)
	}
	a.setArrays = append([]string{ref}, a.setArrays...)
	if nested != nil {
		a.buf = nested
		a.modified = Range{Low: 0, High: nested.Size() - 1}
		a.hasModified = true
	}

	return a, nil
}

// InitData ensures the backing buffer exists, allocating and clearing
// it to NaN if needed. Idempotent: an existing buffer is only checked
// against the declared shape.
func (a *DataArray) InitData() error {
	if a.buf != nil {
		if !equalShape(a.buf.Shape(), a.shape) {
			return fmt.Errorf("init: buffer shape %v does not match declared shape %v: %w",
				a.buf.Shape(), a.shape, ErrShapeMismatch)
		}
		return nil
	}

	b, err := buffer.New(a.shape)
	if err != nil {
		return utils.WrapError("init failed", err)
	}
	b.FillNaN()
	a.buf = b
	return nil
}

// InitDataFrom initializes the backing buffer from existing values,
// marking the array as preset so it can still be nested. A nil shape
// treats vals as one-dimensional. The values are copied.
func (a *DataArray) InitDataFrom(vals []float64, shape []int) error {
	if shape == nil {
		shape = []int{len(vals)}
	}
	if a.shape != nil && !equalShape(a.shape, shape) {
		return fmt.Errorf("init: preset data shape %v does not match declared shape %v: %w",
			shape, a.shape, ErrShapeMismatch)
	}

	b, err := buffer.FromValues(append([]float64(nil), vals...), shape)
	if err != nil {
		return fmt.Errorf("init: %v: %w", err, ErrShapeMismatch)
	}

	a.buf = b
	a.shape = append([]int(nil), shape...)
	a.preset = true
	if b.Size() > 0 {
		a.modified = Range{Low: 0, High: b.Size() - 1}
		a.hasModified = true
	}
	return nil
}

// InitDataSeq initializes the backing buffer from a one-shot sequence
// of values, collected in order.
func (a *DataArray) InitDataSeq(seq iter.Seq[float64], shape []int) error {
	var vals []float64
	for v := range seq {
		vals = append(vals, v)
	}
	return a.InitDataFrom(vals, shape)
}

// Clear fills the buffer with the not-a-number sentinel.
func (a *DataArray) Clear() error {
	if a.buf == nil {
		return fmt.Errorf("clear: %w", ErrUninitialized)
	}
	a.buf.FillNaN()
	return nil
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
