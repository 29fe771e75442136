package sweep

import (
	"fmt"

	"github.com/scigolib/sweep/internal/buffer"
)

// Set writes vals into the region addressed by sel, updating the
// modified range first. The selection may address fewer dimensions
// than the array has; unaddressed dimensions are spanned in full. vals
// must supply one value per selected element in row-major order, or a
// single value to broadcast across the region.
//
// Writes through Values() bypass this tracking; the modified range is
// then no longer accurate.
func (a *DataArray) Set(sel []Index, vals []float64) error {
	if a.buf == nil {
		return fmt.Errorf("set: %w", ErrUninitialized)
	}

	spans, total, err := resolveSelection(sel, a.shape)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	if len(vals) != total && len(vals) != 1 {
		return fmt.Errorf("set: selection covers %d elements, got %d values: %w",
			total, len(vals), ErrShapeMismatch)
	}

	minIdx := make([]int, len(spans))
	maxIdx := make([]int, len(spans))
	for d, s := range spans {
		minIdx[d] = s.first
		maxIdx[d] = s.last()
	}
	minFlat, err := buffer.Ravel(minIdx, a.shape)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	maxFlat, err := buffer.Ravel(maxIdx, a.shape)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	a.updateModifiedRange(minFlat, maxFlat)

	// Row-major walk over the realized selection.
	counter := make([]int, len(spans))
	pos := make([]int, len(spans))
	k := 0
	for {
		for d, s := range spans {
			pos[d] = s.first + counter[d]*s.step
		}
		flat, _ := buffer.Ravel(pos, a.shape)
		v := vals[0]
		if len(vals) > 1 {
			v = vals[k]
		}
		_ = a.buf.SetAt(flat, v)
		k++

		d := len(counter) - 1
		for ; d >= 0; d-- {
			counter[d]++
			if counter[d] < spans[d].count {
				break
			}
			counter[d] = 0
		}
		if d < 0 {
			break
		}
	}
	return nil
}

// SetScalar writes one value at the given indices. Fewer indices than
// the array has dimensions broadcast the value over the addressed
// sub-slice.
func (a *DataArray) SetScalar(val float64, indices ...int) error {
	sel := make([]Index, len(indices))
	for i, ix := range indices {
		sel[i] = At(ix)
	}
	return a.Set(sel, []float64{val})
}

// Get reads the element at the given full-rank index. A direct
// passthrough to the buffer, no tracking.
func (a *DataArray) Get(indices ...int) (float64, error) {
	if a.buf == nil {
		return 0, fmt.Errorf("get: %w", ErrUninitialized)
	}
	flat, err := a.buf.Ravel(indices)
	if err != nil {
		return 0, fmt.Errorf("get: %w", err)
	}
	return a.buf.At(flat)
}

// Values exposes the raw backing slice in row-major order, nil before
// initialization. Writes through it are invisible to modified-range
// tracking; this is the sanctioned escape hatch for bulk access.
func (a *DataArray) Values() []float64 {
	if a.buf == nil {
		return nil
	}
	return a.buf.Values()
}

// IndexFill selects how FlatIndex completes a partial index.
type IndexFill int

const (
	// FillMin pads unaddressed dimensions with 0, giving the first flat
	// index of the addressed slice.
	FillMin IndexFill = iota
	// FillMax pads unaddressed dimensions with size-1, giving the last
	// flat index of the addressed slice.
	FillMax
)

// FlatIndex converts a possibly partial multi-dimensional index into
// the row-major flat index of the slice it addresses.
func (a *DataArray) FlatIndex(indices []int, fill IndexFill) (int, error) {
	if len(indices) > len(a.shape) {
		return 0, fmt.Errorf("flat index: %d indices for %d dimensions: %w",
			len(indices), len(a.shape), ErrShapeMismatch)
	}
	full := append([]int(nil), indices...)
	for d := len(indices); d < len(a.shape); d++ {
		if fill == FillMax {
			full = append(full, a.shape[d]-1)
		} else {
			full = append(full, 0)
		}
	}
	return buffer.Ravel(full, a.shape)
}

// ModifiedRange returns the minimal flat-index interval covering all
// writes not yet marked saved. The second return is false when no
// unsaved writes exist.
func (a *DataArray) ModifiedRange() (Range, bool) {
	return a.modified, a.hasModified
}

func (a *DataArray) updateModifiedRange(low, high int) {
	if a.hasModified {
		if low < a.modified.Low {
			a.modified.Low = low
		}
		if high > a.modified.High {
			a.modified.High = high
		}
		return
	}
	a.modified = Range{Low: low, High: high}
	a.hasModified = true
}

// MarkSaved records that everything up to lastSaved has been
// persisted, shrinking or clearing the modified range accordingly.
// Called by the persistence layer after it flushes; the array never
// advances the cursor itself.
func (a *DataArray) MarkSaved(lastSaved int) {
	if a.hasModified {
		if lastSaved >= a.modified.High {
			a.hasModified = false
		} else if lastSaved+1 > a.modified.Low {
			a.modified.Low = lastSaved + 1
		}
	}
	a.lastSaved = lastSaved
	a.hasSaved = true
}

// LastSavedIndex returns the highest flat index known persisted. The
// second return is false when nothing has been marked saved.
func (a *DataArray) LastSavedIndex() (int, bool) {
	return a.lastSaved, a.hasSaved
}

// ClearSave makes the array look unsaved again, re-expanding the
// modified range over everything previously saved. Used when a dataset
// is moved or copied and must be rewritten in full.
func (a *DataArray) ClearSave() {
	// A cursor below 0 means nothing was ever persisted; there is no
	// range to resurrect.
	if a.hasSaved && a.lastSaved >= 0 {
		a.updateModifiedRange(0, a.lastSaved)
	}
	a.hasSaved = false
}

// FractionComplete reports how much of the array has been touched, as
// the highest flat index reached by any cursor (write, save or sync)
// plus one, over the total size. Sparse or out-of-order fills can
// overstate progress; callers rely on this approximation.
func (a *DataArray) FractionComplete() float64 {
	if a.buf == nil || a.buf.Size() == 0 {
		return 0.0
	}

	lastIndex := -1
	if a.hasSaved && a.lastSaved > lastIndex {
		lastIndex = a.lastSaved
	}
	if a.hasModified && a.modified.High > lastIndex {
		lastIndex = a.modified.High
	}
	if a.syncedValid && a.synced > lastIndex {
		lastIndex = a.synced
	}

	return float64(lastIndex+1) / float64(a.buf.Size())
}
