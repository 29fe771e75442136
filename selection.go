package sweep

import "fmt"

// Index addresses one dimension of an array in a write selection:
// either a single position or a strided span of positions. Negative
// positions count back from the end of the dimension, as in the usual
// numeric-array conventions.
type Index struct {
	kind  indexKind
	point int
	start int
	stop  int
	step  int
}

type indexKind uint8

const (
	pointIndex indexKind = iota
	spanIndex
	allIndex
)

// At selects the single position i.
func At(i int) Index {
	return Index{kind: pointIndex, point: i}
}

// Span selects the half-open range [start, stop) with step 1.
func Span(start, stop int) Index {
	return Index{kind: spanIndex, start: start, stop: stop, step: 1}
}

// SpanStep selects every step-th position in [start, stop). The step
// must be positive.
func SpanStep(start, stop, step int) Index {
	return Index{kind: spanIndex, start: start, stop: stop, step: step}
}

// All selects every position in the dimension.
func All() Index {
	return Index{kind: allIndex}
}

// dimSpan is the realized selection in one dimension: positions
// first, first+step, ..., first+(count-1)*step.
type dimSpan struct {
	first int
	step  int
	count int
}

// last returns the highest realized position.
func (s dimSpan) last() int {
	return s.first + (s.count-1)*s.step
}

// resolve clamps and normalizes the index against a dimension of size n.
func (ix Index) resolve(n int) (dimSpan, error) {
	switch ix.kind {
	case pointIndex:
		i := ix.point
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return dimSpan{}, fmt.Errorf("index %d out of range for dimension of size %d", ix.point, n)
		}
		return dimSpan{first: i, step: 1, count: 1}, nil

	case allIndex:
		if n == 0 {
			return dimSpan{}, fmt.Errorf("empty dimension")
		}
		return dimSpan{first: 0, step: 1, count: n}, nil

	case spanIndex:
		if ix.step < 1 {
			return dimSpan{}, fmt.Errorf("span step must be positive, got %d", ix.step)
		}
		start, stop := ix.start, ix.stop
		if start < 0 {
			start += n
		}
		if stop < 0 {
			stop += n
		}
		start = clamp(start, 0, n)
		stop = clamp(stop, 0, n)
		if stop <= start {
			return dimSpan{}, fmt.Errorf("empty span [%d, %d)", ix.start, ix.stop)
		}
		count := (stop - start + ix.step - 1) / ix.step
		return dimSpan{first: start, step: ix.step, count: count}, nil

	default:
		return dimSpan{}, fmt.Errorf("unknown index kind %d", ix.kind)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// resolveSelection realizes a selection against shape. Dimensions not
// addressed by sel are spanned in full. Returns one dimSpan per
// dimension and the total number of selected elements.
func resolveSelection(sel []Index, shape []int) ([]dimSpan, int, error) {
	if len(sel) > len(shape) {
		return nil, 0, fmt.Errorf("selection has %d dimensions, array has %d: %w",
			len(sel), len(shape), ErrShapeMismatch)
	}

	spans := make([]dimSpan, len(shape))
	total := 1
	for d := range shape {
		if d < len(sel) {
			s, err := sel[d].resolve(shape[d])
			if err != nil {
				return nil, 0, fmt.Errorf("dimension %d: %v: %w", d, err, ErrShapeMismatch)
			}
			spans[d] = s
		} else {
			if shape[d] == 0 {
				return nil, 0, fmt.Errorf("dimension %d is empty: %w", d, ErrShapeMismatch)
			}
			spans[d] = dimSpan{first: 0, step: 1, count: shape[d]}
		}
		total *= spans[d].count
	}
	return spans, total, nil
}
