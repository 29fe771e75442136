package sweep

import "fmt"

// Changes is one contiguous run of newly available values, flat
// row-major order with no gaps. Start and Stop are inclusive flat
// bounds. The producer side computes it with GetChanges; a structurally
// identical consumer-side array applies it with ApplyChanges, with the
// caller transporting the tuple between the two.
type Changes struct {
	Start  int
	Stop   int
	Values []float64
}

// SyncedIndex returns the consumer-side high-water mark: the highest
// flat index delivered through ApplyChanges. The first call allocates
// the buffer if needed and materializes the cursor at -1.
func (a *DataArray) SyncedIndex() (int, error) {
	if !a.syncedValid {
		if err := a.InitData(); err != nil {
			return 0, err
		}
		a.synced = -1
		a.syncedValid = true
	}
	return a.synced, nil
}

// GetChanges returns the run of values past since (exclusive) up to
// the highest flat index with known data, whichever of the save cursor
// and the modified range reaches further. Returns nil when there is
// nothing new.
func (a *DataArray) GetChanges(since int) (*Changes, error) {
	latest := -1
	if a.hasSaved && a.lastSaved > latest {
		latest = a.lastSaved
	}
	if a.hasModified && a.modified.High > latest {
		latest = a.modified.High
	}
	if latest <= since {
		return nil, nil
	}
	if a.buf == nil {
		return nil, fmt.Errorf("get changes: %w", ErrUninitialized)
	}

	start := since + 1
	if start < 0 {
		start = 0
	}
	if latest >= a.buf.Size() {
		return nil, fmt.Errorf("get changes: index %d beyond array size %d", latest, a.buf.Size())
	}

	return &Changes{
		Start:  start,
		Stop:   latest,
		Values: append([]float64(nil), a.buf.Values()[start:latest+1]...),
	}, nil
}

// ApplyChanges writes vals at flat positions start through stop and
// advances the sync cursor to stop. The consumer side of the sync
// protocol; no state is shared with the producer beyond the
// transmitted run.
func (a *DataArray) ApplyChanges(start, stop int, vals []float64) error {
	if a.buf == nil {
		return fmt.Errorf("apply changes: %w", ErrUninitialized)
	}
	if len(vals) != stop-start+1 {
		return fmt.Errorf("apply changes: run [%d, %d] needs %d values, got %d: %w",
			start, stop, stop-start+1, len(vals), ErrShapeMismatch)
	}
	if start < 0 || stop >= a.buf.Size() {
		return fmt.Errorf("apply changes: run [%d, %d] out of range [0, %d)",
			start, stop, a.buf.Size())
	}

	raw := a.buf.Values()
	copy(raw[start:stop+1], vals)
	a.synced = stop
	a.syncedValid = true
	return nil
}
