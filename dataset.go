package sweep

import "fmt"

// DataSet is the owning container for the arrays of one measurement:
// an arena of DataArrays keyed by array ID. Set-array references
// resolve through the arena, so sibling arrays can reference each
// other without owning pointers.
type DataSet struct {
	location string
	arrays   map[string]*DataArray
	order    []string
}

// DataSetOption configures a DataSet during creation.
type DataSetOption func(*DataSet)

// WithLocation records where the dataset lives, for snapshots and
// progress reporting. The dataset itself never touches the location.
func WithLocation(location string) DataSetOption {
	return func(d *DataSet) {
		d.location = location
	}
}

// NewDataSet creates an empty dataset.
func NewDataSet(opts ...DataSetOption) *DataSet {
	d := &DataSet{
		arrays: make(map[string]*DataArray),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Location returns the dataset's recorded location.
func (d *DataSet) Location() string { return d.location }

// Add takes ownership of the array and stores it in the arena. Adding
// an array that already belongs to this dataset is a no-op; an array
// owned by a different dataset is rejected with ErrOwnershipConflict.
// A rejected array is left untouched.
func (d *DataSet) Add(a *DataArray) error {
	if existing, ok := d.arrays[a.ArrayID()]; ok {
		if existing == a {
			return nil
		}
		return fmt.Errorf("duplicate array id %q", a.ArrayID())
	}
	if err := a.attach(d); err != nil {
		return err
	}
	d.arrays[a.ArrayID()] = a
	d.order = append(d.order, a.ArrayID())
	return nil
}

// Array looks up an array by ID.
func (d *DataSet) Array(id string) (*DataArray, bool) {
	a, ok := d.arrays[id]
	return a, ok
}

// Arrays returns all arrays in insertion order.
func (d *DataSet) Arrays() []*DataArray {
	out := make([]*DataArray, len(d.order))
	for i, id := range d.order {
		out[i] = d.arrays[id]
	}
	return out
}

// Len returns the number of arrays in the dataset.
func (d *DataSet) Len() int { return len(d.order) }

// SetArraysOf resolves an array's set-array references through the
// arena, outermost first.
func (d *DataSet) SetArraysOf(a *DataArray) ([]*DataArray, error) {
	ids := a.SetArrayIDs()
	out := make([]*DataArray, len(ids))
	for i, id := range ids {
		sa, ok := d.arrays[id]
		if !ok {
			return nil, fmt.Errorf("set array %q not in dataset", id)
		}
		out[i] = sa
	}
	return out, nil
}

// FractionComplete reports overall progress as the mean of the
// per-array fractions, 0 for an empty dataset.
func (d *DataSet) FractionComplete() float64 {
	if len(d.order) == 0 {
		return 0.0
	}
	total := 0.0
	for _, id := range d.order {
		total += d.arrays[id].FractionComplete()
	}
	return total / float64(len(d.order))
}

// ClearSave makes every array look unsaved so a relocated or copied
// dataset gets rewritten in full.
func (d *DataSet) ClearSave() {
	for _, id := range d.order {
		d.arrays[id].ClearSave()
	}
}

// Snapshot returns the dataset's metadata mapping, aggregating the
// per-array snapshots. No array contents are included.
func (d *DataSet) Snapshot() map[string]any {
	arrays := make(map[string]any, len(d.order))
	for _, id := range d.order {
		arrays[id] = d.arrays[id].Snapshot()
	}
	return map[string]any{
		classKey:   "sweep.DataSet",
		"location": d.location,
		"arrays":   arrays,
	}
}
