// Package sweep provides containers for data recorded in
// multi-dimensional measurement loops. A DataArray holds one named,
// shaped buffer of measured or swept values, tracks which slots have
// been written, and exposes the bookkeeping a persistence or
// replication layer needs to save or mirror it incrementally.
package sweep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/scigolib/sweep/internal/buffer"
	"github.com/scigolib/sweep/internal/utils"
)

// Range is a closed interval of flat indices.
type Range struct {
	Low  int
	High int
}

// DataArray is a container for one parameter in a measurement loop.
//
// A measured array does not hold the setpoint values it was measured
// at; it references the arrays of those parameters through set-array
// IDs, resolvable in the owning DataSet. A freshly created DataArray
// is dimensionless: call Nest or NestWith once per loop dimension,
// innermost first.
//
// If preset data is provided the array can still be nested around it,
// copying the data into every slice of the new outer dimension.
// Otherwise nesting an array that already has data is an error.
type DataArray struct {
	name          string
	fullName      string
	label         string
	units         string
	arrayID       string
	actionIndices []int
	isSetpoint    bool
	setArrays     []string
	snapshotInput map[string]any

	// nil means shape not yet decided; New always resolves it.
	shape []int

	buf    *buffer.Buffer
	preset bool

	dataSet *DataSet

	modified    Range
	hasModified bool
	lastSaved   int
	hasSaved    bool
	synced      int
	syncedValid bool
}

type arrayConfig struct {
	name          string
	fullName      string
	label         string
	units         string
	arrayID       string
	actionIndices []int
	isSetpoint    bool
	setArrays     []string
	shape         []int
	hasShape      bool
	presetVals    []float64
	presetShape   []int
	hasPreset     bool
	parameter     any
	snapshot      map[string]any
}

// Option configures a DataArray during creation.
type Option func(*arrayConfig) error

// WithName sets the array's short name.
func WithName(name string) Option {
	return func(c *arrayConfig) error {
		c.name = name
		return nil
	}
}

// WithFullName sets the array's qualified name. Defaults to the name.
func WithFullName(fullName string) Option {
	return func(c *arrayConfig) error {
		c.fullName = fullName
		return nil
	}
}

// WithLabel sets the axis label. Defaults to the name.
func WithLabel(label string) Option {
	return func(c *arrayConfig) error {
		c.label = label
		return nil
	}
}

// WithUnits sets the physical units of the stored values.
func WithUnits(units string) Option {
	return func(c *arrayConfig) error {
		c.units = units
		return nil
	}
}

// WithArrayID sets the array's identifier, its key in the owning
// dataset's arena. A UUID is generated when no ID is supplied.
func WithArrayID(id string) Option {
	return func(c *arrayConfig) error {
		c.arrayID = id
		return nil
	}
}

// WithShape declares the array's shape up front, outermost dimension
// first.
func WithShape(shape ...int) Option {
	return func(c *arrayConfig) error {
		c.shape = append([]int(nil), shape...)
		c.hasShape = true
		return nil
	}
}

// WithActionIndices records the array's position in the nested action
// tree, outermost first.
func WithActionIndices(indices ...int) Option {
	return func(c *arrayConfig) error {
		c.actionIndices = append([]int(nil), indices...)
		return nil
	}
}

// WithSetArrays references the arrays of independent variables this
// array was recorded against, outermost first.
func WithSetArrays(arrays ...*DataArray) Option {
	return func(c *arrayConfig) error {
		for _, sa := range arrays {
			if sa == nil {
				return fmt.Errorf("nil set array")
			}
			c.setArrays = append(c.setArrays, sa.ArrayID())
		}
		return nil
	}
}

// AsSetpoint marks the array as an independent sweep variable.
func AsSetpoint() Option {
	return func(c *arrayConfig) error {
		c.isSetpoint = true
		return nil
	}
}

// WithPresetData initializes the array from existing values. A nil
// shape treats vals as one-dimensional. A preset array may still be
// nested afterwards.
func WithPresetData(vals []float64, shape []int) Option {
	return func(c *arrayConfig) error {
		c.presetVals = vals
		c.presetShape = shape
		c.hasPreset = true
		return nil
	}
}

// FromParameter seeds metadata from the measured parameter's
// descriptor. The descriptor may implement FullNamer and Snapshotter;
// explicit options always win over descriptor-supplied values.
func FromParameter(p any) Option {
	return func(c *arrayConfig) error {
		c.parameter = p
		return nil
	}
}

// WithSnapshot seeds metadata from a snapshot mapping, overriding any
// snapshot the parameter descriptor would supply.
func WithSnapshot(snapshot map[string]any) Option {
	return func(c *arrayConfig) error {
		c.snapshot = snapshot
		return nil
	}
}

// New creates a DataArray. Metadata not set by an explicit option is
// filled from the parameter descriptor and snapshot mapping, in that
// precedence order; see the package documentation for the recognized
// snapshot keys.
func New(opts ...Option) (*DataArray, error) {
	var cfg arrayConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, utils.WrapError("array create failed", err)
		}
	}

	a := &DataArray{
		name:          cfg.name,
		fullName:      cfg.fullName,
		label:         cfg.label,
		units:         cfg.units,
		arrayID:       cfg.arrayID,
		actionIndices: cfg.actionIndices,
		isSetpoint:    cfg.isSetpoint,
		setArrays:     cfg.setArrays,
	}

	a.seedMetadata(cfg.parameter, cfg.snapshot)

	if a.fullName == "" {
		a.fullName = a.name
	}
	if a.label == "" {
		a.label = a.name
	}
	if a.arrayID == "" {
		a.arrayID = uuid.NewString()
	}

	if cfg.hasShape {
		a.shape = append([]int(nil), cfg.shape...)
	}
	if cfg.hasPreset {
		if err := a.InitDataFrom(cfg.presetVals, cfg.presetShape); err != nil {
			return nil, err
		}
	} else if !cfg.hasShape {
		a.shape = []int{} // dimensionless, pending nesting
	}

	return a, nil
}

// Name returns the array's short name.
func (a *DataArray) Name() string { return a.name }

// FullName returns the array's qualified name.
func (a *DataArray) FullName() string { return a.fullName }

// Label returns the axis label.
func (a *DataArray) Label() string { return a.label }

// Units returns the physical units of the stored values.
func (a *DataArray) Units() string { return a.units }

// ArrayID returns the array's identifier.
func (a *DataArray) ArrayID() string { return a.arrayID }

// IsSetpoint reports whether the array is an independent sweep
// variable.
func (a *DataArray) IsSetpoint() bool { return a.isSetpoint }

// ActionIndices returns the array's position in the nested action
// tree, outermost first.
func (a *DataArray) ActionIndices() []int {
	out := make([]int, len(a.actionIndices))
	copy(out, a.actionIndices)
	return out
}

// SetArrayIDs returns the IDs of the arrays parameterizing each
// dimension, outermost first. A setpoint array's own ID appears at
// position 0.
func (a *DataArray) SetArrayIDs() []string {
	out := make([]string, len(a.setArrays))
	copy(out, a.setArrays)
	return out
}

// Shape returns the array's dimension sizes, outermost first.
func (a *DataArray) Shape() []int {
	out := make([]int, len(a.shape))
	copy(out, a.shape)
	return out
}

// Size returns the total number of elements the shape describes,
// whether or not the buffer is allocated.
func (a *DataArray) Size() int {
	if a.buf != nil {
		return a.buf.Size()
	}
	size, err := utils.TotalSize(a.shape)
	if err != nil {
		return 0
	}
	return size
}

// Len returns the length of the outermost dimension, 0 for a
// dimensionless array.
func (a *DataArray) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// DataSet returns the owning dataset, nil if unattached.
func (a *DataArray) DataSet() *DataSet { return a.dataSet }

// attach records the owning dataset. An array belongs to at most one
// dataset; re-attaching to the same one is a no-op.
func (a *DataArray) attach(d *DataSet) error {
	if a.dataSet != nil && d != nil && a.dataSet != d {
		return fmt.Errorf("array %q: %w", a.arrayID, ErrOwnershipConflict)
	}
	a.dataSet = d
	return nil
}

// String implements fmt.Stringer with a shape/ID summary.
func (a *DataArray) String() string {
	dims := make([]string, len(a.shape))
	for i, d := range a.shape {
		dims[i] = strconv.Itoa(d)
	}
	var sb strings.Builder
	sb.WriteString("DataArray[")
	sb.WriteString(strings.Join(dims, ","))
	sb.WriteString("]")
	if a.arrayID != "" {
		sb.WriteString(": ")
		sb.WriteString(a.arrayID)
	}
	return sb.String()
}
