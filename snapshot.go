package sweep

// FullNamer is the capability a parameter descriptor implements to
// supply a qualified name for arrays recorded from it.
type FullNamer interface {
	FullName() string
}

// Snapshotter is the capability a parameter descriptor implements to
// supply a metadata snapshot mapping.
type Snapshotter interface {
	Snapshot() map[string]any
}

// classKey tags snapshots with the producing type.
const classKey = "__class__"

// snapCopyKeys are the snapshot keys copied onto array metadata fields
// when those were not set some other way.
var snapCopyKeys = []string{"name", "label", "units"}

// snapOmitKeys are internal bookkeeping keys of an incoming snapshot
// that are never retained or copied.
var snapOmitKeys = map[string]struct{}{
	"ts":             {},
	"value":          {},
	classKey:         {},
	"set_arrays":     {},
	"shape":          {},
	"array_id":       {},
	"action_indices": {},
}

// seedMetadata fills metadata not set by explicit options, in fixed
// precedence: the descriptor's full name, then its snapshot (unless an
// explicit snapshot was given), then the recognized snapshot keys.
func (a *DataArray) seedMetadata(parameter any, snapshot map[string]any) {
	if parameter != nil {
		if fn, ok := parameter.(FullNamer); ok && a.fullName == "" {
			a.fullName = fn.FullName()
		}
		if len(snapshot) == 0 {
			if sn, ok := parameter.(Snapshotter); ok {
				snapshot = sn.Snapshot()
			}
		}
	}

	a.snapshotInput = make(map[string]any, len(snapshot))
	for key, value := range snapshot {
		if _, omit := snapOmitKeys[key]; omit {
			continue
		}
		a.snapshotInput[key] = value
	}

	for _, key := range snapCopyKeys {
		value, ok := a.snapshotInput[key].(string)
		if !ok || value == "" {
			continue
		}
		switch key {
		case "name":
			if a.name == "" {
				a.name = value
			}
		case "label":
			if a.label == "" {
				a.label = value
			}
		case "units":
			if a.units == "" {
				a.units = value
			}
		}
	}
}

// Snapshot returns the array's metadata as a JSON-shaped mapping:
// class tag, metadata retained from construction, and the fixed public
// attribute set. Array contents are never included.
func (a *DataArray) Snapshot() map[string]any {
	snap := make(map[string]any, len(a.snapshotInput)+8)
	snap[classKey] = "sweep.DataArray"

	for key, value := range a.snapshotInput {
		snap[key] = value
	}

	snap["array_id"] = a.arrayID
	snap["name"] = a.name
	snap["shape"] = a.Shape()
	snap["units"] = a.units
	snap["label"] = a.label
	snap["action_indices"] = a.ActionIndices()
	snap["is_setpoint"] = a.isSetpoint

	return snap
}
