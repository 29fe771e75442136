package sweep

import "errors"

// Sentinel errors for the failure modes of the array container. All
// failures are synchronous and leave the array unmodified; wrap with
// fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrOwnershipConflict reports an attempt to attach an array that
	// already belongs to a different dataset.
	ErrOwnershipConflict = errors.New("array already belongs to another dataset")

	// ErrInvalidNesting reports a nest call on an array whose buffer was
	// allocated without preset data, or a setpoint nest on an array that
	// already has set arrays.
	ErrInvalidNesting = errors.New("invalid nesting")

	// ErrShapeMismatch reports disagreement between a declared shape,
	// preset data, or an already-allocated buffer.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUninitialized reports a read or write before the backing buffer
	// exists.
	ErrUninitialized = errors.New("array data not initialized")
)
