package utils

// SweepError attaches operation context to an underlying cause.
type SweepError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *SweepError) Error() string {
	return e.Context + ": " + e.Cause.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *SweepError) Unwrap() error {
	return e.Cause
}

// WrapError wraps cause with context. A nil cause stays nil, so call
// sites can wrap unconditionally.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &SweepError{Context: context, Cause: cause}
}
