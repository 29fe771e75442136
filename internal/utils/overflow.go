package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two non-negative ints would
// overflow. Returns an error if overflow would occur.
func CheckMultiplyOverflow(a, b int) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxInt/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds int max", a, b)
	}

	return nil
}

// TotalSize calculates the number of elements in an array of the given
// shape. The empty shape describes a scalar and has size 1. Returns an
// error on negative dimensions or overflow.
func TotalSize(shape []int) (int, error) {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("negative dimension size %d", dim)
		}
		if err := CheckMultiplyOverflow(size, dim); err != nil {
			return 0, err
		}
		size *= dim
	}
	return size, nil
}
