package utils

import (
	"encoding/binary"
	"math"
)

// EncodeFloat64s encodes vals into dst as little-endian IEEE 754 doubles.
// dst must have room for 8*len(vals) bytes.
func EncodeFloat64s(dst []byte, vals []float64) {
	for i, v := range vals {
		binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(v))
	}
}

// DecodeFloat64s decodes n little-endian IEEE 754 doubles from src.
func DecodeFloat64s(src []byte, n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
	}
	return vals
}
