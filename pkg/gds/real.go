package gds

import (
	"math"
)

const mantissaBits = 56

// encodeReal converts v to the GDSII 8-byte real representation. Values too
// small to represent encode as zero; values too large saturate.
func encodeReal(v float64) uint64 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}

	var sign uint64
	if v < 0 {
		sign = 1 << 63
		v = -v
	}

	// Normalise to 1/16 <= v < 1; dividing by 16 is exact in binary.
	exp := 64
	for v >= 1 && exp < 128 {
		v /= 16
		exp++
	}
	for v < 1.0/16 && exp >= 0 {
		v *= 16
		exp--
	}

	mant := uint64(math.Round(v * (1 << mantissaBits)))
	if mant >= 1<<mantissaBits {
		mant >>= 4
		exp++
	}

	switch {
	case exp < 0:
		return 0
	case exp > 127:
		return sign | 0x7fffffffffffffff
	}
	return sign | uint64(exp)<<mantissaBits | mant
}
