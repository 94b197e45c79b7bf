package errors

import (
	"math"
)

// PortableCellName is the longest structure name older GDSII readers keep
// intact. Longer names are valid but may be truncated by those tools.
const PortableCellName = 32

// maxCellName is the longest name that fits in one STRNAME record once
// padded to an even length.
const maxCellName = 65530

// ValidateCellName checks that name can be written as a GDSII structure
// name: non-empty, printable ASCII, and short enough for one record.
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "cell name cannot be empty")
	}
	if len(name) > maxCellName {
		return New(ErrCodeInvalidInput, "cell name too long (max %d bytes)", maxCellName)
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 0x20 || c > 0x7e {
			return New(ErrCodeInvalidInput, "cell name contains non-printable or non-ASCII byte 0x%02x: %q", c, name)
		}
	}
	return nil
}

// ValidatePixelSize checks that the pixel pitch is a finite positive number.
func ValidatePixelSize(size float64) error {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return New(ErrCodeInvalidInput, "pixel size must be a positive number, got %g", size)
	}
	return nil
}

// ValidateLayerNumber checks that v fits the two-byte signed integer GDSII
// uses for layer and datatype numbers, excluding negatives. what names the
// field in the message.
func ValidateLayerNumber(what string, v int) error {
	if v < 0 || v > math.MaxInt16 {
		return New(ErrCodeConfig, "%s %d out of range (0-%d)", what, v, math.MaxInt16)
	}
	return nil
}
