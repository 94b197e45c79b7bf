package gds

import (
	"time"
)

// Record types combined with their data type, as written in the record
// header.
const (
	recHeader   = 0x0002
	recBgnLib   = 0x0102
	recLibName  = 0x0206
	recUnits    = 0x0305
	recEndLib   = 0x0400
	recBgnStr   = 0x0502
	recStrName  = 0x0606
	recEndStr   = 0x0700
	recBoundary = 0x0800
	recLayer    = 0x0D02
	recDatatype = 0x0E02
	recXY       = 0x1003
	recEndEl    = 0x1100
)

const (
	// Version is the stream format version written in the HEADER record.
	Version = 600

	// DefaultLibraryName is used when a library has no name.
	DefaultLibraryName = "library"

	// DefaultUserUnit is the size of a database unit in user units: with
	// micrometre user units, one database unit is a nanometre.
	DefaultUserUnit = 1e-3

	// DefaultDBUnit is the size of a database unit in metres.
	DefaultDBUnit = 1e-9

	maxRecordLen = 0xffff
	headerLen    = 4
)

// Library is the top-level stream object.
type Library struct {
	Name       string
	UserUnit   float64
	DBUnit     float64
	Modified   time.Time
	Structures []Structure
}

// NewLibrary returns an empty library with the default units.
func NewLibrary(name string) *Library {
	if name == "" {
		name = DefaultLibraryName
	}
	return &Library{
		Name:     name,
		UserUnit: DefaultUserUnit,
		DBUnit:   DefaultDBUnit,
	}
}

// Structure is a named cell.
type Structure struct {
	Name       string
	Boundaries []Boundary
}

// Point is a position in database units.
type Point struct {
	X, Y int32
}

// Boundary is a filled polygon. XY must be closed: the last point repeats
// the first.
type Boundary struct {
	Layer    int16
	Datatype int16
	XY       []Point
}

// Rectangle returns the closed five-point boundary for the box spanning
// (x0, y0) and (x1, y1).
func Rectangle(layer, datatype int16, x0, y0, x1, y1 int32) Boundary {
	return Boundary{
		Layer:    layer,
		Datatype: datatype,
		XY: []Point{
			{x0, y0},
			{x0, y1},
			{x1, y1},
			{x1, y0},
			{x0, y0},
		},
	}
}
