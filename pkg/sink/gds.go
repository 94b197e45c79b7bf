package sink

import (
	"math"
	"time"

	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/gds"
	"github.com/matzehuels/logogds/pkg/geometry"
)

// GDSOption configures GDS rendering via [RenderGDS].
type GDSOption func(*gdsRenderer)

type gdsRenderer struct {
	library  string
	modified time.Time
}

// WithLibraryName sets the GDSII library name (default "library").
func WithLibraryName(name string) GDSOption { return func(r *gdsRenderer) { r.library = name } }

// WithTimestamp sets the library and structure modification time. The zero
// time, the default, stamps the file with the current time.
func WithTimestamp(t time.Time) GDSOption { return func(r *gdsRenderer) { r.modified = t } }

// RenderGDS encodes the cell as a single-structure GDSII library.
//
// Coordinates are rounded to whole database units. A coordinate beyond the
// int32 range is an [errs.ErrCodeOutput] error.
func RenderGDS(c *geometry.Cell, opts ...GDSOption) ([]byte, error) {
	r := gdsRenderer{library: gds.DefaultLibraryName}
	for _, opt := range opts {
		opt(&r)
	}

	lib := gds.NewLibrary(r.library)
	lib.Modified = r.modified

	s := gds.Structure{Name: c.Name, Boundaries: make([]gds.Boundary, 0, len(c.Rects))}
	for _, rect := range c.Rects {
		b, err := boundary(rect, lib.UserUnit)
		if err != nil {
			return nil, err
		}
		s.Boundaries = append(s.Boundaries, b)
	}
	lib.Structures = []gds.Structure{s}

	data, err := gds.Marshal(lib)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeOutput, err, "encode GDS")
	}
	return data, nil
}

func boundary(rect geometry.Rect, unit float64) (gds.Boundary, error) {
	var xy [4]int32
	for i, v := range [4]float64{rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y} {
		db := math.Round(v / unit)
		if math.IsNaN(db) || db < math.MinInt32 || db > math.MaxInt32 {
			return gds.Boundary{}, errs.New(errs.ErrCodeOutput, "coordinate %gum exceeds the GDSII range", v)
		}
		xy[i] = int32(db)
	}
	return gds.Rectangle(int16(rect.Layer.Number), int16(rect.Layer.Datatype), xy[0], xy[1], xy[2], xy[3]), nil
}
