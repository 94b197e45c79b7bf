// Package geometry turns a bitmap into layout rectangles.
//
// Coordinates are physical lengths (micrometres by convention) in the layout
// coordinate system, where y grows upwards. Bitmap row 0, the top of the
// image, therefore maps to the highest band of the cell: pixel (x, y) of an
// image h rows tall covers
//
//	[x·P, (x+1)·P] × [(h−y−1)·P, (h−y)·P]
//
// for pixel pitch P. Every lit pixel yields its own unit square; adjacent
// squares are never merged.
package geometry

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/logogds/pkg/bitmap"
	"github.com/matzehuels/logogds/pkg/layer"
)

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box on one layer. Min is the lower-left corner.
type Rect struct {
	Layer    layer.Layer
	Min, Max Point
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Emit returns the rectangles for b: one full-extent rectangle per boundary
// layer in list order, then for each pixel layer in list order one unit
// square per lit pixel in row-major order.
//
// The result always holds len(layers.Boundary) + b.Count()*len(layers.Pixel)
// rectangles. A 0×0 bitmap yields zero-area boundary rectangles.
func Emit(b *bitmap.Bitmap, pitch float64, layers layer.Config) []Rect {
	lit := litPixels(b)
	nb := len(layers.Boundary)
	rects := make([]Rect, nb+len(lit)*len(layers.Pixel))

	extent := Point{X: float64(b.Width()) * pitch, Y: float64(b.Height()) * pitch}
	for i, l := range layers.Boundary {
		rects[i] = Rect{Layer: l, Max: extent}
	}

	// Each pixel layer owns a disjoint window of rects.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range layers.Pixel {
		dst := rects[nb+i*len(lit) : nb+(i+1)*len(lit)]
		g.Go(func() error {
			for j, p := range lit {
				dst[j] = pixelRect(l, p, b.Height(), pitch)
			}
			return nil
		})
	}
	_ = g.Wait()

	return rects
}

type pixel struct{ x, y int }

func litPixels(b *bitmap.Bitmap) []pixel {
	lit := make([]pixel, 0, b.Count())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.At(x, y) {
				lit = append(lit, pixel{x, y})
			}
		}
	}
	return lit
}

func pixelRect(l layer.Layer, p pixel, height int, pitch float64) Rect {
	fy := height - p.y - 1
	return Rect{
		Layer: l,
		Min:   Point{X: float64(p.x) * pitch, Y: float64(fy) * pitch},
		Max:   Point{X: float64(p.x+1) * pitch, Y: float64(fy+1) * pitch},
	}
}
