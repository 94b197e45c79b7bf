package geometry

import (
	"github.com/matzehuels/logogds/pkg/bitmap"
	"github.com/matzehuels/logogds/pkg/layer"
)

// Cell is a named set of rectangles, the unit written to a layout file.
type Cell struct {
	Name   string
	Width  float64 // physical extent, pixel columns × pitch
	Height float64 // physical extent, pixel rows × pitch
	Pitch  float64
	Layers layer.Config
	Rects  []Rect
}

// NewCell builds the cell for b with [Emit].
func NewCell(name string, b *bitmap.Bitmap, pitch float64, layers layer.Config) *Cell {
	return &Cell{
		Name:   name,
		Width:  float64(b.Width()) * pitch,
		Height: float64(b.Height()) * pitch,
		Pitch:  pitch,
		Layers: layers,
		Rects:  Emit(b, pitch, layers),
	}
}

// LayerCount is the number of rectangles drawn on one layer.
type LayerCount struct {
	Layer layer.Layer
	Count int
}

// Counts returns the rectangle count per configured layer, boundary layers
// first, in configuration order. Layers listed twice are reported once.
func (c *Cell) Counts() []LayerCount {
	byLayer := make(map[layer.Layer]int, len(c.Rects))
	for _, r := range c.Rects {
		byLayer[r.Layer]++
	}

	seen := make(map[layer.Layer]bool)
	var counts []LayerCount
	for _, l := range c.Layers.All() {
		if seen[l] {
			continue
		}
		seen[l] = true
		counts = append(counts, LayerCount{Layer: l, Count: byLayer[l]})
	}
	return counts
}

// Pixels returns the rectangles drawn on pixel layers.
func (c *Cell) Pixels() []Rect {
	return c.Rects[min(len(c.Layers.Boundary), len(c.Rects)):]
}
