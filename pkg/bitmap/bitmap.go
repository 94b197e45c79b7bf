package bitmap

import (
	"fmt"
	"strings"
)

// Threshold is the intensity cutoff: pixels darker than this are lit.
const Threshold = 128

// Gray is a row-major grid of 8-bit intensities.
type Gray struct {
	Width, Height int
	Pix           []uint8
}

// NewGray returns a white (255) grid of the given size.
// Negative dimensions are clamped to zero.
func NewGray(width, height int) *Gray {
	width, height = max(width, 0), max(height, 0)
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = 255
	}
	return &Gray{Width: width, Height: height, Pix: pix}
}

// At returns the intensity at (x, y). It panics if the point is out of range.
func (g *Gray) At(x, y int) uint8 { return g.Pix[y*g.Width+x] }

// Set stores the intensity at (x, y). It panics if the point is out of range.
func (g *Gray) Set(x, y int, v uint8) { g.Pix[y*g.Width+x] = v }

// Bitmap is an immutable grid of lit/unlit pixels.
type Bitmap struct {
	width, height int
	bits          []bool
}

// Binarize thresholds g into a bitmap of the same size. Pixel (x, y) is lit
// iff g.At(x, y) < Threshold. A 0×0 grid yields an empty bitmap.
func Binarize(g *Gray) *Bitmap {
	b := &Bitmap{width: g.Width, height: g.Height, bits: make([]bool, len(g.Pix))}
	for i, v := range g.Pix {
		b.bits[i] = v < Threshold
	}
	return b
}

// MustParse builds a bitmap from text rows where '#' marks a lit pixel and
// any other byte an unlit one. All rows must have the same length.
func MustParse(rows ...string) *Bitmap {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// Parse is like [MustParse] but returns an error for ragged rows.
func Parse(rows ...string) (*Bitmap, error) {
	if len(rows) == 0 {
		return &Bitmap{}, nil
	}
	w := len(rows[0])
	b := &Bitmap{width: w, height: len(rows), bits: make([]bool, 0, w*len(rows))}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("bitmap: row %d has %d pixels, want %d", y, len(row), w)
		}
		for i := 0; i < len(row); i++ {
			b.bits = append(b.bits, row[i] == '#')
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.height }

// Empty reports whether either dimension is zero.
func (b *Bitmap) Empty() bool { return b.width == 0 || b.height == 0 }

// At reports whether (x, y) is lit. Points outside the bitmap read as unlit.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.bits[y*b.width+x]
}

// Count returns the number of lit pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, lit := range b.bits {
		if lit {
			n++
		}
	}
	return n
}

// String renders the bitmap in the [Parse] format, one row per line.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			if b.At(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
