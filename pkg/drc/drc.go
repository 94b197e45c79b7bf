package drc

import (
	"fmt"

	"github.com/matzehuels/logogds/pkg/bitmap"
)

// Kind identifies which rule a finding violates.
type Kind string

// Rule kinds.
const (
	KindDiagonal Kind = "diagonal"
	KindLone     Kind = "lone"
)

// Finding is a single rule violation at a pixel coordinate. For diagonal
// findings the coordinate is the bottom-right pixel of the 2×2 window.
type Finding struct {
	Kind Kind `json:"kind"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
}

// String returns the message printed for the finding in verbose mode.
func (f Finding) String() string {
	switch f.Kind {
	case KindDiagonal:
		return fmt.Sprintf("Diagonally touching pixels at %d,%d", f.X, f.Y)
	case KindLone:
		return fmt.Sprintf("Lone pixel at %d,%d", f.X, f.Y)
	default:
		return fmt.Sprintf("%s at %d,%d", f.Kind, f.X, f.Y)
	}
}

// Report summarises a DRC run.
type Report struct {
	Diagonals  int       `json:"diagonals"`
	LonePixels int       `json:"lone_pixels"`
	Findings   []Finding `json:"findings,omitempty"`
}

// Total returns the number of findings of any kind.
func (r Report) Total() int { return r.Diagonals + r.LonePixels }

// Clean reports whether no rule was violated.
func (r Report) Clean() bool { return r.Total() == 0 }

// Summary returns the one-line warning for a report with findings.
func (r Report) Summary() string {
	return fmt.Sprintf("%d DRC issues encountered (%d diagonals, %d lone pixels)",
		r.Total(), r.Diagonals, r.LonePixels)
}

// Option configures [Check].
type Option func(*checker)

type checker struct {
	findings bool
}

// WithFindings records every finding in [Report.Findings], in scan order.
func WithFindings() Option { return func(c *checker) { c.findings = true } }

// Check scans b for diagonal touches, then for lone pixels.
func Check(b *bitmap.Bitmap, opts ...Option) Report {
	var c checker
	for _, opt := range opts {
		opt(&c)
	}

	var r Report
	for y := 1; y < b.Height(); y++ {
		for x := 1; x < b.Width(); x++ {
			if isCheckerboard(b, x, y) {
				r.Diagonals++
				c.record(&r, KindDiagonal, x, y)
			}
		}
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if isLone(b, x, y) {
				r.LonePixels++
				c.record(&r, KindLone, x, y)
			}
		}
	}
	return r
}

func (c *checker) record(r *Report, k Kind, x, y int) {
	if c.findings {
		r.Findings = append(r.Findings, Finding{Kind: k, X: x, Y: y})
	}
}

// isCheckerboard tests the 2×2 window whose bottom-right pixel is (x, y).
func isCheckerboard(b *bitmap.Bitmap, x, y int) bool {
	tl, tr := b.At(x-1, y-1), b.At(x, y-1)
	bl, br := b.At(x-1, y), b.At(x, y)
	return tl == br && tr == bl && tr != br
}

// isLone relies on Bitmap.At reading out-of-bounds neighbours as unlit.
func isLone(b *bitmap.Bitmap, x, y int) bool {
	v := b.At(x, y)
	return v != b.At(x, y-1) &&
		v != b.At(x, y+1) &&
		v != b.At(x-1, y) &&
		v != b.At(x+1, y)
}
