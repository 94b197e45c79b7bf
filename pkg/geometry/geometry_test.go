package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/logogds/pkg/bitmap"
	"github.com/matzehuels/logogds/pkg/layer"
)

var (
	met1 = layer.Layer{Number: 68, Datatype: 20}
	met2 = layer.Layer{Number: 69, Datatype: 20}
	bnd  = layer.Layer{Number: 235, Datatype: 4}
	cmm1 = layer.Layer{Number: 62, Datatype: 24}
)

func rect(l layer.Layer, x0, y0, x1, y1 float64) Rect {
	return Rect{Layer: l, Min: Point{x0, y0}, Max: Point{x1, y1}}
}

func TestEmitSinglePixel(t *testing.T) {
	const p = 0.28
	cfg := layer.Config{Boundary: []layer.Layer{bnd, cmm1}, Pixel: []layer.Layer{met1, met2}}

	got := Emit(bitmap.MustParse("#"), p, cfg)
	want := []Rect{
		rect(bnd, 0, 0, p, p),
		rect(cmm1, 0, 0, p, p),
		rect(met1, 0, 0, p, p),
		rect(met2, 0, 0, p, p),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitVerticalFlip(t *testing.T) {
	const p = 0.5
	cfg := layer.Config{Pixel: []layer.Layer{met1}}

	// Only the top row is lit: it must land in the upper physical band.
	got := Emit(bitmap.MustParse("#", "."), p, cfg)
	want := []Rect{rect(met1, 0, p, p, 2*p)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit() mismatch (-want +got):\n%s", diff)
	}

	got = Emit(bitmap.MustParse(".", "#"), p, cfg)
	want = []Rect{rect(met1, 0, 0, p, p)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit() bottom row mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitOrder(t *testing.T) {
	cfg := layer.Config{Boundary: []layer.Layer{cmm1, bnd}, Pixel: []layer.Layer{met2, met1}}
	b := bitmap.MustParse(
		"#.#",
		".#.",
	)

	got := Emit(b, 1, cfg)
	want := []Rect{
		rect(cmm1, 0, 0, 3, 2),
		rect(bnd, 0, 0, 3, 2),
		rect(met2, 0, 1, 1, 2),
		rect(met2, 2, 1, 3, 2),
		rect(met2, 1, 0, 2, 1),
		rect(met1, 0, 1, 1, 2),
		rect(met1, 2, 1, 3, 2),
		rect(met1, 1, 0, 2, 1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitCounts(t *testing.T) {
	b := bitmap.MustParse(
		"##..#",
		".#.#.",
		"#####",
		".....",
	)
	lit := b.Count()

	tests := []struct {
		name     string
		boundary int
		pixel    int
	}{
		{"reference stack", 6, 2},
		{"no pixel layers", 6, 0},
		{"one pixel layer", 1, 1},
		{"many pixel layers", 0, 5},
		{"nothing", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := layer.Config{}
			for i := 0; i < tt.boundary; i++ {
				cfg.Boundary = append(cfg.Boundary, layer.Layer{Number: 200 + i})
			}
			for i := 0; i < tt.pixel; i++ {
				cfg.Pixel = append(cfg.Pixel, layer.Layer{Number: 60 + i, Datatype: 20})
			}

			pitch := 0.28
			rects := Emit(b, pitch, cfg)
			if want := tt.boundary + lit*tt.pixel; len(rects) != want {
				t.Fatalf("len(rects) = %d, want %d", len(rects), want)
			}

			boundary := 0
			for _, r := range rects[:tt.boundary] {
				if r.Min != (Point{}) || r.Max != (Point{5 * pitch, 4 * pitch}) {
					t.Errorf("boundary rect = %+v, want full extent", r)
				}
				boundary++
			}
			if boundary != tt.boundary {
				t.Errorf("boundary rects = %d, want %d", boundary, tt.boundary)
			}
		})
	}
}

func TestEmitNoLitPixels(t *testing.T) {
	cfg := layer.Default()
	rects := Emit(bitmap.MustParse("...", "..."), 0.28, cfg)
	if len(rects) != len(cfg.Boundary) {
		t.Errorf("len(rects) = %d, want %d boundary rects only", len(rects), len(cfg.Boundary))
	}
	for i, r := range rects {
		if r.Layer != cfg.Boundary[i] {
			t.Errorf("rects[%d].Layer = %v, want %v", i, r.Layer, cfg.Boundary[i])
		}
	}
}

func TestEmitEmptyBitmap(t *testing.T) {
	cfg := layer.Default()
	rects := Emit(bitmap.MustParse(), 0.28, cfg)
	if len(rects) != len(cfg.Boundary) {
		t.Fatalf("len(rects) = %d, want %d", len(rects), len(cfg.Boundary))
	}
	for _, r := range rects {
		if r.Width() != 0 || r.Height() != 0 {
			t.Errorf("rect %+v should have zero area", r)
		}
	}
}

func TestEmitPitchScaling(t *testing.T) {
	b := bitmap.MustParse(
		"#..#",
		".##.",
		"#..#",
	)
	cfg := layer.Config{Boundary: []layer.Layer{bnd}, Pixel: []layer.Layer{met1, met2}}

	base := Emit(b, 0.28, cfg)
	scaled := Emit(b, 0.28*3, cfg)
	if len(base) != len(scaled) {
		t.Fatalf("len = %d vs %d, topology should not depend on pitch", len(base), len(scaled))
	}

	scale := func(r Rect) Rect {
		return rect(r.Layer, r.Min.X*3, r.Min.Y*3, r.Max.X*3, r.Max.Y*3)
	}
	want := make([]Rect, len(base))
	for i, r := range base {
		want[i] = scale(r)
	}
	if diff := cmp.Diff(want, scaled, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("scaled geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestRectSize(t *testing.T) {
	r := rect(met1, 1, 2, 4, 7)
	if r.Width() != 3 {
		t.Errorf("Width() = %v, want 3", r.Width())
	}
	if r.Height() != 5 {
		t.Errorf("Height() = %v, want 5", r.Height())
	}
}
