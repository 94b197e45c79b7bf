package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/matzehuels/logogds/pkg/geometry"
	"github.com/matzehuels/logogds/pkg/layer"
)

// DefaultScale is the preview resolution in SVG user units per micrometre.
const DefaultScale = 100.0

// pixelFills cycles across pixel layers.
var pixelFills = []string{"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b"}

// SVGOption configures preview rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale float64
}

// WithScale sets the SVG user units per micrometre. Non-positive values are
// ignored.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderSVG draws a preview of the cell. Each layer becomes one <g> element
// in configuration order: boundary layers as outlines, pixel layers as
// translucent fills. The y axis is flipped back so the preview reads like
// the source image.
func RenderSVG(c *geometry.Cell, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	byLayer := make(map[layer.Layer][]geometry.Rect)
	for _, rect := range c.Rects {
		byLayer[rect.Layer] = append(byLayer[rect.Layer], rect)
	}
	boundary := make(map[layer.Layer]bool, len(c.Layers.Boundary))
	for _, l := range c.Layers.Boundary {
		boundary[l] = true
	}

	w, h := r.px(c.Width), r.px(c.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(c.Name))
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	fill := 0
	for _, lc := range c.Counts() {
		var style string
		if boundary[lc.Layer] {
			style = `fill="none" stroke="#888888" stroke-dasharray="4 2"`
		} else {
			style = fmt.Sprintf(`fill="%s" fill-opacity="0.6"`, pixelFills[fill%len(pixelFills)])
			fill++
		}
		fmt.Fprintf(&buf, `  <g id="layer-%d-%d" data-name="%s" %s>`+"\n",
			lc.Layer.Number, lc.Layer.Datatype, html.EscapeString(lc.Layer.Label()), style)
		for _, rect := range byLayer[lc.Layer] {
			fmt.Fprintf(&buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n",
				r.px(rect.Min.X), r.px(c.Height-rect.Max.Y), r.px(rect.Width()), r.px(rect.Height()))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// px scales a length and formats it with at most two decimals.
func (r *svgRenderer) px(v float64) string {
	s := math.Round(v*r.scale*100) / 100
	if s == 0 {
		s = 0 // drop negative zero
	}
	return strconv.FormatFloat(s, 'f', -1, 64)
}
