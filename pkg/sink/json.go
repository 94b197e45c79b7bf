package sink

import (
	"encoding/json"

	"github.com/matzehuels/logogds/pkg/drc"
	"github.com/matzehuels/logogds/pkg/geometry"
	"github.com/matzehuels/logogds/pkg/layer"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	input string
}

// WithJSONInput records the source image path in the output.
func WithJSONInput(path string) JSONOption { return func(r *jsonRenderer) { r.input = path } }

type jsonOutput struct {
	Cell   string      `json:"cell"`
	Input  string      `json:"input,omitempty"`
	Width  float64     `json:"width_um"`
	Height float64     `json:"height_um"`
	Pitch  float64     `json:"pitch_um"`
	Pixels int         `json:"pixels"`
	Layers []jsonLayer `json:"layers"`
	DRC    jsonDRC     `json:"drc"`
}

type jsonLayer struct {
	Layer    int    `json:"layer"`
	Datatype int    `json:"datatype"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	Rects    int    `json:"rects"`
}

type jsonDRC struct {
	Diagonals  int           `json:"diagonals"`
	LonePixels int           `json:"lone_pixels"`
	Total      int           `json:"total"`
	Findings   []drc.Finding `json:"findings,omitempty"`
}

// RenderJSON summarises the cell and its DRC report.
func RenderJSON(c *geometry.Cell, report drc.Report, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Cell:   c.Name,
		Input:  r.input,
		Width:  c.Width,
		Height: c.Height,
		Pitch:  c.Pitch,
		Layers: make([]jsonLayer, 0, len(c.Layers.Boundary)+len(c.Layers.Pixel)),
		DRC: jsonDRC{
			Diagonals:  report.Diagonals,
			LonePixels: report.LonePixels,
			Total:      report.Total(),
			Findings:   report.Findings,
		},
	}
	if n := len(c.Layers.Pixel); n > 0 {
		out.Pixels = len(c.Pixels()) / n
	}

	boundary := make(map[layer.Layer]bool, len(c.Layers.Boundary))
	for _, l := range c.Layers.Boundary {
		boundary[l] = true
	}
	for _, lc := range c.Counts() {
		role := "pixel"
		if boundary[lc.Layer] {
			role = "boundary"
		}
		out.Layers = append(out.Layers, jsonLayer{
			Layer:    lc.Layer.Number,
			Datatype: lc.Layer.Datatype,
			Name:     lc.Layer.Name,
			Role:     role,
			Rects:    lc.Count,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
