package pipeline

import (
	"github.com/matzehuels/logogds/pkg/drc"
	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/geometry"
	"github.com/matzehuels/logogds/pkg/sink"
)

// Render encodes the cell in every format listed in opts.
func Render(cell *geometry.Cell, report drc.Report, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(cell, report, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(cell *geometry.Cell, report drc.Report, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatGDS:
		return sink.RenderGDS(cell,
			sink.WithLibraryName(opts.LibraryName),
			sink.WithTimestamp(opts.Timestamp),
		)
	case FormatSVG:
		return sink.RenderSVG(cell), nil
	case FormatJSON:
		return sink.RenderJSON(cell, report, sink.WithJSONInput(opts.Input))
	default:
		return nil, errs.New(errs.ErrCodeInternal, "unsupported format: %s", format)
	}
}
