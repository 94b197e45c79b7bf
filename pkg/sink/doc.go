// Package sink renders a [geometry.Cell] to its output formats.
//
// Each renderer takes the cell plus functional options and returns the
// encoded bytes; none of them touch the filesystem.
//
//   - [RenderGDS]: the GDSII layout, the primary output
//   - [RenderSVG]: a preview image, one group per layer
//   - [RenderJSON]: a machine-readable summary with DRC results
//
// # GDS
//
// Cell coordinates are micrometres. They are rounded to the database unit
// of the library (1 nm by default), so a 0.28 µm pixel becomes 280 database
// units:
//
//	data, err := sink.RenderGDS(cell,
//	    sink.WithLibraryName("logos"),
//	    sink.WithTimestamp(time.Unix(0, 0)),
//	)
//
// A fixed timestamp makes the output byte-for-byte reproducible.
//
// # SVG
//
// The preview flips y back to screen orientation so it looks like the input
// image. Boundary layers are drawn as outlines, pixel layers as translucent
// fills in a per-layer colour.
package sink
