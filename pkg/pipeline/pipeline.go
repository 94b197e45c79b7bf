// Package pipeline provides the image-to-layout conversion used by the CLI.
//
// A run has four stages:
//
//  1. Load: decode the image file into a grayscale grid ([raster.Load])
//  2. Binarize: threshold the grid into a bitmap ([bitmap.Binarize])
//  3. Check: count diagonal touches and lone pixels ([drc.Check])
//  4. Emit and render: build the cell and encode every requested format
//
// DRC findings are advisory. They are logged as a warning and returned in
// [Result.Report] but never stop the run.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "logo.png",
//	    Cell:      "logo",
//	    PixelSize: 0.28,
//	})
//	if err != nil {
//	    return err
//	}
//	paths, err := pipeline.WriteArtifacts(result, opts)
//
// Execute never touches the filesystem beyond reading the input; writing is
// the separate [WriteArtifacts] step so callers can inspect or discard the
// result first.
package pipeline

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logogds/pkg/bitmap"
	"github.com/matzehuels/logogds/pkg/drc"
	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/geometry"
	"github.com/matzehuels/logogds/pkg/layer"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultInput is the image read when no input is given.
	DefaultInput = "my_logo.png"

	// DefaultCell is the name of the generated cell.
	DefaultCell = "my_logo"

	// DefaultOutput is the GDS file written when no output is given.
	DefaultOutput = "my_logo.gds"

	// DefaultPixelSize is the pixel pitch in micrometres.
	DefaultPixelSize = 0.28
)

// Format constants for output formats.
const (
	FormatGDS  = "gds"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatGDS:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for a conversion run.
type Options struct {
	Input     string  `json:"input"`
	Cell      string  `json:"cell"`
	Output    string  `json:"output"`
	PixelSize float64 `json:"pixel_size"`

	// Layers is the layer stack. Nil means [layer.Default].
	Layers *layer.Config `json:"layers,omitempty"`

	// Formats lists the artifacts to render. GDS is always included.
	Formats []string `json:"formats,omitempty"`
	Preview string   `json:"preview,omitempty"` // SVG path, defaults next to Output
	Report  string   `json:"report,omitempty"`  // JSON path, defaults next to Output

	// Findings records every DRC finding instead of only counting them.
	Findings bool `json:"findings,omitempty"`

	LibraryName string    `json:"library,omitempty"`
	Timestamp   time.Time `json:"-"` // zero stamps the file with the current time

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Bitmap *bitmap.Bitmap
	Report drc.Report
	Cell   *geometry.Cell

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width      int
	Height     int
	Lit        int
	Rects      int
	LoadTime   time.Duration
	CheckTime  time.Duration
	EmitTime   time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeConfig, "invalid format: %q (must be one of: gds, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. Zero
// values select the defaults; a negative or non-finite pixel size is an
// error. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.Cell == "" {
		o.Cell = DefaultCell
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.PixelSize == 0 {
		o.PixelSize = DefaultPixelSize
	}
	if o.Layers == nil {
		def := layer.Default()
		o.Layers = &def
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.setFormatDefaults()

	if err := errs.ValidateCellName(o.Cell); err != nil {
		return err
	}
	if len(o.Cell) > errs.PortableCellName {
		o.Logger.Warnf("Cell name %q is longer than %d characters; some GDSII tools truncate it", o.Cell, errs.PortableCellName)
	}
	if err := errs.ValidatePixelSize(o.PixelSize); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Layers.Validate(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

func (o *Options) setFormatDefaults() {
	if !slices.Contains(o.Formats, FormatGDS) {
		o.Formats = append([]string{FormatGDS}, o.Formats...)
	}
	if o.Preview != "" && !slices.Contains(o.Formats, FormatSVG) {
		o.Formats = append(o.Formats, FormatSVG)
	}
	if o.Report != "" && !slices.Contains(o.Formats, FormatJSON) {
		o.Formats = append(o.Formats, FormatJSON)
	}
}

// Path returns the file an artifact of the given format is written to. SVG
// and JSON default to the GDS output path with the extension replaced.
func (o *Options) Path(format string) string {
	switch format {
	case FormatSVG:
		if o.Preview != "" {
			return o.Preview
		}
	case FormatJSON:
		if o.Report != "" {
			return o.Report
		}
	default:
		return o.Output
	}
	return strings.TrimSuffix(o.Output, filepath.Ext(o.Output)) + "." + format
}
