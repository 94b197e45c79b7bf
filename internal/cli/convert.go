package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/layer"
	"github.com/matzehuels/logogds/pkg/pipeline"
)

// imageExts are the file extensions offered by shell completion for images.
var imageExts = []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp", "svg"}

// sourceDateEpoch pins the GDS timestamp for reproducible builds.
const sourceDateEpoch = "SOURCE_DATE_EPOCH"

type convertFlags struct {
	input          string
	cell           string
	output         string
	pixelSize      float64
	preview        string
	report         string
	library        string
	pixelLayers    []string
	boundaryLayers []string
}

func (f *convertFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", pipeline.DefaultInput, "input image (png, jpeg, gif, bmp, tiff, webp or svg)")
	fl.StringVarP(&f.cell, "cell", "c", pipeline.DefaultCell, "name of the generated cell")
	fl.StringVarP(&f.output, "output", "o", pipeline.DefaultOutput, "output GDS file")
	fl.Float64VarP(&f.pixelSize, "pixel-size", "u", pipeline.DefaultPixelSize, "pixel pitch in micrometres")
	fl.StringVar(&f.preview, "preview", "", "also write an SVG preview to this file")
	fl.StringVar(&f.report, "report", "", "also write a JSON report to this file")
	fl.StringVar(&f.library, "library", "", `GDSII library name (default "library")`)
	fl.StringSliceVar(&f.pixelLayers, "pixel-layer", nil, `replace the pixel layers, e.g. "68/20:met1" (repeatable)`)
	fl.StringSliceVar(&f.boundaryLayers, "boundary-layer", nil, `replace the boundary layers, e.g. "235/4:prBndry" (repeatable)`)
}

// apply overlays the flags the user set, and fills anything still empty
// with the flag defaults.
func (f *convertFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	fl := cmd.Flags()

	setString := func(name string, dst *string, v string) {
		if fl.Changed(name) || *dst == "" {
			*dst = v
		}
	}
	setString("input", &opts.Input, f.input)
	setString("cell", &opts.Cell, f.cell)
	setString("output", &opts.Output, f.output)
	setString("preview", &opts.Preview, f.preview)
	setString("report", &opts.Report, f.report)
	setString("library", &opts.LibraryName, f.library)

	if fl.Changed("pixel-size") {
		if err := errs.ValidatePixelSize(f.pixelSize); err != nil {
			return err
		}
		opts.PixelSize = f.pixelSize
	}

	if fl.Changed("pixel-layer") || fl.Changed("boundary-layer") {
		layers := effectiveLayers(*opts).Clone()
		if fl.Changed("pixel-layer") {
			l, err := layer.ParseList(f.pixelLayers)
			if err != nil {
				return err
			}
			layers.Pixel = l
		}
		if fl.Changed("boundary-layer") {
			l, err := layer.ParseList(f.boundaryLayers)
			if err != nil {
				return err
			}
			layers.Boundary = l
		}
		opts.Layers = &layers
	}
	return nil
}

// buildOptions merges defaults, the config file, flags and the environment.
func (c *CLI) buildOptions(cmd *cobra.Command) (pipeline.Options, error) {
	opts, err := c.baseOptions()
	if err != nil {
		return opts, err
	}
	if err := c.convert.apply(cmd, &opts); err != nil {
		return opts, err
	}

	ts, err := timestampFromEnv()
	if err != nil {
		return opts, err
	}
	opts.Timestamp = ts
	opts.Findings = c.verbose
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, nil
}

func timestampFromEnv() (time.Time, error) {
	v := os.Getenv(sourceDateEpoch)
	if v == "" {
		return time.Time{}, nil
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, errs.Wrap(errs.ErrCodeConfig, err, "invalid %s %q", sourceDateEpoch, v)
	}
	return time.Unix(sec, 0).UTC(), nil
}

func (c *CLI) runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts, err := c.buildOptions(cmd)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	result, err := pipeline.NewRunner(logger).Execute(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := pipeline.WriteArtifacts(result, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %s", opts.Path(pipeline.FormatGDS)))

	printResult(result, opts, paths)
	return nil
}

func printResult(result *pipeline.Result, opts pipeline.Options, paths []string) {
	s := result.Stats
	printSuccess("Converted %s into cell %s", opts.Input, StyleNumber.Render(opts.Cell))
	printKeyValue("Image", fmt.Sprintf("%d x %d px, %d lit", s.Width, s.Height, s.Lit))
	printKeyValue("Size", fmt.Sprintf("%g x %g um", result.Cell.Width, result.Cell.Height))
	printKeyValue("Rectangles", fmt.Sprintf("%d on %d layers", s.Rects, len(result.Cell.Counts())))
	if result.Report.Clean() {
		printKeyValue("DRC", StyleSuccess.Render("clean"))
	} else {
		printKeyValue("DRC", StyleWarning.Render(result.Report.Summary()))
	}
	for _, p := range paths {
		printFile(p)
	}
}
