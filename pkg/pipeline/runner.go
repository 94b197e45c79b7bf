package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logogds/pkg/bitmap"
	"github.com/matzehuels/logogds/pkg/drc"
	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/geometry"
	"github.com/matzehuels/logogds/pkg/observability"
	"github.com/matzehuels/logogds/pkg/raster"
)

// Runner executes conversions. It holds no per-run state, so one Runner may
// serve concurrent runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → binarize → check → emit → render pipeline.
// Context cancellation is honoured between stages, and each stage is
// reported to the registered [observability.PipelineHooks].
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	b, stats, err := r.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Bitmap: b, Stats: stats}

	// Stage 3: Check
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	checkStart := time.Now()
	result.Report = check(b, opts, true)
	result.Stats.CheckTime = time.Since(checkStart)
	hooks.OnCheckComplete(ctx, result.Report, result.Stats.CheckTime)

	// Stage 4: Emit
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	emitStart := time.Now()
	result.Cell = geometry.NewCell(opts.Cell, b, opts.PixelSize, *opts.Layers)
	result.Stats.EmitTime = time.Since(emitStart)
	result.Stats.Rects = len(result.Cell.Rects)

	hooks.OnEmitComplete(ctx, opts.Cell, result.Stats.Rects, result.Stats.EmitTime)
	logger.Infof("Output GDS size: %gum x %gum", result.Cell.Width, result.Cell.Height)

	// Stage 5: Render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(result.Cell, result.Report, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	return result, nil
}

// Check loads and binarizes the input and runs DRC without emitting any
// geometry. Findings are always recorded in the report but not logged
// one by one; the caller presents them.
func (r *Runner) Check(ctx context.Context, opts Options) (*bitmap.Bitmap, drc.Report, error) {
	r.applyLogger(&opts)
	opts.Findings = true
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, drc.Report{}, err
	}

	b, _, err := r.load(ctx, opts)
	if err != nil {
		return nil, drc.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, drc.Report{}, err
	}

	start := time.Now()
	report := check(b, opts, false)
	observability.Pipeline().OnCheckComplete(ctx, report, time.Since(start))
	return b, report, nil
}

// load covers the load and binarize stages.
func (r *Runner) load(ctx context.Context, opts Options) (*bitmap.Bitmap, Stats, error) {
	var stats Stats
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	loadStart := time.Now()
	img, err := raster.Load(opts.Input)
	stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, 0, 0, stats.LoadTime, err)
		return nil, stats, err
	}
	stats.Width, stats.Height = img.Gray.Width, img.Gray.Height
	hooks.OnLoadComplete(ctx, opts.Input, stats.Width, stats.Height, stats.LoadTime, nil)

	opts.Logger.Infof("Input image size: %dpx x %dpx", stats.Width, stats.Height)

	if stats.Width == 0 || stats.Height == 0 {
		return nil, stats, errs.New(errs.ErrCodeInvalidInput, "image %s has no pixels", opts.Input)
	}

	b := bitmap.Binarize(img.Gray)
	stats.Lit = b.Count()
	return b, stats, nil
}

// check runs DRC and logs a warning when anything was found. With
// logFindings, each recorded finding is also logged at debug level.
func check(b *bitmap.Bitmap, opts Options, logFindings bool) drc.Report {
	var drcOpts []drc.Option
	if opts.Findings {
		drcOpts = append(drcOpts, drc.WithFindings())
	}

	report := drc.Check(b, drcOpts...)
	if !report.Clean() {
		opts.Logger.Warn(report.Summary())
	}
	if logFindings {
		for _, f := range report.Findings {
			opts.Logger.Debug(f.String())
		}
	}
	return report
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
