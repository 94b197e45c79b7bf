package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logogds/pkg/drc"
	"github.com/matzehuels/logogds/pkg/observability"
)

// logHooks reports pipeline stage timings at debug level.
type logHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

func (h logHooks) OnLoadComplete(_ context.Context, path string, width, height int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "duration", d, "err", err)
		return
	}
	h.logger.Debug("decoded image", "path", path, "width", width, "height", height, "duration", d)
}

func (h logHooks) OnCheckComplete(_ context.Context, r drc.Report, d time.Duration) {
	h.logger.Debug("checked design rules", "diagonals", r.Diagonals, "lone", r.LonePixels, "duration", d)
}

func (h logHooks) OnEmitComplete(_ context.Context, cell string, rects int, d time.Duration) {
	h.logger.Debug("emitted rectangles", "cell", cell, "rects", rects, "duration", d)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("rendered outputs", "formats", formats, "duration", d, "err", err)
}
