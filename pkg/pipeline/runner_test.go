package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logogds/pkg/drc"
	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/layer"
	"github.com/matzehuels/logogds/pkg/observability"
)

// writeLogo writes a PNG where '#' rows mark black pixels.
func writeLogo(t *testing.T, rows ...string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x := range len(row) {
			v := uint8(255)
			if row[x] == '#' {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func debugLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestExecuteCheckerboard(t *testing.T) {
	var logs bytes.Buffer
	opts := Options{
		Input:    writeLogo(t, "#.", ".#"),
		Cell:     "checker",
		Findings: true,
		Formats:  []string{FormatSVG, FormatJSON},
		Logger:   debugLogger(&logs),
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Report.Diagonals != 1 || result.Report.LonePixels != 2 || result.Report.Total() != 3 {
		t.Errorf("report = %+v, want 1 diagonal and 2 lone pixels", result.Report)
	}
	wantFindings := []drc.Finding{
		{Kind: drc.KindDiagonal, X: 1, Y: 1},
		{Kind: drc.KindLone, X: 0, Y: 0},
		{Kind: drc.KindLone, X: 1, Y: 1},
	}
	if len(result.Report.Findings) != len(wantFindings) {
		t.Fatalf("Findings = %v, want %v", result.Report.Findings, wantFindings)
	}
	for i, f := range wantFindings {
		if result.Report.Findings[i] != f {
			t.Errorf("Findings[%d] = %v, want %v", i, result.Report.Findings[i], f)
		}
	}

	// 6 boundary layers + 2 lit pixels on 2 pixel layers
	if got := len(result.Cell.Rects); got != 10 {
		t.Errorf("len(Rects) = %d, want 10", got)
	}
	if result.Stats.Width != 2 || result.Stats.Height != 2 || result.Stats.Lit != 2 {
		t.Errorf("Stats = %+v, want 2x2 with 2 lit", result.Stats)
	}
	for _, f := range []string{FormatGDS, FormatSVG, FormatJSON} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}

	out := logs.String()
	for _, want := range []string{
		"Input image size: 2px x 2px",
		"Output GDS size: 0.56um x 0.56um",
		"3 DRC issues encountered (1 diagonals, 2 lone pixels)",
		"Diagonally touching pixels at 1,1",
		"Lone pixel at 0,0",
		"Lone pixel at 1,1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestExecuteCleanImage(t *testing.T) {
	var logs bytes.Buffer
	opts := Options{
		Input:  writeLogo(t, "##.", "##.", "..."),
		Layers: &layer.Config{Pixel: []layer.Layer{{Number: 68, Datatype: 20}}},
		Logger: debugLogger(&logs),
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !result.Report.Clean() {
		t.Errorf("report = %+v, want clean", result.Report)
	}
	if strings.Contains(logs.String(), "DRC issues") {
		t.Errorf("clean image should not warn:\n%s", logs.String())
	}
	if got := len(result.Cell.Rects); got != 4 {
		t.Errorf("len(Rects) = %d, want 4", got)
	}
}

func TestExecuteCountsWithoutFindings(t *testing.T) {
	var logs bytes.Buffer
	opts := Options{
		Input:  writeLogo(t, "#.", ".#"),
		Logger: debugLogger(&logs),
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Report.Total() != 3 || len(result.Report.Findings) != 0 {
		t.Errorf("report = %+v, want counts only", result.Report)
	}
	if strings.Contains(logs.String(), "Lone pixel at") {
		t.Error("per-finding lines logged without Findings")
	}
}

func TestExecuteZeroSizeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.svg")
	if err := os.WriteFile(path, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 0 0"></svg>`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRunner(nil).Execute(context.Background(), Options{Input: path})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %v", err, errs.ErrCodeInvalidInput)
	}
}

func TestExecuteMissingInput(t *testing.T) {
	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing.png"),
	})
	if !errs.Is(err, errs.ErrCodeInput) {
		t.Errorf("error = %v, want %v", err, errs.ErrCodeInput)
	}
}

func TestExecuteConfigErrorBeforeLoad(t *testing.T) {
	// The input does not exist: a config error must win over an input error.
	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Input:     filepath.Join(t.TempDir(), "missing.png"),
		PixelSize: -1,
	})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %v", err, errs.ErrCodeInvalidInput)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil).Execute(ctx, Options{Input: writeLogo(t, "#")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestExecuteDeterministicGDS(t *testing.T) {
	input := writeLogo(t, "#.#", ".#.", "#.#")
	opts := Options{Input: input, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	a, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Artifacts[FormatGDS], b.Artifacts[FormatGDS]) {
		t.Error("GDS output differs between identical runs")
	}
}

func TestRunnerCheck(t *testing.T) {
	b, report, err := NewRunner(nil).Check(context.Background(), Options{
		Input: writeLogo(t, "#..", "...", "..#"),
	})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if b.Width() != 3 || b.Height() != 3 {
		t.Errorf("bitmap = %dx%d, want 3x3", b.Width(), b.Height())
	}
	if report.LonePixels != 2 || len(report.Findings) != 2 {
		t.Errorf("report = %+v, want 2 recorded lone pixels", report)
	}
}

func TestRunnerCheckLogsSummaryOnly(t *testing.T) {
	var logs bytes.Buffer
	_, report, err := NewRunner(debugLogger(&logs)).Check(context.Background(), Options{
		Input: writeLogo(t, "#.", ".#"),
	})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if len(report.Findings) != 3 {
		t.Errorf("Findings = %v, want 3", report.Findings)
	}

	out := logs.String()
	if !strings.Contains(out, "3 DRC issues encountered") {
		t.Errorf("logs missing summary:\n%s", out)
	}
	if strings.Contains(out, "Lone pixel at") || strings.Contains(out, "Diagonally touching") {
		t.Errorf("Check() logged individual findings:\n%s", out)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
	width  int
	report drc.Report
	rects  int
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.events = append(h.events, "load") }
func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, w, _ int, _ time.Duration, err error) {
	h.events = append(h.events, "loaded")
	h.width = w
}
func (h *recordingHooks) OnCheckComplete(_ context.Context, r drc.Report, _ time.Duration) {
	h.events = append(h.events, "checked")
	h.report = r
}
func (h *recordingHooks) OnEmitComplete(_ context.Context, _ string, rects int, _ time.Duration) {
	h.events = append(h.events, "emitted")
	h.rects = rects
}
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "rendered")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	_, err := NewRunner(nil).Execute(context.Background(), Options{Input: writeLogo(t, "#.", ".#")})
	if err != nil {
		t.Fatal(err)
	}

	want := "load loaded checked emitted rendered"
	if got := strings.Join(hooks.events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
	if hooks.width != 2 || hooks.report.Total() != 3 || hooks.rects != 10 {
		t.Errorf("hook payloads = width %d, total %d, rects %d", hooks.width, hooks.report.Total(), hooks.rects)
	}
}
