package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/layer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logogds.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
input = "logo.png"
cell = "logo"
output = "logo.gds"
pixel_size = 0.5
library = "logos"

[[pixel]]
layer = 68
datatype = 20
name = "met1"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	var opts Options
	cfg.Apply(&opts)

	if opts.Input != "logo.png" || opts.Cell != "logo" || opts.Output != "logo.gds" {
		t.Errorf("paths = %q %q %q", opts.Input, opts.Cell, opts.Output)
	}
	if opts.PixelSize != 0.5 {
		t.Errorf("PixelSize = %g, want 0.5", opts.PixelSize)
	}
	if opts.LibraryName != "logos" {
		t.Errorf("LibraryName = %q, want %q", opts.LibraryName, "logos")
	}

	want := layer.Default()
	want.Pixel = []layer.Layer{{Number: 68, Datatype: 20, Name: "met1"}}
	if diff := cmp.Diff(want, *opts.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmptyList(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "boundary = []\n"))
	if err != nil {
		t.Fatal(err)
	}

	var opts Options
	cfg.Apply(&opts)
	if opts.Layers == nil {
		t.Fatal("explicit empty boundary list was ignored")
	}
	if len(opts.Layers.Boundary) != 0 {
		t.Errorf("Boundary = %v, want empty", opts.Layers.Boundary)
	}
	if diff := cmp.Diff(layer.Default().Pixel, opts.Layers.Pixel); diff != "" {
		t.Errorf("Pixel should keep defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfigNoLayers(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `cell = "x"`))
	if err != nil {
		t.Fatal(err)
	}

	opts := Options{Cell: "flag"}
	cfg.Apply(&opts)
	if opts.Layers != nil {
		t.Errorf("Layers = %v, want nil so defaults apply", opts.Layers)
	}
	if opts.Cell != "x" {
		t.Errorf("Cell = %q, want config value", opts.Cell)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "cell = "},
		{"unknown key", "cel = \"logo\"\n"},
		{"wrong type", "pixel_size = \"big\"\n"},
		{"layer range", "[[pixel]]\nlayer = 40000\ndatatype = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() should fail")
			}
			if !errs.Is(err, errs.ErrCodeConfig) {
				t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeConfig)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errs.Is(err, errs.ErrCodeConfig) {
		t.Errorf("error = %v, want %v", err, errs.ErrCodeConfig)
	}
}
