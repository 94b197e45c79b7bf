package pipeline

import (
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/layer"
)

// FileConfig is the TOML configuration file. Every key is optional; a
// [[boundary]] or [[pixel]] table list replaces the corresponding default
// list entirely, and an explicit empty list clears it.
type FileConfig struct {
	Input     string        `toml:"input"`
	Cell      string        `toml:"cell"`
	Output    string        `toml:"output"`
	PixelSize float64       `toml:"pixel_size"`
	Library   string        `toml:"library"`
	Preview   string        `toml:"preview"`
	Report    string        `toml:"report"`
	Boundary  []layer.Layer `toml:"boundary"`
	Pixel     []layer.Layer `toml:"pixel"`

	hasBoundary bool
	hasPixel    bool
}

// LoadConfig reads a TOML configuration file. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func LoadConfig(path string) (*FileConfig, error) {
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.hasBoundary = md.IsDefined("boundary")
	cfg.hasPixel = md.IsDefined("pixel")

	if err := cfg.layers().Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "config %s", path)
	}
	return &cfg, nil
}

// layers returns the default stack with the lists the file defines swapped in.
func (c *FileConfig) layers() layer.Config {
	l := layer.Default()
	if c.hasBoundary {
		l.Boundary = slices.Clone(c.Boundary)
	}
	if c.hasPixel {
		l.Pixel = slices.Clone(c.Pixel)
	}
	return l
}

// Apply copies every value set in the file onto o. Callers apply
// command-line flags afterwards so they take precedence.
func (c *FileConfig) Apply(o *Options) {
	if c.Input != "" {
		o.Input = c.Input
	}
	if c.Cell != "" {
		o.Cell = c.Cell
	}
	if c.Output != "" {
		o.Output = c.Output
	}
	if c.PixelSize != 0 {
		o.PixelSize = c.PixelSize
	}
	if c.Library != "" {
		o.LibraryName = c.Library
	}
	if c.Preview != "" {
		o.Preview = c.Preview
	}
	if c.Report != "" {
		o.Report = c.Report
	}
	if c.hasBoundary || c.hasPixel {
		l := c.layers()
		o.Layers = &l
	}
}
