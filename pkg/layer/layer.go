// Package layer describes the GDSII drawing layers a logo is written to.
//
// A [Layer] is a (layer, datatype) pair plus an optional display name. A
// [Config] holds two ordered lists:
//
//   - Boundary layers receive one rectangle covering the whole image.
//   - Pixel layers receive one unit square per lit pixel, the same set of
//     squares on every listed layer.
//
// The lists are plain data. [Default] returns the reference stack (a
// placement boundary plus five fill-exclusion layers, drawn in met1 and
// met2); a TOML file or command-line flags can replace either list, and an
// empty pixel list is valid.
package layer

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/logogds/pkg/errors"
)

// Layer identifies a GDSII drawing layer.
type Layer struct {
	Number   int    `toml:"layer" json:"layer"`
	Datatype int    `toml:"datatype" json:"datatype"`
	Name     string `toml:"name,omitempty" json:"name,omitempty"`
}

// String formats the layer as "number/datatype".
func (l Layer) String() string {
	return fmt.Sprintf("%d/%d", l.Number, l.Datatype)
}

// Label returns the display name, falling back to [Layer.String].
func (l Layer) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.String()
}

// Validate checks both numbers against the GDSII integer range.
func (l Layer) Validate() error {
	if err := errs.ValidateLayerNumber("layer", l.Number); err != nil {
		return err
	}
	return errs.ValidateLayerNumber("datatype", l.Datatype)
}

// Parse reads a layer written as "number/datatype", optionally followed by
// ":name", e.g. "68/20" or "68/20:met1".
func Parse(s string) (Layer, error) {
	numbers, name, _ := strings.Cut(strings.TrimSpace(s), ":")
	num, dt, ok := strings.Cut(numbers, "/")
	if !ok {
		return Layer{}, errs.New(errs.ErrCodeConfig, "invalid layer %q (want number/datatype)", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return Layer{}, errs.Wrap(errs.ErrCodeConfig, err, "invalid layer number in %q", s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(dt))
	if err != nil {
		return Layer{}, errs.Wrap(errs.ErrCodeConfig, err, "invalid datatype in %q", s)
	}
	l := Layer{Number: n, Datatype: d, Name: strings.TrimSpace(name)}
	if err := l.Validate(); err != nil {
		return Layer{}, err
	}
	return l, nil
}

// ParseList parses each entry with [Parse].
func ParseList(specs []string) ([]Layer, error) {
	layers := make([]Layer, 0, len(specs))
	for _, s := range specs {
		l, err := Parse(s)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}
