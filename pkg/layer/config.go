package layer

import (
	"slices"
)

// Config is the ordered set of layers a cell is drawn on.
type Config struct {
	Boundary []Layer `toml:"boundary" json:"boundary"`
	Pixel    []Layer `toml:"pixel" json:"pixel"`
}

// Default returns the reference layer stack.
func Default() Config {
	return Config{
		Boundary: []Layer{
			{Number: 235, Datatype: 4, Name: "prBndry"},
			{Number: 62, Datatype: 24, Name: "cmm1"},
			{Number: 105, Datatype: 52, Name: "cmm2"},
			{Number: 107, Datatype: 24, Name: "cmm3"},
			{Number: 112, Datatype: 4, Name: "cmm4"},
			{Number: 117, Datatype: 4, Name: "cmm5"},
		},
		Pixel: []Layer{
			{Number: 68, Datatype: 20, Name: "met1"},
			{Number: 69, Datatype: 20, Name: "met2"},
		},
	}
}

// Validate checks every layer in both lists.
func (c Config) Validate() error {
	for _, l := range c.Boundary {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for _, l := range c.Pixel {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy so callers can modify the lists freely.
func (c Config) Clone() Config {
	return Config{
		Boundary: slices.Clone(c.Boundary),
		Pixel:    slices.Clone(c.Pixel),
	}
}

// All returns the boundary layers followed by the pixel layers.
func (c Config) All() []Layer {
	return slices.Concat(c.Boundary, c.Pixel)
}
