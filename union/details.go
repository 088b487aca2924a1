package union

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/fuse/blend"
)

// Weighting selects how contributor weights are computed.
type Weighting uint8

const (
	// WeightUniform gives every contributor a weight of 1.
	WeightUniform Weighting = iota
	// WeightDistance weighs contributors by 1 - d/maxD where d is their
	// distance to the output point.
	WeightDistance
)

// String returns the weighting name.
func (w Weighting) String() string {
	switch w {
	case WeightUniform:
		return "Uniform"
	case WeightDistance:
		return "Distance"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Weighting) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Weighting) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "uniform", "":
		*w = WeightUniform
	case "distance":
		*w = WeightDistance
	default:
		return fmt.Errorf("union: unknown weighting %q", text)
	}
	return nil
}

// PropertyModes holds the blend mode of each built-in point field.
type PropertyModes struct {
	Position  blend.Mode `yaml:"position"`
	Rotation  blend.Mode `yaml:"rotation"`
	Scale     blend.Mode `yaml:"scale"`
	Density   blend.Mode `yaml:"density"`
	Color     blend.Mode `yaml:"color"`
	Steepness blend.Mode `yaml:"steepness"`
	Seed      blend.Mode `yaml:"seed"`
}

// DefaultPropertyModes averages every field.
func DefaultPropertyModes() PropertyModes {
	return PropertyModes{
		Position:  blend.ModeAverage,
		Rotation:  blend.ModeAverage,
		Scale:     blend.ModeAverage,
		Density:   blend.ModeAverage,
		Color:     blend.ModeAverage,
		Steepness: blend.ModeAverage,
		Seed:      blend.ModeAverage,
	}
}

// Details configures a Blender.
type Details struct {
	// Include restricts blending to the named attributes when non-empty.
	Include []string `yaml:"include"`
	// Exclude drops the named attributes.
	Exclude []string `yaml:"exclude"`

	DefaultMode blend.Mode            `yaml:"default_mode"`
	Modes       map[string]blend.Mode `yaml:"modes"`
	Properties  PropertyModes         `yaml:"properties"`

	// Required attributes must be provided by at least one source.
	Required []string `yaml:"required"`

	// PreserveDefault lets sources lacking an attribute contribute its
	// default value instead of being skipped.
	PreserveDefault bool `yaml:"preserve_default"`

	// ResetForMulti starts every multi blend from the kind's zero value
	// instead of the target's current value.
	ResetForMulti bool `yaml:"reset_for_multi"`

	Weighting Weighting `yaml:"weighting"`

	// SourceMarkers writes one boolean attribute per source, named
	// MarkerPrefix followed by the source index, that is true on points the
	// source contributed to.
	SourceMarkers bool   `yaml:"source_markers"`
	MarkerPrefix  string `yaml:"marker_prefix"`
}

// DefaultDetails averages everything from a reset accumulator.
func DefaultDetails() Details {
	return Details{
		DefaultMode:   blend.ModeAverage,
		Properties:    DefaultPropertyModes(),
		ResetForMulti: true,
		MarkerPrefix:  "FromSource_",
	}
}

// Param binds an attribute to the mode it is blended with.
type Param struct {
	Name          string
	Mode          blend.Mode
	ResetForMulti bool
}

// Param returns the blend parameter of attribute name, and false when the
// attribute is filtered out.
func (d *Details) Param(name string) (Param, bool) {
	if len(d.Include) > 0 && !slices.Contains(d.Include, name) {
		return Param{}, false
	}
	if slices.Contains(d.Exclude, name) {
		return Param{}, false
	}
	mode, ok := d.Modes[name]
	if !ok {
		mode = d.DefaultMode
	}
	return Param{Name: name, Mode: mode, ResetForMulti: d.ResetForMulti}, true
}
