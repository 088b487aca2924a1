package fuse

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/union"
)

// FusionSettings control how input points are merged into nodes.
type FusionSettings struct {
	Method    graph.FuseMethod `yaml:"method"`
	Tolerance float64          `yaml:"tolerance"`
}

// PointEdgeSettings control the split of edges passing through nodes.
type PointEdgeSettings struct {
	Enabled   bool    `yaml:"enabled"`
	Tolerance float64 `yaml:"tolerance"`

	// EnableSelfIntersection lets an edge be split by nodes coming from one
	// of its own sources.
	EnableSelfIntersection bool `yaml:"self_intersection"`

	// SnapOnEdge moves splitting nodes onto the edge they split.
	SnapOnEdge bool `yaml:"snap_on_edge"`
}

// EdgeEdgeSettings control the split of crossing edges.
type EdgeEdgeSettings struct {
	Enabled   bool    `yaml:"enabled"`
	Tolerance float64 `yaml:"tolerance"`

	// EnableSelfIntersection lets edges sharing a source cross.
	EnableSelfIntersection bool `yaml:"self_intersection"`

	// Crossings whose angle, in degrees, falls outside [MinAngle, MaxAngle]
	// are ignored. Zero disables a bound.
	MinAngle float64 `yaml:"min_angle"`
	MaxAngle float64 `yaml:"max_angle"`
}

// allowsAngle reports whether a crossing at angle degrees is kept.
func (s EdgeEdgeSettings) allowsAngle(angle float64) bool {
	if s.MinAngle > 0 && angle < s.MinAngle {
		return false
	}
	if s.MaxAngle > 0 && angle > s.MaxAngle {
		return false
	}
	return true
}

// Settings gather every processor setting. The zero value is not useful;
// start from DefaultSettings.
type Settings struct {
	Fusion    FusionSettings    `yaml:"fusion"`
	PointEdge PointEdgeSettings `yaml:"point_edge"`
	EdgeEdge  EdgeEdgeSettings  `yaml:"edge_edge"`

	// Blending configures node attributes, EdgeBlending edge attributes.
	Blending     union.Details `yaml:"blending"`
	EdgeBlending union.Details `yaml:"edge_blending"`

	Builder graph.BuilderSettings `yaml:"builder"`

	// Workers is the size of the worker pool; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// ChunkSize is the number of items per parallel scope; 0 picks one
	// from the item count.
	ChunkSize int `yaml:"chunk_size"`
	// PoolCapacity bounds the blend operations a run keeps; 0 keeps all.
	// Ignored when the processor is given a pool.
	PoolCapacity int `yaml:"pool_capacity"`
}

// DefaultSettings fuse points within 0.001 units, run both refinements
// with self intersection and average every attribute.
func DefaultSettings() Settings {
	return Settings{
		Fusion: FusionSettings{Method: graph.FuseNearest, Tolerance: 0.001},
		PointEdge: PointEdgeSettings{
			Enabled:                true,
			Tolerance:              0.001,
			EnableSelfIntersection: true,
		},
		EdgeEdge: EdgeEdgeSettings{
			Enabled:                true,
			Tolerance:              0.001,
			EnableSelfIntersection: true,
			MaxAngle:               90,
		},
		Blending:     union.DefaultDetails(),
		EdgeBlending: union.DefaultDetails(),
	}
}

// LoadSettings reads YAML settings from r on top of DefaultSettings.
// Unknown keys are rejected. An empty document yields the defaults.
//
// Example:
//
//	fusion:
//	  method: voxel
//	  tolerance: 0.01
//	edge_edge:
//	  enabled: false
//	blending:
//	  default_mode: Max
//	  modes:
//	    Weight: WeightedAdd
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("fuse: load settings: %w", err)
	}
	return s, nil
}
