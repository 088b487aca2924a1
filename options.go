package fuse

import (
	"github.com/gogpu/fuse/blend"
	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/internal/parallel"
	"github.com/gogpu/fuse/union"
)

// Option configures a Processor during creation.
// Use functional options to customize Processor behavior.
//
// Example:
//
//	// Default settings
//	p := fuse.NewProcessor()
//
//	// Coarser fusion, no crossing detection
//	p := fuse.NewProcessor(
//	    fuse.WithFusion(graph.FuseVoxel, 0.5),
//	    fuse.WithEdgeEdge(fuse.EdgeEdgeSettings{}),
//	)
type Option func(*options)

// options holds optional configuration for Processor creation.
type options struct {
	settings Settings
	pool     *blend.Pool          // private pool per run if nil
	workers  *parallel.WorkerPool // private worker pool per run if nil
}

// defaultOptions returns the default processor options.
func defaultOptions() options {
	return options{settings: DefaultSettings()}
}

// WithSettings replaces every setting at once, typically with the result
// of LoadSettings. Options applied later still override single fields.
func WithSettings(s Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// WithFusion sets how input points are merged into nodes.
func WithFusion(method graph.FuseMethod, tolerance float64) Option {
	return func(o *options) {
		o.settings.Fusion = FusionSettings{Method: method, Tolerance: tolerance}
	}
}

// WithPointEdge configures point-edge refinement. A zero value disables it.
func WithPointEdge(s PointEdgeSettings) Option {
	return func(o *options) {
		o.settings.PointEdge = s
	}
}

// WithEdgeEdge configures edge-edge refinement. A zero value disables it.
func WithEdgeEdge(s EdgeEdgeSettings) Option {
	return func(o *options) {
		o.settings.EdgeEdge = s
	}
}

// WithBlending sets how node attributes are merged.
func WithBlending(d union.Details) Option {
	return func(o *options) {
		o.settings.Blending = d
	}
}

// WithEdgeBlending sets how edge attributes are merged.
func WithEdgeBlending(d union.Details) Option {
	return func(o *options) {
		o.settings.EdgeBlending = d
	}
}

// WithBuilder sets cluster limits and output flags.
func WithBuilder(s graph.BuilderSettings) Option {
	return func(o *options) {
		o.settings.Builder = s
	}
}

// WithWorkers sets the number of workers of the private worker pool.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.settings.Workers = n
	}
}

// WithChunkSize sets the number of items per parallel scope.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.settings.ChunkSize = n
	}
}

// WithBlendPool shares an operation pool between processors. By default
// every run owns a fresh pool.
func WithBlendPool(p *blend.Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithWorkerPool runs on an existing worker pool instead of a private one.
// The processor does not close it.
func WithWorkerPool(p *parallel.WorkerPool) Option {
	return func(o *options) {
		o.workers = p
	}
}
