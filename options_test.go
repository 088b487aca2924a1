package fuse

import (
	"testing"

	"github.com/gogpu/fuse/blend"
	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/internal/parallel"
	"github.com/gogpu/fuse/union"
)

// TestNewProcessorDefault tests that NewProcessor uses the default settings.
func TestNewProcessorDefault(t *testing.T) {
	p := NewProcessor()
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}

	s := p.Settings()
	if s.Fusion.Method != graph.FuseNearest {
		t.Errorf("Fusion.Method = %v, want %v", s.Fusion.Method, graph.FuseNearest)
	}
	if s.Fusion.Tolerance != 0.001 {
		t.Errorf("Fusion.Tolerance = %v, want 0.001", s.Fusion.Tolerance)
	}
	if !s.PointEdge.Enabled || !s.EdgeEdge.Enabled {
		t.Error("both refinements should be enabled by default")
	}
	if s.Blending.DefaultMode != blend.ModeAverage {
		t.Errorf("Blending.DefaultMode = %v, want Average", s.Blending.DefaultMode)
	}

	// No shared pools unless asked for.
	if p.opts.pool != nil {
		t.Error("pool should be nil by default")
	}
	if p.opts.workers != nil {
		t.Error("workers should be nil by default")
	}
}

// TestProcessorOptions tests that options override single settings.
func TestProcessorOptions(t *testing.T) {
	d := union.DefaultDetails()
	d.DefaultMode = blend.ModeMax

	p := NewProcessor(
		WithFusion(graph.FuseVoxel, 0.5),
		WithPointEdge(PointEdgeSettings{SnapOnEdge: true}),
		WithEdgeEdge(EdgeEdgeSettings{Enabled: true, MinAngle: 10}),
		WithBlending(d),
		WithEdgeBlending(d),
		WithBuilder(graph.BuilderSettings{WriteUnionFlags: true}),
		WithWorkers(3),
		WithChunkSize(16),
	)

	s := p.Settings()
	if s.Fusion.Method != graph.FuseVoxel || s.Fusion.Tolerance != 0.5 {
		t.Errorf("Fusion = %+v, want voxel 0.5", s.Fusion)
	}
	if s.PointEdge.Enabled || !s.PointEdge.SnapOnEdge {
		t.Errorf("PointEdge = %+v", s.PointEdge)
	}
	if s.EdgeEdge.MinAngle != 10 {
		t.Errorf("EdgeEdge.MinAngle = %v, want 10", s.EdgeEdge.MinAngle)
	}
	if s.Blending.DefaultMode != blend.ModeMax || s.EdgeBlending.DefaultMode != blend.ModeMax {
		t.Error("blending options not applied")
	}
	if !s.Builder.WriteUnionFlags {
		t.Error("WriteUnionFlags not applied")
	}
	if s.Workers != 3 || s.ChunkSize != 16 {
		t.Errorf("Workers, ChunkSize = %d, %d, want 3, 16", s.Workers, s.ChunkSize)
	}
}

// TestWithSettingsOrder tests that later options override WithSettings.
func TestWithSettingsOrder(t *testing.T) {
	base := DefaultSettings()
	base.Workers = 7

	p := NewProcessor(WithSettings(base), WithChunkSize(4))
	s := p.Settings()
	if s.Workers != 7 {
		t.Errorf("Workers = %d, want 7", s.Workers)
	}
	if s.ChunkSize != 4 {
		t.Errorf("ChunkSize = %d, want 4", s.ChunkSize)
	}

	p = NewProcessor(WithChunkSize(4), WithSettings(base))
	if got := p.Settings().ChunkSize; got != 0 {
		t.Errorf("ChunkSize = %d, want 0 after WithSettings", got)
	}
}

// TestWithPools tests that shared pools are stored as given.
func TestWithPools(t *testing.T) {
	pool := blend.NewPool()
	workers := parallel.NewWorkerPool(1)
	defer workers.Close()

	p := NewProcessor(WithBlendPool(pool), WithWorkerPool(workers))
	if p.opts.pool != pool {
		t.Error("blend pool not stored")
	}
	if p.opts.workers != workers {
		t.Error("worker pool not stored")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateProcessingUnion, "ProcessingUnion"},
		{StateWritingMetadata, "WritingMetadata"},
		{StateProcessingPointEdgeIntersections, "ProcessingPointEdgeIntersections"},
		{StateProcessingEdgeEdgeIntersections, "ProcessingEdgeEdgeIntersections"},
		{StateWritingClusters, "WritingClusters"},
		{StateDone, "Done"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
