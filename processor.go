package fuse

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"

	"github.com/gogpu/fuse/blend"
	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/internal/geom"
	"github.com/gogpu/fuse/internal/parallel"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/union"
	"github.com/gogpu/fuse/value"
)

// Processor fuses several graphs into one.
//
// A run goes through these states:
//
//	ProcessingUnion -> WritingMetadata -> ProcessingPointEdgeIntersections
//	    -> ProcessingEdgeEdgeIntersections -> WritingClusters -> Done
//
// Either refinement is skipped when disabled, and both are skipped when the
// fused graph has at most one edge.
//
// A Processor is immutable and may run concurrently.
type Processor struct {
	opts options
}

// NewProcessor creates a processor.
func NewProcessor(opts ...Option) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Processor{opts: o}
}

// Settings returns the settings the processor runs with.
func (p *Processor) Settings() Settings { return p.opts.settings }

// Execute fuses sources.
//
// It fails with ErrNoNodes when the sources hold no point and with a
// *CancelError when a phase canceled the run, for instance because
// attributes could not be blended. An output without clusters is not an
// error: the result is empty and carries a warning.
func (p *Processor) Execute(ctx context.Context, sources []Source) (*Result, error) {
	r := &run{
		id:       ulid.Make(),
		settings: p.opts.settings,
		pool:     p.opts.pool,
		sources:  sources,
	}
	r.log = Logger().With("run", r.id.String())
	r.result = &Result{RunID: r.id}
	if r.pool == nil {
		r.pool = blend.NewPoolWithCapacity(r.settings.PoolCapacity)
	}

	for i, s := range sources {
		if err := s.validate(i); err != nil {
			return nil, err
		}
	}

	r.log.Info("fuse: run started", "sources", len(sources))
	r.setState(StateProcessingUnion)
	r.fuse()
	if len(r.union.Nodes) == 0 {
		r.log.Error("fuse: no fused nodes")
		return nil, ErrNoNodes
	}

	workers := p.opts.workers
	if workers == nil {
		workers = parallel.NewWorkerPool(r.settings.Workers)
		defer workers.Close()
	}
	r.sched = parallel.NewScheduler(ctx, workers)

	r.blendNodes()
	err := r.sched.Wait()

	if ce := r.canceled.Load(); ce != nil {
		r.log.Error("fuse: run canceled", "reason", ce.Message, "err", ce.Err)
		return nil, ce
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("fuse: %w", context.Cause(ctx))
	}

	r.setState(StateDone)
	r.log.Info("fuse: run finished",
		"vtx", r.result.Vtx.Len(),
		"clusters", len(r.result.Clusters),
		"warnings", len(r.result.Warnings))
	return r.result, nil
}

// run is the state of one Execute call. Fields written by completion
// callbacks are only touched sequentially, one phase after the other.
type run struct {
	id       ulid.ULID
	log      *slog.Logger
	settings Settings
	pool     *blend.Pool
	sched    *parallel.Scheduler
	sources  []Source
	state    State
	canceled atomic.Pointer[CancelError]

	union *graph.UnionGraph
	graph *graph.Graph
	vtx   *points.Collection
	edges *points.Collection

	result *Result
}

func (r *run) setState(s State) {
	r.state = s
	r.log.Debug("fuse: state", "state", s.String())
}

// cancel stops the run. The first cancellation wins.
func (r *run) cancel(message string, err error) {
	if r.canceled.CompareAndSwap(nil, &CancelError{Message: message, Err: err}) {
		r.sched.Cancel(message)
	}
}

func (r *run) warn(msg string) {
	r.result.Warnings = append(r.result.Warnings, msg)
	r.log.Warn("fuse: " + msg)
}

// fuse inserts every point and edge into the union graph.
func (r *run) fuse() {
	st := &r.result.Stats
	r.union = graph.NewUnionGraph(r.settings.Fusion.Method, r.settings.Fusion.Tolerance)
	for si, s := range r.sources {
		st.Sources++
		st.InputPoints += s.Vtx.Len()
		st.InputEdges += len(s.Edges)
		for i := range s.Vtx.Len() {
			r.union.InsertPoint(s.Vtx.Position(i), si, i)
		}
		for ei, l := range s.Edges {
			r.union.InsertEdge(s.Vtx, si, ei, l)
		}
	}
	st.DroppedEdges = r.union.Collapse(r.vtxSources())
	st.UnionNodes = len(r.union.Nodes)
	st.UnionEdges = len(r.union.Links)
	r.log.Debug("fuse: union built", "nodes", st.UnionNodes, "edges", st.UnionEdges, "dropped", st.DroppedEdges)
}

func (r *run) vtxSources() []*points.Collection {
	return lo.Map(r.sources, func(s Source, _ int) *points.Collection { return s.Vtx })
}

// ignored lists the attributes no blender should merge.
func (r *run) ignored() []string {
	names := graph.ReservedAttributes()
	for _, d := range []union.Details{r.settings.Blending, r.settings.EdgeBlending} {
		if !d.SourceMarkers {
			continue
		}
		for i := range r.sources {
			names = append(names, d.MarkerPrefix+strconv.Itoa(i))
		}
	}
	return lo.Uniq(names)
}

// blendNodes merges the attributes of every union node in parallel.
func (r *run) blendNodes() {
	nodes := r.union.Nodes
	r.vtx = points.NewCollection(len(nodes))
	for i, n := range nodes {
		r.vtx.Points[i].Position = value.Vector(n.Center)
	}

	b := union.NewBlender(r.pool, r.settings.Blending)
	b.AddSources(r.vtxSources(), r.ignored()...)
	if err := b.Init(r.vtx, r.union.NodesUnion); err != nil {
		r.cancel("could not initialize node blending", err)
		return
	}

	r.sched.StartSubLoops(len(nodes), r.settings.ChunkSize, func(sc parallel.Scope) {
		r.mergeScope(b, sc, "could not blend nodes", nil)
	}, r.writeMetadata)
}

// mergeScope merges the union elements of sc, calling after on each merged
// index when not nil. It cancels the run and returns false when b fails.
func (r *run) mergeScope(b *union.Blender, sc parallel.Scope, message string, after func(i int)) bool {
	var scratch []points.WeightedPoint
	for i := sc.Start; i < sc.End; i++ {
		var err error
		if scratch, err = b.MergeSingle(i, scratch); err != nil {
			r.cancel(message, err)
			return false
		}
		if after != nil {
			after(i)
		}
	}
	return true
}

// writeMetadata builds the graph and merges the attributes of every union
// edge.
func (r *run) writeMetadata() {
	r.setState(StateWritingMetadata)
	r.graph = r.union.Graph()

	links := r.union.Links
	r.edges = points.NewCollection(len(links))
	for i, l := range links {
		mid := geom.Lerp(r.nodePos(l.Start), r.nodePos(l.End), 0.5)
		r.edges.Points[i].Position = value.Vector(mid)
	}

	data := lo.Map(r.sources, func(s Source, _ int) *points.Collection { return s.edgeData() })
	b := union.NewBlender(r.pool, r.settings.EdgeBlending)
	b.AddSources(data, r.ignored()...)
	if err := b.Init(r.edges, r.union.EdgesUnion); err != nil {
		r.cancel("could not initialize edge blending", err)
		return
	}

	r.sched.StartSubLoops(len(links), r.settings.ChunkSize, func(sc parallel.Scope) {
		r.mergeScope(b, sc, "could not blend edges", func(i int) {
			// Edge points sit in the middle of their edge.
			r.edges.Points[i].Position = value.Vector(geom.Lerp(r.nodePos(links[i].Start), r.nodePos(links[i].End), 0.5))
		})
	}, r.refine)
}

// refine runs the enabled intersection passes, then compiles.
func (r *run) refine() {
	if len(r.graph.Edges) <= 1 {
		r.log.Debug("fuse: nothing to refine", "edges", len(r.graph.Edges))
		r.compile()
		return
	}

	edgeEdge := r.compile
	if r.settings.EdgeEdge.Enabled {
		edgeEdge = func() { r.findEdgeEdge(r.compile) }
	}
	if r.settings.PointEdge.Enabled {
		r.findPointEdge(edgeEdge)
		return
	}
	edgeEdge()
}

// compile turns the graph into the run output.
func (r *run) compile() {
	r.setState(StateWritingClusters)
	b := graph.NewBuilder(r.graph, r.vtx, r.settings.Builder)
	b.EdgeData = r.edges
	b.OnCompilationEnd = func(b *graph.Builder, ok bool) {
		if !ok {
			r.warn(b.Err.Error())
		}
		r.result.Vtx = b.Vtx
		r.result.Clusters = b.Clusters
		r.result.Stats.Clusters = len(b.Clusters)
	}
	b.CompileAsync(r.sched)
}

func (r *run) nodePos(n int) v3.Vec {
	return r.vtx.Position(r.graph.Nodes[n].PointIndex)
}

// nodeSources returns the sources fused into node n, nil for nodes created
// by refinement.
func (r *run) nodeSources(n int) []int {
	if n < r.union.NodesUnion.Len() {
		return r.union.NodesUnion.Sources(n)
	}
	return nil
}

// edgeSources returns the sources of the input edges behind root.
func (r *run) edgeSources(root int) []int {
	if root >= 0 && root < r.union.EdgesUnion.Len() {
		return r.union.EdgesUnion.Sources(root)
	}
	return nil
}
