package union

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/gogpu/fuse/blend"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/value"
)

var (
	// ErrTypeMismatch is returned by Init when an attribute name has
	// different kinds across sources.
	ErrTypeMismatch = errors.New("union: attributes with the same name but different types")

	// ErrMissingAttribute is returned by Init when a required attribute is
	// not provided by any source.
	ErrMissingAttribute = errors.New("union: required attribute has no valid source")

	// ErrNotInitialized is returned when blending before Init.
	ErrNotInitialized = errors.New("union: blender not initialized")
)

// multiSource blends one attribute from every source that has it.
type multiSource struct {
	id    points.Identity
	param Param
	def   value.Value
	op    *blend.Operation

	// attrs holds the attribute of each source, nil where unsupported.
	attrs  []*points.Attribute
	target *points.Attribute
}

func (m *multiSource) supported(src int) bool {
	return src < len(m.attrs) && m.attrs[src] != nil
}

// Blender merges the attributes of several sources into a target
// collection.
type Blender struct {
	pool    *blend.Pool
	details Details

	sources    []*points.Collection
	entries    []*multiSource
	byName     map[string]*multiSource
	mismatches []string
	ignored    map[string]struct{}

	target   *points.Collection
	metadata *points.UnionMetadata
	perPoint []*multiSource
	props    *PropertiesBlender
	markers  []*points.Attribute
}

// NewBlender creates a blender drawing operations from pool. A nil pool
// gets a private one.
func NewBlender(pool *blend.Pool, details Details) *Blender {
	if pool == nil {
		pool = blend.NewPool()
	}
	return &Blender{
		pool:    pool,
		details: details,
		byName:  make(map[string]*multiSource),
		ignored: make(map[string]struct{}),
	}
}

// AddSources registers sources. Attributes named in ignore are not
// blended.
//
// The first source that declares an attribute fixes its kind and default.
// A later source declaring it with another kind is recorded in
// TypeMismatches and does not contribute to it.
func (b *Blender) AddSources(sources []*points.Collection, ignore ...string) {
	for _, name := range ignore {
		b.ignored[name] = struct{}{}
	}

	for _, src := range sources {
		si := len(b.sources)
		b.sources = append(b.sources, src)

		for _, attr := range src.Attributes() {
			id := attr.Identity()
			if _, skip := b.ignored[id.Name]; skip {
				continue
			}
			param, ok := b.details.Param(id.Name)
			if !ok {
				continue
			}

			ms, found := b.byName[id.Name]
			if found {
				if ms.id.Kind != id.Kind {
					b.mismatches = append(b.mismatches, id.Name)
					continue
				}
			} else {
				ms = &multiSource{id: id, param: param, def: attr.Default()}
				b.byName[id.Name] = ms
				b.entries = append(b.entries, ms)
			}

			if len(ms.attrs) <= si {
				ms.attrs = append(ms.attrs, make([]*points.Attribute, si+1-len(ms.attrs))...)
			}
			ms.attrs[si] = attr
		}
	}
	b.mismatches = lo.Uniq(b.mismatches)
}

// Sources returns the registered sources.
func (b *Blender) Sources() []*points.Collection { return b.sources }

// TypeMismatches returns the attribute names declared with different kinds.
func (b *Blender) TypeMismatches() []string { return b.mismatches }

// Params returns the blend parameter of every blended attribute.
func (b *Blender) Params() []Param {
	return lo.Map(b.entries, func(ms *multiSource, _ int) Param { return ms.param })
}

// Init prepares target for blending. metadata may be nil when only Blend
// is used.
//
// Init creates the blended attributes on target, merges data-domain values,
// unions the tags of every source and creates the provenance markers.
func (b *Blender) Init(target *points.Collection, metadata *points.UnionMetadata) error {
	if len(b.mismatches) > 0 {
		return fmt.Errorf("%w: %s", ErrTypeMismatch, strings.Join(b.mismatches, ", "))
	}
	for _, name := range b.details.Required {
		if _, ok := b.byName[name]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingAttribute, name)
		}
	}

	b.target = target
	b.metadata = metadata
	b.perPoint = b.perPoint[:0]

	for _, ms := range b.entries {
		if len(ms.attrs) < len(b.sources) {
			ms.attrs = append(ms.attrs, make([]*points.Attribute, len(b.sources)-len(ms.attrs))...)
		}

		ms.op = b.pool.Get(ms.id.Kind, ms.param.Mode, ms.param.ResetForMulti)
		if ms.op == nil {
			return fmt.Errorf("union: no operation for %v", ms.id)
		}

		attr, err := target.AddAttribute(ms.id, ms.def)
		if err != nil {
			return fmt.Errorf("union: cannot create output for %q: %w", ms.id.Name, err)
		}
		ms.target = attr

		if ms.id.Domain == points.DomainData {
			b.mergeData(ms)
			continue
		}
		b.perPoint = append(b.perPoint, ms)
	}

	for _, src := range b.sources {
		target.AddTags(src.Tags...)
	}

	b.markers = b.markers[:0]
	if b.details.SourceMarkers {
		for i := range b.sources {
			id := points.NewIdentity(b.details.MarkerPrefix+strconv.Itoa(i), value.KindBool)
			id.AllowsInterpolation = false
			attr, err := target.AddAttribute(id, value.Bool(false))
			if err != nil {
				return fmt.Errorf("union: cannot create marker: %w", err)
			}
			b.markers = append(b.markers, attr)
		}
	}

	b.props = NewPropertiesBlender(b.pool, b.details.Properties, b.details.ResetForMulti)
	return nil
}

// mergeData blends the single value of a data-domain attribute.
func (b *Blender) mergeData(ms *multiSource) {
	acc, st := ms.op.BeginMulti(ms.target.Get(0))
	n := 0
	for si, attr := range ms.attrs {
		var v value.Value
		switch {
		case attr != nil:
			v = attr.Get(0)
		case b.details.PreserveDefault && si < len(b.sources):
			v = ms.def
		default:
			continue
		}
		acc = ms.op.MultiBlend(acc, v, 1, &st)
		n++
	}
	if n > 0 {
		ms.target.Set(0, ms.op.EndMulti(acc, st.TotalWeight, st.Count))
	}
}

// ComputeWeights resolves contributors into weighted points, appending to
// out[:0]. Contributors from unknown sources are dropped.
func (b *Blender) ComputeWeights(index int, contributors []points.Element, out []points.WeightedPoint) []points.WeightedPoint {
	out = out[:0]
	for _, e := range contributors {
		if e.Source < 0 || e.Source >= len(b.sources) {
			continue
		}
		out = append(out, points.WeightedPoint{Element: e, Weight: 1})
	}
	if b.details.Weighting != WeightDistance || b.target == nil || len(out) == 0 {
		return out
	}

	center := b.target.Position(index)
	maxD := 0.0
	for i := range out {
		d := b.sources[out[i].Source].Position(out[i].Index).Sub(center).Length()
		out[i].Weight = d
		maxD = math.Max(maxD, d)
	}

	total := 0.0
	for i := range out {
		if maxD > 0 {
			out[i].Weight = 1 - out[i].Weight/maxD
		} else {
			out[i].Weight = 1
		}
		total += out[i].Weight
	}
	if total == 0 {
		fixed := 1 / float64(len(out))
		for i := range out {
			out[i].Weight = fixed
		}
	}
	return out
}

// Blend computes output point index from weighted. Attributes a contributor's
// source lacks are skipped for that contributor, or take the attribute
// default when PreserveDefault is set.
func (b *Blender) Blend(index int, weighted []points.WeightedPoint) {
	if len(weighted) == 0 || b.target == nil {
		return
	}

	for _, ms := range b.perPoint {
		acc, st := ms.op.BeginMulti(ms.target.Get(index))
		n := 0
		for i := range weighted {
			wp := &weighted[i]
			var v value.Value
			switch {
			case ms.supported(wp.Source):
				v = ms.attrs[wp.Source].Get(wp.Index)
			case b.details.PreserveDefault:
				v = ms.def
			default:
				continue
			}
			acc = ms.op.MultiBlend(acc, v, wp.Weight, &st)
			n++
		}
		if n > 0 {
			ms.target.Set(index, ms.op.EndMulti(acc, st.TotalWeight, st.Count))
		}
	}

	b.props.Blend(&b.target.Points[index], b.sources, weighted)

	for i := range weighted {
		if src := weighted[i].Source; src < len(b.markers) {
			b.markers[src].Set(index, value.Bool(true))
		}
	}
}

// MergeSingle blends output point index from its union metadata entry.
// scratch is reused for the weighted points and returned.
func (b *Blender) MergeSingle(index int, scratch []points.WeightedPoint) ([]points.WeightedPoint, error) {
	if b.target == nil || b.metadata == nil {
		return scratch, ErrNotInitialized
	}
	scratch = b.ComputeWeights(index, b.metadata.Entry(index), scratch)
	b.Blend(index, scratch)
	return scratch, nil
}
