package union

import (
	"github.com/gogpu/fuse/blend"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/value"
)

// field reads and writes one built-in point field as a value.
type field struct {
	op  *blend.Operation
	get func(p *points.Point) value.Value
	set func(p *points.Point, v value.Value)
}

// PropertiesBlender blends the built-in fields of points. Fields whose mode
// is ModeNone are left untouched.
type PropertiesBlender struct {
	fields []field
}

// NewPropertiesBlender builds a blender for modes. Operations come from
// pool.
func NewPropertiesBlender(pool *blend.Pool, modes PropertyModes, resetForMulti bool) *PropertiesBlender {
	pb := &PropertiesBlender{}
	add := func(k value.Kind, m blend.Mode, get func(*points.Point) value.Value, set func(*points.Point, value.Value)) {
		if m == blend.ModeNone || m == blend.ModeCopyTarget {
			return
		}
		pb.fields = append(pb.fields, field{op: pool.Get(k, m, resetForMulti), get: get, set: set})
	}

	add(value.KindVector, modes.Position,
		func(p *points.Point) value.Value { return p.Position },
		func(p *points.Point, v value.Value) { p.Position = v.(value.Vector) })
	add(value.KindQuaternion, modes.Rotation,
		func(p *points.Point) value.Value { return p.Rotation },
		func(p *points.Point, v value.Value) { p.Rotation = v.(value.Quaternion).Normalized() })
	add(value.KindVector, modes.Scale,
		func(p *points.Point) value.Value { return p.Scale },
		func(p *points.Point, v value.Value) { p.Scale = v.(value.Vector) })
	add(value.KindDouble, modes.Density,
		func(p *points.Point) value.Value { return value.Double(p.Density) },
		func(p *points.Point, v value.Value) { p.Density = float64(v.(value.Double)) })
	add(value.KindVector4, modes.Color,
		func(p *points.Point) value.Value { return p.Color },
		func(p *points.Point, v value.Value) { p.Color = v.(value.Vector4) })
	add(value.KindDouble, modes.Steepness,
		func(p *points.Point) value.Value { return value.Double(p.Steepness) },
		func(p *points.Point, v value.Value) { p.Steepness = float64(v.(value.Double)) })
	add(value.KindInt32, modes.Seed,
		func(p *points.Point) value.Value { return value.Int32(p.Seed) },
		func(p *points.Point, v value.Value) { p.Seed = int32(v.(value.Int32)) })

	return pb
}

// Len returns the number of blended fields.
func (pb *PropertiesBlender) Len() int { return len(pb.fields) }

// Blend folds the contributors into target.
func (pb *PropertiesBlender) Blend(target *points.Point, sources []*points.Collection, weighted []points.WeightedPoint) {
	if len(weighted) == 0 {
		return
	}
	for _, f := range pb.fields {
		acc, st := f.op.BeginMulti(f.get(target))
		for i := range weighted {
			wp := &weighted[i]
			acc = f.op.MultiBlend(acc, f.get(&sources[wp.Source].Points[wp.Index]), wp.Weight, &st)
		}
		f.set(target, f.op.EndMulti(acc, st.TotalWeight, st.Count))
	}
}
