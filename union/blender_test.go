package union

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/fuse/blend"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/value"
)

// source builds a one-point collection at x with the given attributes.
func source(t *testing.T, x float64, attrs map[string]value.Value) *points.Collection {
	t.Helper()
	c := points.FromPositions(v3.Vec{X: x})
	for name, v := range attrs {
		require.NoError(t, c.SetValue(name, 0, v))
	}
	return c
}

// fuseAll fuses point 0 of every source into output point 0.
func fuseAll(n int) *points.UnionMetadata {
	md := points.NewUnionMetadata()
	md.NewEntry(points.Element{Source: 0, Index: 0})
	for i := 1; i < n; i++ {
		md.Append(0, points.Element{Source: i, Index: 0})
	}
	return md
}

func merge(t *testing.T, details Details, sources ...*points.Collection) *points.Collection {
	t.Helper()
	b := NewBlender(blend.NewPool(), details)
	b.AddSources(sources)
	target := points.NewCollection(1)
	require.NoError(t, b.Init(target, fuseAll(len(sources))))
	_, err := b.MergeSingle(0, nil)
	require.NoError(t, err)
	return target
}

func TestBlender_PartialAttribute(t *testing.T) {
	sources := func() []*points.Collection {
		return []*points.Collection{
			source(t, 0, map[string]value.Value{"Foo": value.Double(2)}),
			source(t, 0, map[string]value.Value{"Foo": value.Double(4)}),
			source(t, 0, nil),
		}
	}

	t.Run("skip missing", func(t *testing.T) {
		out := merge(t, DefaultDetails(), sources()...)
		v, ok := out.Value("Foo", 0)
		require.True(t, ok)
		assert.Equal(t, value.Double(3), v)
	})

	t.Run("preserve default", func(t *testing.T) {
		d := DefaultDetails()
		d.PreserveDefault = true
		out := merge(t, d, sources()...)
		v, _ := out.Value("Foo", 0)
		assert.Equal(t, value.Double(2), v)
	})
}

func TestBlender_TwoFloats(t *testing.T) {
	tests := []struct {
		mode blend.Mode
		want value.Value
	}{
		{blend.ModeAverage, value.Double(2)},
		{blend.ModeWeight, value.Double(2)},
		{blend.ModeMax, value.Double(3)},
		{blend.ModeMin, value.Double(1)},
		{blend.ModeAdd, value.Double(4)},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			d := DefaultDetails()
			d.DefaultMode = tt.mode
			out := merge(t, d,
				source(t, 0, map[string]value.Value{"V": value.Double(1)}),
				source(t, 0, map[string]value.Value{"V": value.Double(3)}),
			)
			v, _ := out.Value("V", 0)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestBlender_ModeOverride(t *testing.T) {
	d := DefaultDetails()
	d.Modes = map[string]blend.Mode{"B": blend.ModeMax}
	out := merge(t, d,
		source(t, 0, map[string]value.Value{"A": value.Int32(2), "B": value.Int32(2)}),
		source(t, 0, map[string]value.Value{"A": value.Int32(6), "B": value.Int32(6)}),
	)

	a, _ := out.Value("A", 0)
	bv, _ := out.Value("B", 0)
	assert.Equal(t, value.Int32(4), a)
	assert.Equal(t, value.Int32(6), bv)
}

func TestBlender_TypeMismatch(t *testing.T) {
	b := NewBlender(nil, DefaultDetails())
	b.AddSources([]*points.Collection{
		source(t, 0, map[string]value.Value{"Foo": value.Double(1), "Bar": value.Int32(1)}),
		source(t, 0, map[string]value.Value{"Foo": value.String("x"), "Bar": value.Int32(2)}),
		source(t, 0, map[string]value.Value{"Foo": value.Int32(1)}),
	})

	assert.Equal(t, []string{"Foo"}, b.TypeMismatches())
	err := b.Init(points.NewCollection(1), fuseAll(3))
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "Foo")
}

func TestBlender_Required(t *testing.T) {
	d := DefaultDetails()
	d.Required = []string{"Foo"}
	d.Exclude = []string{"Foo"}

	b := NewBlender(nil, d)
	b.AddSources([]*points.Collection{source(t, 0, map[string]value.Value{"Foo": value.Double(1)})})
	require.ErrorIs(t, b.Init(points.NewCollection(1), fuseAll(1)), ErrMissingAttribute)
}

func TestBlender_Filters(t *testing.T) {
	d := DefaultDetails()
	d.Include = []string{"Keep", "Drop"}
	d.Exclude = []string{"Drop"}
	out := merge(t, d, source(t, 0, map[string]value.Value{
		"Keep":  value.Double(1),
		"Drop":  value.Double(1),
		"Other": value.Double(1),
	}))

	assert.NotNil(t, out.Attribute("Keep"))
	assert.Nil(t, out.Attribute("Drop"))
	assert.Nil(t, out.Attribute("Other"))
}

func TestBlender_Ignore(t *testing.T) {
	b := NewBlender(nil, DefaultDetails())
	b.AddSources([]*points.Collection{
		source(t, 0, map[string]value.Value{"Internal": value.Int64(1), "Foo": value.Double(1)}),
	}, "Internal")
	require.Len(t, b.Params(), 1)
	assert.Equal(t, "Foo", b.Params()[0].Name)
}

func TestBlender_NotInitialized(t *testing.T) {
	b := NewBlender(nil, DefaultDetails())
	_, err := b.MergeSingle(0, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestBlender_TagsAndMarkers(t *testing.T) {
	s0 := source(t, 0, nil)
	s0.AddTags("a", "b")
	s1 := source(t, 0, nil)
	s1.AddTags("b", "c")
	s2 := source(t, 0, nil)

	d := DefaultDetails()
	d.SourceMarkers = true

	b := NewBlender(nil, d)
	b.AddSources([]*points.Collection{s0, s1, s2})
	target := points.NewCollection(1)

	md := points.NewUnionMetadata()
	md.NewEntry(points.Element{Source: 0, Index: 0})
	md.Append(0, points.Element{Source: 2, Index: 0})
	require.NoError(t, b.Init(target, md))
	_, err := b.MergeSingle(0, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, target.Tags)
	for i, want := range []bool{true, false, true} {
		v, ok := target.Value("FromSource_"+string(rune('0'+i)), 0)
		require.True(t, ok)
		assert.Equal(t, value.Bool(want), v, "source %d", i)
	}
}

func TestBlender_DataDomain(t *testing.T) {
	mk := func(v int32) *points.Collection {
		c := points.FromPositions(v3.Vec{})
		a, err := c.AddAttribute(points.Identity{Name: "Version", Kind: value.KindInt32, Domain: points.DomainData}, nil)
		require.NoError(t, err)
		a.Set(0, value.Int32(v))
		return c
	}

	d := DefaultDetails()
	d.DefaultMode = blend.ModeMax
	b := NewBlender(nil, d)
	b.AddSources([]*points.Collection{mk(3), mk(7), mk(5)})
	target := points.NewCollection(2)
	require.NoError(t, b.Init(target, nil))

	v, _ := target.Value("Version", 1)
	assert.Equal(t, value.Int32(7), v)
}

func TestBlender_Properties(t *testing.T) {
	s0 := points.FromPositions(v3.Vec{X: 0})
	s0.Points[0].Density = 0.5
	s1 := points.FromPositions(v3.Vec{X: 2, Y: 4})
	s1.Points[0].Density = 1

	out := merge(t, DefaultDetails(), s0, s1)
	assert.Equal(t, v3.Vec{X: 1, Y: 2}, out.Position(0))
	assert.InDelta(t, 0.75, out.Points[0].Density, 1e-12)
}

func TestBlender_ComputeWeights(t *testing.T) {
	d := DefaultDetails()
	d.Weighting = WeightDistance

	b := NewBlender(nil, d)
	b.AddSources([]*points.Collection{
		points.FromPositions(v3.Vec{X: 0}),
		points.FromPositions(v3.Vec{X: 1}),
		points.FromPositions(v3.Vec{X: 4}),
	})
	target := points.FromPositions(v3.Vec{X: 0})
	require.NoError(t, b.Init(target, nil))

	contributors := []points.Element{{Source: 0}, {Source: 1}, {Source: 2}, {Source: 9}}
	w := b.ComputeWeights(0, contributors, nil)
	require.Len(t, w, 3)
	assert.InDelta(t, 1, w[0].Weight, 1e-12)
	assert.InDelta(t, 0.75, w[1].Weight, 1e-12)
	assert.InDelta(t, 0, w[2].Weight, 1e-12)
}

func TestBlender_ComputeWeightsEquidistant(t *testing.T) {
	d := DefaultDetails()
	d.Weighting = WeightDistance

	b := NewBlender(nil, d)
	b.AddSources([]*points.Collection{
		points.FromPositions(v3.Vec{X: -1}),
		points.FromPositions(v3.Vec{X: 1}),
	})
	target := points.FromPositions(v3.Vec{})
	require.NoError(t, b.Init(target, nil))

	w := b.ComputeWeights(0, []points.Element{{Source: 0}, {Source: 1}}, nil)
	require.Len(t, w, 2)
	assert.InDelta(t, 0.5, w[0].Weight, 1e-12)
	assert.InDelta(t, 0.5, w[1].Weight, 1e-12)
}

func TestBlender_UniformWeights(t *testing.T) {
	b := NewBlender(nil, DefaultDetails())
	b.AddSources([]*points.Collection{points.FromPositions(v3.Vec{}), points.FromPositions(v3.Vec{X: 5})})
	require.NoError(t, b.Init(points.NewCollection(1), nil))

	w := b.ComputeWeights(0, []points.Element{{Source: 0}, {Source: 1}}, make([]points.WeightedPoint, 8))
	require.Len(t, w, 2)
	for _, p := range w {
		assert.Equal(t, 1.0, p.Weight)
	}
}
