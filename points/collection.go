package points

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"

	"github.com/gogpu/fuse/value"
)

// ErrKindConflict is returned when an attribute is declared twice with
// different kinds.
var ErrKindConflict = errors.New("points: attribute kind conflict")

// Collection is a set of points with named attributes and tags.
type Collection struct {
	Points []Point
	Tags   []string

	attrs map[string]*Attribute
	order []string
}

// NewCollection creates a collection of n default points.
func NewCollection(n int) *Collection {
	c := &Collection{
		Points: make([]Point, n),
		attrs:  make(map[string]*Attribute),
	}
	for i := range c.Points {
		c.Points[i] = DefaultPoint()
	}
	return c
}

// FromPositions creates a collection with one default point per position.
func FromPositions(positions ...v3.Vec) *Collection {
	c := NewCollection(len(positions))
	for i, p := range positions {
		c.Points[i].Position = value.Vector(p)
	}
	return c
}

// Len returns the number of points.
func (c *Collection) Len() int { return len(c.Points) }

// Position returns the position of point i.
func (c *Collection) Position(i int) v3.Vec { return c.Points[i].Pos() }

// AddPoints appends n default points and returns the index of the first.
// Attributes grow accordingly.
func (c *Collection) AddPoints(n int) int {
	start := len(c.Points)
	for range n {
		c.Points = append(c.Points, DefaultPoint())
	}
	for _, a := range c.attrs {
		a.grow(len(c.Points))
	}
	return start
}

// AddAttribute declares an attribute. Declaring an existing attribute
// again returns it unchanged when the kinds agree. A nil def uses the
// kind's default.
func (c *Collection) AddAttribute(id Identity, def value.Value) (*Attribute, error) {
	if a, ok := c.attrs[id.Name]; ok {
		if a.Kind() != id.Kind {
			return nil, fmt.Errorf("%w: %q is %v, not %v", ErrKindConflict, id.Name, a.Kind(), id.Kind)
		}
		return a, nil
	}
	if !id.Kind.IsValid() {
		return nil, fmt.Errorf("points: attribute %q has invalid kind", id.Name)
	}
	if def != nil && def.Kind() != id.Kind {
		return nil, fmt.Errorf("%w: default of %q is %v, not %v", ErrKindConflict, id.Name, def.Kind(), id.Kind)
	}
	a := newAttribute(id, def, len(c.Points))
	c.attrs[id.Name] = a
	c.order = append(c.order, id.Name)
	return a, nil
}

// Attribute returns the attribute with the given name, or nil.
func (c *Collection) Attribute(name string) *Attribute { return c.attrs[name] }

// Attributes returns the attributes in declaration order.
func (c *Collection) Attributes() []*Attribute {
	out := make([]*Attribute, len(c.order))
	for i, name := range c.order {
		out[i] = c.attrs[name]
	}
	return out
}

// Identities returns the identities of every attribute in declaration order.
func (c *Collection) Identities() []Identity {
	return lo.Map(c.Attributes(), func(a *Attribute, _ int) Identity { return a.Identity() })
}

// Value returns attribute name at point i.
func (c *Collection) Value(name string, i int) (value.Value, bool) {
	a := c.attrs[name]
	if a == nil {
		return nil, false
	}
	return a.Get(i), true
}

// SetValue declares the attribute when missing and sets point i.
func (c *Collection) SetValue(name string, i int, v value.Value) error {
	a, err := c.AddAttribute(NewIdentity(name, v.Kind()), nil)
	if err != nil {
		return err
	}
	if !a.Set(i, v) {
		return fmt.Errorf("points: index %d out of range for %q", i, name)
	}
	return nil
}

// AddTags adds tags that are not already present.
func (c *Collection) AddTags(tags ...string) {
	c.Tags = lo.Uniq(append(c.Tags, tags...))
}

// HasTag reports whether the collection carries tag.
func (c *Collection) HasTag(tag string) bool { return lo.Contains(c.Tags, tag) }

// Concat returns a new collection holding the points of every collection in
// order. Attributes are merged by name; data-domain values come from the
// first collection that set them. Tags are unioned.
func Concat(cs ...*Collection) (*Collection, error) {
	n := lo.SumBy(cs, func(c *Collection) int { return c.Len() })
	out := &Collection{Points: make([]Point, 0, n), attrs: make(map[string]*Attribute)}
	for _, c := range cs {
		out.Points = append(out.Points, c.Points...)
		out.AddTags(c.Tags...)
	}

	offset := 0
	for _, c := range cs {
		for _, a := range c.Attributes() {
			dst, err := out.AddAttribute(a.Identity(), a.Default())
			if err != nil {
				return nil, err
			}
			if a.Identity().Domain == DomainData {
				if a.Has(0) && !dst.Has(0) {
					dst.Set(0, a.Get(0))
				}
				continue
			}
			for i := range c.Len() {
				if a.Has(i) {
					dst.Set(offset+i, a.Get(i))
				}
			}
		}
		offset += c.Len()
	}
	return out, nil
}
