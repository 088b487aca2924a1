package points

import (
	"fmt"

	"github.com/gogpu/fuse/value"
)

// Domain says how many values an attribute holds.
type Domain uint8

const (
	DomainElement Domain = iota // one value per point
	DomainData                  // one value for the whole collection
)

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case DomainElement:
		return "Element"
	case DomainData:
		return "Data"
	default:
		return "Unknown"
	}
}

// Identity describes an attribute independently of its values.
type Identity struct {
	Name   string
	Kind   value.Kind
	Domain Domain

	// AllowsInterpolation is false for attributes whose values must be
	// picked rather than mixed, such as identifiers.
	AllowsInterpolation bool
}

// NewIdentity returns an element-domain identity that allows interpolation
// when its kind supports it.
func NewIdentity(name string, k value.Kind) Identity {
	return Identity{Name: name, Kind: k, Domain: DomainElement, AllowsInterpolation: k.Lerpable()}
}

// String returns "name:Kind".
func (id Identity) String() string {
	return fmt.Sprintf("%s:%v", id.Name, id.Kind)
}
