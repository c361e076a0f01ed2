package packing

import "fmt"

// Item is the unit of cargo: a cuboid with a weight, a set of permitted
// orientations, and an optional hazard class. An Item with Quantity > 1 is a
// template that the packer expands into independent placement attempts. Items
// are immutable once a packing run starts.
type Item struct {
	name        string
	width       float64
	height      float64
	depth       float64
	weight      float64
	rotations   []Rotation
	hazardClass string
	quantity    int
}

// ItemOption configures optional Item attributes at construction time.
type ItemOption func(*Item)

// WithRotations restricts the orientations the packer may use, tried in the
// declared order. The default allows all six.
func WithRotations(rotations ...Rotation) ItemOption {
	return func(it *Item) {
		it.rotations = rotations
	}
}

// WithHazardClass tags the item with a cargo hazard class for segregation checks.
func WithHazardClass(class string) ItemOption {
	return func(it *Item) {
		it.hazardClass = class
	}
}

// WithQuantity declares the item as a template for n identical physical units.
func WithQuantity(n int) ItemOption {
	return func(it *Item) {
		it.quantity = n
	}
}

// NewItem validates and constructs an item. Dimensions must be strictly
// positive finite numbers and weight non-negative and finite; violations fail
// construction before any packing work starts.
func NewItem(name string, width, height, depth, weight float64, opts ...ItemOption) (*Item, error) {
	it := &Item{
		name:     name,
		width:    width,
		height:   height,
		depth:    depth,
		weight:   weight,
		quantity: 1,
	}
	for _, opt := range opts {
		opt(it)
	}

	if !positiveFinite(width) || !positiveFinite(height) || !positiveFinite(depth) {
		return nil, fmt.Errorf("item %q: %w", name, ErrInvalidDimension)
	}
	if !nonNegativeFinite(weight) {
		return nil, fmt.Errorf("item %q: %w", name, ErrInvalidWeight)
	}
	if it.quantity < 1 {
		return nil, fmt.Errorf("item %q: %w", name, ErrInvalidQuantity)
	}
	if len(it.rotations) == 0 {
		it.rotations = AllRotations()
	}
	for _, r := range it.rotations {
		if !r.Valid() {
			return nil, fmt.Errorf("item %q: %w", name, ErrInvalidRotation)
		}
	}

	return it, nil
}

// Name returns the caller-supplied identity of the item.
func (it *Item) Name() string { return it.name }

// Weight returns the weight of a single physical unit.
func (it *Item) Weight() float64 { return it.weight }

// HazardClass returns the hazard class tag, empty for unclassified cargo.
func (it *Item) HazardClass() string { return it.hazardClass }

// Quantity returns the number of identical physical units this item represents.
func (it *Item) Quantity() int { return it.quantity }

// Rotations returns the permitted orientations in their declared order.
func (it *Item) Rotations() []Rotation {
	out := make([]Rotation, len(it.rotations))
	copy(out, it.rotations)
	return out
}

// Allows reports whether r is a member of the item's permitted rotation set.
func (it *Item) Allows(r Rotation) bool {
	for _, allowed := range it.rotations {
		if allowed == r {
			return true
		}
	}
	return false
}

// Dimensions returns the oriented extent of the item under the given rotation.
func (it *Item) Dimensions(r Rotation) Dimensions {
	return r.orient(Dimensions{W: it.width, D: it.depth, H: it.height})
}

// Volume returns the volume of a single physical unit, invariant under rotation.
func (it *Item) Volume() float64 {
	return it.width * it.depth * it.height
}
