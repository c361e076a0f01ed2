package packing

// Placement records one committed item inside a container: which physical unit
// of which item, where, and in which orientation.
type Placement struct {
	Item     *Item
	Instance int
	Rotation Rotation
	Origin   Vector
}

// Box returns the region of the bin the placement occupies.
func (p Placement) Box() Box {
	return Box{Origin: p.Origin, Size: p.Item.Dimensions(p.Rotation)}
}

// Container is the feasibility surface the packer searches over. Bin supplies
// the geometric and weight base implementation; specialized containers embed a
// Bin and layer their own predicates behind Validate, so the packer never
// needs to know container kinds.
type Container interface {
	ID() string
	Size() Dimensions
	Volume() float64
	RemainingWeight() float64

	// ExtremePoints returns the candidate origins for the next placement in
	// ascending (z, y, x) order.
	ExtremePoints() []Vector

	// CanAccommodate reports whether a box of the given size at the given
	// origin lies within the interior and clears all placed cargo.
	CanAccommodate(origin Vector, size Dimensions) bool

	// SupportRatio returns the fraction of the box's base footprint resting on
	// the floor or on top faces of placed cargo.
	SupportRatio(origin Vector, size Dimensions) float64

	// Validate applies container-specific predicates beyond geometry, weight
	// and support. A rejection is reported as a *ConstraintViolation.
	Validate(item *Item, size Dimensions, origin Vector) error

	// Commit records the placement and updates the candidate point set.
	Commit(item *Item, instance int, rotation Rotation, origin Vector) error

	Placements() []Placement
}
