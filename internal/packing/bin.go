package packing

import (
	"fmt"
	"sort"
)

type placementKey struct {
	item     *Item
	instance int
}

// Bin is a finite cuboid container. It tracks the cargo committed so far and a
// small working set of extreme points, the candidate origins for the next
// placement. A Bin is not safe for concurrent mutation; the packer commits to
// each bin from a single goroutine.
type Bin struct {
	id           string
	size         Dimensions
	capacity     float64
	placedWeight float64
	placements   []Placement
	points       []Vector
	committed    map[placementKey]struct{}
}

// NewBin validates and constructs an empty bin with interior dimensions
// width x depth x height and the given weight capacity. The initial extreme
// point set holds only the bottom-back-left corner.
func NewBin(id string, width, height, depth, capacity float64) (*Bin, error) {
	if !positiveFinite(width) || !positiveFinite(height) || !positiveFinite(depth) {
		return nil, fmt.Errorf("bin %q: %w", id, ErrInvalidDimension)
	}
	if !nonNegativeFinite(capacity) {
		return nil, fmt.Errorf("bin %q: %w", id, ErrInvalidWeight)
	}
	return &Bin{
		id:        id,
		size:      Dimensions{W: width, D: depth, H: height},
		capacity:  capacity,
		points:    []Vector{{}},
		committed: make(map[placementKey]struct{}),
	}, nil
}

// ID returns the caller-supplied bin identifier.
func (b *Bin) ID() string { return b.id }

// Size returns the interior dimensions.
func (b *Bin) Size() Dimensions { return b.size }

// Volume returns the interior volume.
func (b *Bin) Volume() float64 { return b.size.Volume() }

// Capacity returns the maximum payload weight.
func (b *Bin) Capacity() float64 { return b.capacity }

// PlacedWeight returns the summed weight of committed cargo.
func (b *Bin) PlacedWeight() float64 { return b.placedWeight }

// RemainingWeight returns capacity minus the weight committed so far.
func (b *Bin) RemainingWeight() float64 { return b.capacity - b.placedWeight }

// UsedVolume returns the summed volume of committed cargo.
func (b *Bin) UsedVolume() float64 {
	var v float64
	for _, p := range b.placements {
		v += p.Item.Volume()
	}
	return v
}

// RemainingVolume returns the interior volume not occupied by cargo. It is an
// estimate of usable space: fragmentation may make it unreachable.
func (b *Bin) RemainingVolume() float64 {
	return b.Volume() - b.UsedVolume()
}

// Placements returns a copy of the committed placements in commit order.
func (b *Bin) Placements() []Placement {
	out := make([]Placement, len(b.placements))
	copy(out, b.placements)
	return out
}

// ExtremePoints returns a copy of the candidate origins in ascending (z, y, x)
// order.
func (b *Bin) ExtremePoints() []Vector {
	out := make([]Vector, len(b.points))
	copy(out, b.points)
	return out
}

// CanAccommodate reports whether a box of the given size at origin lies fully
// within the interior and overlaps no committed cargo. Face contact with walls
// or other boxes is allowed.
func (b *Bin) CanAccommodate(origin Vector, size Dimensions) bool {
	if origin.X < -epsilon || origin.Y < -epsilon || origin.Z < -epsilon {
		return false
	}
	if origin.X+size.W > b.size.W+epsilon ||
		origin.Y+size.D > b.size.D+epsilon ||
		origin.Z+size.H > b.size.H+epsilon {
		return false
	}
	candidate := Box{Origin: origin, Size: size}
	for _, p := range b.placements {
		if candidate.Intersects(p.Box()) {
			return false
		}
	}
	return true
}

// SupportRatio returns the fraction of the box's base footprint resting on the
// bin floor or on the top faces of committed cargo. A box at floor level is
// fully supported by definition.
func (b *Bin) SupportRatio(origin Vector, size Dimensions) float64 {
	if origin.Z < epsilon {
		return 1
	}
	footprint := Box{Origin: origin, Size: size}
	area := size.W * size.D
	if area <= 0 {
		return 0
	}
	var supported float64
	for _, p := range b.placements {
		box := p.Box()
		if !approxEqual(box.maxZ(), origin.Z) {
			continue
		}
		supported += footprint.footprintOverlap(box)
	}
	if supported > area {
		supported = area
	}
	return supported / area
}

// Validate is the base feasibility hook: a plain bin has no predicates beyond
// the geometric, weight and support checks the packer applies itself.
func (b *Bin) Validate(item *Item, size Dimensions, origin Vector) error {
	return nil
}

// Commit records a placement and regenerates the extreme point set. Committing
// the same item instance twice is a caller bug and fails with
// ErrDuplicatePlacement without mutating the bin.
func (b *Bin) Commit(item *Item, instance int, rotation Rotation, origin Vector) error {
	key := placementKey{item: item, instance: instance}
	if _, ok := b.committed[key]; ok {
		return fmt.Errorf("bin %q, item %q instance %d: %w", b.id, item.Name(), instance, ErrDuplicatePlacement)
	}
	placement := Placement{Item: item, Instance: instance, Rotation: rotation, Origin: origin}
	b.placements = append(b.placements, placement)
	b.placedWeight += item.Weight()
	b.committed[key] = struct{}{}
	b.regeneratePoints(placement.Box())
	return nil
}

// regeneratePoints folds the three far corners of the newly placed box into
// the candidate set. The max-x and max-y corners are projected down onto the
// floor or the highest top face beneath them; points swallowed by the new box
// or pushed outside the interior are dropped.
func (b *Bin) regeneratePoints(box Box) {
	candidates := []Vector{
		{X: box.maxX(), Y: box.Origin.Y},
		{X: box.Origin.X, Y: box.maxY()},
		{X: box.Origin.X, Y: box.Origin.Y, Z: box.maxZ()},
	}
	candidates[0].Z = b.restingHeight(candidates[0].X, candidates[0].Y)
	candidates[1].Z = b.restingHeight(candidates[1].X, candidates[1].Y)

	merged := make([]Vector, 0, len(b.points)+len(candidates))
	merged = append(merged, b.points...)
	merged = append(merged, candidates...)

	kept := merged[:0]
	for _, p := range merged {
		if p.X > b.size.W-epsilon || p.Y > b.size.D-epsilon || p.Z > b.size.H-epsilon {
			continue
		}
		if b.pointCovered(p) {
			continue
		}
		duplicate := false
		for _, q := range kept {
			if approxEqual(p.X, q.X) && approxEqual(p.Y, q.Y) && approxEqual(p.Z, q.Z) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if !approxEqual(kept[i].Z, kept[j].Z) {
			return kept[i].Z < kept[j].Z
		}
		if !approxEqual(kept[i].Y, kept[j].Y) {
			return kept[i].Y < kept[j].Y
		}
		return kept[i].X < kept[j].X
	})
	b.points = kept
}

// restingHeight returns the z coordinate a point at (x, y) would rest at: the
// highest top face of committed cargo directly beneath it, or the floor.
func (b *Bin) restingHeight(x, y float64) float64 {
	var z float64
	for _, p := range b.placements {
		box := p.Box()
		if x < box.Origin.X-epsilon || x > box.maxX()-epsilon {
			continue
		}
		if y < box.Origin.Y-epsilon || y > box.maxY()-epsilon {
			continue
		}
		if top := box.maxZ(); top > z {
			z = top
		}
	}
	return z
}

func (b *Bin) pointCovered(p Vector) bool {
	for _, placed := range b.placements {
		if placed.Box().containsPoint(p) {
			return true
		}
	}
	return false
}
