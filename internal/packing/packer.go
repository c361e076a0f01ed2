package packing

import (
	"errors"
	"sort"
)

// DefaultMinSupportRatio requires full support under every item that is not at
// floor level.
const DefaultMinSupportRatio = 1.0

// Packer places items into containers with a greedy, deterministic,
// single-pass heuristic: items in descending volume order, containers in input
// order, candidate points bottom-back-left first, no backtracking. Identical
// input always yields identical placements.
type Packer struct {
	minSupport float64
}

// Option configures a Packer.
type Option func(*Packer)

// WithMinSupportRatio sets the minimum fraction of an item's base footprint
// that must rest on the floor or on placed cargo. Values are clamped to [0, 1].
func WithMinSupportRatio(ratio float64) Option {
	return func(p *Packer) {
		switch {
		case ratio < 0:
			p.minSupport = 0
		case ratio > 1:
			p.minSupport = 1
		default:
			p.minSupport = ratio
		}
	}
}

// New constructs a Packer with full-support stacking by default.
func New(opts ...Option) *Packer {
	p := &Packer{minSupport: DefaultMinSupportRatio}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// attempt is one expanded physical unit awaiting placement.
type attempt struct {
	item     *Item
	instance int
}

// Pack expands item quantities, orders the attempts by descending volume (ties
// by descending weight, then input order) and places each attempt at the first
// feasible bin/rotation/point combination. Containers are mutated in place; the
// returned results follow the processing order, one per expanded unit.
//
// An item that fits nowhere is recorded as unfit and the run continues. The
// only error Pack itself can return is a contract violation from a container
// commit, which indicates a bug rather than a packing failure.
func (p *Packer) Pack(items []*Item, containers []Container) ([]Result, error) {
	attempts := make([]attempt, 0, len(items))
	for _, it := range items {
		for instance := 0; instance < it.Quantity(); instance++ {
			attempts = append(attempts, attempt{item: it, instance: instance})
		}
	}

	sort.SliceStable(attempts, func(i, j int) bool {
		vi, vj := attempts[i].item.Volume(), attempts[j].item.Volume()
		if !approxEqual(vi, vj) {
			return vi > vj
		}
		wi, wj := attempts[i].item.Weight(), attempts[j].item.Weight()
		if !approxEqual(wi, wj) {
			return wi > wj
		}
		return false
	})

	results := make([]Result, 0, len(attempts))
	for _, a := range attempts {
		res, err := p.place(a, containers)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// place runs the per-item search: bins in input order, rotations in the item's
// declared order, extreme points bottom-back-left. The first candidate passing
// geometry, weight, support and container predicates is committed.
func (p *Packer) place(a attempt, containers []Container) (Result, error) {
	var firstReason UnfitReason
	note := func(r UnfitReason) {
		if firstReason == "" {
			firstReason = r
		}
	}

	for _, c := range containers {
		interior := c.Size()
		for _, rotation := range a.item.Rotations() {
			size := a.item.Dimensions(rotation)
			if size.W > interior.W+epsilon || size.D > interior.D+epsilon || size.H > interior.H+epsilon {
				note(ReasonDimension)
				continue
			}
			for _, origin := range c.ExtremePoints() {
				if !c.CanAccommodate(origin, size) {
					note(ReasonNoSpace)
					continue
				}
				if a.item.Weight() > c.RemainingWeight()+epsilon {
					note(ReasonWeight)
					continue
				}
				if c.SupportRatio(origin, size) < p.minSupport-epsilon {
					note(ReasonSupport)
					continue
				}
				if err := c.Validate(a.item, size, origin); err != nil {
					var violation *ConstraintViolation
					if !errors.As(err, &violation) {
						return Result{}, err
					}
					note(violation.Reason)
					continue
				}
				if err := c.Commit(a.item, a.instance, rotation, origin); err != nil {
					return Result{}, err
				}
				return Result{
					Item:     a.item,
					Instance: a.instance,
					Placed:   true,
					BinID:    c.ID(),
					Origin:   origin,
					Rotation: rotation,
				}, nil
			}
		}
	}

	if firstReason == "" {
		firstReason = ReasonDimension
	}
	return Result{Item: a.item, Instance: a.instance, Reason: firstReason}, nil
}
