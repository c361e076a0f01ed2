// Package maritime specializes the packing engine for shipping containers:
// gross weight limits, a center-of-gravity envelope, and hazard-class
// segregation, layered on the generic geometric and weight checks as extra
// feasibility predicates.
package maritime

import (
	"fmt"

	"github.com/stowage-io/stowage/internal/packing"
)

// Config carries the maritime parameters of a container. Zero values disable
// the corresponding check: a MaxGrossWeight of 0 means no gross limit and a
// zero tolerance leaves the centroid unconstrained on that axis.
type Config struct {
	// TareWeight is the weight of the empty container.
	TareWeight float64
	// MaxGrossWeight bounds tare plus payload.
	MaxGrossWeight float64
	// LongitudinalTolerance bounds how far the payload centroid may sit from
	// the container's longitudinal center, in the same unit as the dimensions.
	LongitudinalTolerance float64
	// VerticalTolerance bounds how far above the container's vertical center
	// the payload centroid may rise. A centroid below center is always safe.
	VerticalTolerance float64
}

// Container is a packing.Container with maritime feasibility predicates. It
// embeds the generic Bin for geometry, weight and extreme-point bookkeeping
// and rejects candidates that would breach gross weight, the center-of-gravity
// envelope, or hazard segregation.
type Container struct {
	*packing.Bin

	cfg   Config
	table *SegregationTable
}

// NewContainer validates and constructs a maritime container. A nil table
// means no segregation rules apply.
func NewContainer(id string, width, height, depth, capacity float64, cfg Config, table *SegregationTable) (*Container, error) {
	bin, err := packing.NewBin(id, width, height, depth, capacity)
	if err != nil {
		return nil, err
	}
	if cfg.TareWeight < 0 || cfg.MaxGrossWeight < 0 ||
		cfg.LongitudinalTolerance < 0 || cfg.VerticalTolerance < 0 {
		return nil, fmt.Errorf("container %q: %w", id, packing.ErrInvalidWeight)
	}
	if cfg.MaxGrossWeight > 0 && cfg.MaxGrossWeight <= cfg.TareWeight {
		return nil, fmt.Errorf("container %q: max gross weight %.3f does not exceed tare %.3f: %w",
			id, cfg.MaxGrossWeight, cfg.TareWeight, packing.ErrInvalidWeight)
	}
	if table == nil {
		table = NewSegregationTable()
	}
	return &Container{Bin: bin, cfg: cfg, table: table}, nil
}

// Config returns the maritime parameters.
func (c *Container) Config() Config { return c.cfg }

// GrossWeight returns tare plus the payload committed so far.
func (c *Container) GrossWeight() float64 {
	return c.cfg.TareWeight + c.PlacedWeight()
}

// Validate applies the maritime predicates to a candidate placement. Failures
// are reported as *packing.ConstraintViolation carrying a maritime-specific
// reason, so geometric rejection and maritime rejection stay distinguishable
// on the final result.
func (c *Container) Validate(item *packing.Item, size packing.Dimensions, origin packing.Vector) error {
	if err := c.checkGrossWeight(item); err != nil {
		return err
	}
	if err := c.checkCenterOfGravity(item, size, origin); err != nil {
		return err
	}
	return c.checkSegregation(item, size, origin)
}

func (c *Container) checkGrossWeight(item *packing.Item) error {
	if c.cfg.MaxGrossWeight <= 0 {
		return nil
	}
	gross := c.GrossWeight() + item.Weight()
	if gross > c.cfg.MaxGrossWeight {
		return &packing.ConstraintViolation{
			Reason: packing.ReasonGrossWeight,
			Detail: fmt.Sprintf("gross %.3f exceeds limit %.3f", gross, c.cfg.MaxGrossWeight),
		}
	}
	return nil
}

// checkCenterOfGravity recomputes the weighted payload centroid including the
// candidate and verifies the longitudinal offset from the geometric center and
// the vertical rise above it stay within the configured tolerances.
func (c *Container) checkCenterOfGravity(item *packing.Item, size packing.Dimensions, origin packing.Vector) error {
	if c.cfg.LongitudinalTolerance <= 0 && c.cfg.VerticalTolerance <= 0 {
		return nil
	}

	totalWeight := item.Weight()
	momentX := item.Weight() * (origin.X + size.W/2)
	momentZ := item.Weight() * (origin.Z + size.H/2)
	for _, p := range c.Placements() {
		box := p.Box()
		w := p.Item.Weight()
		totalWeight += w
		momentX += w * (box.Origin.X + box.Size.W/2)
		momentZ += w * (box.Origin.Z + box.Size.H/2)
	}
	if totalWeight <= 0 {
		return nil
	}

	interior := c.Size()
	if c.cfg.LongitudinalTolerance > 0 {
		offset := momentX/totalWeight - interior.W/2
		if offset < 0 {
			offset = -offset
		}
		if offset > c.cfg.LongitudinalTolerance {
			return &packing.ConstraintViolation{
				Reason: packing.ReasonCenterOfGravity,
				Detail: fmt.Sprintf("longitudinal offset %.3f exceeds tolerance %.3f", offset, c.cfg.LongitudinalTolerance),
			}
		}
	}
	if c.cfg.VerticalTolerance > 0 {
		rise := momentZ/totalWeight - interior.H/2
		if rise > c.cfg.VerticalTolerance {
			return &packing.ConstraintViolation{
				Reason: packing.ReasonCenterOfGravity,
				Detail: fmt.Sprintf("vertical rise %.3f exceeds tolerance %.3f", rise, c.cfg.VerticalTolerance),
			}
		}
	}
	return nil
}

// checkSegregation rejects the candidate when its hazard class is prohibited
// alongside any placed class, or when a required horizontal separation from a
// placed incompatible class is not met.
func (c *Container) checkSegregation(item *packing.Item, size packing.Dimensions, origin packing.Vector) error {
	class := item.HazardClass()
	if class == "" || c.table.Len() == 0 {
		return nil
	}
	candidate := packing.Box{Origin: origin, Size: size}
	for _, p := range c.Placements() {
		rule, ok := c.table.Lookup(class, p.Item.HazardClass())
		if !ok {
			continue
		}
		if rule.Prohibited {
			return &packing.ConstraintViolation{
				Reason: packing.ReasonSegregation,
				Detail: fmt.Sprintf("class %s may not share a container with class %s", class, p.Item.HazardClass()),
			}
		}
		if gap := candidate.FootprintGap(p.Box()); gap < rule.MinSeparation {
			return &packing.ConstraintViolation{
				Reason: packing.ReasonSegregation,
				Detail: fmt.Sprintf("class %s must keep %.3f from class %s, has %.3f",
					class, rule.MinSeparation, p.Item.HazardClass(), gap),
			}
		}
	}
	return nil
}
