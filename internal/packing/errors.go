package packing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when an item or bin dimension is not a
	// strictly positive finite number.
	ErrInvalidDimension = errors.New("dimensions must be positive finite numbers")
	// ErrInvalidWeight is returned when a weight or capacity is negative or not finite.
	ErrInvalidWeight = errors.New("weight must be a non-negative finite number")
	// ErrInvalidQuantity is returned when an item quantity is less than one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidRotation is returned when a rotation set contains an undefined orientation.
	ErrInvalidRotation = errors.New("rotation set contains an undefined orientation")
	// ErrDuplicatePlacement signals a caller bug: the same expanded item was
	// committed to a bin twice within one run.
	ErrDuplicatePlacement = errors.New("item instance already committed to this bin")
)

// UnfitReason classifies why an item could not be placed anywhere. It is a
// diagnostic carried on the placement result, not an error: an unfit item never
// aborts a run.
type UnfitReason string

const (
	// ReasonDimension means no allowed rotation of the item fits the interior
	// of any supplied bin.
	ReasonDimension UnfitReason = "dimension_exceeds_all_bins"
	// ReasonNoSpace means the item fits the bins in principle but every
	// candidate position was out of bounds or collided with placed cargo.
	ReasonNoSpace UnfitReason = "no_feasible_position"
	// ReasonWeight means placing the item would exceed a bin weight capacity.
	ReasonWeight UnfitReason = "weight_exceeds_capacity"
	// ReasonSupport means every geometrically feasible position left the item
	// insufficiently supported from below.
	ReasonSupport UnfitReason = "support_below_minimum"
	// ReasonGrossWeight means a maritime container's maximum gross weight
	// (tare plus payload) would be exceeded.
	ReasonGrossWeight UnfitReason = "gross_weight_exceeded"
	// ReasonCenterOfGravity means the weighted centroid would leave the
	// container's configured tolerance envelope.
	ReasonCenterOfGravity UnfitReason = "center_of_gravity_outside_envelope"
	// ReasonSegregation means the item's hazard class may not share the
	// container with an already-placed class, or sits too close to it.
	ReasonSegregation UnfitReason = "hazard_segregation_conflict"
)

// ConstraintViolation is returned by container-specific feasibility predicates
// so the packer can surface the category on the final Unfit result.
type ConstraintViolation struct {
	Reason UnfitReason
	Detail string
}

func (v *ConstraintViolation) Error() string {
	if v.Detail == "" {
		return string(v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.Reason, v.Detail)
}
