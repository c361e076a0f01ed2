package packing

import (
	"errors"
	"math"
	"testing"
)

func TestNewItemValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		width   float64
		height  float64
		depth   float64
		weight  float64
		opts    []ItemOption
		wantErr error
	}{
		{name: "Valid", width: 1, height: 2, depth: 3, weight: 4},
		{name: "ZeroWeight", width: 1, height: 1, depth: 1, weight: 0},
		{name: "ZeroWidth", width: 0, height: 1, depth: 1, weight: 1, wantErr: ErrInvalidDimension},
		{name: "NegativeHeight", width: 1, height: -2, depth: 1, weight: 1, wantErr: ErrInvalidDimension},
		{name: "NaNDepth", width: 1, height: 1, depth: math.NaN(), weight: 1, wantErr: ErrInvalidDimension},
		{name: "InfiniteWidth", width: math.Inf(1), height: 1, depth: 1, weight: 1, wantErr: ErrInvalidDimension},
		{name: "NegativeWeight", width: 1, height: 1, depth: 1, weight: -1, wantErr: ErrInvalidWeight},
		{name: "NaNWeight", width: 1, height: 1, depth: 1, weight: math.NaN(), wantErr: ErrInvalidWeight},
		{
			name: "ZeroQuantity", width: 1, height: 1, depth: 1, weight: 1,
			opts: []ItemOption{WithQuantity(0)}, wantErr: ErrInvalidQuantity,
		},
		{
			name: "UndefinedRotation", width: 1, height: 1, depth: 1, weight: 1,
			opts: []ItemOption{WithRotations(Rotation(17))}, wantErr: ErrInvalidRotation,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			item, err := NewItem(tc.name, tc.width, tc.height, tc.depth, tc.weight, tc.opts...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && item == nil {
				t.Fatalf("expected item instance")
			}
		})
	}
}

func TestItemDefaults(t *testing.T) {
	t.Parallel()

	item := mustItem(t, "crate", 2, 3, 4, 5)

	if got := len(item.Rotations()); got != 6 {
		t.Fatalf("expected all six rotations by default, got %d", got)
	}
	if item.Quantity() != 1 {
		t.Fatalf("expected quantity 1, got %d", item.Quantity())
	}
	if item.HazardClass() != "" {
		t.Fatalf("expected no hazard class, got %q", item.HazardClass())
	}
	if item.Volume() != 24 {
		t.Fatalf("expected volume 24, got %v", item.Volume())
	}
}

func TestItemDimensionsPerRotation(t *testing.T) {
	t.Parallel()

	// Declared width 2, height 3, depth 4.
	item := mustItem(t, "crate", 2, 3, 4, 1)

	tests := []struct {
		rotation Rotation
		want     Dimensions
	}{
		{RotationWDH, Dimensions{W: 2, D: 4, H: 3}},
		{RotationDWH, Dimensions{W: 4, D: 2, H: 3}},
		{RotationWHD, Dimensions{W: 2, D: 3, H: 4}},
		{RotationHDW, Dimensions{W: 3, D: 4, H: 2}},
		{RotationDHW, Dimensions{W: 4, D: 3, H: 2}},
		{RotationHWD, Dimensions{W: 3, D: 2, H: 4}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.rotation.String(), func(t *testing.T) {
			t.Parallel()

			got := item.Dimensions(tc.rotation)
			if got != tc.want {
				t.Fatalf("rotation %s: expected %+v, got %+v", tc.rotation, tc.want, got)
			}
			if got.Volume() != item.Volume() {
				t.Fatalf("rotation %s changed volume: %v != %v", tc.rotation, got.Volume(), item.Volume())
			}
		})
	}
}

func TestItemRotationRestriction(t *testing.T) {
	t.Parallel()

	item := mustItem(t, "drum", 1, 2, 1, 1, WithRotations(UprightRotations()...))

	if !item.Allows(RotationWDH) || !item.Allows(RotationDWH) {
		t.Fatalf("expected upright rotations to be allowed")
	}
	if item.Allows(RotationWHD) {
		t.Fatalf("expected tipped rotation to be rejected")
	}

	// The returned slice is a copy; mutating it must not affect the item.
	rotations := item.Rotations()
	rotations[0] = RotationHWD
	if item.Allows(RotationHWD) {
		t.Fatalf("expected defensive copy of rotation set")
	}
}

func TestParseRotation(t *testing.T) {
	t.Parallel()

	for _, r := range AllRotations() {
		got, ok := ParseRotation(r.String())
		if !ok || got != r {
			t.Fatalf("round trip failed for %s: got %v ok=%v", r, got, ok)
		}
	}
	if _, ok := ParseRotation("XYZ"); ok {
		t.Fatalf("expected unknown name to be rejected")
	}
}

func mustItem(t *testing.T, name string, w, h, d, weight float64, opts ...ItemOption) *Item {
	t.Helper()
	item, err := NewItem(name, w, h, d, weight, opts...)
	if err != nil {
		t.Fatalf("NewItem(%s): %v", name, err)
	}
	return item
}

func mustBin(t *testing.T, id string, w, h, d, capacity float64) *Bin {
	t.Helper()
	bin, err := NewBin(id, w, h, d, capacity)
	if err != nil {
		t.Fatalf("NewBin(%s): %v", id, err)
	}
	return bin
}
