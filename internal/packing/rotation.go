package packing

// Rotation selects one of the six axis-aligned orientations of an item. The
// three letters name which declared dimension (Width, Depth, Height) ends up
// along the X, Y and Z axes respectively: RotationWDH is the item as declared,
// RotationDWH is the same item yawed a quarter turn, and the remaining four
// tip the item onto a side or end.
type Rotation uint8

const (
	RotationWDH Rotation = iota
	RotationDWH
	RotationWHD
	RotationHDW
	RotationDHW
	RotationHWD
)

var rotationNames = [...]string{
	RotationWDH: "WDH",
	RotationDWH: "DWH",
	RotationWHD: "WHD",
	RotationHDW: "HDW",
	RotationDHW: "DHW",
	RotationHWD: "HWD",
}

// AllRotations returns the six orientations in their canonical order.
func AllRotations() []Rotation {
	return []Rotation{RotationWDH, RotationDWH, RotationWHD, RotationHDW, RotationDHW, RotationHWD}
}

// UprightRotations returns the two orientations that keep the declared height
// vertical, for cargo that must not be tipped.
func UprightRotations() []Rotation {
	return []Rotation{RotationWDH, RotationDWH}
}

// Valid reports whether r is one of the six defined orientations.
func (r Rotation) Valid() bool {
	return int(r) < len(rotationNames)
}

func (r Rotation) String() string {
	if !r.Valid() {
		return "invalid"
	}
	return rotationNames[r]
}

// orient permutes the declared dimensions into the extent the item occupies
// under this rotation.
func (r Rotation) orient(d Dimensions) Dimensions {
	switch r {
	case RotationDWH:
		return Dimensions{W: d.D, D: d.W, H: d.H}
	case RotationWHD:
		return Dimensions{W: d.W, D: d.H, H: d.D}
	case RotationHDW:
		return Dimensions{W: d.H, D: d.D, H: d.W}
	case RotationDHW:
		return Dimensions{W: d.D, D: d.H, H: d.W}
	case RotationHWD:
		return Dimensions{W: d.H, D: d.W, H: d.D}
	default:
		return d
	}
}

// ParseRotation converts a three-letter orientation name such as "WDH" into a
// Rotation, reporting false for unknown names.
func ParseRotation(name string) (Rotation, bool) {
	for r, n := range rotationNames {
		if n == name {
			return Rotation(r), true
		}
	}
	return 0, false
}
