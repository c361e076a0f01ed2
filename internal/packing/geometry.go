package packing

import "math"

// epsilon absorbs float64 noise in coordinate comparisons so that boxes sharing
// a face are never reported as overlapping.
const epsilon = 1e-9

// Vector is a point in bin-local coordinates. X runs along the container width,
// Y along the depth, Z upward.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dimensions is an axis-aligned extent: W along X, D along Y, H along Z.
type Dimensions struct {
	W float64 `json:"w"`
	D float64 `json:"d"`
	H float64 `json:"h"`
}

// Volume returns W*D*H.
func (d Dimensions) Volume() float64 {
	return d.W * d.D * d.H
}

// Box is an axis-aligned cuboid occupying [Origin, Origin+Size) on each axis.
type Box struct {
	Origin Vector
	Size   Dimensions
}

func (b Box) maxX() float64 { return b.Origin.X + b.Size.W }
func (b Box) maxY() float64 { return b.Origin.Y + b.Size.D }
func (b Box) maxZ() float64 { return b.Origin.Z + b.Size.H }

// Intersects reports whether two boxes overlap with positive volume. Boxes that
// merely touch on a face, edge, or corner do not intersect.
func (b Box) Intersects(o Box) bool {
	return b.Origin.X < o.maxX()-epsilon && o.Origin.X < b.maxX()-epsilon &&
		b.Origin.Y < o.maxY()-epsilon && o.Origin.Y < b.maxY()-epsilon &&
		b.Origin.Z < o.maxZ()-epsilon && o.Origin.Z < b.maxZ()-epsilon
}

// containsPoint reports whether p lies inside the half-open extent of the box.
// A point on the min faces is inside; a point on the max faces is not.
func (b Box) containsPoint(p Vector) bool {
	return p.X > b.Origin.X-epsilon && p.X < b.maxX()-epsilon &&
		p.Y > b.Origin.Y-epsilon && p.Y < b.maxY()-epsilon &&
		p.Z > b.Origin.Z-epsilon && p.Z < b.maxZ()-epsilon
}

// footprintOverlap returns the area of the XY intersection of two boxes.
func (b Box) footprintOverlap(o Box) float64 {
	w := math.Min(b.maxX(), o.maxX()) - math.Max(b.Origin.X, o.Origin.X)
	d := math.Min(b.maxY(), o.maxY()) - math.Max(b.Origin.Y, o.Origin.Y)
	if w <= 0 || d <= 0 {
		return 0
	}
	return w * d
}

// FootprintGap returns the shortest horizontal distance between the XY
// footprints of two boxes, zero when they overlap or touch.
func (b Box) FootprintGap(o Box) float64 {
	dx := math.Max(math.Max(b.Origin.X-o.maxX(), o.Origin.X-b.maxX()), 0)
	dy := math.Max(math.Max(b.Origin.Y-o.maxY(), o.Origin.Y-b.maxY()), 0)
	return math.Hypot(dx, dy)
}

// center returns the geometric center of the box.
func (b Box) center() Vector {
	return Vector{
		X: b.Origin.X + b.Size.W/2,
		Y: b.Origin.Y + b.Size.D/2,
		Z: b.Origin.Z + b.Size.H/2,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func nonNegativeFinite(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
