package track

import (
	"track-definition/internal/common"
)

// Minimum point counts accepted by Define. The inner contour needs three
// points for a central difference; the outer contour only needs one edge.
const (
	MinInnerPoints = 3
	MinOuterPoints = 2
)

// Contour is an ordered, closed sequence of points. Index len(c) is index 0.
// Contours are treated as read-only once built.
type Contour []common.Vec2

// At returns the point at i, wrapping in both directions.
func (c Contour) At(i int) common.Vec2 {
	n := len(c)
	return c[((i%n)+n)%n]
}

// SignedArea returns the shoelace area. Positive for counter-clockwise
// traversal in a y-up frame.
func (c Contour) SignedArea() float64 {
	area := 0.0
	for i := range c {
		area += c[i].Cross(c.At(i + 1))
	}
	return area / 2
}

// Perimeter returns the closed length, including the segment back to index 0.
func (c Contour) Perimeter() float64 {
	total := 0.0
	for i := range c {
		total += c[i].Dist(c.At(i + 1))
	}
	return total
}

// Reversed returns a copy traversed in the opposite direction.
func (c Contour) Reversed() Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// EnsureCounterClockwise returns c, or its reversal when the signed area is negative.
func (c Contour) EnsureCounterClockwise() Contour {
	if c.SignedArea() < 0 {
		return c.Reversed()
	}
	return c
}

// Scaled returns a copy with every coordinate multiplied by f.
func (c Contour) Scaled(f float64) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[i] = p.Scale(f)
	}
	return out
}

// Clone returns an independent copy of c.
func (c Contour) Clone() Contour {
	out := make(Contour, len(c))
	copy(out, c)
	return out
}

func (c Contour) validate(name string, min int) error {
	if len(c) < min {
		return &ContourError{Name: name, Points: len(c), Min: min}
	}
	return nil
}
