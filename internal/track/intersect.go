package track

import (
	"math"

	"track-definition/internal/common"
)

// parallelTolerance is relative to the product of the direction lengths.
const parallelTolerance = 1e-12

// SolveIntersection solves p1 + s*(p2-p1) = p3 + t*(p4-p3) for (s, t) by
// Cramer's rule. Both lines are unbounded; callers decide which parameter
// ranges count as a hit. Parallel or coincident lines, and lines with a zero
// direction, return ErrParallelLines.
func SolveIntersection(p1, p2, p3, p4 common.Vec2) (s, t float64, err error) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)

	denom := d1.Cross(d2)
	if math.Abs(denom) <= parallelTolerance*d1.Len()*d2.Len() {
		return 0, 0, ErrParallelLines
	}

	w := p3.Sub(p1)
	s = w.Cross(d2) / denom
	t = w.Cross(d1) / denom
	return s, t, nil
}
