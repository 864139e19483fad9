package track

import (
	"math"

	"track-definition/internal/common"
)

// edgeTolerance widens the open interval (0, 1) on the outer edge parameter so
// that a perpendicular passing exactly through an outer vertex (t = 0 on one
// adjacent edge, t = 1 on the other) is still accepted.
const edgeTolerance = 1e-9

// Resolution is the outcome of one opposing-point search.
type Resolution struct {
	Point    common.Vec2 // Opposing point on the outer contour
	Vertex   int         // Outer vertex whose adjacent edge was hit
	Edge     [2]int      // Outer indices of the edge that was hit
	S        float64     // Parameter along the perpendicular (in tangent lengths)
	T        float64     // Parameter along the outer edge
	Rejected int         // Nearest-neighbour candidates rejected before the hit
}

// Resolver finds opposing points on a fixed outer contour. It holds no
// per-search state and is safe for concurrent use.
type Resolver struct {
	outer Contour
}

// NewResolver returns a Resolver over outer. The contour is not copied and
// must not be modified while the Resolver is in use.
func NewResolver(outer Contour) *Resolver {
	return &Resolver{outer: outer}
}

// candidateSet is the shrinking set of outer indices for one search.
type candidateSet struct {
	rejected  []bool
	remaining int
}

func newCandidateSet(m int) *candidateSet {
	return &candidateSet{rejected: make([]bool, m), remaining: m}
}

func (c *candidateSet) reject(j int) {
	if !c.rejected[j] {
		c.rejected[j] = true
		c.remaining--
	}
}

// nearest returns the eligible index closest to p. Ties go to the lowest index.
func (c *candidateSet) nearest(outer Contour, p common.Vec2) int {
	best := -1
	bestDist := math.Inf(1)
	for j, q := range outer {
		if c.rejected[j] {
			continue
		}
		if d := q.Sub(p).LenSq(); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// Resolve searches for the point where the line through point, perpendicular
// to tangent, crosses an outer edge adjacent to the nearest eligible outer
// vertex. The predecessor edge is tried before the successor edge. A vertex
// whose edges both miss is removed from the candidate set and the search
// continues with the next nearest. ErrNoOpposingPoint is returned once every
// candidate has been rejected.
func (r *Resolver) Resolve(point, tangent common.Vec2) (Resolution, error) {
	m := len(r.outer)
	perp := tangent.Perp()
	ray := point.Add(perp)
	candidates := newCandidateSet(m)

	for candidates.remaining > 0 {
		j := candidates.nearest(r.outer, point)
		if j < 0 {
			break
		}

		for _, k := range [2]int{(j - 1 + m) % m, (j + 1) % m} {
			if k == j {
				continue
			}
			s, t, err := SolveIntersection(point, ray, r.outer[j], r.outer[k])
			if err != nil {
				// Parallel to the edge: this edge does not count.
				continue
			}
			if t > -edgeTolerance && t < 1+edgeTolerance {
				return Resolution{
					Point:    point.Add(perp.Scale(s)),
					Vertex:   j,
					Edge:     [2]int{j, k},
					S:        s,
					T:        t,
					Rejected: m - candidates.remaining,
				}, nil
			}
		}

		candidates.reject(j)
	}

	return Resolution{Rejected: m}, ErrNoOpposingPoint
}
