// Package numeric holds the finite-difference helpers used on closed curves.
package numeric

import (
	"gonum.org/v1/gonum/floats"

	"track-definition/internal/common"
)

// CyclicGradient returns the central-difference derivative of a closed
// sequence, (v[i+1] - v[i-1]) / 2, with indices taken modulo len(v). The seam
// (i = 0 and i = n-1) uses the same formula as the interior.
func CyclicGradient(v []float64) []float64 {
	return CyclicGradientPeriodic(v, 0)
}

// CyclicGradientPeriodic is CyclicGradient for a sequence that advances by
// period on every lap, i.e. v[i+n] = v[i] + period. Use it for a cumulative
// parameter such as arc length measured around a closed loop.
func CyclicGradientPeriodic(v []float64, period float64) []float64 {
	n := len(v)
	if n == 0 {
		return nil
	}

	next := make([]float64, n)
	prev := make([]float64, n)
	copy(next, v[1:])
	next[n-1] = v[0] + period
	copy(prev[1:], v[:n-1])
	prev[0] = v[n-1] - period

	out := floats.SubTo(make([]float64, n), next, prev)
	floats.Scale(0.5, out)
	return out
}

// CyclicGradient2D applies CyclicGradient independently to each axis.
func CyclicGradient2D(p []common.Vec2) []common.Vec2 {
	xs, ys := Split(p)
	dx := CyclicGradient(xs)
	dy := CyclicGradient(ys)
	return Join(dx, dy)
}

// Split returns the X and Y coordinates of p as separate slices.
func Split(p []common.Vec2) (xs, ys []float64) {
	xs = make([]float64, len(p))
	ys = make([]float64, len(p))
	for i, v := range p {
		xs[i] = v.X
		ys[i] = v.Y
	}
	return xs, ys
}

// Join zips xs and ys into points. Both slices must have the same length.
func Join(xs, ys []float64) []common.Vec2 {
	out := make([]common.Vec2, len(xs))
	for i := range xs {
		out[i] = common.Vec2{X: xs[i], Y: ys[i]}
	}
	return out
}
