package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"track-definition/internal/common"
	"track-definition/internal/numeric"
)

// degenerateStep is the smallest arc-length step treated as non-zero.
const degenerateStep = 1e-12

// EstimateCurvature returns the signed curvature of a closed centreline
// parameterised by its cumulative arc length. Positive values turn left
// (counter-clockwise). Derivatives are cyclic central differences; the
// arc-length derivative treats the sequence as advancing by the closed loop
// length on every lap so the seam is differentiated like any other index.
func EstimateCurvature(centreline []common.Vec2, arcLength []float64) ([]float64, error) {
	n := len(centreline)
	if len(arcLength) != n {
		return nil, fmt.Errorf("track: %d arc-length samples for %d centreline points", len(arcLength), n)
	}
	if n < MinInnerPoints {
		return nil, &ContourError{Name: "centreline", Points: n, Min: MinInnerPoints}
	}

	loop := arcLength[n-1] - arcLength[0] + centreline[n-1].Dist(centreline[0])
	ds := numeric.CyclicGradientPeriodic(arcLength, loop)
	for i, step := range ds {
		if math.Abs(step) < degenerateStep {
			return nil, &DegenerateArcLengthError{Index: i}
		}
	}

	xs, ys := numeric.Split(centreline)
	dcx := numeric.CyclicGradient(xs)
	dcy := numeric.CyclicGradient(ys)
	ddcx := numeric.CyclicGradient(dcx)
	ddcy := numeric.CyclicGradient(dcy)

	ds2 := floats.MulTo(make([]float64, n), ds, ds)
	dxds := floats.DivTo(make([]float64, n), dcx, ds)
	dyds := floats.DivTo(make([]float64, n), dcy, ds)
	d2xds2 := floats.DivTo(make([]float64, n), ddcx, ds2)
	d2yds2 := floats.DivTo(make([]float64, n), ddcy, ds2)

	curvature := make([]float64, n)
	for i := range curvature {
		speedSq := dxds[i]*dxds[i] + dyds[i]*dyds[i]
		if speedSq == 0 {
			// Coincident neighbours: no tangent direction to turn from.
			return nil, &DegenerateArcLengthError{Index: i}
		}
		curvature[i] = (dxds[i]*d2yds2[i] - dyds[i]*d2xds2[i]) / math.Pow(speedSq, 1.5)
	}
	return curvature, nil
}
