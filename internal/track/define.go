package track

import (
	"context"

	"track-definition/internal/common"
	"track-definition/internal/monitoring"
	"track-definition/internal/numeric"
)

// Options controls a track definition run.
type Options struct {
	// Workers bounds the number of concurrent opposing-point searches.
	// Zero or negative means one per CPU.
	Workers int
}

// Geometry is the derived description of a track. Every per-sample slice is
// indexed like Inner. Values are never modified after Define returns.
type Geometry struct {
	Inner      Contour
	Outer      Contour
	Tangents   []common.Vec2
	Opposing   []common.Vec2
	Centreline []common.Vec2
	Width      []float64
	ArcLength  []float64
	Curvature  []float64
	Rejections []int
}

// Len returns the number of samples.
func (g *Geometry) Len() int { return len(g.Inner) }

// ClosedLength returns the centreline length including the segment from the
// last sample back to the first. ArcLength itself stops at the last sample.
func (g *Geometry) ClosedLength() float64 {
	n := len(g.Centreline)
	if n == 0 {
		return 0
	}
	return g.ArcLength[n-1] + g.Centreline[n-1].Dist(g.Centreline[0])
}

// Define derives the opposing points, centreline, width, arc length, and
// curvature of the track bounded by inner and outer. Both contours must be
// closed and share a winding direction. The run either succeeds for every
// inner index or fails as a whole.
func Define(ctx context.Context, inner, outer Contour, opts Options) (*Geometry, error) {
	if err := inner.validate("inner", MinInnerPoints); err != nil {
		return nil, err
	}
	if err := outer.validate("outer", MinOuterPoints); err != nil {
		return nil, err
	}

	inner = inner.Clone()
	outer = outer.Clone()
	tangents := numeric.CyclicGradient2D(inner)

	corr, err := Correspond(ctx, inner, outer, tangents, opts.Workers)
	if err != nil {
		return nil, err
	}

	curvature, err := EstimateCurvature(corr.Centreline, corr.ArcLength)
	if err != nil {
		return nil, err
	}

	g := &Geometry{
		Inner:      inner,
		Outer:      outer,
		Tangents:   tangents,
		Opposing:   corr.Opposing,
		Centreline: corr.Centreline,
		Width:      corr.Width,
		ArcLength:  corr.ArcLength,
		Curvature:  curvature,
		Rejections: corr.Rejections,
	}

	rejected := 0
	for _, r := range g.Rejections {
		rejected += r
	}
	monitoring.Logf("track: defined %d samples against %d outer points, length %.2f, %d candidate rejections",
		len(inner), len(outer), g.ClosedLength(), rejected)
	return g, nil
}
