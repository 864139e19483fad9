package track

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"track-definition/internal/common"
)

// Correspondence pairs every inner point with its opposing point on the outer
// contour. All slices are indexed like the inner contour.
type Correspondence struct {
	Opposing   []common.Vec2
	Centreline []common.Vec2
	Width      []float64
	ArcLength  []float64
	Rejections []int
}

// Correspond resolves an opposing point for every inner index on a pool of
// workers (workers <= 0 uses one per CPU). Each search starts from the full
// outer candidate set. A failure at any index cancels the remaining searches
// and returns a *NoOpposingPointError with no partial result.
func Correspond(ctx context.Context, inner, outer Contour, tangents []common.Vec2, workers int) (*Correspondence, error) {
	n := len(inner)
	if err := inner.validate("inner", MinInnerPoints); err != nil {
		return nil, err
	}
	if err := outer.validate("outer", MinOuterPoints); err != nil {
		return nil, err
	}
	if len(tangents) != n {
		return nil, fmt.Errorf("track: %d tangents for %d inner points", len(tangents), n)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	resolver := NewResolver(outer)
	resolved := make([]Resolution, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := resolver.Resolve(inner[i], tangents[i])
			if err != nil {
				return &NoOpposingPointError{Index: i, Point: inner[i], Candidates: len(outer)}
			}
			resolved[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Indices skipped after a parent cancellation never report an error.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &Correspondence{
		Opposing:   make([]common.Vec2, n),
		Centreline: make([]common.Vec2, n),
		Width:      make([]float64, n),
		ArcLength:  make([]float64, n),
		Rejections: make([]int, n),
	}
	for i, res := range resolved {
		c.Opposing[i] = res.Point
		c.Centreline[i] = inner[i].Add(res.Point).Scale(0.5)
		c.Width[i] = inner[i].Dist(res.Point)
		c.Rejections[i] = res.Rejected
		if i > 0 {
			c.ArcLength[i] = c.ArcLength[i-1] + c.Centreline[i].Dist(c.Centreline[i-1])
		}
	}
	return c, nil
}
