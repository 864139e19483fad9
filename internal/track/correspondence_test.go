package track

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"track-definition/internal/common"
	"track-definition/internal/numeric"
)

func TestCorrespondConcentricCircles(t *testing.T) {
	tests := []struct {
		r1, r2 float64
		n, m   int
	}{
		{10, 12, 90, 120},
		{5, 20, 64, 64},
		{30, 31, 200, 150},
		{1, 3, 16, 48},
		{8, 9, 37, 23},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("r1=%g r2=%g n=%d m=%d", tt.r1, tt.r2, tt.n, tt.m), func(t *testing.T) {
			inner := regularPolygon(tt.n, tt.r1, 0)
			outer := regularPolygon(tt.m, tt.r2, 0.3)
			tangents := numeric.CyclicGradient2D(inner)

			c, err := Correspond(context.Background(), inner, outer, tangents, 4)
			require.NoError(t, err)
			require.Len(t, c.Opposing, tt.n)

			// An outer edge's closest approach to the origin is r2*cos(pi/m).
			minR := tt.r2 * math.Cos(math.Pi/float64(tt.m))
			for i, p := range c.Opposing {
				r := p.Len()
				assert.GreaterOrEqual(t, r, minR-1e-9, "index %d inside outer polygon", i)
				assert.LessOrEqual(t, r, tt.r2+1e-9, "index %d outside outer polygon", i)

				// Same ray as the inner point.
				dir := inner[i].Normalize()
				assert.InDelta(t, 0, dir.Cross(p.Normalize()), 1e-9, "index %d off the radial", i)
				assert.Greater(t, dir.Dot(p), 0.0)

				assert.InDelta(t, tt.r2-tt.r1, c.Width[i], tt.r2-minR+1e-9)
			}
		})
	}
}

func TestCorrespondArcLength(t *testing.T) {
	inner := ellipse(80, 30, 18)
	outer := ellipse(120, 40, 28)
	c, err := Correspond(context.Background(), inner, outer, numeric.CyclicGradient2D(inner), 0)
	require.NoError(t, err)

	assert.Zero(t, c.ArcLength[0])
	for i := 1; i < len(c.ArcLength); i++ {
		assert.GreaterOrEqual(t, c.ArcLength[i], c.ArcLength[i-1])
		step := c.Centreline[i].Dist(c.Centreline[i-1])
		assert.InDelta(t, c.ArcLength[i-1]+step, c.ArcLength[i], 1e-9)
	}
	for i := range c.Centreline {
		mid := inner[i].Add(c.Opposing[i]).Scale(0.5)
		assert.InDelta(t, 0, mid.Dist(c.Centreline[i]), 1e-12)
		assert.Greater(t, c.Width[i], 0.0)
	}
}

func TestCorrespondWorkerCountDoesNotChangeResult(t *testing.T) {
	inner := ellipse(101, 25, 14)
	outer := ellipse(77, 33, 22)
	tangents := numeric.CyclicGradient2D(inner)

	serial, err := Correspond(context.Background(), inner, outer, tangents, 1)
	require.NoError(t, err)
	for _, workers := range []int{2, 7, 64} {
		parallel, err := Correspond(context.Background(), inner, outer, tangents, workers)
		require.NoError(t, err)
		if d := cmp.Diff(serial, parallel); d != "" {
			t.Errorf("workers=%d: %s", workers, d)
		}
	}
}

func TestCorrespondFailsWithoutPartialResult(t *testing.T) {
	inner := square()
	outer := Contour{{X: 5, Y: -1}, {X: 5, Y: 1}}

	c, err := Correspond(context.Background(), inner, outer, numeric.CyclicGradient2D(inner), 2)
	assert.Nil(t, c)

	var noPoint *NoOpposingPointError
	require.ErrorAs(t, err, &noPoint)
	assert.ErrorIs(t, err, ErrNoOpposingPoint)
	assert.GreaterOrEqual(t, noPoint.Index, 0)
	assert.Less(t, noPoint.Index, len(inner))
	assert.Equal(t, inner[noPoint.Index], noPoint.Point)
	assert.Equal(t, 2, noPoint.Candidates)
}

func TestCorrespondCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := regularPolygon(32, 10, 0)
	outer := regularPolygon(32, 20, 0)
	c, err := Correspond(ctx, inner, outer, numeric.CyclicGradient2D(inner), 2)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestCorrespondValidation(t *testing.T) {
	good := regularPolygon(8, 10, 0)
	tangents := numeric.CyclicGradient2D(good)

	_, err := Correspond(context.Background(), good[:2], good, tangents[:2], 1)
	var ce *ContourError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "inner", ce.Name)

	_, err = Correspond(context.Background(), good, good[:1], tangents, 1)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "outer", ce.Name)

	_, err = Correspond(context.Background(), good, good, []common.Vec2{{}}, 1)
	assert.Error(t, err)
}
