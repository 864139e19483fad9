package track

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"track-definition/internal/common"
)

func TestDefineOctagons(t *testing.T) {
	inner := regularPolygon(8, 10, 0)
	outer := regularPolygon(8, 20, 0)

	g, err := Define(context.Background(), inner, outer, Options{Workers: 3})
	require.NoError(t, err)
	require.Equal(t, 8, g.Len())

	side := 2 * 15 * math.Sin(math.Pi/8)
	for i := 0; i < g.Len(); i++ {
		// Perpendiculars of a regular polygon are radial and land on the
		// matching outer vertex.
		assert.InDelta(t, 0, g.Opposing[i].Dist(outer[i]), 1e-9, "opposing %d", i)
		assert.InDelta(t, 10, g.Width[i], 1e-9, "width %d", i)
		assert.InDelta(t, 15, g.Centreline[i].Len(), 1e-9, "centreline radius %d", i)
		assert.InDelta(t, 0, g.Centreline[i].Normalize().Cross(inner[i].Normalize()), 1e-9)
		assert.InDelta(t, float64(i)*side, g.ArcLength[i], 1e-9, "arc length %d", i)
		assert.InDelta(t, 1.0/15, g.Curvature[i], 1e-9, "curvature %d", i)
		assert.Greater(t, g.Curvature[i], 0.0)
	}
	assert.InDelta(t, 8*side, g.ClosedLength(), 1e-9)
}

func TestDefineEllipses(t *testing.T) {
	tests := []struct {
		name       string
		ia, ib     float64
		oa, ob     float64
		n, m       int
		outerPhase bool
	}{
		{name: "moderate", ia: 30, ib: 18, oa: 40, ob: 28, n: 120, m: 180},
		{name: "narrow", ia: 50, ib: 20, oa: 54, ob: 24, n: 200, m: 260},
		{name: "coarse outer", ia: 20, ib: 15, oa: 30, ob: 25, n: 90, m: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := ellipse(tt.n, tt.ia, tt.ib)
			outer := ellipse(tt.m, tt.oa, tt.ob)

			g, err := Define(context.Background(), inner, outer, Options{})
			require.NoError(t, err)

			assert.Zero(t, g.ArcLength[0])
			for i := 0; i < g.Len(); i++ {
				if i > 0 {
					assert.GreaterOrEqual(t, g.ArcLength[i], g.ArcLength[i-1])
				}
				assert.Greater(t, g.Width[i], 0.0)

				// Opposing points lie on (a chord of) the outer ellipse.
				p := g.Opposing[i]
				e := (p.X*p.X)/(tt.oa*tt.oa) + (p.Y*p.Y)/(tt.ob*tt.ob)
				assert.InDelta(t, 0.99, e, 0.0100001, "index %d off the outer boundary", i)

				// And on the outward side of the inner contour.
				assert.Greater(t, p.Sub(inner[i]).Dot(g.Tangents[i].Perp()), 0.0)

				// The chord is perpendicular to the inner tangent.
				chord := p.Sub(inner[i]).Normalize()
				assert.InDelta(t, 0, chord.Dot(g.Tangents[i].Normalize()), 1e-9)
			}
			for _, k := range g.Curvature {
				assert.False(t, math.IsNaN(k))
			}
		})
	}
}

func TestDefineTwoPointOuterFails(t *testing.T) {
	inner := Contour{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	outer := Contour{{X: 5, Y: -1}, {X: 5, Y: 1}}

	g, err := Define(context.Background(), inner, outer, Options{})
	assert.Nil(t, g)
	var noPoint *NoOpposingPointError
	assert.ErrorAs(t, err, &noPoint)
}

func TestDefineValidatesContours(t *testing.T) {
	_, err := Define(context.Background(), Contour{{X: 0, Y: 0}, {X: 1, Y: 0}}, regularPolygon(8, 2, 0), Options{})
	var ce *ContourError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "inner", ce.Name)
	assert.Equal(t, 2, ce.Points)
	assert.Equal(t, MinInnerPoints, ce.Min)

	_, err = Define(context.Background(), regularPolygon(8, 1, 0), nil, Options{})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "outer", ce.Name)
}

func TestDefineDoesNotAliasInputs(t *testing.T) {
	inner := regularPolygon(12, 5, 0)
	outer := regularPolygon(12, 9, 0.2)
	g, err := Define(context.Background(), inner, outer, Options{})
	require.NoError(t, err)

	inner[0] = common.Vec2{X: 100, Y: 100}
	assert.NotEqual(t, inner[0], g.Inner[0])
}
