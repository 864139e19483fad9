package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"track-definition/internal/common"
)

func openArcLength(pts []common.Vec2) []float64 {
	arc := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		arc[i] = arc[i-1] + pts[i].Dist(pts[i-1])
	}
	return arc
}

func TestEstimateCurvatureRegularPolygon(t *testing.T) {
	for _, n := range []int{8, 13, 100} {
		c := regularPolygon(n, 15, 0.1)
		k, err := EstimateCurvature(c, openArcLength(c))
		require.NoError(t, err)
		require.Len(t, k, n)
		for i := range k {
			assert.InDelta(t, 1.0/15, k[i], 1e-9, "n=%d index %d", n, i)
		}
	}
}

func TestEstimateCurvatureClockwiseIsNegative(t *testing.T) {
	c := regularPolygon(40, 4, 0).Reversed()
	k, err := EstimateCurvature(c, openArcLength(c))
	require.NoError(t, err)
	for i := range k {
		assert.InDelta(t, -0.25, k[i], 1e-9, "index %d", i)
	}
}

func TestEstimateCurvatureSeamMatchesInterior(t *testing.T) {
	// Non-uniform ellipse samples: the seam must not flip sign.
	c := ellipse(60, 30, 10)
	k, err := EstimateCurvature(c, openArcLength(c))
	require.NoError(t, err)
	for i := range k {
		assert.Greater(t, k[i], 0.0, "index %d", i)
	}
	// Symmetric samples either side of the seam.
	assert.InDelta(t, k[1], k[len(k)-1], 1e-9)
	// Curvature of an ellipse peaks at the ends of the major axis: a/b^2.
	assert.InDelta(t, 30.0/100, k[0], 0.03)
}

func TestEstimateCurvatureDegenerate(t *testing.T) {
	c := []common.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	_, err := EstimateCurvature(c, openArcLength(c))

	var de *DegenerateArcLengthError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, ErrDegenerateArcLength)
	assert.Equal(t, 1, de.Index)
}

func TestEstimateCurvatureNoNaN(t *testing.T) {
	c := ellipse(33, 12, 7)
	k, err := EstimateCurvature(c, openArcLength(c))
	require.NoError(t, err)
	for i, v := range k {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d = %v", i, v)
	}
}

func TestEstimateCurvatureLengthMismatch(t *testing.T) {
	c := regularPolygon(8, 1, 0)
	_, err := EstimateCurvature(c, make([]float64, 7))
	assert.Error(t, err)

	_, err = EstimateCurvature(c[:2], make([]float64, 2))
	var ce *ContourError
	assert.ErrorAs(t, err, &ce)
}
