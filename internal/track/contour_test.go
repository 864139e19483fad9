package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"track-definition/internal/common"
)

func TestContourSignedArea(t *testing.T) {
	sq := square()
	assert.InDelta(t, 4, sq.SignedArea(), 1e-12)
	assert.InDelta(t, -4, sq.Reversed().SignedArea(), 1e-12)
	assert.InDelta(t, 8, sq.Perimeter(), 1e-12)
}

func TestContourEnsureCounterClockwise(t *testing.T) {
	cw := regularPolygon(10, 3, 0).Reversed()
	ccw := cw.EnsureCounterClockwise()
	assert.Greater(t, ccw.SignedArea(), 0.0)
	assert.Equal(t, cw[len(cw)-1], ccw[0])

	already := square()
	assert.Equal(t, already, already.EnsureCounterClockwise())
}

func TestContourAtWraps(t *testing.T) {
	sq := square()
	assert.Equal(t, sq[0], sq.At(4))
	assert.Equal(t, sq[3], sq.At(-1))
	assert.Equal(t, sq[1], sq.At(-7))
}

func TestContourScaled(t *testing.T) {
	c := Contour{{X: 1, Y: 2}, {X: -3, Y: 0.5}}
	s := c.Scaled(0.5)
	assert.Equal(t, Contour{{X: 0.5, Y: 1}, {X: -1.5, Y: 0.25}}, s)
	assert.Equal(t, common.Vec2{X: 1, Y: 2}, c[0], "input untouched")
}

func TestContourPerimeterCircle(t *testing.T) {
	c := regularPolygon(1000, 2, 0)
	assert.InDelta(t, 4*math.Pi, c.Perimeter(), 1e-4)
}
