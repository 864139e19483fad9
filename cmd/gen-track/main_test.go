package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"track-definition/internal/raster"
)

func TestEllipseRing(t *testing.T) {
	m := ellipseRing(200, 100, 80, 40, 10)

	// Centre is the infield hole; the corner is outside the ring.
	assert.Equal(t, raster.SurfaceBackground, m.Get(100, 50))
	assert.Equal(t, raster.SurfaceBackground, m.Get(0, 0))

	// Along the x semi-axis the ring spans 70 < |dx| <= 80.
	assert.Equal(t, raster.SurfaceTrack, m.Get(100+75, 50))
	assert.Equal(t, raster.SurfaceTrack, m.Get(100-75, 50))
	assert.Equal(t, raster.SurfaceBackground, m.Get(100+65, 50))
	assert.Equal(t, raster.SurfaceBackground, m.Get(100+85, 50))

	// Along the y semi-axis it spans 30 < |dy| <= 40.
	assert.Equal(t, raster.SurfaceTrack, m.Get(100, 50+35))
	assert.Equal(t, raster.SurfaceBackground, m.Get(100, 50+25))

	assert.Positive(t, m.TrackPixels())
}
