package export

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"track-definition/internal/common"
	"track-definition/internal/monitoring"
	"track-definition/internal/track"
)

func polygon(n int, r float64) track.Contour {
	c := make(track.Contour, n)
	for i := range c {
		a := 2 * math.Pi * float64(i) / float64(n)
		c[i] = common.Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return c
}

func testGeometry(t *testing.T) *track.Geometry {
	t.Helper()
	monitoring.SetLogger(nil)
	g, err := track.Define(context.Background(), polygon(16, 10), polygon(24, 14), track.Options{Workers: 2})
	require.NoError(t, err)
	return g
}

func TestWriteJSON(t *testing.T) {
	g := testGeometry(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "oval", g))

	var doc TrackDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "oval", doc.Name)
	assert.Equal(t, 16, doc.Summary.Samples)
	require.Len(t, doc.Samples, 16)
	require.Len(t, doc.Outer, 24)

	for i, s := range doc.Samples {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, g.Width[i], s.Width)
		assert.Equal(t, g.ArcLength[i], s.ArcLength)
		assert.Equal(t, [2]float64{g.Centreline[i].X, g.Centreline[i].Y}, s.Centreline)
	}
}

func TestFeatureCollection(t *testing.T) {
	g := testGeometry(t)
	fc := FeatureCollection("oval", g)
	require.Len(t, fc.Features, 3)

	surface, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, surface, 2)
	assert.Len(t, surface[0], 25, "outer ring is closed")
	assert.Len(t, surface[1], 17, "inner ring is closed")
	assert.Equal(t, surface[0][0], surface[0][24])
	assert.Equal(t, KindSurface, fc.Features[0].Properties["kind"])

	centre, ok := fc.Features[1].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, centre, 17)

	chords, ok := fc.Features[2].Geometry.(orb.MultiLineString)
	require.True(t, ok)
	require.Len(t, chords, 16)
	assert.Equal(t, orb.Point{g.Opposing[3].X, g.Opposing[3].Y}, chords[3][1])
}

func TestWriteGeoJSONRoundTrip(t *testing.T) {
	g := testGeometry(t)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, "oval", g))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	kinds := []string{}
	for _, f := range fc.Features {
		kinds = append(kinds, f.Properties.MustString("kind"))
	}
	assert.Equal(t, []string{KindSurface, KindCentreline, KindChords}, kinds)
	assert.Equal(t, "Polygon", fc.Features[0].Geometry.GeoJSONType())
	assert.Equal(t, "oval", fc.Features[0].Properties.MustString("name"))
}
