package trackplot

import (
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"track-definition/internal/common"
	"track-definition/internal/monitoring"
	"track-definition/internal/track"
)

func ellipse(n int, a, b float64) track.Contour {
	c := make(track.Contour, n)
	for i := range c {
		t := 2 * math.Pi * float64(i) / float64(n)
		c[i] = common.Vec2{X: a * math.Cos(t), Y: b * math.Sin(t)}
	}
	return c
}

func TestSaveAll(t *testing.T) {
	monitoring.SetLogger(nil)
	g, err := track.Define(context.Background(), ellipse(60, 30, 20), ellipse(80, 40, 30), track.Options{})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "plots")
	require.NoError(t, SaveAll(g, dir))

	for _, name := range []string{OutlineFile, WidthFile, CurvatureFile} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		_, err = png.DecodeConfig(f)
		f.Close()
		assert.NoError(t, err, "%s is not a PNG", name)
	}
}

func TestSaveProfileLengthMismatch(t *testing.T) {
	monitoring.SetLogger(nil)
	g, err := track.Define(context.Background(), ellipse(12, 3, 2), ellipse(12, 5, 4), track.Options{})
	require.NoError(t, err)

	err = SaveProfile(g, "bad", "bad", []float64{1, 2}, filepath.Join(t.TempDir(), "bad.png"))
	assert.Error(t, err)
}
