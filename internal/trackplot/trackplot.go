// Package trackplot renders defined tracks as PNG plots.
package trackplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"track-definition/internal/common"
	"track-definition/internal/track"
)

// Output file names written by SaveAll.
const (
	OutlineFile   = "outline.png"
	WidthFile     = "width.png"
	CurvatureFile = "curvature.png"
)

var (
	colorInner      = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	colorOuter      = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colorCentreline = color.RGBA{R: 20, G: 150, B: 60, A: 255}
	colorChord      = color.RGBA{R: 120, G: 120, B: 120, A: 160}
)

// ChordStride controls how many chords the outline draws: every ChordStride-th sample.
var ChordStride = 5

// SaveAll writes the outline, width, and curvature plots into dir.
func SaveAll(g *track.Geometry, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("trackplot: create %s: %w", dir, err)
	}
	if err := SaveOutline(g, filepath.Join(dir, OutlineFile)); err != nil {
		return err
	}
	if err := SaveProfile(g, "Track width", "width", g.Width, filepath.Join(dir, WidthFile)); err != nil {
		return err
	}
	return SaveProfile(g, "Centreline curvature", "curvature", g.Curvature, filepath.Join(dir, CurvatureFile))
}

// SaveOutline plots both boundaries, the centreline, and a subset of the
// inner-to-opposing chords.
func SaveOutline(g *track.Geometry, path string) error {
	p := plot.New()
	p.Title.Text = "Track outline"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, s := range []struct {
		label string
		pts   []common.Vec2
		c     color.Color
		width vg.Length
	}{
		{"inner", g.Inner, colorInner, vg.Points(1)},
		{"outer", g.Outer, colorOuter, vg.Points(1)},
		{"centreline", g.Centreline, colorCentreline, vg.Points(1.5)},
	} {
		line, err := plotter.NewLine(closed(s.pts))
		if err != nil {
			return fmt.Errorf("trackplot: %s line: %w", s.label, err)
		}
		line.Color = s.c
		line.Width = s.width
		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	stride := ChordStride
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < g.Len(); i += stride {
		chord, err := plotter.NewLine(plotter.XYs{
			{X: g.Inner[i].X, Y: g.Inner[i].Y},
			{X: g.Opposing[i].X, Y: g.Opposing[i].Y},
		})
		if err != nil {
			return fmt.Errorf("trackplot: chord %d: %w", i, err)
		}
		chord.Color = colorChord
		chord.Width = vg.Points(0.5)
		p.Add(chord)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("trackplot: save %s: %w", path, err)
	}
	return nil
}

// SaveProfile plots one per-sample quantity against arc length.
func SaveProfile(g *track.Geometry, title, label string, values []float64, path string) error {
	if len(values) != len(g.ArcLength) {
		return fmt.Errorf("trackplot: %d values for %d samples", len(values), len(g.ArcLength))
	}

	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: g.ArcLength[i], Y: v}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "arc length"
	p.Y.Label.Text = label
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("trackplot: %s line: %w", label, err)
	}
	line.Color = colorCentreline
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("trackplot: save %s: %w", path, err)
	}
	return nil
}

// closed returns pts as plot points with the first point repeated at the end.
func closed(pts []common.Vec2) plotter.XYs {
	xys := make(plotter.XYs, 0, len(pts)+1)
	for _, p := range pts {
		xys = append(xys, plotter.XY{X: p.X, Y: p.Y})
	}
	if len(pts) > 0 {
		xys = append(xys, plotter.XY{X: pts[0].X, Y: pts[0].Y})
	}
	return xys
}
