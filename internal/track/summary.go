package track

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate figures for a defined track.
type Summary struct {
	Samples      int     `json:"samples"`
	Length       float64 `json:"length"`
	MeanWidth    float64 `json:"mean_width"`
	StdDevWidth  float64 `json:"stddev_width"`
	MinWidth     float64 `json:"min_width"`
	MaxWidth     float64 `json:"max_width"`
	MinCurvature float64 `json:"min_curvature"`
	MaxCurvature float64 `json:"max_curvature"`
}

// Summarize computes the Summary of g.
func Summarize(g *Geometry) Summary {
	s := Summary{Samples: g.Len(), Length: g.ClosedLength()}
	if g.Len() == 0 {
		return s
	}
	s.MeanWidth, s.StdDevWidth = stat.MeanStdDev(g.Width, nil)
	s.MinWidth = floats.Min(g.Width)
	s.MaxWidth = floats.Max(g.Width)
	s.MinCurvature = floats.Min(g.Curvature)
	s.MaxCurvature = floats.Max(g.Curvature)
	return s
}
