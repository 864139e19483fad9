// Package export writes defined tracks for downstream tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"track-definition/internal/common"
	"track-definition/internal/track"
)

// Sample is one index of a defined track.
type Sample struct {
	Index      int        `json:"index"`
	Inner      [2]float64 `json:"inner"`
	Opposing   [2]float64 `json:"opposing"`
	Centreline [2]float64 `json:"centreline"`
	Width      float64    `json:"width"`
	ArcLength  float64    `json:"arc_length"`
	Curvature  float64    `json:"curvature"`
}

// TrackDocument is the JSON form of a defined track.
type TrackDocument struct {
	Name    string        `json:"name"`
	Summary track.Summary `json:"summary"`
	Samples []Sample      `json:"samples"`
	Outer   [][2]float64  `json:"outer"`
}

// NewTrackDocument flattens g into a TrackDocument.
func NewTrackDocument(name string, g *track.Geometry) *TrackDocument {
	doc := &TrackDocument{
		Name:    name,
		Summary: track.Summarize(g),
		Samples: make([]Sample, g.Len()),
		Outer:   make([][2]float64, len(g.Outer)),
	}
	for i := range doc.Samples {
		doc.Samples[i] = Sample{
			Index:      i,
			Inner:      pair(g.Inner[i]),
			Opposing:   pair(g.Opposing[i]),
			Centreline: pair(g.Centreline[i]),
			Width:      g.Width[i],
			ArcLength:  g.ArcLength[i],
			Curvature:  g.Curvature[i],
		}
	}
	for i, p := range g.Outer {
		doc.Outer[i] = pair(p)
	}
	return doc
}

// WriteJSON writes g as an indented TrackDocument.
func WriteJSON(w io.Writer, name string, g *track.Geometry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewTrackDocument(name, g)); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// Feature kinds written by WriteGeoJSON, stored in the "kind" property.
const (
	KindSurface    = "surface"
	KindCentreline = "centreline"
	KindChords     = "chords"
)

// FeatureCollection builds the GeoJSON view of g: the track surface as a
// polygon with the infield as its hole, the closed centreline, and the
// inner-to-opposing chords.
func FeatureCollection(name string, g *track.Geometry) *geojson.FeatureCollection {
	summary := track.Summarize(g)
	fc := geojson.NewFeatureCollection()

	surface := geojson.NewFeature(orb.Polygon{ring(g.Outer), ring(g.Inner)})
	surface.Properties["kind"] = KindSurface
	surface.Properties["name"] = name
	surface.Properties["mean_width"] = summary.MeanWidth
	surface.Properties["min_width"] = summary.MinWidth
	surface.Properties["max_width"] = summary.MaxWidth
	fc.Append(surface)

	centre := make(orb.LineString, 0, g.Len()+1)
	for _, p := range g.Centreline {
		centre = append(centre, point(p))
	}
	if g.Len() > 0 {
		centre = append(centre, point(g.Centreline[0]))
	}
	centreline := geojson.NewFeature(centre)
	centreline.Properties["kind"] = KindCentreline
	centreline.Properties["length"] = summary.Length
	centreline.Properties["curvature"] = g.Curvature
	fc.Append(centreline)

	chords := make(orb.MultiLineString, g.Len())
	for i := range chords {
		chords[i] = orb.LineString{point(g.Inner[i]), point(g.Opposing[i])}
	}
	chordFeature := geojson.NewFeature(chords)
	chordFeature.Properties["kind"] = KindChords
	chordFeature.Properties["width"] = g.Width
	fc.Append(chordFeature)

	return fc
}

// WriteGeoJSON writes FeatureCollection(name, g).
func WriteGeoJSON(w io.Writer, name string, g *track.Geometry) error {
	data, err := FeatureCollection(name, g).MarshalJSON()
	if err != nil {
		return fmt.Errorf("export: encode geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: write geojson: %w", err)
	}
	return nil
}

func pair(p common.Vec2) [2]float64 { return [2]float64{p.X, p.Y} }

func point(p common.Vec2) orb.Point { return orb.Point{p.X, p.Y} }

// ring closes c for GeoJSON, which requires the first point repeated last.
func ring(c track.Contour) orb.Ring {
	r := make(orb.Ring, 0, len(c)+1)
	for _, p := range c {
		r = append(r, point(p))
	}
	if len(c) > 0 {
		r = append(r, point(c[0]))
	}
	return r
}
