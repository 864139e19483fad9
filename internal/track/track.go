package track

import (
	"math"

	"track-definition/internal/common"
)

// Waypoint represents a point on the track centerline.
type Waypoint struct {
	ID        int
	Position  common.Vec2 // Centreline point
	Normal    common.Vec2 // Unit vector from the inner boundary towards the outer boundary
	Width     float64     // Width of the track at this point
	Distance  float64     // Distance from start (s-coordinate)
	Curvature float64     // Signed curvature, positive turning left
}

// Tangent returns the unit direction of travel at the waypoint.
func (w Waypoint) Tangent() common.Vec2 {
	return common.Vec2{X: -w.Normal.Y, Y: w.Normal.X}
}

// TrackMesh represents the curvilinear coordinate system of the track.
type TrackMesh struct {
	Waypoints []Waypoint
	TotalLen  float64
}

// Mesh builds the Frenet waypoints of g.
func (g *Geometry) Mesh() *TrackMesh {
	wps := make([]Waypoint, g.Len())
	for i := range wps {
		wps[i] = Waypoint{
			ID:        i,
			Position:  g.Centreline[i],
			Normal:    g.Opposing[i].Sub(g.Inner[i]).Normalize(),
			Width:     g.Width[i],
			Distance:  g.ArcLength[i],
			Curvature: g.Curvature[i],
		}
	}
	return &TrackMesh{Waypoints: wps, TotalLen: g.ClosedLength()}
}

// GetClosestWaypoint finds the waypoint closest to the given world position.
// Returns the waypoint and its index, or -1 for an empty mesh.
// TODO: linear scan; add a grid index if meshes grow past a few thousand samples.
func (m *TrackMesh) GetClosestWaypoint(pos common.Vec2) (Waypoint, int) {
	minDistSq := math.MaxFloat64
	closestIdx := -1

	for i, wp := range m.Waypoints {
		distSq := pos.Sub(wp.Position).LenSq()
		if distSq < minDistSq {
			minDistSq = distSq
			closestIdx = i
		}
	}

	if closestIdx == -1 {
		return Waypoint{}, -1
	}
	return m.Waypoints[closestIdx], closestIdx
}

// WorldToFrenet converts World (x,y) to Frenet (s,d).
// s: Progress along track, wrapped into [0, TotalLen)
// d: Lateral offset (positive = towards the outer boundary)
func (m *TrackMesh) WorldToFrenet(pos common.Vec2) (float64, float64) {
	wp, idx := m.GetClosestWaypoint(pos)
	if idx < 0 {
		return 0, 0
	}

	offset := pos.Sub(wp.Position)
	d := offset.Dot(wp.Normal)
	s := wp.Distance + offset.Dot(wp.Tangent())

	if m.TotalLen > 0 {
		s = math.Mod(s, m.TotalLen)
		if s < 0 {
			s += m.TotalLen
		}
	}
	return s, d
}
