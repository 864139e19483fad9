package track

import (
	"errors"
	"fmt"

	"track-definition/internal/common"
)

var (
	// ErrParallelLines is returned by SolveIntersection when the two lines
	// are parallel or coincident and have no unique crossing.
	ErrParallelLines = errors.New("track: lines are parallel")

	// ErrNoOpposingPoint is returned by a Resolver that exhausted every outer
	// candidate without a valid perpendicular crossing.
	ErrNoOpposingPoint = errors.New("track: no valid opposing point")

	// ErrDegenerateArcLength is returned when the centreline has a zero
	// arc-length step, which makes curvature undefined.
	ErrDegenerateArcLength = errors.New("track: degenerate arc length")
)

// NoOpposingPointError reports the inner index whose perpendicular never
// crossed the outer contour.
type NoOpposingPointError struct {
	Index      int
	Point      common.Vec2
	Candidates int
}

func (e *NoOpposingPointError) Error() string {
	return fmt.Sprintf("track: no valid opposing point for inner index %d at (%.3f, %.3f) after %d candidates",
		e.Index, e.Point.X, e.Point.Y, e.Candidates)
}

func (e *NoOpposingPointError) Unwrap() error { return ErrNoOpposingPoint }

// DegenerateArcLengthError reports the centreline index with a zero arc-length step.
type DegenerateArcLengthError struct {
	Index int
}

func (e *DegenerateArcLengthError) Error() string {
	return fmt.Sprintf("track: degenerate arc length at centreline index %d", e.Index)
}

func (e *DegenerateArcLengthError) Unwrap() error { return ErrDegenerateArcLength }

// ContourError reports a contour that is too short to be used.
type ContourError struct {
	Name   string
	Points int
	Min    int
}

func (e *ContourError) Error() string {
	return fmt.Sprintf("track: %s contour has %d points, need at least %d", e.Name, e.Points, e.Min)
}
