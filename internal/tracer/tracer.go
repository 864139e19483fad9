// Package tracer extracts the inner and outer boundaries of a track ring from
// a binary mask using OpenCV.
package tracer

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"track-definition/internal/common"
	"track-definition/internal/raster"
	"track-definition/internal/track"
)

// ErrNoTrackRing is returned when the mask has no outer boundary enclosing a hole.
var ErrNoTrackRing = errors.New("tracer: mask does not contain a closed track ring")

// Boundaries traces the mask and returns the hole boundary (inner) and the
// enclosing boundary (outer) of the largest track ring. cleanupIterations
// morphological close/open passes are applied first to remove speckle.
func Boundaries(m *raster.Mask, cleanupIterations int) (inner, outer track.Contour, err error) {
	if m.Width == 0 || m.Height == 0 {
		return nil, nil, ErrNoTrackRing
	}

	src, err := gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8U, m.Pix)
	if err != nil {
		return nil, nil, fmt.Errorf("tracer: wrap mask: %w", err)
	}
	defer src.Close()

	cleaned := CleanupMask(src, cleanupIterations)
	defer cleaned.Close()

	contours := gocv.FindContours(cleaned, gocv.RetrievalList, gocv.ChainApproxNone)
	defer contours.Close()

	outerIdx := -1
	outerArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		if area := math.Abs(gocv.ContourArea(contours.At(i))); area > outerArea {
			outerIdx, outerArea = i, area
		}
	}
	if outerIdx < 0 {
		return nil, nil, ErrNoTrackRing
	}
	outerPV := contours.At(outerIdx)

	// The inner boundary is the largest remaining contour lying inside the outer one.
	innerIdx := -1
	innerArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		if i == outerIdx {
			continue
		}
		pv := contours.At(i)
		if pv.Size() < track.MinInnerPoints {
			continue
		}
		if gocv.PointPolygonTest(outerPV, pv.At(0), false) < 0 {
			continue
		}
		if area := math.Abs(gocv.ContourArea(pv)); area > innerArea {
			innerIdx, innerArea = i, area
		}
	}
	if innerIdx < 0 {
		return nil, nil, ErrNoTrackRing
	}

	return toContour(contours.At(innerIdx).ToPoints()), toContour(outerPV.ToPoints()), nil
}

// CleanupMask closes small gaps and then removes small noise. The returned
// Mat is owned by the caller.
func CleanupMask(mask gocv.Mat, iterations int) gocv.Mat {
	cleaned := mask.Clone()
	if iterations <= 0 {
		return cleaned
	}

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	for i := 0; i < iterations; i++ {
		gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphClose, kernel)
	}
	for i := 0; i < iterations; i++ {
		gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphOpen, kernel)
	}
	return cleaned
}

func toContour(pts []image.Point) track.Contour {
	c := make(track.Contour, len(pts))
	for i, p := range pts {
		c[i] = common.Vec2{X: float64(p.X), Y: float64(p.Y)}
	}
	return c
}
