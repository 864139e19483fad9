// Package filter smooths and decimates traced contours before correspondence.
// A traced raster boundary carries pixel staircase noise and thousands of
// points; the correspondence search wants a few hundred smooth samples.
package filter

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"track-definition/internal/numeric"
	"track-definition/internal/track"
)

// LowPass treats v as one period of a periodic signal and keeps only the
// Fourier harmonics 0..harmonics. A closed contour has no seam, so no window
// or padding is applied.
func LowPass(v []float64, harmonics int) []float64 {
	n := len(v)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if harmonics >= n/2 {
		copy(out, v)
		return out
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(make([]complex128, n/2+1), v)
	for k := harmonics + 1; k < len(coeff); k++ {
		coeff[k] = 0
	}
	fft.Sequence(out, coeff)

	// Sequence does not normalise.
	scale := 1 / float64(n)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// Downsample keeps count points at a uniform index stride. A count at or
// above the contour length returns a copy.
func Downsample(c track.Contour, count int) track.Contour {
	n := len(c)
	if count >= n {
		return c.Clone()
	}
	out := make(track.Contour, count)
	for i := range out {
		out[i] = c[i*n/count]
	}
	return out
}

// Smooth low-passes each axis of c and then decimates it to count points.
func Smooth(c track.Contour, harmonics, count int) (track.Contour, error) {
	if len(c) < track.MinInnerPoints {
		return nil, fmt.Errorf("filter: contour has %d points, need at least %d", len(c), track.MinInnerPoints)
	}
	if count < track.MinInnerPoints {
		return nil, fmt.Errorf("filter: sample count %d below %d", count, track.MinInnerPoints)
	}
	if harmonics < 1 {
		return nil, fmt.Errorf("filter: harmonics must be at least 1, got %d", harmonics)
	}

	xs, ys := numeric.Split(c)
	smoothed := track.Contour(numeric.Join(LowPass(xs, harmonics), LowPass(ys, harmonics)))
	return Downsample(smoothed, count), nil
}
