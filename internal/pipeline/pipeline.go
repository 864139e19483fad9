// Package pipeline runs a full track definition: mask, boundary tracing,
// filtering, and the inner/outer correspondence.
package pipeline

import (
	"context"
	"fmt"

	"track-definition/internal/config"
	"track-definition/internal/filter"
	"track-definition/internal/monitoring"
	"track-definition/internal/raster"
	"track-definition/internal/tracer"
	"track-definition/internal/track"
)

// Result carries every intermediate of a run. Raw contours are in pixels;
// Geometry is in metres (pixels scaled by MetresPerPixel).
type Result struct {
	Mask           *raster.Mask
	RawInner       track.Contour
	RawOuter       track.Contour
	MetresPerPixel float64
	Geometry       *track.Geometry
}

// Run loads the mask at maskPath and defines the track it contains.
func Run(ctx context.Context, maskPath string, cfg *config.TrackConfig) (*Result, error) {
	mask, err := raster.LoadMask(maskPath, cfg.GetMaskThreshold())
	if err != nil {
		return nil, err
	}
	monitoring.Logf("pipeline: loaded %s (%dx%d, %d track pixels)", maskPath, mask.Width, mask.Height, mask.TrackPixels())
	return RunMask(ctx, mask, cfg)
}

// RunMask defines the track contained in an in-memory mask.
func RunMask(ctx context.Context, mask *raster.Mask, cfg *config.TrackConfig) (*Result, error) {
	rawInner, rawOuter, err := tracer.Boundaries(mask, cfg.GetCleanupIterations())
	if err != nil {
		return nil, err
	}
	monitoring.Logf("pipeline: traced inner=%d outer=%d boundary points", len(rawInner), len(rawOuter))

	inner, err := prepare("inner", rawInner, cfg)
	if err != nil {
		return nil, err
	}
	outer, err := prepare("outer", rawOuter, cfg)
	if err != nil {
		return nil, err
	}

	geom, err := track.Define(ctx, inner, outer, track.Options{Workers: cfg.GetWorkers()})
	if err != nil {
		return nil, fmt.Errorf("pipeline: define track: %w", err)
	}

	return &Result{
		Mask:           mask,
		RawInner:       rawInner,
		RawOuter:       rawOuter,
		MetresPerPixel: cfg.GetMetresPerPixel(),
		Geometry:       geom,
	}, nil
}

// prepare smooths, orients, and scales one traced boundary.
func prepare(name string, raw track.Contour, cfg *config.TrackConfig) (track.Contour, error) {
	smoothed, err := filter.Smooth(raw, cfg.GetFilterHarmonics(), cfg.GetSampleCount())
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s boundary: %w", name, err)
	}
	return smoothed.EnsureCounterClockwise().Scaled(cfg.GetMetresPerPixel()), nil
}
