package main

import (
	"flag"
	"image/png"
	"log"
	"os"

	"track-definition/internal/raster"
)

func main() {
	var out string
	var width, height int
	var radiusX, radiusY float64
	var trackWidth float64

	flag.StringVar(&out, "out", "assets/track.png", "output png path")
	flag.IntVar(&width, "width", 800, "image width in pixels")
	flag.IntVar(&height, "height", 600, "image height in pixels")
	flag.Float64Var(&radiusX, "rx", 300, "outer edge semi-axis along x")
	flag.Float64Var(&radiusY, "ry", 200, "outer edge semi-axis along y")
	flag.Float64Var(&trackWidth, "track-width", 60, "track width in pixels, measured along the semi-axes")
	flag.Parse()

	if trackWidth <= 0 || trackWidth >= radiusX || trackWidth >= radiusY {
		log.Fatalf("track-width must be positive and smaller than both radii")
	}

	mask := ellipseRing(width, height, radiusX, radiusY, trackWidth)

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("create %s: %v", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, mask.Image()); err != nil {
		log.Fatalf("encode %s: %v", out, err)
	}
	log.Printf("wrote %s (%dx%d, %d track pixels)", out, width, height, mask.TrackPixels())
}

// ellipseRing marks the pixels between two concentric ellipses as track:
// white tarmac on a black background.
func ellipseRing(width, height int, radiusX, radiusY, trackWidth float64) *raster.Mask {
	mask := raster.NewMask(width, height)
	centerX, centerY := float64(width)/2, float64(height)/2
	innerX, innerY := radiusX-trackWidth, radiusY-trackWidth

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) - centerX
			dy := float64(y) - centerY

			// Ellipse equation: (x/a)^2 + (y/b)^2 = 1
			outer := (dx*dx)/(radiusX*radiusX) + (dy*dy)/(radiusY*radiusY)
			inner := (dx*dx)/(innerX*innerX) + (dy*dy)/(innerY*innerY)
			if outer <= 1.0 && inner > 1.0 {
				mask.Set(x, y, raster.SurfaceTrack)
			}
		}
	}
	return mask
}
