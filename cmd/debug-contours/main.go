package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"log"

	"gocv.io/x/gocv"

	"track-definition/internal/common"
	"track-definition/internal/config"
	"track-definition/internal/pipeline"
)

var (
	colorRaw        = color.RGBA{128, 128, 128, 255}
	colorInner      = color.RGBA{255, 128, 0, 255}
	colorOuter      = color.RGBA{0, 200, 255, 255}
	colorChord      = color.RGBA{0, 200, 0, 255}
	colorCentreline = color.RGBA{0, 0, 255, 255}
)

func main() {
	var maskPath string
	var configPath string
	var out string
	var stride int

	flag.StringVar(&maskPath, "mask", "assets/track.png", "path to the binary track mask")
	flag.StringVar(&configPath, "config", "", "path to a JSON config file (defaults used when empty)")
	flag.StringVar(&out, "out", "debug_contours.png", "output image path")
	flag.IntVar(&stride, "stride", 5, "draw every n-th chord")
	flag.Parse()

	cfg := config.DefaultTrackConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadTrackConfig(configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	res, err := pipeline.Run(context.Background(), maskPath, cfg)
	if err != nil {
		log.Fatalf("define track: %v", err)
	}

	img := gocv.IMRead(maskPath, gocv.IMReadColor)
	if img.Empty() {
		log.Fatalf("read %s", maskPath)
	}
	defer img.Close()

	// Geometry is in metres; the overlay is in pixels.
	toPixel := func(p common.Vec2) image.Point {
		s := 1 / res.MetresPerPixel
		return image.Pt(int(p.X*s+0.5), int(p.Y*s+0.5))
	}

	g := res.Geometry
	polyline(&img, res.RawOuter, func(p common.Vec2) image.Point { return image.Pt(int(p.X), int(p.Y)) }, colorRaw)
	polyline(&img, res.RawInner, func(p common.Vec2) image.Point { return image.Pt(int(p.X), int(p.Y)) }, colorRaw)
	polyline(&img, g.Outer, toPixel, colorOuter)
	polyline(&img, g.Inner, toPixel, colorInner)

	if stride < 1 {
		stride = 1
	}
	for i := 0; i < g.Len(); i += stride {
		gocv.Line(&img, toPixel(g.Inner[i]), toPixel(g.Opposing[i]), colorChord, 1)
	}
	polyline(&img, g.Centreline, toPixel, colorCentreline)

	if ok := gocv.IMWrite(out, img); !ok {
		log.Fatalf("write %s", out)
	}
	log.Printf("wrote %s (%d samples)", out, g.Len())
}

func polyline(img *gocv.Mat, pts []common.Vec2, toPixel func(common.Vec2) image.Point, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	line := make([]image.Point, len(pts))
	for i, p := range pts {
		line[i] = toPixel(p)
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{line})
	defer pv.Close()
	gocv.Polylines(img, pv, true, c, 2)
}
