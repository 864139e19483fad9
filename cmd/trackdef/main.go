package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"track-definition/internal/config"
	"track-definition/internal/export"
	"track-definition/internal/pipeline"
	"track-definition/internal/store"
	"track-definition/internal/track"
	"track-definition/internal/trackplot"
)

func main() {
	var maskPath string
	var configPath string
	var name string
	var jsonPath string
	var geojsonPath string
	var plotDir string
	var dbPath string
	var workers int
	var samples int

	flag.StringVar(&maskPath, "mask", "", "path to the binary track mask (png/jpeg)")
	flag.StringVar(&configPath, "config", "", "path to a JSON config file (defaults used when empty)")
	flag.StringVar(&name, "name", "", "track name (defaults to the mask file name)")
	flag.StringVar(&jsonPath, "json", "", "write per-sample JSON to this path")
	flag.StringVar(&geojsonPath, "geojson", "", "write a GeoJSON feature collection to this path")
	flag.StringVar(&plotDir, "plot-dir", "", "write outline/width/curvature plots into this directory")
	flag.StringVar(&dbPath, "db", "", "save the definition to this sqlite db")
	flag.IntVar(&workers, "workers", -1, "correspondence workers (0 = one per CPU, -1 = from config)")
	flag.IntVar(&samples, "samples", 0, "points per contour after decimation (0 = from config)")
	flag.Parse()

	if maskPath == "" {
		log.Fatalf("-mask must be provided")
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(maskPath), filepath.Ext(maskPath))
	}

	cfg := config.DefaultTrackConfig()
	if configPath != "" {
		var err error
		cfg, err = config.LoadTrackConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if workers >= 0 {
		cfg.SetWorkers(workers)
	}
	if samples > 0 {
		cfg.SetSampleCount(samples)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pipeline.Run(ctx, maskPath, cfg)
	if err != nil {
		log.Fatalf("define track: %v", err)
	}
	g := res.Geometry

	if jsonPath != "" {
		if err := writeFile(jsonPath, func(f *os.File) error { return export.WriteJSON(f, name, g) }); err != nil {
			log.Fatalf("write json: %v", err)
		}
	}
	if geojsonPath != "" {
		if err := writeFile(geojsonPath, func(f *os.File) error { return export.WriteGeoJSON(f, name, g) }); err != nil {
			log.Fatalf("write geojson: %v", err)
		}
	}
	if plotDir != "" {
		if err := os.MkdirAll(plotDir, 0o755); err != nil {
			log.Fatalf("create plot dir: %v", err)
		}
		if err := trackplot.SaveAll(g, plotDir); err != nil {
			log.Fatalf("save plots: %v", err)
		}
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer st.Close()
		id, err := st.Save(ctx, name, g)
		if err != nil {
			log.Fatalf("save track: %v", err)
		}
		fmt.Printf("saved track %s\n", id)
	}

	out, err := json.MarshalIndent(track.Summarize(g), "", "  ")
	if err != nil {
		log.Fatalf("encode summary: %v", err)
	}
	fmt.Println(string(out))
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
