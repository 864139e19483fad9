package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/trackdef.defaults.json"

// Fallbacks used by the Get* accessors when a field is unset.
const (
	defaultMaskThreshold     = 127
	defaultCleanupIterations = 1
	defaultFilterHarmonics   = 48
	defaultSampleCount       = 360
	defaultMetresPerPixel    = 1.0
)

// TrackConfig holds the tunables of a track definition run. Fields are
// pointers so a partial JSON file only overrides what it names.
type TrackConfig struct {
	// Segmentation
	MaskThreshold     *int `json:"mask_threshold,omitempty"`     // 0-255 luminance cut-off
	CleanupIterations *int `json:"cleanup_iterations,omitempty"` // morphological close/open passes

	// Filtering
	FilterHarmonics *int `json:"filter_harmonics,omitempty"` // Fourier harmonics kept by the low-pass
	SampleCount     *int `json:"sample_count,omitempty"`     // points per contour after decimation

	// Correspondence
	Workers *int `json:"workers,omitempty"` // 0 = one per CPU

	// Output
	MetresPerPixel *float64 `json:"metres_per_pixel,omitempty"`
}

func ptrInt(v int) *int             { return &v }
func ptrFloat64(v float64) *float64 { return &v }

// DefaultTrackConfig returns a config with every field set to its default.
func DefaultTrackConfig() *TrackConfig {
	return &TrackConfig{
		MaskThreshold:     ptrInt(defaultMaskThreshold),
		CleanupIterations: ptrInt(defaultCleanupIterations),
		FilterHarmonics:   ptrInt(defaultFilterHarmonics),
		SampleCount:       ptrInt(defaultSampleCount),
		Workers:           ptrInt(0),
		MetresPerPixel:    ptrFloat64(defaultMetresPerPixel),
	}
}

// LoadTrackConfig loads a TrackConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
// Fields omitted from the file fall back to the defaults.
func LoadTrackConfig(path string) (*TrackConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TrackConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are in range.
func (c *TrackConfig) Validate() error {
	if c.MaskThreshold != nil && (*c.MaskThreshold < 0 || *c.MaskThreshold > 255) {
		return fmt.Errorf("mask_threshold must be between 0 and 255, got %d", *c.MaskThreshold)
	}
	if c.CleanupIterations != nil && *c.CleanupIterations < 0 {
		return fmt.Errorf("cleanup_iterations must be non-negative, got %d", *c.CleanupIterations)
	}
	if c.FilterHarmonics != nil && *c.FilterHarmonics < 1 {
		return fmt.Errorf("filter_harmonics must be at least 1, got %d", *c.FilterHarmonics)
	}
	if c.SampleCount != nil && *c.SampleCount < 3 {
		return fmt.Errorf("sample_count must be at least 3, got %d", *c.SampleCount)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.MetresPerPixel != nil && !(*c.MetresPerPixel > 0) {
		return fmt.Errorf("metres_per_pixel must be positive, got %f", *c.MetresPerPixel)
	}
	return nil
}

// GetMaskThreshold returns the mask threshold or its default.
func (c *TrackConfig) GetMaskThreshold() uint8 {
	if c.MaskThreshold == nil {
		return defaultMaskThreshold
	}
	return uint8(*c.MaskThreshold)
}

// GetCleanupIterations returns the morphology pass count or its default.
func (c *TrackConfig) GetCleanupIterations() int {
	if c.CleanupIterations == nil {
		return defaultCleanupIterations
	}
	return *c.CleanupIterations
}

// GetFilterHarmonics returns the low-pass harmonic count or its default.
func (c *TrackConfig) GetFilterHarmonics() int {
	if c.FilterHarmonics == nil {
		return defaultFilterHarmonics
	}
	return *c.FilterHarmonics
}

// GetSampleCount returns the decimated contour length or its default.
func (c *TrackConfig) GetSampleCount() int {
	if c.SampleCount == nil {
		return defaultSampleCount
	}
	return *c.SampleCount
}

// GetWorkers returns the worker count, resolving 0 to the number of CPUs.
func (c *TrackConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers == 0 {
		return runtime.NumCPU()
	}
	return *c.Workers
}

// GetMetresPerPixel returns the raster scale or its default.
func (c *TrackConfig) GetMetresPerPixel() float64 {
	if c.MetresPerPixel == nil {
		return defaultMetresPerPixel
	}
	return *c.MetresPerPixel
}

// SetWorkers overrides the worker count, typically from a CLI flag.
func (c *TrackConfig) SetWorkers(n int) { c.Workers = ptrInt(n) }

// SetSampleCount overrides the decimated contour length.
func (c *TrackConfig) SetSampleCount(n int) { c.SampleCount = ptrInt(n) }
