package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadMask decodes an image file and thresholds it into a Mask.
func LoadMask(path string, threshold uint8) (*Mask, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mask: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode mask %s: %w", path, err)
	}

	return FromImage(img, threshold), nil
}

// FromImage thresholds img into a Mask. The mask origin is the image's
// minimum bounds point.
func FromImage(img image.Image, threshold uint8) *Mask {
	bounds := img.Bounds()
	mask := NewMask(bounds.Dx(), bounds.Dy())

	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			mask.Set(x, y, Classify(c, threshold))
		}
	}
	return mask
}
