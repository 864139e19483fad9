// Package raster holds the thresholded segmentation mask a track is traced from.
package raster

import (
	"image"
	"image/color"
)

// Surface classifies a mask pixel.
type Surface uint8

const (
	SurfaceBackground Surface = iota
	SurfaceTrack
)

// Pixel values stored in Mask.Pix.
const (
	BackgroundValue uint8 = 0
	TrackValue      uint8 = 255
)

// Mask is a binary raster: track pixels are TrackValue, everything else is
// BackgroundValue. Pix is row-major so it can be handed to OpenCV unchanged.
type Mask struct {
	Width, Height int
	Pix           []uint8
}

// NewMask creates an all-background mask of the specified size.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Get returns the surface at (x, y). Returns background if out of bounds.
func (m *Mask) Get(x, y int) Surface {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return SurfaceBackground
	}
	if m.Pix[y*m.Width+x] == TrackValue {
		return SurfaceTrack
	}
	return SurfaceBackground
}

// Set marks (x, y) with the given surface. Out of bounds writes are ignored.
func (m *Mask) Set(x, y int, s Surface) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	v := BackgroundValue
	if s == SurfaceTrack {
		v = TrackValue
	}
	m.Pix[y*m.Width+x] = v
}

// TrackPixels counts the track pixels.
func (m *Mask) TrackPixels() int {
	n := 0
	for _, v := range m.Pix {
		if v == TrackValue {
			n++
		}
	}
	return n
}

// Image returns the mask as a grayscale image sharing no memory with m.
func (m *Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	copy(img.Pix, m.Pix)
	return img
}

// Classify maps a pixel colour to a surface by thresholding its luminance.
// Anything at or above threshold is track.
func Classify(c color.Color, threshold uint8) Surface {
	g := color.GrayModel.Convert(c).(color.Gray)
	if g.Y >= threshold {
		return SurfaceTrack
	}
	return SurfaceBackground
}
