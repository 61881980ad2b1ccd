// Package capture loads screen captures and crops them to element regions.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Screenshot is a captured screen image addressed in screen coordinates
// with the origin at the top-left pixel.
type Screenshot struct {
	img image.Image
}

// New wraps a decoded image.
func New(img image.Image) *Screenshot {
	return &Screenshot{img: img}
}

// Width returns the capture width in pixels.
func (s *Screenshot) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the capture height in pixels.
func (s *Screenshot) Height() int {
	return s.img.Bounds().Dy()
}

// Bounds returns the capture extent in screen coordinates.
func (s *Screenshot) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

// Contains reports whether r is non-empty and lies within the capture.
func (s *Screenshot) Contains(r image.Rectangle) bool {
	return !r.Empty() && r.In(s.Bounds())
}

// Crop copies the region r into a new image whose bounds start at the
// origin.
func (s *Screenshot) Crop(r image.Rectangle) (image.Image, error) {
	if !s.Contains(r) {
		return nil, fmt.Errorf("region %v outside capture %v", r, s.Bounds())
	}
	src := r.Add(s.img.Bounds().Min)
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(dst, image.Point{}, s.img, src, draw.Src, nil)
	return dst, nil
}

// Image returns the underlying image.
func (s *Screenshot) Image() image.Image {
	return s.img
}

// WritePNG encodes img as a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path) // #nosec G304 - evidence path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
