package isolation

import (
	"image"

	"golang.org/x/xerrors"
)

// SampleAt reads the color of a single pixel. The coordinate is
// interpreted in the image's own coordinate space, so for decoded images
// the valid range is [0, width) x [0, height).
func SampleAt(img image.Image, x int, y int) (Color, error) {
	if img == nil {
		return Color{}, ErrEmptyImage
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return Color{}, ErrEmptyImage
	}
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return Color{}, xerrors.Errorf("coordinate (%d, %d) outside %v: %w", x, y, bounds, ErrOutOfBounds)
	}
	return ColorOf(img.At(x, y)), nil
}
