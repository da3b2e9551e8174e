package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/xerrors"
)

const DefaultJPEGQuality = 90

// Decode parses raw image bytes (png, jpeg or gif) into an NRGBA buffer.
// A failed decode returns an error, never a partially filled buffer.
func Decode(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, xerrors.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(img), nil
}

// Encode serializes img in the named format ("png" or "jpeg").
func Encode(img image.Image, format string) ([]byte, error) {
	switch format {
	case "png":
		return EncodePNG(img)
	case "jpeg", "jpg":
		return EncodeJPEG(img, DefaultJPEGQuality)
	default:
		return nil, xerrors.Errorf("unknown output format: %s", format)
	}
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, xerrors.Errorf("failed to encode png: %w", err)
	}
	return buffer.Bytes(), nil
}

func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, xerrors.Errorf("failed to encode jpeg: %w", err)
	}
	return buffer.Bytes(), nil
}

// Scale resizes img by factor with Lanczos resampling. Factors that are
// non-positive or exactly 1 leave the image untouched.
func Scale(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor <= 0 || factor == 1.0 {
		return img
	}

	width := int(float64(img.Bounds().Dx()) * factor)
	if width < 1 {
		width = 1
	}
	height := int(float64(img.Bounds().Dy()) * factor)
	if height < 1 {
		height = 1
	}

	return imaging.Resize(img, width, height, imaging.Lanczos)
}
