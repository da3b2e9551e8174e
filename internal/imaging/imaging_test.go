package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Run("RoundTripPNG", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
		src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 10, B: 10, A: 137})

		data, err := EncodePNG(src)
		if err != nil {
			t.Fatalf("EncodePNG returned error: %v", err)
		}

		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode returned error: %v", err)
		}

		if !decoded.Bounds().Eq(src.Bounds()) {
			t.Errorf("Expected bounds %v, got %v", src.Bounds(), decoded.Bounds())
		}
		if got := decoded.NRGBAAt(1, 1); got != (color.NRGBA{R: 200, G: 10, B: 10, A: 137}) {
			t.Errorf("Expected pixel to survive the round trip, got %v", got)
		}
	})

	t.Run("NormalizesToNRGBA", func(t *testing.T) {
		rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
		rgba.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

		data, err := EncodePNG(rgba)
		if err != nil {
			t.Fatalf("EncodePNG returned error: %v", err)
		}

		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode returned error: %v", err)
		}

		if got := decoded.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
			t.Errorf("Expected %v, got %v", color.NRGBA{R: 10, G: 20, B: 30, A: 255}, got)
		}
	})

	t.Run("InvalidData", func(t *testing.T) {
		if _, err := Decode([]byte("not an image")); err == nil {
			t.Errorf("Expected an error for undecodable bytes")
		}
	})
}

func TestEncode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	t.Run("JPEGAlias", func(t *testing.T) {
		if _, err := Encode(img, "jpg"); err != nil {
			t.Errorf("Expected jpg to be accepted, got %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := Encode(img, "webp"); err == nil {
			t.Errorf("Expected an error for an unknown format")
		}
	})
}

func TestScale(t *testing.T) {
	t.Run("Half", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 100, 60))

		scaled := Scale(img, 0.5)
		if scaled.Bounds().Dx() != 50 || scaled.Bounds().Dy() != 30 {
			t.Errorf("Expected 50x30, got %dx%d", scaled.Bounds().Dx(), scaled.Bounds().Dy())
		}
	})

	t.Run("UnitFactorUntouched", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

		if Scale(img, 1.0) != img {
			t.Errorf("Expected a unit factor to return the image unchanged")
		}
	})

	t.Run("NonPositiveFactorUntouched", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

		if Scale(img, -2) != img {
			t.Errorf("Expected a non-positive factor to return the image unchanged")
		}
	})

	t.Run("ClampsToOnePixel", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

		scaled := Scale(img, 0.01)
		if scaled.Bounds().Dx() != 1 || scaled.Bounds().Dy() != 1 {
			t.Errorf("Expected 1x1, got %dx%d", scaled.Bounds().Dx(), scaled.Bounds().Dy())
		}
	})
}
