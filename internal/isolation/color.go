package isolation

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/xerrors"
)

// DefaultTolerance is the similarity radius used when the caller does not
// provide one.
const DefaultTolerance = 30.0

// Color is an 8-bit non-premultiplied RGBA value.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// ColorOf converts any color.Color to its 8-bit non-premultiplied form.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Grayscale returns the channel mean of c, truncated toward zero, on all
// three color channels. Alpha is preserved.
func (c Color) Grayscale() Color {
	avg := uint8((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3)
	return Color{R: avg, G: avg, B: avg, A: c.A}
}

// Hex formats c as "#rrggbb". Alpha is not represented.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// ParseHex parses "#rrggbb" or "#rgb", with or without the leading "#".
// The returned color is fully opaque.
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return Color{}, xerrors.Errorf("failed to parse hex color %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	return Color{R: r, G: g, B: b, A: 255}, nil
}

// Distance is the Euclidean distance between a and b over the R, G and B
// channels. Alpha never participates.
func Distance(a Color, b Color) float64 {
	dr := int32(a.R) - int32(b.R)
	dg := int32(a.G) - int32(b.G)
	db := int32(a.B) - int32(b.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}

// Similar reports whether the distance between a and b is strictly below
// tolerance. A distance exactly equal to the tolerance is not similar, so
// a zero tolerance matches nothing, identical colors included.
func Similar(a Color, b Color, tolerance float64) bool {
	return Distance(a, b) < tolerance
}
