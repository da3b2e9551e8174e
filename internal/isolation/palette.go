package isolation

import (
	"image"
	"sort"
)

// PaletteEntry is one quantized color bucket and its share of the image.
type PaletteEntry struct {
	Color      Color   `json:"color"`
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
}

// Palette returns the count most frequent colors of img. Channel values
// are quantized to 16-unit buckets so near-identical shades group
// together. Entries are sorted by descending share, ties broken by hex
// value, so the result is deterministic.
func Palette(img image.Image, count int) ([]PaletteEntry, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}
	if count <= 0 {
		return nil, nil
	}

	buckets := make(map[Color]int64)
	var totalCount int64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := ColorOf(img.At(x, y))

			quantized := Color{
				R: c.R / 16 * 16,
				G: c.G / 16 * 16,
				B: c.B / 16 * 16,
				A: 255,
			}
			buckets[quantized]++
			totalCount++
		}
	}

	entries := make([]PaletteEntry, 0, len(buckets))
	for c, n := range buckets {
		entries = append(entries, PaletteEntry{
			Color:      c,
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(totalCount) * 100,
		})
	}

	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Percentage != entries[b].Percentage {
			return entries[a].Percentage > entries[b].Percentage
		}
		return entries[a].Hex < entries[b].Hex
	})

	if len(entries) > count {
		entries = entries[:count]
	}

	return entries, nil
}
