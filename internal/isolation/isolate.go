package isolation

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/xerrors"
)

// Stats summarizes one isolation pass.
type Stats struct {
	MatchedPixels int64   `json:"matchedPixels"`
	TotalPixels   int64   `json:"totalPixels"`
	MatchedRatio  float64 `json:"matchedRatio"`
}

// Isolator produces a derived image in which pixels similar to a
// reference color keep their original value and all other pixels are
// reduced to their grayscale mean. The source image is never mutated.
type Isolator struct {
	tolerance float64
}

func NewIsolator(tolerance float64) *Isolator {
	return &Isolator{
		tolerance,
	}
}

func (i *Isolator) Tolerance() float64 {
	return i.tolerance
}

// Apply allocates and returns the isolated image. The output has the
// same bounds as the source; matching pixels are copied byte for byte,
// alpha included, and non-matching pixels carry their grayscale mean
// with the original alpha.
func (i *Isolator) Apply(src image.Image, reference Color) (*image.NRGBA, error) {
	out, _, err := i.ApplyWithStats(src, reference)
	return out, err
}

// ApplyWithStats is Apply plus the matched-pixel counts of the pass.
func (i *Isolator) ApplyWithStats(src image.Image, reference Color) (*image.NRGBA, Stats, error) {
	if src == nil {
		return nil, Stats{}, ErrEmptyImage
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, Stats{}, ErrEmptyImage
	}

	out := image.NewNRGBA(bounds)
	stats := i.run(out, src, reference)
	return out, stats, nil
}

// ApplyInto writes the isolated image into dst, which must have exactly
// the source bounds. Validation happens before any pixel is written.
func (i *Isolator) ApplyInto(dst *image.NRGBA, src image.Image, reference Color) error {
	if src == nil {
		return ErrEmptyImage
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return ErrEmptyImage
	}
	if dst == nil || !dst.Bounds().Eq(bounds) {
		return xerrors.Errorf("destination bounds must equal source bounds %v: %w", bounds, ErrDimensionMismatch)
	}

	i.run(dst, src, reference)
	return nil
}

func (i *Isolator) run(out *image.NRGBA, src image.Image, reference Color) Stats {
	bounds := src.Bounds()

	var matchedCount int64
	totalCount := int64((bounds.Max.Y - bounds.Min.Y) * (bounds.Max.X - bounds.Min.X))

	srcNRGBA, srcIsNRGBA := src.(*image.NRGBA)

	// Use GOMAXPROCS instead of runtime.NumCPU() to consider cgroup.
	// https://tip.golang.org/doc/go1.25#container-aware-gomaxprocs
	numWorkers := runtime.GOMAXPROCS(0)

	height := bounds.Max.Y - bounds.Min.Y
	rowsPerWorker := height / numWorkers

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	if srcIsNRGBA && out.Bounds().Eq(bounds) {
		for w := 0; w < numWorkers; w++ {
			startY := bounds.Min.Y + w*rowsPerWorker
			endY := startY + rowsPerWorker
			if w == numWorkers-1 {
				endY = bounds.Max.Y
			}

			go func(startY int, endY int) {
				defer wg.Done()
				i.processNRGBA(srcNRGBA, out, reference, bounds.Min.X, bounds.Max.X, startY, endY, &matchedCount)
			}(startY, endY)
		}
	} else {
		for w := 0; w < numWorkers; w++ {
			startY := bounds.Min.Y + w*rowsPerWorker
			endY := startY + rowsPerWorker
			if w == numWorkers-1 {
				endY = bounds.Max.Y
			}

			go func(startY int, endY int) {
				defer wg.Done()
				i.processGeneric(src, out, reference, bounds.Min.X, bounds.Max.X, startY, endY, &matchedCount)
			}(startY, endY)
		}
	}

	wg.Wait()

	matchedRatio := 0.0
	if totalCount > 0 {
		matchedRatio = float64(matchedCount) / float64(totalCount)
	}

	return Stats{
		MatchedPixels: matchedCount,
		TotalPixels:   totalCount,
		MatchedRatio:  matchedRatio,
	}
}

func (i *Isolator) processNRGBA(src *image.NRGBA, out *image.NRGBA, reference Color, minX int, maxX int, startY int, endY int, matchedCount *int64) {
	var localMatched int64

	for y := startY; y < endY; y++ {
		srcRowStart := src.PixOffset(minX, y)
		outRowStart := out.PixOffset(minX, y)

		for x := 0; x < (maxX - minX); x++ {
			srcOffset := srcRowStart + x*4
			outOffset := outRowStart + x*4

			r := src.Pix[srcOffset]
			g := src.Pix[srcOffset+1]
			b := src.Pix[srcOffset+2]
			a := src.Pix[srcOffset+3]

			c := Color{R: r, G: g, B: b, A: a}
			if Similar(c, reference, i.tolerance) {
				out.Pix[outOffset] = r
				out.Pix[outOffset+1] = g
				out.Pix[outOffset+2] = b
				out.Pix[outOffset+3] = a

				localMatched++
			} else {
				gray := c.Grayscale()

				out.Pix[outOffset] = gray.R
				out.Pix[outOffset+1] = gray.G
				out.Pix[outOffset+2] = gray.B
				out.Pix[outOffset+3] = gray.A
			}
		}
	}

	atomic.AddInt64(matchedCount, localMatched)
}

func (i *Isolator) processGeneric(src image.Image, out *image.NRGBA, reference Color, minX int, maxX int, startY int, endY int, matchedCount *int64) {
	var localMatched int64

	for y := startY; y < endY; y++ {
		for x := minX; x < maxX; x++ {
			c := ColorOf(src.At(x, y))

			if Similar(c, reference, i.tolerance) {
				out.SetNRGBA(x, y, c.NRGBA())
				localMatched++
			} else {
				out.SetNRGBA(x, y, c.Grayscale().NRGBA())
			}
		}
	}

	atomic.AddInt64(matchedCount, localMatched)
}
