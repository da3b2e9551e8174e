package isolation

import "errors"

var (
	// ErrOutOfBounds is returned when a sample coordinate lies outside
	// the image extent.
	ErrOutOfBounds = errors.New("isolation: coordinate out of bounds")

	// ErrEmptyImage is returned when an operation receives a nil image
	// or an image with zero width or height.
	ErrEmptyImage = errors.New("isolation: empty image")

	// ErrDimensionMismatch is returned when a destination buffer does
	// not have the same dimensions as the source.
	ErrDimensionMismatch = errors.New("isolation: dimension mismatch")

	// ErrNoReference is returned by callers that need a reference color
	// before one has been sampled or selected.
	ErrNoReference = errors.New("isolation: no reference color")
)
