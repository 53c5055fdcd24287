package pixelformat

import "errors"

// ErrMismatchedDimensions is returned by ConvertBitmap and
// ConvertBitmapRegion; no function in this package returns
// ErrUnsupportedConversion. ErrUnknownPixelFormat lives in format.go,
// next to the table it guards.
var (
	ErrMismatchedDimensions  = errors.New("pixelformat: source and target bitmap dimensions differ")
	ErrUnsupportedConversion = errors.New("pixelformat: no conversion defined for this format pair")
)
