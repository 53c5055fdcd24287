package pixelformat

// RowConverter converts pixelCount pixels starting at src into dst,
// both densely packed (no stride). It is returned by NewRowConverter
// so that the source and target Descriptions are looked up exactly
// once per conversion run rather than once per pixel.
type RowConverter func(src, dst []byte, pixelCount int)

// NewRowConverter resolves sourceFormat and targetFormat via
// OnPixelFormat once — spec.md §4.7's "double OnPixelFormat dispatch,
// returned as a plain function pointer" — and returns a RowConverter
// closed over both Descriptions, so the inner pixel loop never repeats
// the format lookup.
func NewRowConverter(sourceFormat, targetFormat PixelFormat) (RowConverter, error) {
	srcDesc, err := OnPixelFormat(sourceFormat)
	if err != nil {
		return nil, err
	}
	targetDesc, err := OnPixelFormat(targetFormat)
	if err != nil {
		return nil, err
	}

	return func(src, dst []byte, pixelCount int) {
		srcStep := srcDesc.StorageBytes
		dstStep := targetDesc.StorageBytes
		srcOffset, dstOffset := 0, 0
		for i := 0; i < pixelCount; i++ {
			ConvertPixel(srcDesc, targetDesc,
				src[srcOffset:srcOffset+srcStep],
				dst[dstOffset:dstOffset+dstStep])
			srcOffset += srcStep
			dstOffset += dstStep
		}
	}, nil
}

// ConvertRow converts pixelCount consecutive pixels from src to dst
// using source and target format tags looked up fresh for this one
// call. Callers converting many rows between the same two formats
// should use NewRowConverter once and reuse the returned RowConverter
// instead.
func ConvertRow(sourceFormat, targetFormat PixelFormat, src, dst []byte, pixelCount int) error {
	convert, err := NewRowConverter(sourceFormat, targetFormat)
	if err != nil {
		return err
	}
	convert(src, dst, pixelCount)
	return nil
}

// ConvertBitmap converts every pixel of source into target. Both
// bitmaps must describe the same Width and Height; strides may differ
// from (and exceed) Width*bytesPerPixel, and each row is converted
// independently via a RowConverter resolved once up front.
func ConvertBitmap(source, target BitmapMemory) error {
	if source.Width != target.Width || source.Height != target.Height {
		return ErrMismatchedDimensions
	}
	return convertBitmapRegion(source, target, Rectangle{0, 0, source.Width, source.Height})
}

// ConvertBitmapRegion converts only the pixels inside region, which is
// expressed in the shared coordinate space of both bitmaps (so source
// and target need not share Width/Height, only a common sub-rectangle
// — supplementing spec.md with the sub-rectangle conversion every call
// site in original_source's Rectangle.h-based API needs but spec.md
// itself never names).
func ConvertBitmapRegion(source, target BitmapMemory, region Rectangle) error {
	if region.Left < 0 || region.Top < 0 ||
		region.Left+region.Width > source.Width || region.Top+region.Height > source.Height ||
		region.Left+region.Width > target.Width || region.Top+region.Height > target.Height {
		return ErrMismatchedDimensions
	}
	return convertBitmapRegion(source, target, region)
}

func convertBitmapRegion(source, target BitmapMemory, region Rectangle) error {
	convert, err := NewRowConverter(source.PixelFormat, target.PixelFormat)
	if err != nil {
		return err
	}

	srcDesc, err := OnPixelFormat(source.PixelFormat)
	if err != nil {
		return err
	}
	targetDesc, err := OnPixelFormat(target.PixelFormat)
	if err != nil {
		return err
	}

	srcBytesPerPixel := srcDesc.StorageBytes
	targetBytesPerPixel := targetDesc.StorageBytes
	srcRowBytes := region.Width * srcBytesPerPixel
	targetRowBytes := region.Width * targetBytesPerPixel

	for row := 0; row < region.Height; row++ {
		srcRowStart := (region.Top+row)*source.Stride + region.Left*srcBytesPerPixel
		targetRowStart := (region.Top+row)*target.Stride + region.Left*targetBytesPerPixel
		convert(
			source.Pixels[srcRowStart:srcRowStart+srcRowBytes],
			target.Pixels[targetRowStart:targetRowStart+targetRowBytes],
			region.Width,
		)
	}
	return nil
}
