// Package adjust implements the BitAdjuster family from spec.md §4.3:
// pure functions that change a color channel's bit depth while
// preserving its normalized intensity as closely as the target depth
// allows.
//
// The original C++ (original_source/Nuclex.Pixels.Native/Source/PixelFormats/
// UnsignedBitAdjust.h) hand-specializes one class template per
// (fromBits, toBits) pair — around two dozen of them — each combining
// a pair of BitShift offsets relative to the channel's position within
// the pixel word, so it can adjust and reposition a channel in a
// single masked load/store without ever materializing the right-aligned
// channel value. That fuses two concerns — bit-depth adjustment and
// repositioning — into one template. This package keeps only the
// bit-depth half of that fusion (AdjustUnsigned/AdjustSigned operate on
// a right-aligned channel value, bit 0 upward) and leaves repositioning
// to the caller (pixelformat.ConvertPixel, which already needs to
// extract and mask each channel to find it in the first place). The
// quantization math is identical; spec.md §9 explicitly endorses a
// single generic restatement of the per-pair specializations, and nothing
// in spec.md requires the extract/adjust/reposition fusion itself.
package adjust

import "github.com/Cygon/nuclex-pixelstorage-go/pixelformat/internal/bitops"

// AdjustUnsigned widens or narrows a right-aligned unsigned color
// channel of fromBits bits to a right-aligned channel of toBits bits,
// via the bit-replication trick spec.md §9 describes as the cleaner
// restatement of the original's per-pair specializations: widen by
// doubling the channel's bit pattern until the replicated width covers
// at least half the target width, then combine the high and low
// halves of that replication; narrow by truncating the excess
// low-order precision bits.
func AdjustUnsigned[T bitops.Unsigned](value T, fromBits, toBits int) T {
	switch {
	case fromBits == toBits:
		return value

	case fromBits > toBits:
		return bitops.BitShift(value, fromBits-toBits)

	default:
		v := value
		width := fromBits
		for 2*width < toBits {
			v = bitops.BitShift(v, -width) | v
			width *= 2
		}
		high := bitops.BitShift(v, -(toBits - width))
		low := bitops.BitShift(v, 2*width-toBits)
		return high | low
	}
}
