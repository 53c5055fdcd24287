package adjust

import "github.com/Cygon/nuclex-pixelstorage-go/pixelformat/internal/bitops"

// signedFullScale returns the full-scale magnitude of a bitCount-wide
// signed channel: 2^(bitCount-1) - 1. The most negative representable
// pattern (-2^(bitCount-1)) has no positive counterpart, so spec.md
// §4.3 clamps it to -signedFullScale, keeping the representation
// symmetric around zero.
func signedFullScale(bitCount int) int64 {
	return (int64(1) << uint(bitCount-1)) - 1
}

// signExtend interprets the low bitCount bits of raw as two's
// complement and sign-extends the result to int64.
func signExtend(raw uint64, bitCount int) int64 {
	shift := uint(64 - bitCount)
	return int64(raw<<shift) >> shift
}

// SignExtend sign-extends the low bitCount bits of raw to int64. It is
// exported so pixelformat's Float<->Int conversion paths can share the
// same two's-complement interpretation of a signed channel's raw bits
// that AdjustSigned uses internally.
func SignExtend(raw uint64, bitCount int) int64 {
	return signExtend(raw, bitCount)
}

// Normalize converts a sign-extended signed channel value to a
// normalized double in [-1, +1] using the same symmetric clamp as
// AdjustSigned. Exported for pixelformat's Int->Float conversion path.
func Normalize(v int64, bitCount int) float64 {
	return normalize(v, bitCount)
}

// Denormalize converts a normalized double in [-1, +1] to a signed
// channel value of bitCount bits, masked to its low bitCount bits as
// two's complement. Exported for pixelformat's Float->Int conversion
// path.
func Denormalize(norm float64, bitCount int) uint64 {
	return uint64(denormalize(norm, bitCount)) & lowBitsMask(bitCount)
}

// normalize converts a sign-extended channel value to a normalized
// double in [-1, +1], clamping the most-negative pattern to -1 exactly.
func normalize(v int64, bitCount int) float64 {
	fullScale := signedFullScale(bitCount)
	if v < -fullScale {
		v = -fullScale
	}
	return float64(v) / float64(fullScale)
}

// denormalize converts a normalized double in [-1, +1] back to a
// signed channel value of bitCount bits, rounding to nearest with ties
// away from zero (spec.md §9's resolution of the "ToNormalizedByte"
// open question) and clamping to the representable range.
func denormalize(norm float64, bitCount int) int64 {
	fullScale := signedFullScale(bitCount)
	scaled := norm * float64(fullScale)
	var rounded int64
	if scaled >= 0 {
		rounded = int64(scaled + 0.5)
	} else {
		rounded = int64(scaled - 0.5)
	}
	if rounded > fullScale {
		rounded = fullScale
	}
	if rounded < -fullScale {
		rounded = -fullScale
	}
	return rounded
}

// AdjustSigned widens or narrows a right-aligned signed color channel
// of fromBits bits (two's complement) to a right-aligned signed
// channel of toBits bits. Signed channels are symmetric around zero
// (spec.md §4.3): rather than a bit-replication trick, which is
// error-prone once the sign bit is involved, this goes through the
// closed-form scalar round trip spec.md §4.3 describes — normalize to
// a double in [-1, +1], then back — which is also how spec.md §8
// verifies the signed behavior (against bits_to_double/double_to_bits).
// The exact signed midpoint 1 << (fromBits-1) is the most negative
// pattern; normalize's symmetric clamp maps it to -1.0, so it always
// becomes -signedFullScale(toBits).
func AdjustSigned[T bitops.Unsigned](value T, fromBits, toBits int) T {
	raw := uint64(value) & lowBitsMask(fromBits)
	norm := normalize(signExtend(raw, fromBits), fromBits)
	outRaw := uint64(denormalize(norm, toBits)) & lowBitsMask(toBits)
	return T(outRaw)
}

func lowBitsMask(bitCount int) uint64 {
	if bitCount >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bitCount)) - 1
}
