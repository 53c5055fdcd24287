package pixelformat

import (
	"math"

	"github.com/Cygon/nuclex-pixelstorage-go/pixelformat/internal/adjust"
)

// ConvertPixel converts one pixel from src (described by srcDesc) to
// dst (described by targetDesc). src must hold at least
// srcDesc.StorageBytes bytes and dst at least targetDesc.StorageBytes;
// callers normally obtain both descriptions once via OnPixelFormat and
// reuse them across a whole row or bitmap (see NewRowConverter,
// ConvertRow and ConvertBitmap).
//
// Four sub-strategies are selected by the two formats' DataType, the
// same split spec.md §4.6 describes for the original's compile-time
// dispatch. Go has no per-format monomorphization to do that work at
// build time, so the split happens once per call instead — still a
// single branch, not a per-channel one.
func ConvertPixel(srcDesc, targetDesc Description, src, dst []byte) {
	if srcDesc == targetDesc {
		copy(dst, src[:targetDesc.StorageBytes])
		return
	}

	srcIsFloat := srcDesc.DataType == FloatingPoint
	dstIsFloat := targetDesc.DataType == FloatingPoint

	switch {
	case !srcIsFloat && !dstIsFloat:
		convertIntToInt(srcDesc, targetDesc, src, dst)
	case !srcIsFloat && dstIsFloat:
		convertIntToFloat(srcDesc, targetDesc, src, dst)
	case srcIsFloat && !dstIsFloat:
		convertFloatToInt(srcDesc, targetDesc, src, dst)
	default:
		convertFloatToFloat(srcDesc, targetDesc, src, dst)
	}
}

func adjustChannel(dataType DataType, raw uint64, fromBits, toBits int) uint64 {
	if dataType == SignedInteger {
		return adjust.AdjustSigned(raw, fromBits, toBits)
	}
	return adjust.AdjustUnsigned(raw, fromBits, toBits)
}

// integerChannelDefault is the full-scale (alpha) or zero (everything
// else) raw channel value used when the target has a channel the
// source lacks, mirroring spec.md §4.6's alpha-on-widening rule for
// the integer case.
func integerChannelDefault(channelIndex int, ch Channel) uint64 {
	if channelIndex == ChannelAlpha {
		return channelMask(ch.BitCount)
	}
	return 0
}

func convertIntToInt(srcDesc, targetDesc Description, src, dst []byte) {
	srcWord := loadWord(src, srcDesc.StorageBytes)
	if srcDesc.EndianFlip == FlipWholePixel {
		srcWord = flipWord(srcWord, srcDesc.StorageBytes*8)
	}

	var acc uint64
	for i := 0; i < ChannelCount; i++ {
		tch := targetDesc.Channels[i]
		if !tch.Present {
			continue
		}
		sch := srcDesc.Channels[i]

		var raw uint64
		if sch.Present {
			raw = extractChannel(srcWord, sch)
			if srcDesc.EndianFlip == FlipEachChannel {
				raw = flipWord(raw, nativeUnitBits(sch.BitCount)) & channelMask(sch.BitCount)
			}
			raw = adjustChannel(srcDesc.DataType, raw, sch.BitCount, tch.BitCount)
		} else {
			raw = integerChannelDefault(i, tch)
		}

		if targetDesc.EndianFlip == FlipEachChannel {
			raw = flipWord(raw, nativeUnitBits(tch.BitCount)) & channelMask(tch.BitCount)
		}
		acc = insertChannel(acc, tch, raw)
	}

	if targetDesc.EndianFlip == FlipWholePixel {
		acc = flipWord(acc, targetDesc.StorageBytes*8)
	}
	storeWord(dst, targetDesc.StorageBytes, acc)
}

func convertIntToFloat(srcDesc, targetDesc Description, src, dst []byte) {
	srcWord := loadWord(src, srcDesc.StorageBytes)
	if srcDesc.EndianFlip == FlipWholePixel {
		srcWord = flipWord(srcWord, srcDesc.StorageBytes*8)
	}

	for i := 0; i < ChannelCount; i++ {
		tch := targetDesc.Channels[i]
		if !tch.Present {
			continue
		}
		sch := srcDesc.Channels[i]

		var norm float64
		if sch.Present {
			raw := extractChannel(srcWord, sch)
			if srcDesc.EndianFlip == FlipEachChannel {
				raw = flipWord(raw, nativeUnitBits(sch.BitCount)) & channelMask(sch.BitCount)
			}
			if srcDesc.DataType == SignedInteger {
				norm = adjust.Normalize(adjust.SignExtend(raw, sch.BitCount), sch.BitCount)
			} else {
				norm = float64(raw) / float64(channelMask(sch.BitCount))
			}
		} else {
			norm = floatChannelDefault(i)
		}

		writeFloatChannel(dst, tch, targetDesc.EndianFlip, norm)
	}
}

func convertFloatToInt(srcDesc, targetDesc Description, src, dst []byte) {
	var acc uint64
	for i := 0; i < ChannelCount; i++ {
		tch := targetDesc.Channels[i]
		if !tch.Present {
			continue
		}
		sch := srcDesc.Channels[i]

		var norm float64
		if sch.Present {
			norm = readFloatChannel(src, sch, srcDesc.EndianFlip)
		} else {
			norm = floatChannelDefault(i)
		}

		var raw uint64
		if targetDesc.DataType == SignedInteger {
			if norm < -1 {
				norm = -1
			} else if norm > 1 {
				norm = 1
			}
			raw = adjust.Denormalize(norm, tch.BitCount)
		} else {
			if norm < 0 {
				norm = 0
			} else if norm > 1 {
				norm = 1
			}
			fullScale := float64(channelMask(tch.BitCount))
			rounded := math.RoundToEven(norm * fullScale)
			if rounded > fullScale {
				rounded = fullScale
			}
			raw = uint64(rounded)
		}

		if targetDesc.EndianFlip == FlipEachChannel {
			raw = flipWord(raw, nativeUnitBits(tch.BitCount)) & channelMask(tch.BitCount)
		}
		acc = insertChannel(acc, tch, raw)
	}

	if targetDesc.EndianFlip == FlipWholePixel {
		acc = flipWord(acc, targetDesc.StorageBytes*8)
	}
	storeWord(dst, targetDesc.StorageBytes, acc)
}

func convertFloatToFloat(srcDesc, targetDesc Description, src, dst []byte) {
	for i := 0; i < ChannelCount; i++ {
		tch := targetDesc.Channels[i]
		if !tch.Present {
			continue
		}
		sch := srcDesc.Channels[i]

		var norm float64
		if sch.Present {
			norm = readFloatChannel(src, sch, srcDesc.EndianFlip)
		} else {
			norm = floatChannelDefault(i)
		}
		writeFloatChannel(dst, tch, targetDesc.EndianFlip, norm)
	}
}

