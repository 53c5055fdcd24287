package pixelformat

import (
	"math"

	"github.com/Cygon/nuclex-pixelstorage-go/half"
)

// readFloatChannel decodes ch's bytes out of data as a float64. Float
// channels are always byte-aligned (invariant c: bitCount is 16, 32 or
// 64), so unlike integer channels they never share bytes with a
// neighbor — each is read independently rather than through a shared
// pixel-word accumulator.
func readFloatChannel(data []byte, ch Channel, flip EndianFlipMode) float64 {
	byteOffset := ch.LowestBitIndex / 8
	storageBytes := ch.BitCount / 8
	raw := loadWord(data[byteOffset:byteOffset+storageBytes], storageBytes)
	if flip != FlipNone {
		raw = flipWord(raw, ch.BitCount)
	}
	switch ch.BitCount {
	case 16:
		return half.FromBits(uint16(raw)).Float64()
	case 32:
		return float64(math.Float32frombits(uint32(raw)))
	default:
		return math.Float64frombits(raw)
	}
}

// writeFloatChannel is readFloatChannel's inverse.
func writeFloatChannel(data []byte, ch Channel, flip EndianFlipMode, value float64) {
	var raw uint64
	switch ch.BitCount {
	case 16:
		raw = uint64(half.FromFloat64(value).Bits())
	case 32:
		raw = uint64(math.Float32bits(float32(value)))
	default:
		raw = math.Float64bits(value)
	}
	if flip != FlipNone {
		raw = flipWord(raw, ch.BitCount)
	}
	byteOffset := ch.LowestBitIndex / 8
	storageBytes := ch.BitCount / 8
	storeWord(data[byteOffset:byteOffset+storageBytes], storageBytes, raw)
}

// floatChannelDefault is the value spec.md §4.6 assigns to a float
// channel present in the target but absent from the source: full
// opacity for alpha, zero for everything else.
func floatChannelDefault(channelIndex int) float64 {
	if channelIndex == ChannelAlpha {
		return 1.0
	}
	return 0.0
}
