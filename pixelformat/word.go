package pixelformat

import "github.com/Cygon/nuclex-pixelstorage-go/pixelformat/internal/bitops"

// loadWord reads storageBytes bytes from data in little-endian order
// into a uint64 accumulator. storageBytes must be at most 8 — the
// largest integer pixel format in the closed set
// (R16_G16_B16_A16_Unsigned_Native16) is exactly 8 bytes; the one
// wider format, R32_G32_B32_A32_Float_Native32 at 16 bytes, is a float
// format and never goes through this accumulator (see convert.go).
func loadWord(data []byte, storageBytes int) uint64 {
	var word uint64
	for i := storageBytes - 1; i >= 0; i-- {
		word = word<<8 | uint64(data[i])
	}
	return word
}

// storeWord writes the low storageBytes bytes of word into data in
// little-endian order.
func storeWord(data []byte, storageBytes int, word uint64) {
	for i := 0; i < storageBytes; i++ {
		data[i] = byte(word)
		word >>= 8
	}
}

// flipWord byte-reverses word as if it were bits wide. bits must be
// one of 8, 16, 32, 64.
func flipWord(word uint64, bits int) uint64 {
	switch bits {
	case 8:
		return uint64(bitops.EndianFlip8(uint8(word)))
	case 16:
		return uint64(bitops.EndianFlip16(uint16(word)))
	case 32:
		return uint64(bitops.EndianFlip32(uint32(word)))
	default:
		return bitops.EndianFlip64(word)
	}
}

// nativeUnitBits rounds bitCount up to the nearest width flipWord
// understands, matching how a FlipEachChannel format's channels are
// each their own native-endian unit.
func nativeUnitBits(bitCount int) int {
	switch {
	case bitCount <= 8:
		return 8
	case bitCount <= 16:
		return 16
	case bitCount <= 32:
		return 32
	default:
		return 64
	}
}

// channelMask returns a bitCount-wide all-ones mask.
func channelMask(bitCount int) uint64 {
	if bitCount >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bitCount)) - 1
}

// extractChannel reads ch's bits out of a pixel word already adjusted
// for the pixel's endian flip, right-aligning the result.
func extractChannel(word uint64, ch Channel) uint64 {
	return (word >> uint(ch.LowestBitIndex)) & channelMask(ch.BitCount)
}

// insertChannel ORs a right-aligned channel value into acc at ch's bit
// position, masking first so garbage above bitCount bits can never
// leak into neighboring channels.
func insertChannel(acc uint64, ch Channel, value uint64) uint64 {
	return acc | ((value & channelMask(ch.BitCount)) << uint(ch.LowestBitIndex))
}
