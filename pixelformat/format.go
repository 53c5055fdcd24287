// Package pixelformat converts rasterized pixel data between a closed
// set of pixel formats that differ in channel layout, channel bit
// width, channel data type and byte order.
//
// The engine is built from three layers: PixelFormatDescription (this
// file) is the per-format table that OnPixelFormat looks up at
// runtime; ConvertPixel reads that table to drive one of four
// conversion strategies (int->int, int->float, float->int,
// float->float); the row and bitmap converters in converter.go
// (ConvertRow, ConvertBitmap) walk a row or a bitmap calling
// ConvertPixel once per pixel.
package pixelformat

import "errors"

// ErrUnknownPixelFormat is returned when a runtime PixelFormat value
// falls outside the supported enum range.
var ErrUnknownPixelFormat = errors.New("pixelformat: unknown pixel format")

// PixelFormat identifies one member of the closed set of supported
// pixel layouts. Each member is uniquely named by its channels,
// widths, data type and byte-order suffix.
type PixelFormat int

// The closed set of supported pixel formats. Suffix semantics:
// _Native16/_Native32 mean the pixel (or, for pixels wider than the
// tag, each same-width group of channels within it) is stored as one
// native-endian integer of that width.
const (
	R8_Unsigned PixelFormat = iota + 1
	A8_Unsigned
	R8_G8_Unsigned
	R8_A8_Unsigned
	R5_G6_B5_Unsigned_Native16
	B5_G6_R5_Unsigned_Native16
	R8_G8_B8_Unsigned
	B8_G8_R8_Unsigned
	R8_G8_B8_A8_Unsigned
	R16_Unsigned_Native16
	A16_Unsigned_Native16
	R16_G16_Unsigned_Native16
	R16_A16_Unsigned_Native16
	R16_G16_B16_A16_Unsigned_Native16
	R16_Float_Native16
	A16_Float_Native16
	R16_G16_Float_Native16
	A16_R16_G16_B16_Float_Native16
	R32_Float_Native32
	A32_Float_Native32
	R32_G32_B32_A32_Float_Native32
	A2_B10_G10_R10_Unsigned_Native32
	A2_R10_G10_B10_Unsigned_Native32
)

// Channel index constants identifying the four channel slots a
// PixelFormatDescription may populate. ChannelCount is the fixed slot
// count; a format need not populate all of them.
const (
	ChannelRed   = 0
	ChannelGreen = 1
	ChannelBlue  = 2
	ChannelAlpha = 3
	ChannelCount = 4
)

// DataType is the numeric representation a format's channels are
// stored in.
type DataType int

const (
	UnsignedInteger DataType = iota
	SignedInteger
	FloatingPoint
)

// EndianFlipMode describes what unit of a packed pixel must be
// byte-reversed to go from the description's canonical bit layout to
// a little-endian host's native memory layout.
//
// Every concrete Description below sets this to None: each channel's
// bit layout is already expressed directly in little-endian load
// order (lowest-numbered byte holds the low bits), which is what this
// module's load/store helpers assume throughout.
// FlipEachChannel and FlipWholePixel exist so a future big-endian host
// or an externally-described format can still be expressed — ConvertPixel
// honors them — but nothing in the closed set needs them.
type EndianFlipMode int

const (
	FlipNone EndianFlipMode = iota
	FlipEachChannel
	FlipWholePixel
)

// Channel is the runtime counterpart of ColorChannelDescription: a
// channel's bit position and width within one pixel. LowestBitIndex is
// always counted from the start of the pixel (bit 0 = least
// significant bit of the first byte), regardless of whether the
// channel is bit-packed (integer formats) or byte-aligned (float
// formats, where LowestBitIndex is always a multiple of 8).
type Channel struct {
	Present        bool
	LowestBitIndex int
	BitCount       int
}

// Description is the runtime form of PixelFormatDescription: a
// per-format record of data type, storage width and per-channel
// layout. Go has no template specialization, so where the original
// keyed an enum to a compile-time record, this keys it to a plain
// table (see descriptions below) that OnPixelFormat looks up — the
// monomorphization spec.md's design notes call for comes from
// ConvertPixel switching once on DataType per call, not from any
// per-format generated code.
type Description struct {
	Format       PixelFormat
	DataType     DataType
	StorageBytes int // bytes occupied by one pixel in memory
	Channels     [ChannelCount]Channel
	EndianFlip   EndianFlipMode
}

var descriptions = map[PixelFormat]Description{
	R8_Unsigned: {
		Format: R8_Unsigned, DataType: UnsignedInteger, StorageBytes: 1,
		Channels: [ChannelCount]Channel{ChannelRed: {true, 0, 8}},
	},
	A8_Unsigned: {
		Format: A8_Unsigned, DataType: UnsignedInteger, StorageBytes: 1,
		Channels: [ChannelCount]Channel{ChannelAlpha: {true, 0, 8}},
	},
	R8_G8_Unsigned: {
		Format: R8_G8_Unsigned, DataType: UnsignedInteger, StorageBytes: 2,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 8},
			ChannelGreen: {true, 8, 8},
		},
	},
	R8_A8_Unsigned: {
		Format: R8_A8_Unsigned, DataType: UnsignedInteger, StorageBytes: 2,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 8},
			ChannelAlpha: {true, 8, 8},
		},
	},
	R5_G6_B5_Unsigned_Native16: {
		Format: R5_G6_B5_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 2,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 11, 5},
			ChannelGreen: {true, 5, 6},
			ChannelBlue:  {true, 0, 5},
		},
	},
	B5_G6_R5_Unsigned_Native16: {
		Format: B5_G6_R5_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 2,
		Channels: [ChannelCount]Channel{
			ChannelBlue:  {true, 11, 5},
			ChannelGreen: {true, 5, 6},
			ChannelRed:   {true, 0, 5},
		},
	},
	R8_G8_B8_Unsigned: {
		Format: R8_G8_B8_Unsigned, DataType: UnsignedInteger, StorageBytes: 3,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 8},
			ChannelGreen: {true, 8, 8},
			ChannelBlue:  {true, 16, 8},
		},
	},
	B8_G8_R8_Unsigned: {
		Format: B8_G8_R8_Unsigned, DataType: UnsignedInteger, StorageBytes: 3,
		Channels: [ChannelCount]Channel{
			ChannelBlue:  {true, 0, 8},
			ChannelGreen: {true, 8, 8},
			ChannelRed:   {true, 16, 8},
		},
	},
	R8_G8_B8_A8_Unsigned: {
		Format: R8_G8_B8_A8_Unsigned, DataType: UnsignedInteger, StorageBytes: 4,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 8},
			ChannelGreen: {true, 8, 8},
			ChannelBlue:  {true, 16, 8},
			ChannelAlpha: {true, 24, 8},
		},
	},
	R16_Unsigned_Native16: {
		Format: R16_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 2,
		Channels: [ChannelCount]Channel{ChannelRed: {true, 0, 16}},
	},
	A16_Unsigned_Native16: {
		Format: A16_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 2,
		Channels: [ChannelCount]Channel{ChannelAlpha: {true, 0, 16}},
	},
	R16_G16_Unsigned_Native16: {
		Format: R16_G16_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 4,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 16},
			ChannelGreen: {true, 16, 16},
		},
	},
	R16_A16_Unsigned_Native16: {
		Format: R16_A16_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 4,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 16},
			ChannelAlpha: {true, 16, 16},
		},
	},
	R16_G16_B16_A16_Unsigned_Native16: {
		Format: R16_G16_B16_A16_Unsigned_Native16, DataType: UnsignedInteger, StorageBytes: 8,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 16},
			ChannelGreen: {true, 16, 16},
			ChannelBlue:  {true, 32, 16},
			ChannelAlpha: {true, 48, 16},
		},
	},
	R16_Float_Native16: {
		Format: R16_Float_Native16, DataType: FloatingPoint, StorageBytes: 2,
		Channels: [ChannelCount]Channel{ChannelRed: {true, 0, 16}},
	},
	A16_Float_Native16: {
		Format: A16_Float_Native16, DataType: FloatingPoint, StorageBytes: 2,
		Channels: [ChannelCount]Channel{ChannelAlpha: {true, 0, 16}},
	},
	R16_G16_Float_Native16: {
		Format: R16_G16_Float_Native16, DataType: FloatingPoint, StorageBytes: 4,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 16},
			ChannelGreen: {true, 16, 16},
		},
	},
	A16_R16_G16_B16_Float_Native16: {
		Format: A16_R16_G16_B16_Float_Native16, DataType: FloatingPoint, StorageBytes: 8,
		Channels: [ChannelCount]Channel{
			ChannelAlpha: {true, 0, 16},
			ChannelRed:   {true, 16, 16},
			ChannelGreen: {true, 32, 16},
			ChannelBlue:  {true, 48, 16},
		},
	},
	R32_Float_Native32: {
		Format: R32_Float_Native32, DataType: FloatingPoint, StorageBytes: 4,
		Channels: [ChannelCount]Channel{ChannelRed: {true, 0, 32}},
	},
	A32_Float_Native32: {
		Format: A32_Float_Native32, DataType: FloatingPoint, StorageBytes: 4,
		Channels: [ChannelCount]Channel{ChannelAlpha: {true, 0, 32}},
	},
	R32_G32_B32_A32_Float_Native32: {
		Format: R32_G32_B32_A32_Float_Native32, DataType: FloatingPoint, StorageBytes: 16,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 32},
			ChannelGreen: {true, 32, 32},
			ChannelBlue:  {true, 64, 32},
			ChannelAlpha: {true, 96, 32},
		},
	},
	A2_B10_G10_R10_Unsigned_Native32: {
		Format: A2_B10_G10_R10_Unsigned_Native32, DataType: UnsignedInteger, StorageBytes: 4,
		Channels: [ChannelCount]Channel{
			ChannelRed:   {true, 0, 10},
			ChannelGreen: {true, 10, 10},
			ChannelBlue:  {true, 20, 10},
			ChannelAlpha: {true, 30, 2},
		},
	},
	A2_R10_G10_B10_Unsigned_Native32: {
		Format: A2_R10_G10_B10_Unsigned_Native32, DataType: UnsignedInteger, StorageBytes: 4,
		Channels: [ChannelCount]Channel{
			ChannelBlue:  {true, 0, 10},
			ChannelGreen: {true, 10, 10},
			ChannelRed:   {true, 20, 10},
			ChannelAlpha: {true, 30, 2},
		},
	},
}

// OnPixelFormat is the runtime-to-compile-time bridge spec.md §4.5
// describes: it validates a runtime PixelFormat value and returns its
// Description, failing with ErrUnknownPixelFormat otherwise. The
// original dispatches to a functor instantiated with a compile-time
// format tag per enum case; Go generics can't be instantiated from a
// runtime value the same way, so this follows design note (b) — "a
// single large match that selects from a table ... computed at build
// time" — with descriptions playing the role of that table and the
// later per-call DataType switch in ConvertPixel providing the
// monomorphic conversion path.
func OnPixelFormat(format PixelFormat) (Description, error) {
	desc, ok := descriptions[format]
	if !ok {
		return Description{}, ErrUnknownPixelFormat
	}
	return desc, nil
}

// BytesPerPixel returns the storage width of format in bytes, failing
// with ErrUnknownPixelFormat if format is not a recognized member.
func BytesPerPixel(format PixelFormat) (int, error) {
	desc, err := OnPixelFormat(format)
	if err != nil {
		return 0, err
	}
	return desc.StorageBytes, nil
}
