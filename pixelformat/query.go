package pixelformat

// Query is the runtime reflection surface spec.md §4.8 describes over
// a format's Description: the ChannelHelpers.h free functions folded
// into method form, each going through OnPixelFormat to look up the
// description once.
type Query struct {
	desc Description
}

// NewQuery looks up format's Description and wraps it for querying.
func NewQuery(format PixelFormat) (Query, error) {
	desc, err := OnPixelFormat(format)
	if err != nil {
		return Query{}, err
	}
	return Query{desc: desc}, nil
}

func (q Query) HasRed() bool   { return q.desc.Channels[ChannelRed].Present }
func (q Query) HasGreen() bool { return q.desc.Channels[ChannelGreen].Present }
func (q Query) HasBlue() bool  { return q.desc.Channels[ChannelBlue].Present }
func (q Query) HasAlpha() bool { return q.desc.Channels[ChannelAlpha].Present }

func (q Query) IsSignedFormat() bool { return q.desc.DataType == SignedInteger }
func (q Query) IsFloatFormat() bool  { return q.desc.DataType == FloatingPoint }

// HasDifferentlySizedChannels reports whether any two present channels
// have different bit counts.
func (q Query) HasDifferentlySizedChannels() bool {
	width := -1
	for _, ch := range q.desc.Channels {
		if !ch.Present {
			continue
		}
		if width == -1 {
			width = ch.BitCount
			continue
		}
		if ch.BitCount != width {
			return true
		}
	}
	return false
}

// AreAllChannelsByteAligned reports whether every present channel
// starts on a byte boundary and spans a whole number of bytes.
func (q Query) AreAllChannelsByteAligned() bool {
	for _, ch := range q.desc.Channels {
		if !ch.Present {
			continue
		}
		if ch.LowestBitIndex%8 != 0 || ch.BitCount%8 != 0 {
			return false
		}
	}
	return true
}

// RequiresEndianFlip reports whether this format's loads/stores need
// byte reversal on this module's little-endian-host assumption — i.e.
// whether the description declares anything other than FlipNone.
func (q Query) RequiresEndianFlip() bool {
	return q.desc.EndianFlip != FlipNone
}

// LowestBitIndexOf returns the bit offset of channelIndex and true, or
// (0, false) if the channel is absent from this format.
func (q Query) LowestBitIndexOf(channelIndex int) (int, bool) {
	ch := q.desc.Channels[channelIndex]
	if !ch.Present {
		return 0, false
	}
	return ch.LowestBitIndex, true
}

// BitCountOf returns the bit width of channelIndex and true, or (0,
// false) if the channel is absent from this format.
func (q Query) BitCountOf(channelIndex int) (int, bool) {
	ch := q.desc.Channels[channelIndex]
	if !ch.Present {
		return 0, false
	}
	return ch.BitCount, true
}

// WidestChannelBitCount returns the bit count of the widest present
// channel, or 0 if the format has no channels.
func (q Query) WidestChannelBitCount() int {
	widest := 0
	for _, ch := range q.desc.Channels {
		if ch.Present && ch.BitCount > widest {
			widest = ch.BitCount
		}
	}
	return widest
}
