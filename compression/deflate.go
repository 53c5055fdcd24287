package compression

import (
	"io"

	"github.com/klauspost/compress/flate"
)

// DeflateQuality selects a deflate compression level, translated
// directly into klauspost/compress/flate's native level constants.
type DeflateQuality int

const (
	DeflateFastest   DeflateQuality = DeflateQuality(flate.BestSpeed)
	DeflateDefault   DeflateQuality = DeflateQuality(flate.DefaultCompression)
	DeflateStrongest DeflateQuality = DeflateQuality(flate.BestCompression)
)

func deflateAlgorithms() []Algorithm {
	return []Algorithm{
		{
			ID: "DFLT0001", Name: "deflate (fastest)",
			AverageCyclesPerKilobyte: 900, AverageCompressionRatio: 0.62,
			NewCompressor:   func() Compressor { return NewDeflateCompressor(DeflateFastest) },
			NewDecompressor: func() Decompressor { return NewDeflateDecompressor() },
		},
		{
			ID: "DFLT0002", Name: "deflate (default)",
			AverageCyclesPerKilobyte: 2100, AverageCompressionRatio: 0.52,
			NewCompressor:   func() Compressor { return NewDeflateCompressor(DeflateDefault) },
			NewDecompressor: func() Decompressor { return NewDeflateDecompressor() },
		},
		{
			ID: "DFLT0003", Name: "deflate (strongest)",
			AverageCyclesPerKilobyte: 4800, AverageCompressionRatio: 0.47,
			NewCompressor:   func() Compressor { return NewDeflateCompressor(DeflateStrongest) },
			NewDecompressor: func() Decompressor { return NewDeflateDecompressor() },
		},
	}
}

// DeflateCompressor adapts klauspost/compress/flate's raw-deflate
// (RFC 1951) Writer to the bounded Process/Finish contract. Deflate
// never refuses to be throttled on the write side — its Writer pushes
// compressed bytes to its destination io.Writer as soon as its own
// internal buffer fills — so this adapter only needs WriteBuffer to
// catch whatever doesn't fit the caller's current output slice.
type DeflateCompressor struct {
	wb     WriteBuffer
	writer *flate.Writer
	closed bool
	err    error
}

// NewDeflateCompressor constructs a compressor at the given quality.
func NewDeflateCompressor(quality DeflateQuality) *DeflateCompressor {
	c := &DeflateCompressor{}
	w, _ := flate.NewWriter(&c.wb, int(quality))
	c.writer = w
	return c
}

func (c *DeflateCompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if c.err != nil {
		*outputLen = 0
		return OutputBufferFull, c.err
	}
	c.wb.UseFixedBuffer(output)
	if _, err := c.writer.Write(input); err != nil {
		c.err = &CompressionError{Algorithm: "deflate", Err: err}
		*outputLen = c.wb.BytesWrittenToFixedBuffer()
		*inputLen = 0
		return OutputBufferFull, c.err
	}
	*inputLen = 0
	*outputLen = c.wb.BytesWrittenToFixedBuffer()
	if c.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return InputBufferExhausted, nil
}

func (c *DeflateCompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if c.err != nil {
		*outputLen = 0
		return OutputBufferFull, c.err
	}
	c.wb.UseFixedBuffer(output)
	if !c.closed {
		if err := c.writer.Close(); err != nil {
			c.err = &CompressionError{Algorithm: "deflate", Err: err}
			*outputLen = c.wb.BytesWrittenToFixedBuffer()
			return OutputBufferFull, c.err
		}
		c.closed = true
	}
	*outputLen = c.wb.BytesWrittenToFixedBuffer()
	if c.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return Finished, nil
}

// DeflateDecompressor adapts flate.Reader, which is pull-based, via
// blockingPipe.
type DeflateDecompressor struct {
	pipe   *blockingPipe
	reader io.ReadCloser
	err    error
}

// NewDeflateDecompressor constructs a decompressor for a raw deflate
// (RFC 1951) stream.
func NewDeflateDecompressor() *DeflateDecompressor {
	d := &DeflateDecompressor{pipe: newBlockingPipe()}
	d.reader = flate.NewReader(d.pipe)
	d.pipe.runDecoder(d.reader)
	return d
}

func (d *DeflateDecompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	n, reason, err := d.pipe.drain(input, output)
	*inputLen = 0
	*outputLen = n
	if err != nil {
		d.err = &CompressionError{Algorithm: "deflate", Err: err}
		return OutputBufferFull, d.err
	}
	return reason, nil
}

func (d *DeflateDecompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	d.pipe.closeInput()
	n, reason, err := d.pipe.drain(nil, output)
	*outputLen = n
	if err != nil {
		d.err = &CompressionError{Algorithm: "deflate", Err: err}
		return OutputBufferFull, d.err
	}
	if reason == InputBufferExhausted {
		return Finished, nil
	}
	return reason, nil
}
