package compression

import (
	"github.com/andybalholm/brotli"
)

// BrotliQuality is brotli's native quality parameter, 0-11.
type BrotliQuality int

const (
	BrotliFastest   BrotliQuality = 1
	BrotliDefault   BrotliQuality = 6
	BrotliStrongest BrotliQuality = 11
)

func brotliAlgorithms() []Algorithm {
	return []Algorithm{
		{
			ID: "BRTL0001", Name: "brotli (fastest)",
			AverageCyclesPerKilobyte: 1400, AverageCompressionRatio: 0.55,
			NewCompressor:   func() Compressor { return NewBrotliCompressor(BrotliFastest) },
			NewDecompressor: func() Decompressor { return NewBrotliDecompressor() },
		},
		{
			ID: "BRTL0002", Name: "brotli (default)",
			AverageCyclesPerKilobyte: 5200, AverageCompressionRatio: 0.46,
			NewCompressor:   func() Compressor { return NewBrotliCompressor(BrotliDefault) },
			NewDecompressor: func() Decompressor { return NewBrotliDecompressor() },
		},
		{
			ID: "BRTL0003", Name: "brotli (strongest)",
			AverageCyclesPerKilobyte: 31000, AverageCompressionRatio: 0.40,
			NewCompressor:   func() Compressor { return NewBrotliCompressor(BrotliStrongest) },
			NewDecompressor: func() Decompressor { return NewBrotliDecompressor() },
		},
	}
}

// BrotliCompressor adapts andybalholm/brotli's Writer, which shares
// deflate's push-based write model, the same way DeflateCompressor
// does.
type BrotliCompressor struct {
	wb     WriteBuffer
	writer *brotli.Writer
	closed bool
	err    error
}

// NewBrotliCompressor constructs a compressor at the given quality.
func NewBrotliCompressor(quality BrotliQuality) *BrotliCompressor {
	c := &BrotliCompressor{}
	c.writer = brotli.NewWriterLevel(&c.wb, int(quality))
	return c
}

func (c *BrotliCompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if c.err != nil {
		*outputLen = 0
		return OutputBufferFull, c.err
	}
	c.wb.UseFixedBuffer(output)
	if _, err := c.writer.Write(input); err != nil {
		c.err = &CompressionError{Algorithm: "brotli", Err: err}
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

func (c *BrotliCompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if c.err != nil {
		*outputLen = 0
		return OutputBufferFull, c.err
	}
	c.wb.UseFixedBuffer(output)
	if !c.closed {
		if err := c.writer.Close(); err != nil {
			c.err = &CompressionError{Algorithm: "brotli", Err: err}
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

// BrotliDecompressor adapts brotli.Reader via blockingPipe, mirroring
// DeflateDecompressor.
type BrotliDecompressor struct {
	pipe   *blockingPipe
	reader *brotli.Reader
	err    error
}

// NewBrotliDecompressor constructs a decompressor for a brotli
// (RFC 7932) stream.
func NewBrotliDecompressor() *BrotliDecompressor {
	d := &BrotliDecompressor{pipe: newBlockingPipe()}
	d.reader = brotli.NewReader(d.pipe)
	d.pipe.runDecoder(d.reader)
	return d
}

func (d *BrotliDecompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	n, reason, err := d.pipe.drain(input, output)
	*inputLen = 0
	*outputLen = n
	if err != nil {
		d.err = &CompressionError{Algorithm: "brotli", Err: err}
		return OutputBufferFull, d.err
	}
	return reason, nil
}

func (d *BrotliDecompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	d.pipe.closeInput()
	n, reason, err := d.pipe.drain(nil, output)
	*outputLen = n
	if err != nil {
		d.err = &CompressionError{Algorithm: "brotli", Err: err}
		return OutputBufferFull, d.err
	}
	if reason == InputBufferExhausted {
		return Finished, nil
	}
	return reason, nil
}
