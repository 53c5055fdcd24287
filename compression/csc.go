package compression

import "encoding/binary"

const cscHeaderSize = 8 // little-endian uncompressed length

func cscAlgorithms() []Algorithm {
	return []Algorithm{
		{
			ID: "CSAC0001", Name: "csc (fastest)", IsExperimental: true,
			AverageCyclesPerKilobyte: 9000, AverageCompressionRatio: 0.42,
			NewCompressor:   func() Compressor { return NewCscCompressor() },
			NewDecompressor: func() Decompressor { return NewCscDecompressor() },
		},
		{
			ID: "CSAC0002", Name: "csc (default)", IsExperimental: true,
			AverageCyclesPerKilobyte: 21000, AverageCompressionRatio: 0.36,
			NewCompressor:   func() Compressor { return NewCscCompressor() },
			NewDecompressor: func() Decompressor { return NewCscDecompressor() },
		},
		{
			ID: "CSAC0003", Name: "csc (strongest)", IsExperimental: true,
			AverageCyclesPerKilobyte: 45000, AverageCompressionRatio: 0.32,
			NewCompressor:   func() Compressor { return NewCscCompressor() },
			NewDecompressor: func() Decompressor { return NewCscDecompressor() },
		},
	}
}

// CscCompressor wraps cscCompress (csc_codec.go) behind the
// Process/Finish contract. The wrapped algorithm, like the reference
// CSC library it stands in for, refuses to be throttled: it needs the
// whole input before it can produce a single output byte, so Process
// only ever buffers and Finish does the real work, spilling whatever
// doesn't fit the caller's buffer through a WriteBuffer exactly the
// way spec.md's "libraries that insist on a full block" note
// describes.
type CscCompressor struct {
	input   []byte
	wb      WriteBuffer
	encoded bool
}

// NewCscCompressor constructs a compressor. CSC has no meaningful
// quality levels in this implementation (the range coder's adaptive
// probabilities already do the work a "level" would tune in the
// reference library), so all three registered presets share one
// constructor.
func NewCscCompressor() *CscCompressor {
	return &CscCompressor{}
}

func (c *CscCompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	c.input = append(c.input, input...)
	*inputLen = 0
	c.wb.UseFixedBuffer(output)
	*outputLen = c.wb.BytesWrittenToFixedBuffer()
	if c.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return InputBufferExhausted, nil
}

func (c *CscCompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	c.wb.UseFixedBuffer(output)
	if !c.encoded {
		header := make([]byte, cscHeaderSize)
		binary.LittleEndian.PutUint64(header, uint64(len(c.input)))
		c.wb.Write(header)
		c.wb.Write(cscCompress(c.input))
		c.encoded = true
	}
	*outputLen = c.wb.BytesWrittenToFixedBuffer()
	if c.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return Finished, nil
}

// CscDecompressor is CscCompressor's dual: it buffers the entire
// compressed stream (header plus range-coded payload) and decodes it
// in one shot at Finish, draining the result through a WriteBuffer.
type CscDecompressor struct {
	input   []byte
	wb      WriteBuffer
	decoded bool
	err     error
}

// NewCscDecompressor constructs a decompressor.
func NewCscDecompressor() *CscDecompressor {
	return &CscDecompressor{}
}

func (d *CscDecompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	d.input = append(d.input, input...)
	*inputLen = 0
	*outputLen = 0
	return InputBufferExhausted, nil
}

func (d *CscDecompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	d.wb.UseFixedBuffer(output)
	if !d.decoded {
		if len(d.input) < cscHeaderSize {
			d.err = &CompressionError{Algorithm: "csc", Err: errCscTruncated}
			*outputLen = 0
			return OutputBufferFull, d.err
		}
		length := int(binary.LittleEndian.Uint64(d.input[:cscHeaderSize]))
		decoded, err := cscDecompress(d.input[cscHeaderSize:], length)
		if err != nil {
			d.err = &CompressionError{Algorithm: "csc", Err: err}
			*outputLen = 0
			return OutputBufferFull, d.err
		}
		d.wb.Write(decoded)
		d.decoded = true
	}
	*outputLen = d.wb.BytesWrittenToFixedBuffer()
	if d.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return Finished, nil
}
