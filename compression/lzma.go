package compression

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/ulikunitz/xz/lzma"
)

// lzipMagic and lzipVersion open every stream this adapter produces,
// modeled on the lzip (.lz) container: a short fixed header in front
// of the library's own self-describing classic-LZMA stream, followed
// by a footer carrying the uncompressed size and a checksum. This is
// lzip-shaped, not byte-identical to the reference lzip tool's framing.
var lzipMagic = [4]byte{'L', 'Z', 'I', 'P'}

const lzipVersion = 1
const lzipHeaderSize = 6  // magic + version + dictionary-size byte
const lzipFooterSize = 20 // crc32 + uncompressed size + member size

func lzmaAlgorithms() []Algorithm {
	return []Algorithm{
		{
			ID: "LZMA0001", Name: "lzma (fastest)",
			AverageCyclesPerKilobyte: 6000, AverageCompressionRatio: 0.45,
			NewCompressor:   func() Compressor { return NewLzmaCompressor() },
			NewDecompressor: func() Decompressor { return NewLzmaDecompressor() },
		},
		{
			ID: "LZMA0002", Name: "lzma (default)",
			IsExperimental:           false,
			AverageCyclesPerKilobyte: 14000, AverageCompressionRatio: 0.38,
			NewCompressor:   func() Compressor { return NewLzmaCompressor() },
			NewDecompressor: func() Decompressor { return NewLzmaDecompressor() },
		},
		{
			ID: "LZMA0003", Name: "lzma (strongest)",
			AverageCyclesPerKilobyte: 26000, AverageCompressionRatio: 0.34,
			NewCompressor:   func() Compressor { return NewLzmaCompressor() },
			NewDecompressor: func() Decompressor { return NewLzmaDecompressor() },
		},
	}
}

// LzmaCompressor wraps ulikunitz/xz/lzma's classic-format Writer in a
// small lzip-style container and adapts it to the bounded
// Process/Finish contract the same way DeflateCompressor does, since
// lzma.Writer shares deflate's push-based write model.
type LzmaCompressor struct {
	wb           WriteBuffer
	writer       *lzma.Writer
	wroteHeader  bool
	closed       bool
	wroteTrailer bool
	crc          uint32
	size         uint64
	err          error
}

// NewLzmaCompressor constructs a compressor using the library's
// default encoder configuration.
func NewLzmaCompressor() *LzmaCompressor {
	return &LzmaCompressor{}
}

func (c *LzmaCompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if c.err != nil {
		*outputLen = 0
		return OutputBufferFull, c.err
	}
	c.wb.UseFixedBuffer(output)
	if !c.wroteHeader {
		header := append([]byte{lzipMagic[0], lzipMagic[1], lzipMagic[2], lzipMagic[3], lzipVersion}, dictSizeByte)
		c.wb.Write(header)
		w, err := lzma.NewWriter(&c.wb)
		if err != nil {
			c.err = &CompressionError{Algorithm: "lzma", Err: err}
			*outputLen = c.wb.BytesWrittenToFixedBuffer()
			return OutputBufferFull, c.err
		}
		c.writer = w
		c.wroteHeader = true
	}
	if _, err := c.writer.Write(input); err != nil {
		c.err = &CompressionError{Algorithm: "lzma", Err: err}
		*outputLen = c.wb.BytesWrittenToFixedBuffer()
		*inputLen = 0
		return OutputBufferFull, c.err
	}
	c.crc = crc32.Update(c.crc, crc32.IEEETable, input)
	c.size += uint64(len(input))
	*inputLen = 0
	*outputLen = c.wb.BytesWrittenToFixedBuffer()
	if c.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return InputBufferExhausted, nil
}

func (c *LzmaCompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if c.err != nil {
		*outputLen = 0
		return OutputBufferFull, c.err
	}
	if c.wroteHeader {
		c.wb.UseFixedBuffer(output)
	} else {
		// Process was never called (empty input): let it write the
		// header and create the encoder before closing.
		inputLen := 0
		if _, err := c.Process(nil, &inputLen, output, outputLen); err != nil {
			return OutputBufferFull, err
		}
	}
	if !c.closed {
		if err := c.writer.Close(); err != nil {
			c.err = &CompressionError{Algorithm: "lzma", Err: err}
			*outputLen = c.wb.BytesWrittenToFixedBuffer()
			return OutputBufferFull, c.err
		}
		c.closed = true
	}
	if !c.wroteTrailer {
		footer := make([]byte, lzipFooterSize)
		binary.LittleEndian.PutUint32(footer[0:4], c.crc)
		binary.LittleEndian.PutUint64(footer[4:12], c.size)
		binary.LittleEndian.PutUint64(footer[12:20], uint64(c.wb.TotalBytesWritten())+lzipFooterSize)
		c.wb.Write(footer)
		c.wroteTrailer = true
	}
	*outputLen = c.wb.BytesWrittenToFixedBuffer()
	if c.wb.HasPendingOverflow() {
		return OutputBufferFull, nil
	}
	return Finished, nil
}

// dictSizeByte records a fixed 8 MiB dictionary size in the single
// byte lzip's header reserves for it (encoded value 23 -> 2^23 bytes),
// matching ulikunitz/xz/lzma's own default dictionary capacity.
const dictSizeByte = 23

// LzmaDecompressor strips the lzip-style header this adapter's
// compressor writes, then adapts lzma.Reader (pull-based) via
// blockingPipe. It reads the header through a ReadBuffer since the
// header's fixed size must be fully available before the underlying
// decoder can be constructed — exactly the "library needs a complete
// header up front" case the ReadBuffer collaborator exists for.
type LzmaDecompressor struct {
	rb           ReadBuffer
	haveHeader   bool
	pipe         *blockingPipe
	reader       *lzma.Reader
	decompressed uint64
	err          error
}

// NewLzmaDecompressor constructs a decompressor expecting this
// package's lzip-style framing.
func NewLzmaDecompressor() *LzmaDecompressor {
	return &LzmaDecompressor{}
}

func (d *LzmaDecompressor) ensureHeader() error {
	if d.haveHeader {
		return nil
	}
	if d.rb.CountAvailableBytes() < lzipHeaderSize {
		return nil
	}
	header := make([]byte, lzipHeaderSize)
	d.rb.Read(header, lzipHeaderSize)
	if header[0] != lzipMagic[0] || header[1] != lzipMagic[1] || header[2] != lzipMagic[2] || header[3] != lzipMagic[3] {
		return errLzipBadMagic
	}
	d.pipe = newBlockingPipe()
	reader, err := lzma.NewReader(d.pipe)
	if err != nil {
		return err
	}
	d.reader = reader
	d.pipe.runDecoder(d.reader)
	d.haveHeader = true
	return nil
}

var errLzipBadMagic = &CompressionError{Algorithm: "lzma", Err: errInvalidLzipMagic{}}

type errInvalidLzipMagic struct{}

func (errInvalidLzipMagic) Error() string { return "input does not start with the lzip-style magic" }

func (d *LzmaDecompressor) Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	if !d.haveHeader {
		d.rb.UseFixedBuffer(input)
		avail := d.rb.CountAvailableBytes()
		if avail < lzipHeaderSize {
			d.rb.CacheFixedBufferContents()
			*inputLen = 0
			*outputLen = 0
			return InputBufferExhausted, nil
		}
		if err := d.ensureHeader(); err != nil {
			d.err = toCompressionError("lzma", err)
			*outputLen = 0
			return OutputBufferFull, d.err
		}
		remaining := d.rb.CountAvailableBytes()
		rest := make([]byte, remaining)
		d.rb.Read(rest, remaining)
		input = rest
	}
	n, reason, err := d.pipe.drain(input, output)
	*inputLen = 0
	*outputLen = n
	d.decompressed += uint64(n)
	if err != nil {
		d.err = &CompressionError{Algorithm: "lzma", Err: err}
		return OutputBufferFull, d.err
	}
	return reason, nil
}

func (d *LzmaDecompressor) Finish(output []byte, outputLen *int) (StopReason, error) {
	if d.err != nil {
		*outputLen = 0
		return OutputBufferFull, d.err
	}
	if !d.haveHeader {
		*outputLen = 0
		d.err = &CompressionError{Algorithm: "lzma", Err: errInvalidLzipMagic{}}
		return OutputBufferFull, d.err
	}
	d.pipe.closeInput()
	n, reason, err := d.pipe.drain(nil, output)
	*outputLen = n
	d.decompressed += uint64(n)
	if err != nil {
		d.err = &CompressionError{Algorithm: "lzma", Err: err}
		return OutputBufferFull, d.err
	}
	if reason != InputBufferExhausted {
		return reason, nil
	}
	if verifyErr := d.verifyFooter(); verifyErr != nil {
		d.err = verifyErr
		return OutputBufferFull, d.err
	}
	return Finished, nil
}

// verifyFooter sanity-checks the uncompressed-size field this
// package's own compressor wrote into the lzip-style footer against
// the number of bytes this decompressor actually produced. The footer
// is otherwise decorative (ulikunitz/xz/lzma's classic-format stream
// is self-terminating and never consults it), so this is the one place
// its contents are used at all.
func (d *LzmaDecompressor) verifyFooter() error {
	trailer := d.pipe.remainingInput()
	if len(trailer) < lzipFooterSize {
		return &CompressionError{Algorithm: "lzma", Err: errLzipTruncatedFooter{}}
	}
	wantSize := binary.LittleEndian.Uint64(trailer[4:12])
	if wantSize != d.decompressed {
		return &CompressionError{Algorithm: "lzma", Err: errLzipSizeMismatch{want: wantSize, got: d.decompressed}}
	}
	return nil
}

type errLzipTruncatedFooter struct{}

func (errLzipTruncatedFooter) Error() string { return "lzip-style footer is truncated" }

type errLzipSizeMismatch struct {
	want, got uint64
}

func (e errLzipSizeMismatch) Error() string {
	return fmt.Sprintf("lzip-style footer declares %d uncompressed bytes, decoder produced %d", e.want, e.got)
}

func toCompressionError(algorithm string, err error) error {
	if ce, ok := err.(*CompressionError); ok {
		return ce
	}
	return &CompressionError{Algorithm: algorithm, Err: err}
}
