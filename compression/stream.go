package compression

// StopReason is the outcome of one Compressor/Decompressor Process or
// Finish call — why it handed control back to the caller.
type StopReason int

const (
	// InputBufferExhausted means all provided input has been absorbed
	// by the wrapped library; the caller may free or reuse that input
	// buffer immediately. Output may or may not have been written.
	InputBufferExhausted StopReason = iota
	// OutputBufferFull means the caller's output buffer filled up
	// before all available input/buffered state was drained; the
	// caller must provide a fresh output buffer and call again
	// (Process with the remaining input, or Finish again) to continue.
	OutputBufferFull
	// Finished is returned only by Finish, once the trailer has been
	// completely written.
	Finished
)

func (r StopReason) String() string {
	switch r {
	case InputBufferExhausted:
		return "InputBufferExhausted"
	case OutputBufferFull:
		return "OutputBufferFull"
	case Finished:
		return "Finished"
	default:
		return "StopReason(?)"
	}
}

// Compressor is the streaming contract every algorithm adapter
// implements (spec.md §4.9). Process pushes a bounded input chunk and
// pulls a bounded output chunk without either side buffering a whole
// stream in memory. Finish flushes any buffered state plus the
// algorithm's trailer; it may need to be called more than once if the
// output buffer it's given is too small to hold the whole trailer in
// one call.
//
// Errors from the wrapped library are sticky: once Process or Finish
// returns a non-nil error, every later call on the same Compressor
// returns that same error again without attempting further work.
//
// A Compressor is created for exactly one stream and is not safe for
// concurrent use or reuse after Finish returns Finished.
type Compressor interface {
	// Process consumes as much of input as fits into output. inputLen
	// is updated in place to the number of unconsumed input bytes (0
	// unless Process returned OutputBufferFull); outputLen is updated
	// to the number of bytes written to output.
	Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error)
	// Finish flushes buffered state and the trailer into output,
	// updating outputLen to the number of bytes written.
	Finish(output []byte, outputLen *int) (StopReason, error)
}

// Decompressor is Compressor's dual.
type Decompressor interface {
	Process(input []byte, inputLen *int, output []byte, outputLen *int) (StopReason, error)
	Finish(output []byte, outputLen *int) (StopReason, error)
}
