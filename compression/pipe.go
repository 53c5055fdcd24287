package compression

import (
	"io"
	"sync"
)

// blockingPipe adapts a pull-based decoder (the stdlib/third-party
// decompression readers all work this way: the reader decides when it
// wants more compressed bytes) to the push-based Process/Finish
// contract this package exposes. A background goroutine drives the
// decoder's Read loop against blockingPipe as its source; Process
// pushes newly-arrived input into the pipe and drains whatever the
// goroutine produced, waking up exactly when the goroutine has
// produced everything it can from the input given so far and has gone
// back to waiting for more (or has finished, or has errored).
type blockingPipe struct {
	mu     sync.Mutex
	cond   *sync.Cond
	in     []byte
	out    []byte
	closed bool // true once no more input will ever arrive
	idle   bool // true while the decode goroutine is blocked in Read waiting for input
	done   bool // true once the decoder reported io.EOF
	err    error
}

func newBlockingPipe() *blockingPipe {
	p := &blockingPipe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Read implements io.Reader and is handed to the wrapped decoder as
// its input source. It blocks until bytes are available, the pipe is
// closed (true end of stream), or forever if neither ever happens —
// which cannot occur in practice since push and close are the only
// ways this pipe's owner drives it forward.
func (p *blockingPipe) Read(dst []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.in) == 0 && !p.closed {
		p.idle = true
		p.cond.Broadcast()
		p.cond.Wait()
	}
	p.idle = false
	if len(p.in) == 0 {
		return 0, io.EOF
	}
	n := copy(dst, p.in)
	p.in = p.in[n:]
	return n, nil
}

// push appends newly available compressed bytes and wakes the decode
// goroutine if it was waiting for them.
func (p *blockingPipe) push(data []byte) {
	if len(data) == 0 {
		return
	}
	p.mu.Lock()
	p.in = append(p.in, data...)
	p.idle = false
	p.cond.Broadcast()
	p.mu.Unlock()
}

// closeInput signals that no further input will ever be pushed; the
// decoder's next Read once it drains p.in sees a true EOF.
func (p *blockingPipe) closeInput() {
	p.mu.Lock()
	p.closed = true
	p.idle = false
	p.cond.Broadcast()
	p.mu.Unlock()
}

// runDecoder drives reader.Read in a background goroutine — reader
// must be a decoder wrapping p as its input source — pushing
// everything it produces into p.out and recording completion/failure.
func (p *blockingPipe) runDecoder(reader io.Reader) {
	go func() {
		scratch := make([]byte, 32*1024)
		for {
			n, err := reader.Read(scratch)
			if n > 0 {
				p.mu.Lock()
				p.out = append(p.out, scratch[:n]...)
				p.cond.Broadcast()
				p.mu.Unlock()
			}
			if err != nil {
				p.mu.Lock()
				if err == io.EOF {
					p.done = true
				} else {
					p.err = err
				}
				p.cond.Broadcast()
				p.mu.Unlock()
				return
			}
		}
	}()
}

// remainingInput returns a copy of whatever input bytes the decoder
// goroutine has not yet consumed. Only meaningful after the goroutine
// has stopped (done or err set): while it's still running, its next
// Read could take any of these bytes at any moment.
func (p *blockingPipe) remainingInput() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(p.in))
	copy(out, p.in)
	return out
}

// drain pushes newInput (if any) into the pipe, then waits for and
// copies as much decoded output as fits into dst, returning the
// number of bytes written and the StopReason to report.
func (p *blockingPipe) drain(newInput []byte, dst []byte) (int, StopReason, error) {
	p.push(newInput)
	written := 0
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if len(p.out) > 0 {
			n := copy(dst[written:], p.out)
			p.out = p.out[n:]
			written += n
			if written == len(dst) {
				return written, OutputBufferFull, nil
			}
			continue
		}
		if p.err != nil {
			return written, InputBufferExhausted, p.err
		}
		if p.done || p.idle {
			return written, InputBufferExhausted, nil
		}
		p.cond.Wait()
	}
}
