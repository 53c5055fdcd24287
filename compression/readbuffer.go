package compression

// ReadBuffer feeds a library that wants to pull input through an
// io.Reader from input chunks the caller pushes one Process call at a
// time. Grounded on Nuclex.Storage.Native's ReadBuffer helper: a
// "fixed buffer" borrowed for one call is read first, and whatever a
// library reads ahead of it (or whatever the caller pushed that the
// library hasn't consumed yet) lives in an owned side buffer that's
// shifted down as it drains rather than reallocated on every read.
type ReadBuffer struct {
	fixed          []byte
	fixedRemaining int
	side           []byte
	sideReadIndex  int
}

// UseFixedBuffer points the read buffer at a new chunk of input the
// caller just pushed. It must only be called once the previous fixed
// buffer has been fully consumed or cached.
func (r *ReadBuffer) UseFixedBuffer(buffer []byte) {
	if r.fixedRemaining != 0 {
		panic("compression: UseFixedBuffer called before previous fixed buffer was drained")
	}
	r.fixed = buffer
	r.fixedRemaining = len(buffer)
}

// CountCachedBytes returns how many bytes are sitting in the side
// buffer, available without needing a new fixed buffer.
func (r *ReadBuffer) CountCachedBytes() int {
	return len(r.side) - r.sideReadIndex
}

// CountAvailableBytes returns the total bytes readable right now:
// cached bytes plus whatever remains of the current fixed buffer.
func (r *ReadBuffer) CountAvailableBytes() int {
	return r.CountCachedBytes() + r.fixedRemaining
}

// GetCachedData returns the side buffer's unread tail without
// consuming it.
func (r *ReadBuffer) GetCachedData() []byte {
	return r.side[r.sideReadIndex:]
}

// SkipCachedBytes advances past count bytes of previously cached data.
func (r *ReadBuffer) SkipCachedBytes(count int) {
	r.sideReadIndex += count
}

// Read copies exactly count bytes into target, preferring cached
// (side-buffer) bytes before falling through to the fixed buffer. It
// panics if fewer than count bytes are available, mirroring the
// original's assumption that callers check CountAvailableBytes first.
func (r *ReadBuffer) Read(target []byte, count int) {
	if count > len(target) {
		panic("compression: Read target too small")
	}
	if count > r.CountAvailableBytes() {
		panic("compression: Read past available bytes")
	}
	written := 0
	if cached := r.CountCachedBytes(); cached > 0 {
		n := cached
		if n > count {
			n = count
		}
		copy(target, r.side[r.sideReadIndex:r.sideReadIndex+n])
		r.sideReadIndex += n
		written += n
	}
	if written < count {
		n := count - written
		copy(target[written:], r.fixed[len(r.fixed)-r.fixedRemaining:len(r.fixed)-r.fixedRemaining+n])
		r.fixedRemaining -= n
	}
}

// CacheFixedBufferContents moves whatever remains of the current fixed
// buffer into the side buffer and releases the fixed buffer, so a new
// one can be accepted via UseFixedBuffer even though the library isn't
// done with these bytes yet. If more than half the side buffer has
// already been read, it's compacted first to bound its growth.
func (r *ReadBuffer) CacheFixedBufferContents() {
	if r.sideReadIndex > len(r.side)/2 {
		remaining := r.side[r.sideReadIndex:]
		r.side = append(r.side[:0], remaining...)
		r.sideReadIndex = 0
	}
	if r.fixedRemaining > 0 {
		start := len(r.fixed) - r.fixedRemaining
		r.side = append(r.side, r.fixed[start:]...)
		r.fixedRemaining = 0
	}
	r.fixed = nil
}
