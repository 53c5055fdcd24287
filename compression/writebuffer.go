package compression

// WriteBuffer collects bytes a library writes through an io.Writer
// whose capacity the caller controls one call at a time, spilling into
// an owned growable side buffer whatever didn't fit in the caller's
// current output slice. Grounded on Nuclex.Storage.Native's
// WriteBuffer helper: a compressor is handed the caller's output slice
// as its "fixed buffer" for the duration of one Process/Finish call,
// and anything the library produces once that fills up lands in the
// side buffer to be drained on the next call.
type WriteBuffer struct {
	fixed     []byte // caller's output slice for the current call, already partially filled
	fixedUsed int
	side      []byte // overflow from previous calls not yet delivered
	total     int    // cumulative bytes ever accepted by Write, across all calls
}

// UseFixedBuffer points the write buffer at the caller's output slice
// for the duration of one call, first draining as much of the
// previously buffered overflow into it as fits.
func (w *WriteBuffer) UseFixedBuffer(buffer []byte) {
	w.fixed = buffer
	w.fixedUsed = 0
	if len(w.side) == 0 {
		return
	}
	n := copy(w.fixed, w.side)
	w.fixedUsed = n
	w.side = w.side[n:]
}

// Write implements io.Writer. Bytes land in the fixed buffer while it
// has room; once it's full, everything further is appended to the
// side buffer for a later call to drain.
func (w *WriteBuffer) Write(p []byte) (int, error) {
	total := len(p)
	if room := len(w.fixed) - w.fixedUsed; room > 0 && len(p) > 0 {
		n := room
		if n > len(p) {
			n = len(p)
		}
		copy(w.fixed[w.fixedUsed:], p[:n])
		w.fixedUsed += n
		p = p[n:]
	}
	if len(p) > 0 {
		w.side = append(w.side, p...)
	}
	w.total += total
	return total, nil
}

// TotalBytesWritten returns the cumulative number of bytes ever
// accepted by Write across every call, regardless of how much of that
// has since been drained to a caller's output slice.
func (w *WriteBuffer) TotalBytesWritten() int {
	return w.total
}

// BytesWrittenToFixedBuffer returns how much of the current fixed
// buffer has been filled so far this call.
func (w *WriteBuffer) BytesWrittenToFixedBuffer() int {
	return w.fixedUsed
}

// HasPendingOverflow reports whether bytes are queued in the side
// buffer, waiting for a future call's fixed buffer to have room.
func (w *WriteBuffer) HasPendingOverflow() bool {
	return len(w.side) > 0
}
