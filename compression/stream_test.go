package compression

// compress drives c to completion over data, feeding input in chunks
// of at most inputChunk bytes and draining through an output buffer of
// exactly outputChunk bytes, the way a real caller bounded on both
// sides would.
func compress(c Compressor, data []byte, inputChunk, outputChunk int) ([]byte, error) {
	var result []byte
	out := make([]byte, outputChunk)
	remaining := data
	for len(remaining) > 0 {
		n := inputChunk
		if n > len(remaining) {
			n = len(remaining)
		}
		chunk := remaining[:n]
		for {
			inputLen := len(chunk)
			outputLen := 0
			reason, err := c.Process(chunk, &inputLen, out, &outputLen)
			if err != nil {
				return nil, err
			}
			result = append(result, out[:outputLen]...)
			chunk = chunk[len(chunk)-inputLen:]
			if reason == InputBufferExhausted {
				break
			}
		}
		remaining = remaining[n:]
	}
	for {
		outputLen := 0
		reason, err := c.Finish(out, &outputLen)
		if err != nil {
			return nil, err
		}
		result = append(result, out[:outputLen]...)
		if reason == Finished {
			break
		}
	}
	return result, nil
}

// decompress is compress's dual.
func decompress(d Decompressor, data []byte, inputChunk, outputChunk int) ([]byte, error) {
	var result []byte
	out := make([]byte, outputChunk)
	remaining := data
	for len(remaining) > 0 {
		n := inputChunk
		if n > len(remaining) {
			n = len(remaining)
		}
		chunk := remaining[:n]
		for {
			inputLen := len(chunk)
			outputLen := 0
			reason, err := d.Process(chunk, &inputLen, out, &outputLen)
			if err != nil {
				return nil, err
			}
			result = append(result, out[:outputLen]...)
			chunk = chunk[len(chunk)-inputLen:]
			if reason == InputBufferExhausted {
				break
			}
		}
		remaining = remaining[n:]
	}
	for {
		outputLen := 0
		reason, err := d.Finish(out, &outputLen)
		if err != nil {
			return nil, err
		}
		result = append(result, out[:outputLen]...)
		if reason == Finished {
			break
		}
	}
	return result, nil
}

// roundTrip compresses then decompresses data through the given
// algorithm, returning the recovered bytes.
func roundTrip(alg Algorithm, data []byte, inputChunk, outputChunk int) ([]byte, error) {
	compressed, err := compress(alg.NewCompressor(), data, inputChunk, outputChunk)
	if err != nil {
		return nil, err
	}
	return decompress(alg.NewDecompressor(), compressed, inputChunk, outputChunk)
}
