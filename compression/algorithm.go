package compression

// ID identifies an Algorithm: a 4-character mnemonic followed by a
// zero-padded 4-digit revision, e.g. "DFLT0001", "BRTL0001",
// "LZMA0001", "CSAC0001". Kept as a fixed-width string rather than an
// integer enum so a Provider preset list remains self-describing when
// printed or logged.
type ID string

// Algorithm describes one registered compression scheme along with
// the cost/ratio figures Provider.GetOptimal and Provider.GetStrong
// select on. Several Algorithm values may share the same underlying
// codec at different quality presets (e.g. "fastest", "default" and
// "strongest" deflate levels each get their own entry).
type Algorithm struct {
	ID                       ID
	Name                     string
	IsExperimental           bool
	AverageCyclesPerKilobyte float64
	AverageCompressionRatio  float64
	NewCompressor            func() Compressor
	NewDecompressor          func() Decompressor
}
