package compression

import "fmt"

// assumedCPUHz is the reference clock Provider.GetOptimal scales its
// cycle budget against. The absolute number only matters relative to
// each Algorithm's own AverageCyclesPerKilobyte figures, which are
// calibrated against the same assumption.
const assumedCPUHz = 3_000_000_000

// Provider is a registry of compiled-in compression algorithms,
// mirroring the original CompressionProvider's enumerate-everything-
// compiled-in construction (spec.md §4.11) — except where the C++
// original gates each backend behind a build-time preprocessor flag,
// every backend here is a pure-Go dependency and always available;
// ProviderOption.WithoutAlgorithm is the runtime equivalent of
// disabling one at build time.
type Provider struct {
	algorithms []Algorithm
}

// ProviderOption configures a Provider at construction.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	excluded map[ID]bool
}

// WithoutAlgorithm excludes the algorithm with the given id from the
// provider being constructed.
func WithoutAlgorithm(id ID) ProviderOption {
	return func(c *providerConfig) {
		if c.excluded == nil {
			c.excluded = make(map[ID]bool)
		}
		c.excluded[id] = true
	}
}

// NewProvider builds a Provider with three presets (Fastest, Default,
// Strongest) registered for each of the four built-in algorithms,
// applying any exclusions opts request.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := providerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	candidates := make([]Algorithm, 0, 12)
	candidates = append(candidates, deflateAlgorithms()...)
	candidates = append(candidates, brotliAlgorithms()...)
	candidates = append(candidates, lzmaAlgorithms()...)
	candidates = append(candidates, cscAlgorithms()...)

	p := &Provider{}
	for _, a := range candidates {
		if cfg.excluded[a.ID] {
			continue
		}
		p.algorithms = append(p.algorithms, a)
	}
	return p
}

// Count returns the number of registered algorithm presets.
func (p *Provider) Count() int {
	return len(p.algorithms)
}

// GetByIndex returns the algorithm at the given enumeration index.
func (p *Provider) GetByIndex(index int) (Algorithm, error) {
	if index < 0 || index >= len(p.algorithms) {
		return Algorithm{}, ErrUnknownAlgorithm
	}
	return p.algorithms[index], nil
}

// Get looks up a registered algorithm by its 8-byte id.
func (p *Provider) Get(id ID) (Algorithm, error) {
	for _, a := range p.algorithms {
		if a.ID == id {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
}

// GetOptimal picks the strongest registered algorithm whose
// AverageCyclesPerKilobyte fits the time budget implied by
// uncompressedSize and timeBudgetSeconds, falling back to the fastest
// algorithm if none qualifies.
func (p *Provider) GetOptimal(uncompressedSize int, timeBudgetSeconds float64) (Algorithm, error) {
	if uncompressedSize <= 0 || timeBudgetSeconds <= 0 {
		return Algorithm{}, ErrInvalidArgument
	}
	if len(p.algorithms) == 0 {
		return Algorithm{}, ErrUnknownAlgorithm
	}

	kilobytes := float64(uncompressedSize) / 1024.0
	maxCyclesPerKilobyte := assumedCPUHz * timeBudgetSeconds / kilobytes

	var best *Algorithm
	var fastest *Algorithm
	for i := range p.algorithms {
		a := &p.algorithms[i]
		if fastest == nil || a.AverageCyclesPerKilobyte < fastest.AverageCyclesPerKilobyte {
			fastest = a
		}
		if a.AverageCyclesPerKilobyte >= maxCyclesPerKilobyte {
			continue
		}
		if best == nil || betterOrTied(*a, *best) {
			best = a
		}
	}
	if best == nil {
		return *fastest, nil
	}
	return *best, nil
}

// GetStrong returns the strongest algorithm whose cycles-per-kilobyte
// is below lowest + factor*(highest-lowest) among all registered
// algorithms, where factor is clamped to [0, 1].
func (p *Provider) GetStrong(performanceFactor float64) (Algorithm, error) {
	if len(p.algorithms) == 0 {
		return Algorithm{}, ErrUnknownAlgorithm
	}
	if performanceFactor < 0 {
		performanceFactor = 0
	}
	if performanceFactor > 1 {
		performanceFactor = 1
	}

	lowest := p.algorithms[0].AverageCyclesPerKilobyte
	highest := p.algorithms[0].AverageCyclesPerKilobyte
	for _, a := range p.algorithms[1:] {
		if a.AverageCyclesPerKilobyte < lowest {
			lowest = a.AverageCyclesPerKilobyte
		}
		if a.AverageCyclesPerKilobyte > highest {
			highest = a.AverageCyclesPerKilobyte
		}
	}
	threshold := lowest + performanceFactor*(highest-lowest)

	var best *Algorithm
	for i := range p.algorithms {
		a := &p.algorithms[i]
		if a.AverageCyclesPerKilobyte >= threshold {
			continue
		}
		if best == nil || betterOrTied(*a, *best) {
			best = a
		}
	}
	if best == nil {
		// threshold excluded everything (threshold == lowest, as when
		// performanceFactor == 0 or every algorithm has the same cost,
		// since the comparison above is strict): fall back to the
		// lowest-cycle algorithm, the lower compression ratio winning
		// a tie.
		for i := range p.algorithms {
			a := &p.algorithms[i]
			if best == nil || a.AverageCyclesPerKilobyte < best.AverageCyclesPerKilobyte ||
				(a.AverageCyclesPerKilobyte == best.AverageCyclesPerKilobyte && a.AverageCompressionRatio < best.AverageCompressionRatio) {
				best = a
			}
		}
	}
	return *best, nil
}

// betterOrTied reports whether candidate should replace current as
// the "strongest qualifying" algorithm: a strictly higher cost is
// stronger, and on a tie the lower compression ratio (more
// compression) wins.
func betterOrTied(candidate, current Algorithm) bool {
	if candidate.AverageCyclesPerKilobyte != current.AverageCyclesPerKilobyte {
		return candidate.AverageCyclesPerKilobyte > current.AverageCyclesPerKilobyte
	}
	return candidate.AverageCompressionRatio < current.AverageCompressionRatio
}
