package types

// SamplingPolicy configures the Content Sampler's full-read vs. head+tail
// vs. nothing decision. Zero value is invalid; use DefaultSamplingPolicy.
type SamplingPolicy struct {
	CoverageFraction   float64 // target fraction of bytes to sample
	HeadFraction       float64 // share of CoverageFraction taken from the start
	TailFraction       float64 // remainder taken from the end
	SmallFileThreshold uint64  // files at or below this size are read in full
	MaxBytes           uint64  // hard upper bound on stored content
	MinHeadBytes       uint64  // minimum head size when budget permits
	MinTailBytes       uint64  // minimum tail size when budget permits
	SniffBytes         int     // prefix size used for binary detection
}

// DefaultSamplingPolicy returns the system's default sampling policy.
func DefaultSamplingPolicy() SamplingPolicy {
	return SamplingPolicy{
		CoverageFraction:   0.10,
		HeadFraction:       0.08,
		TailFraction:       0.02,
		SmallFileThreshold: 128 * 1024,
		MaxBytes:           CoverageCapBytes,
		MinHeadBytes:       4 * 1024,
		MinTailBytes:       1 * 1024,
		SniffBytes:         8192,
	}
}
