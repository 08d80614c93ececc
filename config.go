// Package tensorcpu tuning constants
package tensorcpu

// Cache sizes for different levels (in bytes)
const (
	// L1 cache size per core (typical for modern CPUs)
	l1CacheSize = 32 * 1024

	// L2 cache size per core (typical for modern CPUs)
	l2CacheSize = 256 * 1024
)

// Kernel blocking and scheduling parameters
const (
	// Preferred inner-dimension block width for vector-friendly variants
	vectorBlockWidth = 16

	// Preferred inner-dimension block width for the scalar fallback
	scalarBlockWidth = 1

	// Minimum workload sizes: the smallest per-thread element count worth
	// splitting off. Below these, the scheduler runs single-threaded.
	mwsFloatActivation     = 4096
	mwsLutActivation       = 8192
	mwsOffsetContribution  = 2048
	mwsDefaultSingleThread = 1
)

// Numeric parameters shared by the direct float paths and LUT synthesis
const (
	// Saturation limit beyond which sigmoid/tanh clamp to their asymptotes
	activationSaturation = 10.0

	// Soft-relu switches to the identity above this input to avoid exp overflow
	softReluThreshold = 12.0
)

// Mathematical constants
const (
	mathLn2      = 0.6931471805599453094 // ln(2)
	mathInvSqrt2 = 0.7071067811865475244 // 1/sqrt(2)
)
