// Package tensorcpu tolerance-based verification for floating-point comparisons
package tensorcpu

import (
	"math"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float32

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float32

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol int
}

// DefaultTolerance returns default tolerance configuration
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-7,
		RelTol: 1e-5,
		ULPTol: 4,
	}
}

// OneULPTolerance admits differences of at most one ULP; the partition
// equivalence guarantee for the direct floating-point paths.
func OneULPTolerance() ToleranceConfig {
	return ToleranceConfig{
		ULPTol: 1,
	}
}

// Float32NearEqual checks if two float32 values are equal within tolerance
func Float32NearEqual(a, b float32, tol ToleranceConfig) bool {
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return true
	}
	if a == b {
		return true
	}

	diff := math.Abs(float64(a - b))

	if diff <= float64(tol.AbsTol) {
		return true
	}

	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if diff <= larger*float64(tol.RelTol) {
		return true
	}

	if tol.ULPTol > 0 {
		return Float32ULPDiff(a, b) <= tol.ULPTol
	}

	return false
}

// Float32ULPDiff computes the difference in ULPs between two float32 values
func Float32ULPDiff(a, b float32) int {
	aBits := math.Float32bits(a)
	bBits := math.Float32bits(b)

	// Different signs cannot use simple bit subtraction
	if (aBits^bBits)&0x80000000 != 0 {
		if a == b {
			return 0 // +0 and -0
		}
		return math.MaxInt32
	}

	if aBits > bBits {
		return int(aBits - bBits)
	}
	return int(bBits - aBits)
}
