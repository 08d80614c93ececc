package tensorcpu

import "math"

// Float32-native math helpers used by the activation formulas. The direct
// float paths and the LUT synthesis both go through these, so split and
// whole-window runs of the same configuration see identical arithmetic.

// ExpFloat32 computes exp(x) with range reduction and a degree-5 polynomial
func ExpFloat32(x float32) float32 {
	// Handle overflow and underflow of the float32 range
	if x > 88.7 {
		return math.MaxFloat32
	}
	if x < -87.3 {
		return 0
	}

	// Range reduction: exp(x) = 2^k * exp(r) where x = k*ln(2) + r
	k := int(math.Floor(float64(x) / mathLn2))
	r := x - float32(k)*float32(mathLn2)

	// Remez-optimized coefficients for exp(r), r in [0, ln2)
	r2 := r * r
	r3 := r2 * r
	r4 := r2 * r2
	r5 := r4 * r

	expR := 1.0 + r +
		0.4999999701976776*r2 +
		0.1666666567325592*r3 +
		0.0416666679084301*r4 +
		0.0083333337679505*r5

	return float32(math.Ldexp(float64(expR), k))
}

// SigmoidFloat32 computes 1 / (1 + exp(-x))
func SigmoidFloat32(x float32) float32 {
	if x < -activationSaturation {
		return 0
	}
	if x > activationSaturation {
		return 1
	}

	if x >= 0 {
		return 1.0 / (1.0 + ExpFloat32(-x))
	}
	expX := ExpFloat32(x)
	return expX / (1.0 + expX)
}

// TanhFloat32 computes tanh(x)
func TanhFloat32(x float32) float32 {
	if x > activationSaturation {
		return 1
	}
	if x < -activationSaturation {
		return -1
	}

	if x >= 0 {
		if x < 0.5 {
			// Series expansion avoids cancellation for small x
			x2 := x * x
			return x * (1 - x2/3 + 2*x2*x2/15)
		}
		exp2x := ExpFloat32(2 * x)
		return (exp2x - 1) / (exp2x + 1)
	}
	return -TanhFloat32(-x)
}

// ErfFloat32 computes the error function (Abramowitz & Stegun rational
// approximation)
func ErfFloat32(x float32) float32 {
	sign := float32(1)
	if x < 0 {
		sign = -1
		x = -x
	}

	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	t := 1 / (1 + p*x)
	t2 := t * t
	t3 := t2 * t
	t4 := t2 * t2
	t5 := t4 * t

	expNegX2 := ExpFloat32(-x * x)
	polynomial := a1*t + a2*t2 + a3*t3 + a4*t4 + a5*t5

	return sign * (1 - expNegX2*polynomial)
}

// GeluFloat32 computes x * 0.5 * (1 + erf(x/sqrt(2)))
func GeluFloat32(x float32) float32 {
	return x * 0.5 * (1 + ErfFloat32(x*mathInvSqrt2))
}

// Log1pExpFloat32 computes ln(1 + exp(x)) with the soft-relu overflow guard
func Log1pExpFloat32(x float32) float32 {
	if x > softReluThreshold {
		return x
	}
	return float32(math.Log1p(float64(ExpFloat32(x))))
}
