package tensorcpu

import "math"

// ActivationFunction enumerates the supported elementwise activations.
// Apply is the single place every function is evaluated; adding a value here
// forces Apply, the validator whitelists and their tests to be revisited.
type ActivationFunction int

const (
	// ActIdentity is f(x) = x
	ActIdentity ActivationFunction = iota
	// ActRelu is f(x) = max(0, x)
	ActRelu
	// ActBoundedRelu is f(x) = min(a, max(0, x))
	ActBoundedRelu
	// ActLUBoundedRelu is f(x) = min(a, max(b, x))
	ActLUBoundedRelu
	// ActLeakyRelu is f(x) = x for x > 0, a*x otherwise
	ActLeakyRelu
	// ActLogistic is f(x) = 1 / (1 + exp(-x))
	ActLogistic
	// ActTanh is f(x) = a * tanh(b*x)
	ActTanh
	// ActSoftRelu is f(x) = ln(1 + exp(x)), switching to x above the overflow guard
	ActSoftRelu
	// ActElu is f(x) = x for x >= 0, a*(exp(x)-1) otherwise
	ActElu
	// ActSqrt is f(x) = sqrt(x)
	ActSqrt
	// ActSquare is f(x) = x^2
	ActSquare
	// ActAbs is f(x) = |x|
	ActAbs
	// ActLinear is f(x) = a*x + b
	ActLinear
	// ActSwish is f(x) = x / (1 + exp(-a*x))
	ActSwish
	// ActHardSwish is f(x) = x * clamp(x+3, 0, 6) / 6
	ActHardSwish
	// ActGelu is f(x) = x * 0.5 * (1 + erf(x/sqrt(2)))
	ActGelu
)

// String returns the activation function name
func (f ActivationFunction) String() string {
	switch f {
	case ActIdentity:
		return "IDENTITY"
	case ActRelu:
		return "RELU"
	case ActBoundedRelu:
		return "BOUNDED_RELU"
	case ActLUBoundedRelu:
		return "LU_BOUNDED_RELU"
	case ActLeakyRelu:
		return "LEAKY_RELU"
	case ActLogistic:
		return "LOGISTIC"
	case ActTanh:
		return "TANH"
	case ActSoftRelu:
		return "SOFT_RELU"
	case ActElu:
		return "ELU"
	case ActSqrt:
		return "SQRT"
	case ActSquare:
		return "SQUARE"
	case ActAbs:
		return "ABS"
	case ActLinear:
		return "LINEAR"
	case ActSwish:
		return "SWISH"
	case ActHardSwish:
		return "HARD_SWISH"
	case ActGelu:
		return "GELU"
	default:
		return "UNKNOWN"
	}
}

// ActivationSpec describes one activation stage: the function, its two
// scalar parameters and whether the stage is enabled at all. Configure may
// attach lookup tables for the quantized and half-precision paths.
type ActivationSpec struct {
	Func    ActivationFunction
	A       float32
	B       float32
	Enabled bool

	// Attached by ActivationKernel.Configure for quantized 8-bit sources
	Lut256 *Lut256
	// Attached by ActivationKernel.Configure for the F16 LUT variant
	Lut65536 *Lut65536
}

// Apply evaluates the activation's closed-form floating-point formula.
// This is the one exhaustive match over the function enumeration: the direct
// float routines and LUT synthesis both call it.
func (s ActivationSpec) Apply(x float32) float32 {
	switch s.Func {
	case ActIdentity:
		return x
	case ActRelu:
		if x < 0 {
			return 0
		}
		return x
	case ActBoundedRelu:
		return minf(s.A, maxf(0, x))
	case ActLUBoundedRelu:
		return minf(s.A, maxf(s.B, x))
	case ActLeakyRelu:
		if x > 0 {
			return x
		}
		return s.A * x
	case ActLogistic:
		return SigmoidFloat32(x)
	case ActTanh:
		return s.A * TanhFloat32(s.B*x)
	case ActSoftRelu:
		return Log1pExpFloat32(x)
	case ActElu:
		if x >= 0 {
			return x
		}
		return s.A * (ExpFloat32(x) - 1)
	case ActSqrt:
		return float32(math.Sqrt(float64(x)))
	case ActSquare:
		return x * x
	case ActAbs:
		if x < 0 {
			return -x
		}
		return x
	case ActLinear:
		return s.A*x + s.B
	case ActSwish:
		return x * SigmoidFloat32(s.A*x)
	case ActHardSwish:
		return x * minf(maxf(x+3, 0), 6) * (1.0 / 6.0)
	case ActGelu:
		return GeluFloat32(x)
	default:
		panic("tensorcpu: unhandled activation function")
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
