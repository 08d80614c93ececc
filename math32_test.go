package tensorcpu

import (
	"math"
	"testing"
)

func TestExpFloat32Accuracy(t *testing.T) {
	testCases := []float32{
		0.0, 1.0, 2.0, 5.0, 10.0, 20.0, 50.0, 85.0,
		-1.0, -2.0, -5.0, -10.0, -20.0, -50.0, -85.0,
	}

	for _, x := range testCases {
		result := ExpFloat32(x)
		expected := math.Exp(float64(x))

		if math.IsInf(expected, 1) {
			if result != math.MaxFloat32 {
				t.Errorf("ExpFloat32(%f): expected MaxFloat32 for overflow, got %f", x, result)
			}
			continue
		}
		if expected < 1e-30 {
			if result > 1e-30 {
				t.Errorf("ExpFloat32(%f): expected near-zero for underflow, got %f", x, result)
			}
			continue
		}

		relError := math.Abs(float64(result)-expected) / expected
		if relError > 1e-4 {
			t.Errorf("ExpFloat32(%f): expected %f, got %f (rel error: %e)",
				x, expected, result, relError)
		}
	}
}

func TestSigmoidFloat32Accuracy(t *testing.T) {
	testCases := []struct {
		input    float32
		expected float64
		tol      float32
	}{
		{0.0, 0.5, 1e-6},
		{1.0, 0.7310585786300049, 1e-5},
		{-1.0, 0.2689414213699951, 1e-5},
		{2.0, 0.8807970779778823, 1e-5},
		{-2.0, 0.11920292202211757, 1e-5},
		{5.0, 0.9933071490757153, 1e-5},
		{-5.0, 0.006692850924284856, 1e-5},
	}

	for _, tc := range testCases {
		result := SigmoidFloat32(tc.input)
		if math.Abs(float64(result)-tc.expected) > float64(tc.tol) {
			t.Errorf("SigmoidFloat32(%f): expected %f, got %f",
				tc.input, tc.expected, result)
		}
	}
}

func TestTanhFloat32Accuracy(t *testing.T) {
	testCases := []float32{
		0.0, 0.5, 1.0, 2.0, 3.0, 5.0, 10.0,
		-0.5, -1.0, -2.0, -3.0, -5.0, -10.0,
	}

	for _, x := range testCases {
		result := TanhFloat32(x)
		expected := math.Tanh(float64(x))

		tol := 1e-5
		if math.Abs(float64(x)) > 5 {
			tol = 1e-4
		}
		if math.Abs(float64(result)-expected) > tol {
			t.Errorf("TanhFloat32(%f): expected %f, got %f", x, expected, result)
		}
	}
}

func TestGeluFloat32Accuracy(t *testing.T) {
	testCases := []struct {
		input    float32
		expected float64
	}{
		{0.0, 0.0},
		{1.0, 0.8413447460685429},
		{-1.0, -0.15865525393145705},
		{0.5, 0.34571221824490996},
		{-0.5, -0.15430780299115956},
		{2.0, 1.9545977256749598},
		{-2.0, -0.04540227432504002},
	}

	for _, tc := range testCases {
		result := GeluFloat32(tc.input)
		if math.Abs(float64(result)-tc.expected) > 1e-3 {
			t.Errorf("GeluFloat32(%f): expected %f, got %f",
				tc.input, tc.expected, result)
		}
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, -0.5, 2.5, 65504, -65504, 0.0009765625}
	for _, v := range values {
		got := Float16FromFloat32(v).ToFloat32()
		if got != v {
			t.Errorf("float16 round trip of %v gave %v", v, got)
		}
	}

	// Values beyond the float16 range overflow to infinity
	if got := Float16FromFloat32(1e6).ToFloat32(); !math.IsInf(float64(got), 1) {
		t.Errorf("expected +Inf for float16 overflow, got %v", got)
	}
}
