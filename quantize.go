package tensorcpu

import "math"

// Quantization helpers for the fixed-point domains. real = scale*(code-zp)
// for the asymmetric 8-bit types, real = scale*code for symmetric 16-bit.

// DequantizeQasymm8 maps a uint8 code to its real value
func DequantizeQasymm8(code uint8, q QuantizationInfo) float32 {
	return q.Scale * float32(int(code)-q.ZeroPoint)
}

// QuantizeQasymm8 maps a real value to the nearest uint8 code, saturating
func QuantizeQasymm8(v float32, q QuantizationInfo) uint8 {
	code := int(math.Round(float64(v/q.Scale))) + q.ZeroPoint
	if code < 0 {
		code = 0
	} else if code > 255 {
		code = 255
	}
	return uint8(code)
}

// DequantizeQasymm8Signed maps an int8 code to its real value
func DequantizeQasymm8Signed(code int8, q QuantizationInfo) float32 {
	return q.Scale * float32(int(code)-q.ZeroPoint)
}

// QuantizeQasymm8Signed maps a real value to the nearest int8 code, saturating
func QuantizeQasymm8Signed(v float32, q QuantizationInfo) int8 {
	code := int(math.Round(float64(v/q.Scale))) + q.ZeroPoint
	if code < -128 {
		code = -128
	} else if code > 127 {
		code = 127
	}
	return int8(code)
}

// DequantizeQsymm16 maps an int16 code to its real value
func DequantizeQsymm16(code int16, q QuantizationInfo) float32 {
	return q.Scale * float32(code)
}

// QuantizeQsymm16 maps a real value to the nearest int16 code, saturating
func QuantizeQsymm16(v float32, q QuantizationInfo) int16 {
	code := int(math.Round(float64(v / q.Scale)))
	if code < math.MinInt16 {
		code = math.MinInt16
	} else if code > math.MaxInt16 {
		code = math.MaxInt16
	}
	return int16(code)
}
