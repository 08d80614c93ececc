package tensorcpu

// Numeric routines backing the activation kernel variants. Each processes
// exactly the iteration points of the window it is handed; sub-windows are
// disjoint in the destination, so routines never synchronize.

// activationF32 evaluates the closed-form formula per float32 element
func activationF32(src, dst *Tensor, spec *ActivationSpec, window Window) {
	in := src.Float32()
	out := dst.Float32()
	window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
		for i := x0; i < x1; i++ {
			out[offset+i] = spec.Apply(in[offset+i])
		}
	})
}

// activationF16 converts through float32 per element
func activationF16(src, dst *Tensor, spec *ActivationSpec, window Window) {
	in := src.Uint16()
	out := dst.Uint16()
	window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
		for i := x0; i < x1; i++ {
			x := Float16(in[offset+i]).ToFloat32()
			out[offset+i] = uint16(Float16FromFloat32(spec.Apply(x)))
		}
	})
}

// activationF16Lut resolves every element with one 65536-entry table lookup
func activationF16Lut(src, dst *Tensor, spec *ActivationSpec, window Window) {
	lut := spec.Lut65536
	if lut == nil {
		// Table not attached: direct evaluation matches it bit-for-bit
		activationF16(src, dst, spec, window)
		return
	}
	in := src.Uint16()
	out := dst.Uint16()
	window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
		for i := x0; i < x1; i++ {
			out[offset+i] = lut[in[offset+i]]
		}
	})
}

// activationQasymm8Lut resolves every element with one 256-entry table
// lookup. Identity and RELU never get a table attached: identity is a copy
// and RELU clamps codes at the zero point directly.
func activationQasymm8Lut(src, dst *Tensor, spec *ActivationSpec, window Window) {
	in := src.Uint8()
	out := dst.Uint8()

	if lut := spec.Lut256; lut != nil {
		// Bit-pattern indexed, so the same path serves signed and unsigned
		window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
			for i := x0; i < x1; i++ {
				out[offset+i] = lut[in[offset+i]]
			}
		})
		return
	}

	switch spec.Func {
	case ActIdentity:
		window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
			copy(out[offset+x0:offset+x1], in[offset+x0:offset+x1])
		})
	case ActRelu:
		// Quantized RELU: max(code, quantize(0)) in the code domain
		if src.Desc.DType == DTypeQASYMM8Signed {
			sIn := src.Int8()
			sOut := dst.Int8()
			zero := clampInt8(src.Desc.Quant.ZeroPoint)
			window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
				for i := x0; i < x1; i++ {
					c := sIn[offset+i]
					if c < zero {
						c = zero
					}
					sOut[offset+i] = c
				}
			})
			return
		}
		zero := clampUint8(src.Desc.Quant.ZeroPoint)
		window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
			for i := x0; i < x1; i++ {
				c := in[offset+i]
				if c < zero {
					c = zero
				}
				out[offset+i] = c
			}
		})
	default:
		panic("tensorcpu: quantized activation dispatched without a lookup table")
	}
}

// activationQsymm16 dequantizes, applies the formula and requantizes with
// the destination's mandated output quantization.
func activationQsymm16(src, dst *Tensor, spec *ActivationSpec, window Window) {
	in := src.Int16()
	out := dst.Int16()
	iq := src.Desc.Quant
	oq := dst.Desc.Quant
	window.forEachRow(src.Desc.Shape, func(offset, x0, x1 int) {
		for i := x0; i < x1; i++ {
			x := DequantizeQsymm16(in[offset+i], iq)
			out[offset+i] = QuantizeQsymm16(spec.Apply(x), oq)
		}
	})
}

func clampUint8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt8(v int) int8 {
	if v < -128 {
		return -128
	}
	if v > 127 {
		return 127
	}
	return int8(v)
}
