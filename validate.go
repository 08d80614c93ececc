package tensorcpu

// Per-quantization-domain activation legality. The whitelists are closed:
// every function not listed for a domain is rejected for that domain.

// qasymm8Activations are the functions the 8-bit asymmetric domain supports
// when the quantization is dynamic.
var qasymm8Activations = map[ActivationFunction]bool{
	ActRelu:          true,
	ActBoundedRelu:   true,
	ActLUBoundedRelu: true,
	ActLogistic:      true,
	ActTanh:          true,
	ActHardSwish:     true,
	ActLeakyRelu:     true,
	ActGelu:          true,
}

// qasymm8StaticActivations are the functions statically quantized
// (non-dynamic) 8-bit tensors support. Only the relu family is allowed;
// the rule is preserved verbatim from the reference behavior.
var qasymm8StaticActivations = map[ActivationFunction]bool{
	ActRelu:          true,
	ActBoundedRelu:   true,
	ActLUBoundedRelu: true,
}

// qsymm16Activations are the functions the 16-bit symmetric domain supports
var qsymm16Activations = map[ActivationFunction]bool{
	ActLogistic: true,
	ActTanh:     true,
}

// mandatedOutputQuant returns the exact output quantization a
// (function, domain) pair requires, or ok=false when the pair is
// unconstrained. A wrong scale or zero point here silently corrupts a
// network layer, so validation rejects anything but an exact match.
func mandatedOutputQuant(f ActivationFunction, dtype DataType) (QuantizationInfo, bool) {
	switch dtype {
	case DTypeQASYMM8:
		switch f {
		case ActTanh:
			return QuantizationInfo{Scale: 1.0 / 128.0, ZeroPoint: 128}, true
		case ActLogistic:
			return QuantizationInfo{Scale: 1.0 / 256.0, ZeroPoint: 0}, true
		}
	case DTypeQASYMM8Signed:
		switch f {
		case ActTanh:
			return QuantizationInfo{Scale: 1.0 / 128.0, ZeroPoint: 0}, true
		case ActLogistic:
			return QuantizationInfo{Scale: 1.0 / 256.0, ZeroPoint: -128}, true
		}
	case DTypeQSYMM16:
		switch f {
		case ActTanh, ActLogistic:
			return QuantizationInfo{Scale: 1.0 / 32768.0, ZeroPoint: 0}, true
		}
	}
	return QuantizationInfo{}, false
}

// ValidateActivation checks that the requested activation configuration is
// legal for the source's quantization domain. It is pure and side-effect
// free, composes all checks and returns the first violation found; callers
// use it for dry-run configuration checks before committing resources.
//
// dst may be nil (in-place operation) or an empty descriptor pending
// auto-initialization; when dst carries a nonzero allocated size its shape
// and dtype must match the source exactly.
func ValidateActivation(src, dst *TensorDescriptor, spec ActivationSpec) error {
	const op = "ValidateActivation"

	if src == nil {
		return NewInvalidArgError(op, "source descriptor is nil")
	}
	if !spec.Enabled {
		// Statically disabled stage: run is a no-op, nothing to check
		return nil
	}

	switch src.DType {
	case DTypeF32, DTypeF16, DTypeQASYMM8, DTypeQASYMM8Signed, DTypeQSYMM16:
	default:
		return NewUnsupportedError(op, "data type "+src.DType.String()+" not supported for activation")
	}

	f := spec.Func

	if src.DType.IsQuantizedAsymmetric() {
		if !src.Quant.Dynamic && !qasymm8StaticActivations[f] {
			return NewUnsupportedError(op,
				"for statically quantized 8-bit tensors only RELU and lower/upper bounded RELU are supported, got "+f.String())
		}
		if !qasymm8Activations[f] {
			return NewUnsupportedError(op,
				"activation "+f.String()+" not supported in the 8-bit asymmetric domain")
		}
	}

	if src.DType.IsQuantizedSymmetric() && !qsymm16Activations[f] {
		return NewUnsupportedError(op,
			"for 16-bit symmetric tensors only LOGISTIC and TANH are supported, got "+f.String())
	}

	// TANH and LOGISTIC mandate the output quantization exactly per domain
	if want, ok := mandatedOutputQuant(f, src.DType); ok {
		oq := src.Quant
		if dst != nil {
			oq = dst.Quant
		}
		if !oq.Equal(want) {
			return NewInvalidArgError(op,
				"output quantization for "+f.String()+" on "+src.DType.String()+
					" must be exactly the mandated (scale, zero_point) pair")
		}
	}

	// Checks performed once dst is configured
	if dst != nil && dst.TotalSize() != 0 {
		if !src.SameShape(dst) {
			return NewInvalidArgError(op, "source and destination shapes do not match")
		}
		if src.DType != dst.DType {
			return NewInvalidArgError(op, "source and destination data types do not match")
		}
	}

	return nil
}
