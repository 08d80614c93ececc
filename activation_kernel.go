package tensorcpu

// ThreadInfo is the thread-identity token the caller's scheduler passes to
// every Run invocation.
type ThreadInfo struct {
	ThreadID   int
	NumThreads int
}

// ActivationKernel executes an elementwise activation over sub-windows of a
// tensor. Configure validates the configuration, fixes the micro-kernel
// variant and execution window, and synthesizes any lookup tables the
// variant needs; Run then dispatches one sub-window at a time and may be
// called concurrently for disjoint sub-windows.
type ActivationKernel struct {
	spec       ActivationSpec
	variant    *KernelVariant
	window     Window
	name       string
	configured bool
}

// ValidateActivationKernel checks whether the configuration is legal and a
// capable micro-kernel variant exists, without committing any state. Pure;
// callers use it for dry-run checks before allocating tensors.
func ValidateActivationKernel(src, dst *TensorDescriptor, spec ActivationSpec, caps Capabilities) error {
	if err := ValidateActivation(src, dst, spec); err != nil {
		return err
	}
	if !spec.Enabled {
		return nil
	}
	_, _, err := SelectActivationKernel(src, caps)
	return err
}

// Configure validates the configuration, selects the variant and window,
// builds and attaches lookup tables, and auto-initializes an empty
// destination descriptor from the source. Surfaces the same failures as
// ValidateActivationKernel; on error no state is committed.
func (k *ActivationKernel) Configure(src, dst *TensorDescriptor, spec ActivationSpec, caps Capabilities, luts *LutCache) error {
	const op = "ActivationKernel.Configure"

	if err := ValidateActivation(src, dst, spec); err != nil {
		return err
	}

	if !spec.Enabled {
		// Statically disabled stage: Run is a pass-through, no variant needed
		k.spec = spec
		k.variant = nil
		k.window = WindowFromShape(src)
		k.name = "ActivationKernel/disabled"
		k.configured = true
		return nil
	}

	variant, window, err := SelectActivationKernel(src, caps)
	if err != nil {
		return err
	}

	// Quantized 8-bit activations other than identity/relu run through a
	// 256-entry table mapping input codes to output codes.
	if src.DType.IsQuantizedAsymmetric() && spec.Func != ActIdentity && spec.Func != ActRelu {
		if luts == nil {
			return NewInvalidArgError(op, "quantized activation requires a LutCache")
		}
		oq := src.Quant
		if dst != nil && dst.TotalSize() != 0 {
			oq = dst.Quant
		}
		spec.Lut256 = luts.BuildOrGet256(LutKey{
			Func: spec.Func, A: spec.A, B: spec.B,
			DType:   src.DType,
			InScale: src.Quant.Scale, InZero: src.Quant.ZeroPoint,
			OutScale: oq.Scale, OutZero: oq.ZeroPoint,
		})
	}

	// The half-precision LUT variant precomputes all 65536 bit patterns
	if variant.Name == "neon_fp16_lut" {
		if luts == nil {
			return NewInvalidArgError(op, "fp16 LUT variant requires a LutCache")
		}
		spec.Lut65536 = luts.BuildOrGet65536(LutKey{
			Func: spec.Func, A: spec.A, B: spec.B,
			DType:   src.DType,
			InScale: src.Quant.Scale, InZero: src.Quant.ZeroPoint,
		})
	}

	// dst auto-initialization if not yet initialized
	if dst != nil {
		dst.InitFrom(src)
	}

	k.spec = spec
	k.variant = variant
	k.window = window
	k.name = "ActivationKernel/" + variant.Name
	k.configured = true
	return nil
}

// Run executes the activation over one sub-window of the configured window.
// A disabled spec performs no work at all. Precondition violations (running
// unconfigured, a nil routine, a sub-window escaping the configured window,
// an empty tensor pack) are programming errors and panic.
func (k *ActivationKernel) Run(pack *TensorPack, window Window, info ThreadInfo) {
	// Early exit on disabled activation
	if !k.spec.Enabled {
		return
	}

	if !k.configured {
		panic("tensorcpu: Run called on unconfigured ActivationKernel")
	}
	if k.variant == nil || k.variant.Routine == nil {
		panic("tensorcpu: ActivationKernel has no selected routine")
	}
	if !k.window.Contains(window) {
		panic("tensorcpu: sub-window escapes the configured window")
	}
	if pack == nil || pack.Empty() {
		panic("tensorcpu: ActivationKernel run with an empty tensor pack")
	}

	src := pack.Get(RoleSrc)
	dst := pack.Get(RoleDst)
	if dst == nil {
		// In-place operation
		dst = src
	}

	k.variant.Routine(src, dst, &k.spec, window)
}

// Window returns the full execution window fixed at configure time
func (k *ActivationKernel) Window() Window {
	return k.window
}

// MWS returns the selected variant's minimum workload size: the smallest
// per-thread element count worth splitting off for parallel execution.
func (k *ActivationKernel) MWS() int {
	if k.variant == nil {
		return mwsDefaultSingleThread
	}
	return k.variant.MWS
}

// Name returns the stable diagnostic name "<KernelKind>/<VariantName>"
func (k *ActivationKernel) Name() string {
	return k.name
}
