package tensorcpu

// ActivationRoutine is the numeric routine of one micro-kernel variant.
// It processes exactly the elements the window describes.
type ActivationRoutine func(src, dst *Tensor, spec *ActivationSpec, window Window)

// KernelVariant couples a hardware-specialized numeric routine with the
// predicate and metadata the heuristic selector needs: which machines may
// run it, which source dtypes it accepts, its preferred inner block width
// and its minimum workload size.
type KernelVariant struct {
	Name       string
	Supported  func(Capabilities) bool
	DTypes     []DataType
	BlockWidth int
	MWS        int
	Routine    ActivationRoutine
}

func (v *KernelVariant) supportsDType(dt DataType) bool {
	for _, d := range v.DTypes {
		if d == dt {
			return true
		}
	}
	return false
}

func anyCaps(Capabilities) bool { return true }

// activationVariants is the closed registry of activation micro-kernels,
// most specialized first: selection walks the table and takes the first
// variant whose capability predicate passes and whose dtype set contains
// the source dtype. Specialized entries therefore strictly dominate the
// generic fallbacks that follow them.
var activationVariants = []KernelVariant{
	{
		Name:       "neon_fp16_lut",
		Supported:  func(c Capabilities) bool { return c.HasASIMD && c.HasFP16 },
		DTypes:     []DataType{DTypeF16},
		BlockWidth: vectorBlockWidth,
		MWS:        mwsLutActivation,
		Routine:    activationF16Lut,
	},
	{
		Name:       "neon_qasymm8_lut",
		Supported:  func(c Capabilities) bool { return c.HasASIMD },
		DTypes:     []DataType{DTypeQASYMM8, DTypeQASYMM8Signed},
		BlockWidth: vectorBlockWidth,
		MWS:        mwsLutActivation,
		Routine:    activationQasymm8Lut,
	},
	{
		Name:       "neon_qsymm16",
		Supported:  func(c Capabilities) bool { return c.HasASIMD },
		DTypes:     []DataType{DTypeQSYMM16},
		BlockWidth: vectorBlockWidth,
		MWS:        mwsFloatActivation,
		Routine:    activationQsymm16,
	},
	{
		Name:       "avx2_fp32",
		Supported:  func(c Capabilities) bool { return c.HasAVX2 && c.HasFMA },
		DTypes:     []DataType{DTypeF32},
		BlockWidth: vectorBlockWidth,
		MWS:        mwsFloatActivation,
		Routine:    activationF32,
	},
	{
		Name:       "neon_fp32",
		Supported:  func(c Capabilities) bool { return c.HasASIMD },
		DTypes:     []DataType{DTypeF32},
		BlockWidth: vectorBlockWidth,
		MWS:        mwsFloatActivation,
		Routine:    activationF32,
	},
	{
		Name:       "generic_fp32",
		Supported:  anyCaps,
		DTypes:     []DataType{DTypeF32},
		BlockWidth: scalarBlockWidth,
		MWS:        mwsFloatActivation,
		Routine:    activationF32,
	},
	{
		Name:       "generic_fp16",
		Supported:  anyCaps,
		DTypes:     []DataType{DTypeF16},
		BlockWidth: scalarBlockWidth,
		MWS:        mwsFloatActivation,
		Routine:    activationF16,
	},
	{
		Name:       "generic_qasymm8_lut",
		Supported:  anyCaps,
		DTypes:     []DataType{DTypeQASYMM8, DTypeQASYMM8Signed},
		BlockWidth: scalarBlockWidth,
		MWS:        mwsLutActivation,
		Routine:    activationQasymm8Lut,
	},
	{
		Name:       "generic_qsymm16",
		Supported:  anyCaps,
		DTypes:     []DataType{DTypeQSYMM16},
		BlockWidth: scalarBlockWidth,
		MWS:        mwsFloatActivation,
		Routine:    activationQsymm16,
	},
}

// SelectActivationKernel picks the fastest runnable variant for the given
// configuration and derives its execution window from the source shape.
// It fails with an UnsupportedConfiguration error when no registered
// variant survives filtering, before any destination state is touched.
func SelectActivationKernel(src *TensorDescriptor, caps Capabilities) (*KernelVariant, Window, error) {
	for i := range activationVariants {
		v := &activationVariants[i]
		if !v.Supported(caps) || !v.supportsDType(src.DType) {
			continue
		}
		return v, WindowFromShape(src), nil
	}
	return nil, Window{}, NewUnsupportedError("SelectActivationKernel",
		"no micro-kernel variant supports dtype "+src.DType.String()+" on this hardware")
}
