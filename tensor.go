package tensorcpu

import (
	"fmt"
	"unsafe"
)

// DataType identifies the element type of a tensor, including its
// quantization flavor for fixed-point types.
type DataType int

const (
	// DTypeUnknown is the zero value for an uninitialized descriptor
	DTypeUnknown DataType = iota
	// DTypeF32 is IEEE-754 float32
	DTypeF32
	// DTypeF16 is IEEE-754 binary16
	DTypeF16
	// DTypeQASYMM8 is uint8 with asymmetric (scale, zero-point) quantization
	DTypeQASYMM8
	// DTypeQASYMM8Signed is int8 with asymmetric (scale, zero-point) quantization
	DTypeQASYMM8Signed
	// DTypeQSYMM16 is int16 with symmetric (pure scale) quantization
	DTypeQSYMM16
	// DTypeS32 is int32, used for GEMM accumulators
	DTypeS32
)

// String returns the data type name
func (dt DataType) String() string {
	switch dt {
	case DTypeF32:
		return "F32"
	case DTypeF16:
		return "F16"
	case DTypeQASYMM8:
		return "QASYMM8"
	case DTypeQASYMM8Signed:
		return "QASYMM8_SIGNED"
	case DTypeQSYMM16:
		return "QSYMM16"
	case DTypeS32:
		return "S32"
	default:
		return "UNKNOWN"
	}
}

// Size returns the element size in bytes
func (dt DataType) Size() int {
	switch dt {
	case DTypeQASYMM8, DTypeQASYMM8Signed:
		return 1
	case DTypeF16, DTypeQSYMM16:
		return 2
	case DTypeF32, DTypeS32:
		return 4
	default:
		return 0
	}
}

// IsQuantized reports whether the type carries quantization info
func (dt DataType) IsQuantized() bool {
	switch dt {
	case DTypeQASYMM8, DTypeQASYMM8Signed, DTypeQSYMM16:
		return true
	}
	return false
}

// IsQuantizedAsymmetric reports whether the type is 8-bit asymmetric
func (dt DataType) IsQuantizedAsymmetric() bool {
	return dt == DTypeQASYMM8 || dt == DTypeQASYMM8Signed
}

// IsQuantizedSymmetric reports whether the type is 16-bit symmetric
func (dt DataType) IsQuantizedSymmetric() bool {
	return dt == DTypeQSYMM16
}

// QuantizationInfo holds the affine mapping between quantized codes and
// real values: real = scale * (code - zero_point).
type QuantizationInfo struct {
	Scale     float32
	ZeroPoint int
	// Dynamic marks tensors whose quantization parameters are computed at
	// runtime rather than fixed at model-build time. Statically quantized
	// 8-bit tensors admit only the ReLU activation family.
	Dynamic bool
}

// Equal compares scale and zero point; the Dynamic flag is bookkeeping, not
// part of the numeric mapping.
func (q QuantizationInfo) Equal(other QuantizationInfo) bool {
	return q.Scale == other.Scale && q.ZeroPoint == other.ZeroPoint
}

// TensorDescriptor carries the semantic metadata of a tensor: shape, element
// type and quantization. It holds no data and must not be mutated while any
// kernel call reading it is in flight.
//
// Shape is ordered innermost-first: Shape[0] is the contiguous dimension.
type TensorDescriptor struct {
	Shape []int
	DType DataType
	Quant QuantizationInfo
}

// NewTensorDescriptor builds a descriptor with the given innermost-first shape
func NewTensorDescriptor(dtype DataType, shape ...int) *TensorDescriptor {
	return &TensorDescriptor{Shape: shape, DType: dtype}
}

// WithQuant returns the descriptor with quantization info attached
func (d *TensorDescriptor) WithQuant(q QuantizationInfo) *TensorDescriptor {
	d.Quant = q
	return d
}

// NumElements returns the total element count, 0 for an empty descriptor
func (d *TensorDescriptor) NumElements() int {
	if len(d.Shape) == 0 {
		return 0
	}
	n := 1
	for _, dim := range d.Shape {
		n *= dim
	}
	return n
}

// TotalSize returns the allocated size in bytes. A descriptor with zero
// total size is uninitialized and eligible for auto-initialization at
// configure time.
func (d *TensorDescriptor) TotalSize() int {
	return d.NumElements() * d.DType.Size()
}

// Dim returns the extent of dimension i, or 1 when the descriptor has fewer
// dimensions. Matches broadcast-style indexing used by the window helpers.
func (d *TensorDescriptor) Dim(i int) int {
	if i >= len(d.Shape) {
		return 1
	}
	return d.Shape[i]
}

// SameShape reports whether two descriptors have identical extents
func (d *TensorDescriptor) SameShape(other *TensorDescriptor) bool {
	if len(d.Shape) != len(other.Shape) {
		return false
	}
	for i, dim := range d.Shape {
		if other.Shape[i] != dim {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the descriptor
func (d *TensorDescriptor) Clone() *TensorDescriptor {
	shape := make([]int, len(d.Shape))
	copy(shape, d.Shape)
	return &TensorDescriptor{Shape: shape, DType: d.DType, Quant: d.Quant}
}

// InitFrom copies shape, dtype and quantization from src into an empty
// descriptor. No-op when the descriptor already has a nonzero size.
func (d *TensorDescriptor) InitFrom(src *TensorDescriptor) {
	if d.TotalSize() != 0 {
		return
	}
	c := src.Clone()
	d.Shape = c.Shape
	d.DType = c.DType
	d.Quant = c.Quant
}

func (d *TensorDescriptor) String() string {
	return fmt.Sprintf("%v %s", d.Shape, d.DType)
}

// Tensor couples a descriptor with a raw element buffer. The typed accessors
// reinterpret the buffer in place; callers index them with window coordinates.
type Tensor struct {
	Desc *TensorDescriptor
	Data []byte
}

// NewTensor allocates a zeroed tensor for the given descriptor
func NewTensor(desc *TensorDescriptor) *Tensor {
	return &Tensor{Desc: desc, Data: make([]byte, desc.TotalSize())}
}

// Float32 reinterprets the buffer as []float32
func (t *Tensor) Float32() []float32 {
	if len(t.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.Data[0])), len(t.Data)/4)
}

// Uint16 reinterprets the buffer as []uint16 (raw float16 bit patterns)
func (t *Tensor) Uint16() []uint16 {
	if len(t.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&t.Data[0])), len(t.Data)/2)
}

// Uint8 reinterprets the buffer as []uint8
func (t *Tensor) Uint8() []uint8 {
	return t.Data
}

// Int8 reinterprets the buffer as []int8
func (t *Tensor) Int8() []int8 {
	if len(t.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*int8)(unsafe.Pointer(&t.Data[0])), len(t.Data))
}

// Int16 reinterprets the buffer as []int16
func (t *Tensor) Int16() []int16 {
	if len(t.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*int16)(unsafe.Pointer(&t.Data[0])), len(t.Data)/2)
}

// Int32 reinterprets the buffer as []int32
func (t *Tensor) Int32() []int32 {
	if len(t.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&t.Data[0])), len(t.Data)/4)
}

// TensorRole tags the position a tensor occupies in a kernel invocation
type TensorRole int

const (
	// RoleSrc is the primary input tensor
	RoleSrc TensorRole = iota
	// RoleDst is the output tensor
	RoleDst
	// RoleVectorSumCol carries per-column sums of the right-hand GEMM operand
	RoleVectorSumCol
	// RoleVectorSumRow carries per-row sums of the left-hand GEMM operand
	RoleVectorSumRow
)

// TensorPack is the role-tagged tensor map kernels are invoked with.
// It is the only state a Run call reads besides the sub-window and the
// thread-identity token.
type TensorPack struct {
	tensors map[TensorRole]*Tensor
}

// NewTensorPack creates an empty pack
func NewTensorPack() *TensorPack {
	return &TensorPack{tensors: make(map[TensorRole]*Tensor)}
}

// Add registers a tensor under a role, replacing any previous binding
func (p *TensorPack) Add(role TensorRole, t *Tensor) {
	p.tensors[role] = t
}

// Get returns the tensor bound to role, or nil
func (p *TensorPack) Get(role TensorRole) *Tensor {
	return p.tensors[role]
}

// Empty reports whether no tensors are bound
func (p *TensorPack) Empty() bool {
	return len(p.tensors) == 0
}
