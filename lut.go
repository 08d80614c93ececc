package tensorcpu

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Lut256 maps every 8-bit quantized input code to its quantized output code.
// For QASYMM8_SIGNED tensors the index and entries are the int8 bit patterns.
type Lut256 [256]uint8

// Lut65536 maps every 16-bit input code to its output code. The F16 LUT
// variant indexes it with raw float16 bit patterns and reads back the
// float16 bit pattern of f(x).
type Lut65536 [65536]uint16

// LutKey identifies a synthesized table. Two requests with equal keys are
// guaranteed to observe bit-identical table contents.
type LutKey struct {
	Func     ActivationFunction
	A        float32
	B        float32
	DType    DataType
	InScale  float32
	InZero   int
	OutScale float32
	OutZero  int
}

// id returns the singleflight key
func (k LutKey) id() string {
	return fmt.Sprintf("%d/%b/%b/%d/%b/%d/%b/%d",
		k.Func, k.A, k.B, k.DType, k.InScale, k.InZero, k.OutScale, k.OutZero)
}

// LutCache synthesizes and memoizes activation lookup tables. It is an
// explicit object rather than a process-wide singleton; share one instance
// across all kernels that should reuse tables. Entries are built lazily on
// first request and never evicted.
//
// Concurrent first-time requests for the same key collapse to exactly one
// synthesis pass; reads after the first build go through sync.Map without
// further synchronization.
type LutCache struct {
	tables256   sync.Map // LutKey -> *Lut256
	tables65536 sync.Map // LutKey -> *Lut65536
	group       singleflight.Group
}

// NewLutCache creates an empty cache
func NewLutCache() *LutCache {
	return &LutCache{}
}

// BuildOrGet256 returns the 256-entry table for key, synthesizing it on
// first request. The returned table is shared and must not be written to.
func (c *LutCache) BuildOrGet256(key LutKey) *Lut256 {
	if v, ok := c.tables256.Load(key); ok {
		return v.(*Lut256)
	}
	v, _, _ := c.group.Do("lut256/"+key.id(), func() (interface{}, error) {
		if v, ok := c.tables256.Load(key); ok {
			return v, nil
		}
		t := synthesize256(key)
		c.tables256.Store(key, t)
		return t, nil
	})
	return v.(*Lut256)
}

// BuildOrGet65536 returns the 65536-entry table for key, synthesizing it on
// first request. The returned table is shared and must not be written to.
func (c *LutCache) BuildOrGet65536(key LutKey) *Lut65536 {
	if v, ok := c.tables65536.Load(key); ok {
		return v.(*Lut65536)
	}
	v, _, _ := c.group.Do("lut65536/"+key.id(), func() (interface{}, error) {
		if v, ok := c.tables65536.Load(key); ok {
			return v, nil
		}
		t := synthesize65536(key)
		c.tables65536.Store(key, t)
		return t, nil
	})
	return v.(*Lut65536)
}

// synthesize256 walks every 8-bit input code: dequantize with the input
// scale/zero-point, apply the activation's closed-form formula, requantize
// with the output scale/zero-point.
func synthesize256(key LutKey) *Lut256 {
	spec := ActivationSpec{Func: key.Func, A: key.A, B: key.B, Enabled: true}
	in := QuantizationInfo{Scale: key.InScale, ZeroPoint: key.InZero}
	out := QuantizationInfo{Scale: key.OutScale, ZeroPoint: key.OutZero}

	t := new(Lut256)
	for i := 0; i < 256; i++ {
		var x float32
		if key.DType == DTypeQASYMM8 {
			x = DequantizeQasymm8(uint8(i), in)
		} else {
			x = DequantizeQasymm8Signed(int8(uint8(i)), in)
		}
		y := spec.Apply(x)
		if key.DType == DTypeQASYMM8 {
			t[i] = QuantizeQasymm8(y, out)
		} else {
			t[i] = uint8(QuantizeQasymm8Signed(y, out))
		}
	}
	return t
}

// synthesize65536 walks every float16 bit pattern and stores the float16
// bit pattern of f(x). Quantization fields of the key are unused here; the
// key still carries them so F16 tables and quantized tables never collide.
func synthesize65536(key LutKey) *Lut65536 {
	spec := ActivationSpec{Func: key.Func, A: key.A, B: key.B, Enabled: true}

	t := new(Lut65536)
	for i := 0; i < 65536; i++ {
		x := Float16(i).ToFloat32()
		y := spec.Apply(x)
		t[i] = uint16(Float16FromFloat32(y))
	}
	return t
}
