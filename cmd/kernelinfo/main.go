// Command kernelinfo reports the detected CPU capability snapshot and the
// micro-kernel variant the heuristic selector picks for representative
// activation configurations.
package main

import (
	"fmt"

	"github.com/mason20240920/tensorcpu"
)

func main() {
	caps := tensorcpu.DetectCapabilities()
	fmt.Println(caps)
	fmt.Println()

	configs := []struct {
		label string
		desc  *tensorcpu.TensorDescriptor
	}{
		{"float32", tensorcpu.NewTensorDescriptor(tensorcpu.DTypeF32, 1024, 1024)},
		{"float16", tensorcpu.NewTensorDescriptor(tensorcpu.DTypeF16, 1024, 1024)},
		{"qasymm8", tensorcpu.NewTensorDescriptor(tensorcpu.DTypeQASYMM8, 1024, 1024).
			WithQuant(tensorcpu.QuantizationInfo{Scale: 1.0 / 255.0, ZeroPoint: 0, Dynamic: true})},
		{"qasymm8_signed", tensorcpu.NewTensorDescriptor(tensorcpu.DTypeQASYMM8Signed, 1024, 1024).
			WithQuant(tensorcpu.QuantizationInfo{Scale: 1.0 / 127.0, ZeroPoint: 0, Dynamic: true})},
		{"qsymm16", tensorcpu.NewTensorDescriptor(tensorcpu.DTypeQSYMM16, 1024, 1024).
			WithQuant(tensorcpu.QuantizationInfo{Scale: 1.0 / 32768.0, ZeroPoint: 0})},
	}

	fmt.Println("Selected activation variants:")
	for _, cfg := range configs {
		variant, _, err := tensorcpu.SelectActivationKernel(cfg.desc, caps)
		if err != nil {
			fmt.Printf("  %-16s %v\n", cfg.label, err)
			continue
		}
		fmt.Printf("  %-16s %s (mws=%d, block=%d)\n",
			cfg.label, variant.Name, variant.MWS, variant.BlockWidth)
	}
}
