package tensorcpu

import (
	"golang.org/x/sys/cpu"
)

// Capabilities is a snapshot of the CPU instruction set extensions relevant
// to kernel selection. The snapshot is taken once at init and handed to the
// heuristic selector explicitly, so tests can fabricate arbitrary hardware.
type Capabilities struct {
	// ARM extensions
	HasASIMD   bool // Advanced SIMD (NEON)
	HasDotProd bool // SDOT/UDOT int8 dot product
	HasI8MM    bool // int8 matrix multiply
	HasFP16    bool // half-precision arithmetic
	HasSVE     bool // Scalable Vector Extension

	// x86 extensions
	HasAVX2   bool
	HasAVX512 bool
	HasFMA    bool
}

// Global CPU capability detection
var hostCapabilities Capabilities

func init() {
	hostCapabilities = detectCapabilities()
}

// detectCapabilities populates a Capabilities snapshot from the host CPU
func detectCapabilities() Capabilities {
	return Capabilities{
		HasASIMD:   cpu.ARM64.HasASIMD,
		HasDotProd: cpu.ARM64.HasASIMDDP,
		HasI8MM:    cpu.ARM64.HasI8MM,
		HasFP16:    cpu.ARM64.HasASIMDHP,
		HasSVE:     cpu.ARM64.HasSVE,
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512:  cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
	}
}

// DetectCapabilities returns the capability snapshot taken at process start.
func DetectCapabilities() Capabilities {
	return hostCapabilities
}

// HasAdvancedSIMD reports whether any vector extension is available at all.
func (c Capabilities) HasAdvancedSIMD() bool {
	return c.HasASIMD || c.HasAVX2 || c.HasAVX512
}

// String returns a human-readable list of the detected features.
func (c Capabilities) String() string {
	features := []struct {
		name string
		on   bool
	}{
		{"ASIMD", c.HasASIMD},
		{"DOTPROD", c.HasDotProd},
		{"I8MM", c.HasI8MM},
		{"FP16", c.HasFP16},
		{"SVE", c.HasSVE},
		{"AVX2", c.HasAVX2},
		{"AVX512", c.HasAVX512},
		{"FMA", c.HasFMA},
	}

	result := ""
	for _, f := range features {
		if !f.on {
			continue
		}
		if result != "" {
			result += ", "
		}
		result += f.name
	}
	if result == "" {
		return "no SIMD extensions detected"
	}
	return "CPU features: " + result
}
