// Package tensorcpu implements the CPU-side operator execution core of a
// tensor-compute library: capability-driven micro-kernel selection, per
// quantization-domain validation, memoized quantization lookup tables, and
// windowed parallel execution of elementwise activation and quantized-GEMM
// offset-correction kernels.
//
// The core is deliberately small: callers own tensor lifetimes and thread
// scheduling, and hand work to a configured kernel one sub-window at a time.
// A typical activation invocation looks like:
//
//	caps := tensorcpu.DetectCapabilities()
//	luts := tensorcpu.NewLutCache()
//
//	k := &tensorcpu.ActivationKernel{}
//	if err := k.Configure(srcDesc, dstDesc, spec, caps, luts); err != nil {
//	    return err
//	}
//
//	pack := tensorcpu.NewTensorPack()
//	pack.Add(tensorcpu.RoleSrc, src)
//	pack.Add(tensorcpu.RoleDst, dst)
//	k.Run(pack, k.Window(), tensorcpu.ThreadInfo{NumThreads: 1})
//
// Sub-windows produced by Window.Split are disjoint in the destination, so
// Run may be invoked concurrently from the caller's scheduler without any
// synchronization between calls.
package tensorcpu
