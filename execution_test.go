package tensorcpu

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRunWindowParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := NewTensorDescriptor(DTypeQASYMM8, 4096, 16).
		WithQuant(QuantizationInfo{Scale: 0.02, ZeroPoint: 100, Dynamic: true})
	dstDesc := src.Clone()

	luts := NewLutCache()
	k := &ActivationKernel{}
	spec := ActivationSpec{Func: ActTanh, A: 1, B: 1, Enabled: true}
	dstDesc.Quant = QuantizationInfo{Scale: 1.0 / 128.0, ZeroPoint: 128, Dynamic: true}
	if err := k.Configure(src, dstDesc, spec, Capabilities{}, luts); err != nil {
		t.Fatalf("configure: %v", err)
	}

	srcT := NewTensor(src)
	fillBytes(srcT, rng)

	sequential := NewTensor(dstDesc)
	seqPack := NewTensorPack()
	seqPack.Add(RoleSrc, srcT)
	seqPack.Add(RoleDst, sequential)
	k.Run(seqPack, k.Window(), ThreadInfo{NumThreads: 1})

	parallel := NewTensor(dstDesc)
	parPack := NewTensorPack()
	parPack.Add(RoleSrc, srcT)
	parPack.Add(RoleDst, parallel)

	pool := NewWorkerPool(4)
	defer pool.Close()
	RunWindowParallel(k, pool, parPack)

	if !bytes.Equal(sequential.Data, parallel.Data) {
		t.Error("parallel execution differs from sequential")
	}
}

func TestRunWindowParallelSmallWorkloadStaysSequential(t *testing.T) {
	// A window below the variant's mws must not be split: it runs whole on
	// the calling goroutine. Observe via the thread count handed to Run.
	src := NewTensorDescriptor(DTypeF32, 64)
	k := &ActivationKernel{}
	if err := k.Configure(src, nil, ActivationSpec{Func: ActRelu, Enabled: true}, Capabilities{}, nil); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if k.MWS() <= 64 {
		t.Fatalf("test requires mws > 64, got %d", k.MWS())
	}

	probe := &threadCountProbe{inner: k}
	pack := NewTensorPack()
	pack.Add(RoleSrc, NewTensor(src))

	pool := NewWorkerPool(4)
	defer pool.Close()
	RunWindowParallel(probe, pool, pack)

	if probe.calls != 1 || probe.maxThreads != 1 {
		t.Errorf("expected one single-threaded call, got %d calls with %d threads",
			probe.calls, probe.maxThreads)
	}
}

type threadCountProbe struct {
	inner      *ActivationKernel
	calls      int
	maxThreads int
}

func (p *threadCountProbe) Run(pack *TensorPack, window Window, info ThreadInfo) {
	p.calls++
	if info.NumThreads > p.maxThreads {
		p.maxThreads = info.NumThreads
	}
	p.inner.Run(pack, window, info)
}

func (p *threadCountProbe) Window() Window { return p.inner.Window() }
func (p *threadCountProbe) MWS() int       { return p.inner.MWS() }

func TestWorkerPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(2)
	results := make(chan int, 8)
	for i := 0; i < 8; i++ {
		i := i
		pool.Submit(func() { results <- i })
	}
	pool.Close()

	seen := map[int]bool{}
	for i := 0; i < 8; i++ {
		seen[<-results] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct task results, got %d", len(seen))
	}
}
