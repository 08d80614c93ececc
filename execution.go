package tensorcpu

import (
	"runtime"
	"sync"
)

// WindowKernel is the surface the scheduler drives: any configured kernel
// that exposes its full window, its minimum workload size and a sub-window
// Run entry point.
type WindowKernel interface {
	Run(pack *TensorPack, window Window, info ThreadInfo)
	Window() Window
	MWS() int
}

// WorkerPool manages a pool of worker goroutines for kernel execution
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit adds a task to the pool
func (wp *WorkerPool) Submit(task func()) {
	wp.tasks <- task
}

// NumWorkers returns the worker count
func (wp *WorkerPool) NumWorkers() int {
	return wp.workers
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}

// RunWindowParallel splits a configured kernel's window into disjoint
// sub-windows and dispatches them across the pool, one Run call per
// sub-window. The split degree respects the kernel's minimum workload size:
// no thread gets a chunk smaller than mws, and a window below mws runs
// single-threaded on the caller's goroutine. Blocks until all sub-windows
// complete.
func RunWindowParallel(k WindowKernel, pool *WorkerPool, pack *TensorPack) {
	window := k.Window()
	total := window.NumElements()
	if total == 0 {
		return
	}

	threads := pool.NumWorkers()
	if mws := k.MWS(); mws > 0 && total/mws < threads {
		threads = total / mws
	}
	if splits := window.MaxSplits(); threads > splits {
		threads = splits
	}
	if threads <= 1 {
		k.Run(pack, window, ThreadInfo{ThreadID: 0, NumThreads: 1})
		return
	}

	var wg sync.WaitGroup
	wg.Add(threads)
	for t := 0; t < threads; t++ {
		sub := window.Split(threads, t)
		info := ThreadInfo{ThreadID: t, NumThreads: threads}
		pool.Submit(func() {
			defer wg.Done()
			k.Run(pack, sub, info)
		})
	}
	wg.Wait()
}
