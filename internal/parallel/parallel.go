// Package parallel provides the chunked loop helpers used by the elementwise
// matrix kernels.
//
// Every helper partitions the index range into contiguous chunks and never
// reorders work inside a chunk, so a kernel whose iterations write disjoint
// memory produces the same result sequentially and in parallel.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled     bool // Whether parallel execution is enabled.
	NumWorkers  int  // Number of worker goroutines to use.
	MinElements int  // Minimum amount of work (elements) before fanning out.
}

// Sequential returns a config that always runs on the calling goroutine.
// This is what the training engine uses unless told otherwise.
func Sequential() Config {
	return Config{}
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:     n > 1,
		NumWorkers:  n,
		MinElements: 16 * 1024, // Below this the goroutine overhead dominates.
	}
}

// workers reports how many chunks should be used for n iterations carrying
// work elements in total.
func (c Config) workers(n, work int) int {
	if !c.Enabled || c.NumWorkers < 2 || n < 2 || work < c.MinElements {
		return 1
	}
	return min(c.NumWorkers, n)
}

// For executes f(i) for i in [0, n).
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForWork(n, n, f, cfg)
}

// ForWork is For where each iteration is known to touch work/n elements,
// e.g. one matrix row of a rows×cols kernel (n = rows, work = rows*cols).
func ForWork(n, work int, f func(i int), cfg Config) {
	w := cfg.workers(n, work)
	if w == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + w - 1) / w

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
