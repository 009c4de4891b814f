// Package parallel partitions filter work across worker slots and runs
// shared-memory workers over a lock-free result arena.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// MaxWorkers bounds the number of worker slots of a single run.
const MaxWorkers = 123

// Config controls parallel execution behavior.
type Config struct {
	NumWorkers    int  // Number of worker slots.
	LockOSThreads bool // Pin every worker goroutine to its own OS thread.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		NumWorkers:    min(runtime.NumCPU(), MaxWorkers),
		LockOSThreads: true,
	}
}

// Validate checks the worker count against [1, MaxWorkers].
func (c Config) Validate() error {
	return checkWorkers(c.NumWorkers)
}

// Launch runs f(slot) for every slot in [0, n) on its own goroutine and
// blocks until all of them have returned.
//
// A panic in f is recovered and returned as a *PanicError for that slot;
// the remaining slots still run to completion. The returned slice is indexed
// by slot and nil where f returned normally.
func Launch(n int, lockThreads bool, f func(slot int)) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for slot := 0; slot < n; slot++ {
		go func(s int) {
			defer wg.Done()
			if lockThreads {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
			}
			defer func() {
				if r := recover(); r != nil {
					errs[s] = &PanicError{Slot: s, Value: r}
				}
			}()
			f(s)
		}(slot)
	}
	wg.Wait()
	return errs
}

// PanicError reports a worker goroutine that panicked.
type PanicError struct {
	Slot  int
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", e.Slot, e.Value)
}
