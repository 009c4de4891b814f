// Package engine applies convolution and rectification to filters one at a
// time. It is the unit of work of every execution model and holds no
// parallelism of its own.
package engine

import (
	"time"

	"github.com/born-ml/convbench/internal/backend/cpu"
	"github.com/born-ml/convbench/internal/tensor"
)

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Apply runs one filter against the padded input: Conv2D then ReLU.
func Apply(input, filter tensor.Volume) tensor.Grid {
	return cpu.ReLU(cpu.Conv2D(input, filter))
}

// Engine runs filters of one problem sequentially and times the compute.
type Engine struct {
	problem *tensor.Problem
	now     Clock
}

// New creates an engine over p. A nil clock means time.Now.
func New(p *tensor.Problem, now Clock) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{problem: p, now: now}
}

// Run applies every filter id in ids, in order, calling emit with the
// position k in ids and the result.
//
// The returned duration covers only Apply calls; whatever emit does is
// excluded.
func (e *Engine) Run(ids []int, emit func(k int, result tensor.Grid)) time.Duration {
	input := e.problem.Input()
	var elapsed time.Duration
	for k, id := range ids {
		start := e.now()
		result := Apply(input, e.problem.Filter(id))
		elapsed += e.now().Sub(start)
		emit(k, result)
	}
	return elapsed
}

// RunAll applies every filter of the problem and returns the results in id
// order together with the compute time.
func (e *Engine) RunAll() ([]tensor.Grid, time.Duration) {
	n := e.problem.NumFilters()
	results := make([]tensor.Grid, n)
	elapsed := e.Run(AllIDs(n), func(k int, r tensor.Grid) {
		results[k] = r
	})
	return results, elapsed
}

// AllIDs returns [0, n).
func AllIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}
