package executor

import (
	"context"
	"fmt"

	"github.com/born-ml/convbench/internal/engine"
	"github.com/born-ml/convbench/internal/parallel"
	"github.com/born-ml/convbench/internal/serialization"
	"github.com/born-ml/convbench/internal/tensor"
)

// Threads runs one worker goroutine per slot inside this process.
//
// Workers share the problem read-only and write results straight into a
// parallel.Arena through their own handles. Nothing is read back before all
// workers have returned.
type Threads struct {
	cfg Config
}

// NewThreads creates a shared-memory executor.
func NewThreads(cfg Config) (*Threads, error) {
	if err := (parallel.Config{NumWorkers: cfg.Workers}).Validate(); err != nil {
		return nil, err
	}
	return &Threads{cfg: cfg}, nil
}

// Mode implements Executor.
func (t *Threads) Mode() Mode { return ModeThreads }

// Execute implements Executor.
func (t *Threads) Execute(ctx context.Context, p *tensor.Problem) (*serialization.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := t.cfg.logger().With("mode", ModeThreads)
	start := t.cfg.now()

	n := p.NumFilters()
	assignments, err := parallel.Partition(n, t.cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.Debug("launching workers", "workers", len(assignments), "filters", n)

	arena := parallel.NewArena[tensor.Grid](assignments, n)
	results, elapsed, err := arena.Run(t.cfg.LockOSThreads, func(h *parallel.Handle[tensor.Grid]) {
		d := engine.New(p, t.cfg.Clock).Run(h.IDs(), h.Store)
		h.SetElapsed(d)
		log.Debug("worker finished", "slot", h.Slot(), "filters", len(h.IDs()), "elapsed", d)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	}

	return &serialization.Report{
		Results: results,
		Workers: elapsed,
		Total:   t.cfg.now().Sub(start),
	}, nil
}
