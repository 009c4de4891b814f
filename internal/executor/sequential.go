package executor

import (
	"context"

	"github.com/born-ml/convbench/internal/engine"
	"github.com/born-ml/convbench/internal/serialization"
	"github.com/born-ml/convbench/internal/tensor"
)

// Sequential runs every filter on the calling goroutine.
//
// Its report has no worker line; Total is the summed per-filter compute time.
type Sequential struct {
	cfg Config
}

// NewSequential creates a sequential executor.
func NewSequential(cfg Config) *Sequential {
	return &Sequential{cfg: cfg}
}

// Mode implements Executor.
func (s *Sequential) Mode() Mode { return ModeSequential }

// Execute implements Executor.
func (s *Sequential) Execute(ctx context.Context, p *tensor.Problem) (*serialization.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, elapsed := engine.New(p, s.cfg.Clock).RunAll()
	s.cfg.logger().Debug("sequential run finished",
		"filters", p.NumFilters(),
		"elapsed", elapsed)

	return &serialization.Report{Results: results, Total: elapsed}, nil
}
