package executor

import (
	"fmt"
	"io"

	"github.com/born-ml/convbench/internal/engine"
	"github.com/born-ml/convbench/internal/serialization"
)

// RunWorker is the body of a process-model worker: it reads a problem
// stream from r, applies every filter in order and writes a report stream
// to w whose total is the worker's own compute time.
func RunWorker(r io.Reader, w io.Writer, now engine.Clock) error {
	p, err := serialization.NewDecoder(r).DecodeProblem()
	if err != nil {
		return fmt.Errorf("failed to read problem: %w", err)
	}

	results, elapsed := engine.New(p, now).RunAll()

	if err := serialization.NewEncoder(w).EncodeReport(&serialization.Report{
		Results: results,
		Total:   elapsed,
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
