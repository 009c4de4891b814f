// Package executor runs a convolution problem under one of three execution
// models: sequentially, on shared-memory worker threads, or on isolated
// worker processes that exchange data through artifact files.
//
// All models partition filters round-robin, run the same engine per filter
// and return results in filter-id order with per-worker timings recorded by
// the workers themselves.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/born-ml/convbench/internal/engine"
	"github.com/born-ml/convbench/internal/parallel"
	"github.com/born-ml/convbench/internal/serialization"
	"github.com/born-ml/convbench/internal/tensor"
)

// ErrWorkerFailed is returned when any worker fails to start, crashes or
// produces unusable output. The run has no partial result.
var ErrWorkerFailed = errors.New("worker failed")

// WorkerError attributes a failure to a worker slot.
type WorkerError struct {
	Slot int
	Err  error
}

// Error implements the error interface.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Slot, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WorkerError) Unwrap() error { return e.Err }

// Is makes every WorkerError match ErrWorkerFailed.
func (e *WorkerError) Is(target error) bool { return target == ErrWorkerFailed }

// Mode selects an execution model.
type Mode string

// Supported execution models.
const (
	ModeSequential Mode = "sequential"
	ModeThreads    Mode = "threads"
	ModeProcesses  Mode = "processes"
)

// ParseMode accepts a mode name or its short alias (seq, thread, proc).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq":
		return ModeSequential, nil
	case "threads", "thread":
		return ModeThreads, nil
	case "processes", "process", "proc":
		return ModeProcesses, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want sequential, threads or processes)", s)
	}
}

// Config controls how a problem is executed.
type Config struct {
	Workers       int          // Number of worker slots (ignored by the sequential model).
	LockOSThreads bool         // Pin each thread-model worker to its own OS thread.
	TempDir       string       // Root for process-model scratch directories; empty means os.TempDir().
	Command       []string     // Worker command; nil means this executable with the "worker" argument.
	Env           []string     // Extra environment for worker processes.
	Stderr        io.Writer    // Worker stderr; nil means os.Stderr.
	Logger        *slog.Logger // Nil means discard.
	Clock         engine.Clock // Nil means time.Now.
}

// DefaultConfig returns a configuration using one worker per CPU.
func DefaultConfig() Config {
	pc := parallel.DefaultConfig()
	return Config{
		Workers:       pc.NumWorkers,
		LockOSThreads: pc.LockOSThreads,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c Config) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// Executor runs a whole problem and reports results in filter-id order.
type Executor interface {
	// Mode returns the execution model implemented.
	Mode() Mode

	// Execute runs every filter of p and blocks until all workers have
	// terminated. A returned report is always complete.
	Execute(ctx context.Context, p *tensor.Problem) (*serialization.Report, error)
}

// New returns the executor for mode.
func New(mode Mode, cfg Config) (Executor, error) {
	switch mode {
	case ModeSequential:
		return NewSequential(cfg), nil
	case ModeThreads:
		return NewThreads(cfg)
	case ModeProcesses:
		return NewProcesses(cfg)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
