package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/convbench/internal/parallel"
	"github.com/born-ml/convbench/internal/serialization"
	"github.com/born-ml/convbench/internal/tensor"
)

// Artifact file name prefixes inside a run's scratch directory.
const (
	InputArtifact  = "tmp_input_"
	OutputArtifact = "tmp_output_"
)

// WorkerArg is the argument the default worker command is started with.
const WorkerArg = "worker"

// Processes runs one worker process per slot.
//
// Workers share no memory with the coordinator: each one gets a stand-alone
// problem stream on stdin (its filters plus the full input) and writes its
// results and self-measured compute time to stdout. Both ends are files in a
// per-run scratch directory that is removed when the run ends.
type Processes struct {
	cfg Config
}

// NewProcesses creates a process-isolated executor.
func NewProcesses(cfg Config) (*Processes, error) {
	if err := (parallel.Config{NumWorkers: cfg.Workers}).Validate(); err != nil {
		return nil, err
	}
	return &Processes{cfg: cfg}, nil
}

// Mode implements Executor.
func (p *Processes) Mode() Mode { return ModeProcesses }

func (p *Processes) command() ([]string, error) {
	if len(p.cfg.Command) > 0 {
		return p.cfg.Command, nil
	}
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate worker executable: %w", err)
	}
	return []string{self, WorkerArg}, nil
}

// Execute implements Executor.
//
// The run goes through partition, serialize, spawn, wait, deserialize and
// aggregate. Any worker that cannot be started, exits abnormally or leaves
// an unreadable artifact fails the whole run.
func (p *Processes) Execute(ctx context.Context, prob *tensor.Problem) (*serialization.Report, error) {
	argv, err := p.command()
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	log := p.cfg.logger().With("mode", ModeProcesses, "run", runID.String())
	start := p.cfg.now()

	n := prob.NumFilters()
	assignments, err := parallel.Partition(n, p.cfg.Workers)
	if err != nil {
		return nil, err
	}

	root := p.cfg.TempDir
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "convbench-"+runID.String())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn("failed to remove scratch directory", "dir", dir, "error", err)
		}
	}()

	for _, a := range assignments {
		if err := serialization.WriteProblemFile(artifactPath(dir, InputArtifact, a.Slot), prob.Subset(a.IDs)); err != nil {
			return nil, &WorkerError{Slot: a.Slot, Err: fmt.Errorf("input artifact: %w", err)}
		}
	}
	log.Debug("spawning workers", "workers", len(assignments), "filters", n, "dir", dir)

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range assignments {
		a := a
		g.Go(func() error {
			return p.spawn(gctx, argv, dir, a.Slot)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shape := prob.ResultShape()
	results := make([]tensor.Grid, n)
	elapsed := make([]time.Duration, len(assignments))
	for _, a := range assignments {
		out := artifactPath(dir, OutputArtifact, a.Slot)
		rep, err := serialization.ReadReportFile(out, a.Len(), shape)
		if err != nil {
			return nil, &WorkerError{Slot: a.Slot, Err: fmt.Errorf("output artifact: %w", err)}
		}
		for k, id := range a.IDs {
			results[id] = rep.Results[k]
		}
		elapsed[a.Slot] = rep.Total
		log.Debug("worker collected", "slot", a.Slot, "filters", a.Len(), "elapsed", rep.Total)

		for _, path := range []string{artifactPath(dir, InputArtifact, a.Slot), out} {
			if err := os.Remove(path); err != nil {
				log.Warn("failed to remove artifact", "path", path, "error", err)
			}
		}
	}

	return &serialization.Report{
		Results: results,
		Workers: elapsed,
		Total:   p.cfg.now().Sub(start),
	}, nil
}

// spawn runs one worker with stdin and stdout redirected to its artifacts
// and waits for it to exit.
func (p *Processes) spawn(ctx context.Context, argv []string, dir string, slot int) error {
	//nolint:gosec // G304: artifact paths are generated by the coordinator
	in, err := os.Open(artifactPath(dir, InputArtifact, slot))
	if err != nil {
		return &WorkerError{Slot: slot, Err: err}
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // G304: artifact paths are generated by the coordinator
	out, err := os.OpenFile(artifactPath(dir, OutputArtifact, slot), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return &WorkerError{Slot: slot, Err: err}
	}
	defer func() { _ = out.Close() }()

	//nolint:gosec // G204: the worker command is set by the operator
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = p.cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(p.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), p.cfg.Env...)
	}

	if err := cmd.Run(); err != nil {
		return &WorkerError{Slot: slot, Err: err}
	}
	return nil
}

func artifactPath(dir, prefix string, slot int) string {
	return filepath.Join(dir, prefix+strconv.Itoa(slot))
}
