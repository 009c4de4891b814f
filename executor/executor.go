// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package executor runs convolution problems sequentially, on shared-memory
// worker threads or on isolated worker processes.
//
// Example:
//
//	ex, err := executor.New(executor.ModeThreads, executor.Config{Workers: 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := ex.Execute(ctx, problem)
package executor

import (
	"io"

	"github.com/born-ml/convbench/internal/executor"
	"github.com/born-ml/convbench/internal/serialization"
)

// Type aliases for public API

// Executor runs a whole problem and reports results in filter-id order.
type Executor = executor.Executor

// Config controls how a problem is executed.
type Config = executor.Config

// Mode selects an execution model.
type Mode = executor.Mode

// Report holds results in filter order, per-worker and total elapsed time.
type Report = serialization.Report

// WorkerError attributes a failure to a worker slot.
type WorkerError = executor.WorkerError

// Execution models.
const (
	ModeSequential = executor.ModeSequential
	ModeThreads    = executor.ModeThreads
	ModeProcesses  = executor.ModeProcesses
)

// ErrWorkerFailed is returned when any worker fails.
var ErrWorkerFailed = executor.ErrWorkerFailed

// New returns the executor for mode.
func New(mode Mode, cfg Config) (Executor, error) {
	return executor.New(mode, cfg)
}

// DefaultConfig returns a configuration using one worker per CPU.
func DefaultConfig() Config {
	return executor.DefaultConfig()
}

// ParseMode accepts a mode name or its short alias.
func ParseMode(s string) (Mode, error) {
	return executor.ParseMode(s)
}

// RunWorker is the body of a process-model worker. A program that sets
// Config.Command to itself must call it when started as a worker.
func RunWorker(r io.Reader, w io.Writer) error {
	return executor.RunWorker(r, w, nil)
}
