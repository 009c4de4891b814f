// Package main provides the convbench CLI.
//
// Usage:
//
//	convbench [run] [-mode sequential|threads|processes] [-workers N] [-input FILE] [N]
//	convbench worker
//	convbench version
//
// run reads a problem stream (stdin unless -input is given) and writes the
// report to stdout. worker is the entry point the processes mode spawns.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/born-ml/convbench/internal/executor"
	"github.com/born-ml/convbench/internal/serialization"
	"github.com/born-ml/convbench/internal/tensor"
)

const version = "v0.1.0"

// Environment fallbacks for flags.
const (
	envMode     = "CONVBENCH_MODE"
	envWorkers  = "CONVBENCH_WORKERS"
	envTempDir  = "CONVBENCH_TMPDIR"
	envLogLevel = "CONVBENCH_LOG_LEVEL"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "run"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if _, err := strconv.Atoi(args[0]); err != nil {
			cmd, args = args[0], args[1:]
		}
	}

	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "convbench %s\n", version)
		return 0
	case executor.WorkerArg:
		if err := executor.RunWorker(stdin, stdout, nil); err != nil {
			fmt.Fprintf(stderr, "convbench worker: %v\n", err)
			return 1
		}
		return 0
	case "run":
		return runBench(args, stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "convbench: unknown command %q\n", cmd)
		return 2
	}
}

type options struct {
	mode     string
	workers  int
	input    string
	tempDir  string
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	defaults := executor.DefaultConfig()
	opts := &options{}

	fs := flag.NewFlagSet("convbench run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", envOr(envMode, string(executor.ModeSequential)), "Execution model: sequential, threads or processes")
	fs.IntVar(&opts.workers, "workers", envIntOr(envWorkers, defaults.Workers), "Number of workers (threads/processes)")
	fs.StringVar(&opts.input, "input", "", "Read the problem from this file instead of stdin")
	fs.StringVar(&opts.tempDir, "tmpdir", os.Getenv(envTempDir), "Directory for worker artifacts (processes mode)")
	fs.StringVar(&opts.logLevel, "log-level", envOr(envLogLevel, "warn"), "Log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A trailing positional argument is the worker count.
	switch fs.NArg() {
	case 0:
	case 1:
		n, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return nil, fmt.Errorf("invalid worker count %q", fs.Arg(0))
		}
		opts.workers = n
	default:
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	return opts, nil
}

func runBench(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "convbench: %v\n", err)
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintf(stderr, "convbench: invalid log level %q\n", opts.logLevel)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	mode, err := executor.ParseMode(opts.mode)
	if err != nil {
		logger.Error("invalid mode", "error", err)
		return 2
	}

	cfg := executor.DefaultConfig()
	cfg.Workers = opts.workers
	cfg.TempDir = opts.tempDir
	cfg.Stderr = stderr
	cfg.Logger = logger

	ex, err := executor.New(mode, cfg)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}

	problem, err := loadProblem(opts.input, stdin)
	if err != nil {
		logger.Error("failed to load problem", "error", err)
		return 1
	}
	logger.Info("problem loaded",
		"filters", problem.NumFilters(),
		"filter_shape", problem.FilterShape(),
		"input_shape", problem.InputShape(),
		"mode", mode,
		"workers", cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := ex.Execute(ctx, problem)
	if err != nil {
		logger.Error("run failed", "error", err)
		return 1
	}
	logger.Info("run finished", "total", report.Total, "workers", report.Workers)

	if err := serialization.NewEncoder(stdout).EncodeReport(report); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}
	return 0
}

func loadProblem(path string, stdin io.Reader) (*tensor.Problem, error) {
	if path == "" {
		return serialization.NewDecoder(stdin).DecodeProblem()
	}
	return serialization.ReadProblemFile(path)
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
