package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convbench/internal/parallel"
	"github.com/born-ml/convbench/internal/serialization"
	"github.com/born-ml/convbench/internal/tensor"
)

// processConfig re-executes the test binary as the worker.
func processConfig(t *testing.T, workers int, behavior string) Config {
	t.Helper()
	return Config{
		Workers: workers,
		TempDir: t.TempDir(),
		Command: []string{os.Args[0]},
		Env:     []string{helperEnv + "=" + behavior},
	}
}

func newExecutor(t *testing.T, mode Mode, workers int) Executor {
	t.Helper()
	var cfg Config
	if mode == ModeProcesses {
		cfg = processConfig(t, workers, "run")
	} else {
		cfg = Config{Workers: workers, LockOSThreads: true}
	}
	ex, err := New(mode, cfg)
	require.NoError(t, err)
	require.Equal(t, mode, ex.Mode())
	return ex
}

// mixedProblem builds n 2x3 filters with positive and negative weights over a 5x4 input.
func mixedProblem(t *testing.T, n int) *tensor.Problem {
	t.Helper()
	filters := make([]tensor.Volume, n)
	for i := range filters {
		f := tensor.NewVolume(2, 3)
		for c := range f {
			data := f[c].Data()
			for j := range data {
				data[j] = (i+1)*(j-2) + c - i%3
			}
		}
		filters[i] = f
	}
	input := tensor.NewVolume(5, 4)
	for c := range input {
		data := input[c].Data()
		for j := range data {
			data[j] = (j*7+c*3)%11 - 4
		}
	}
	p, err := tensor.NewProblem(tensor.Shape{2, 3}, filters, input)
	require.NoError(t, err)
	return p
}

func baseline(t *testing.T, p *tensor.Problem) []tensor.Grid {
	t.Helper()
	rep, err := NewSequential(Config{}).Execute(context.Background(), p)
	require.NoError(t, err)
	return rep.Results
}

func assertSameResults(t *testing.T, want, got []tensor.Grid) {
	t.Helper()
	require.Len(t, got, len(want))
	for id := range want {
		assert.True(t, want[id].Equal(got[id]), "filter %d: want %v, got %v", id, want[id], got[id])
	}
}

// TestExecutors_ResultOrderInvariance checks that results read out by filter id
// are identical across execution models and worker counts.
func TestExecutors_ResultOrderInvariance(t *testing.T) {
	p := mixedProblem(t, 7)
	want := baseline(t, p)

	for _, mode := range []Mode{ModeThreads, ModeProcesses} {
		for _, workers := range []int{1, 2, 3, 7, 10} {
			t.Run(string(mode)+"/"+strconv.Itoa(workers), func(t *testing.T) {
				rep, err := newExecutor(t, mode, workers).Execute(context.Background(), p)
				require.NoError(t, err)

				assertSameResults(t, want, rep.Results)
				assert.Len(t, rep.Workers, workers, "one timing per requested worker")
				assert.GreaterOrEqual(t, rep.Total, time.Duration(0))
			})
		}
	}
}

// TestExecutors_UnitScenario is the N=1, 1x1 all-ones filter over a 2x2 all-ones input.
func TestExecutors_UnitScenario(t *testing.T) {
	p, err := serialization.NewDecoder(strings.NewReader("1 1 1\n1\n1\n1\n2 2\n1 1\n1 1\n1 1\n1 1\n1 1\n1 1\n")).DecodeProblem()
	require.NoError(t, err)

	expected := tensor.MustGrid([][]int{
		{0, 0, 0, 0},
		{0, 3, 3, 0},
		{0, 3, 3, 0},
		{0, 0, 0, 0},
	})

	for _, mode := range []Mode{ModeSequential, ModeThreads, ModeProcesses} {
		t.Run(string(mode), func(t *testing.T) {
			rep, err := newExecutor(t, mode, 1).Execute(context.Background(), p)
			require.NoError(t, err)
			require.Len(t, rep.Results, 1)
			assert.True(t, rep.Results[0].Equal(expected), "got %v", rep.Results[0])
		})
	}
}

// TestExecutors_TwoFiltersTwoWorkers checks filter 0 is reported before filter 1.
func TestExecutors_TwoFiltersTwoWorkers(t *testing.T) {
	p, err := tensor.NewProblem(tensor.Shape{1, 1},
		[]tensor.Volume{tensor.Fill(1, 1, 1), tensor.Fill(1, 1, 2)},
		tensor.Fill(1, 1, 1))
	require.NoError(t, err)

	for _, mode := range []Mode{ModeThreads, ModeProcesses} {
		t.Run(string(mode), func(t *testing.T) {
			rep, err := newExecutor(t, mode, 2).Execute(context.Background(), p)
			require.NoError(t, err)

			require.Len(t, rep.Results, 2)
			assert.Equal(t, 3, rep.Results[0].At(1, 1))
			assert.Equal(t, 6, rep.Results[1].At(1, 1))

			var buf bytes.Buffer
			require.NoError(t, serialization.NewEncoder(&buf).EncodeReport(rep))
			assert.True(t, strings.HasPrefix(buf.String(), "0 0 0 \n0 3 0 \n0 0 0 \n\n0 0 0 \n0 6 0 \n0 0 0 \n\n"), buf.String())
		})
	}
}

func TestSequential_NoWorkerLine(t *testing.T) {
	p := mixedProblem(t, 3)

	rep, err := NewSequential(Config{Clock: steppingClock(0)}).Execute(context.Background(), p)
	require.NoError(t, err)

	assert.Nil(t, rep.Workers)
	assert.Len(t, rep.Results, 3)
}

func TestExecutors_InvalidWorkerCount(t *testing.T) {
	for _, mode := range []Mode{ModeThreads, ModeProcesses} {
		_, err := New(mode, Config{Workers: 0})
		assert.ErrorIs(t, err, parallel.ErrWorkerCount, mode)

		_, err = New(mode, Config{Workers: parallel.MaxWorkers + 1})
		assert.ErrorIs(t, err, parallel.ErrWorkerCount, mode)
	}
}

func TestExecutors_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := mixedProblem(t, 2)

	for _, mode := range []Mode{ModeSequential, ModeThreads} {
		_, err := newExecutor(t, mode, 2).Execute(ctx, p)
		assert.ErrorIs(t, err, context.Canceled, mode)
	}
}

func TestThreads_WorkerPanicIsFatal(t *testing.T) {
	// The first reading is the coordinator's start time; every reading after
	// that happens inside a worker and panics.
	var calls atomic.Int64
	clock := func() time.Time {
		if calls.Add(1) > 1 {
			panic("clock failure")
		}
		return time.Now()
	}
	ex, err := NewThreads(Config{Workers: 3, Clock: clock})
	require.NoError(t, err)

	rep, err := ex.Execute(context.Background(), mixedProblem(t, 4))

	assert.Nil(t, rep)
	require.ErrorIs(t, err, ErrWorkerFailed)
	var pe *parallel.PanicError
	assert.True(t, errors.As(err, &pe))
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := New(Mode("gpu"), Config{Workers: 1})
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"sequential", ModeSequential},
		{"seq", ModeSequential},
		{"Threads", ModeThreads},
		{"thread", ModeThreads},
		{"processes", ModeProcesses},
		{" proc ", ModeProcesses},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMode("fork")
	assert.Error(t, err)
}

func TestWorkerError(t *testing.T) {
	err := &WorkerError{Slot: 4, Err: errors.New("exit status 3")}

	assert.Equal(t, "worker 4: exit status 3", err.Error())
	assert.ErrorIs(t, err, ErrWorkerFailed)
}
