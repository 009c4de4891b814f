package serialization

import (
	"fmt"
	"os"

	"github.com/born-ml/convbench/internal/tensor"
)

// WriteProblemFile writes p as a problem stream to a new file at path.
func WriteProblemFile(path string, p *tensor.Problem) (err error) {
	//nolint:gosec // G304: artifact paths are generated by the coordinator
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()
	return NewEncoder(file).EncodeProblem(p)
}

// ReadReportFile reads a worker report (no worker line) from path.
func ReadReportFile(path string, n int, shape tensor.Shape) (*Report, error) {
	//nolint:gosec // G304: artifact paths are generated by the coordinator
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r, err := NewDecoder(file).DecodeReport(n, shape, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// ReadProblemFile reads a problem stream from path.
func ReadProblemFile(path string) (*tensor.Problem, error) {
	//nolint:gosec // G304: path comes from the command line
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	p, err := NewDecoder(file).DecodeProblem()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
