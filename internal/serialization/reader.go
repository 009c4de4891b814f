package serialization

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/born-ml/convbench/internal/tensor"
)

// Decoder reads problem and report streams token by token.
type Decoder struct {
	sc *bufio.Scanner
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Decoder{sc: sc}
}

// next returns the next integer token.
func (d *Decoder) next(section string) (int, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return 0, fmt.Errorf("%s: failed to read: %w", section, err)
		}
		return 0, &ParseError{Section: section, Err: io.ErrUnexpectedEOF}
	}
	tok := d.sc.Text()
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Section: section, Token: tok, Err: ErrMalformed}
	}
	return v, nil
}

// dims reads count non-negative integers.
func (d *Decoder) dims(section string, count int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := d.next(section)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, &ParseError{Section: section, Token: strconv.Itoa(v), Err: ErrNegativeCount}
		}
		out[i] = v
	}
	return out, nil
}

func (d *Decoder) grid(section string, rows, cols int) (tensor.Grid, error) {
	g := tensor.NewGrid(rows, cols)
	data := g.Data()
	for i := range data {
		v, err := d.next(section)
		if err != nil {
			return tensor.Grid{}, err
		}
		data[i] = v
	}
	return g, nil
}

func (d *Decoder) volume(section string, rows, cols int) (tensor.Volume, error) {
	var v tensor.Volume
	for c := range v {
		g, err := d.grid(fmt.Sprintf("%s channel %d", section, c), rows, cols)
		if err != nil {
			return tensor.Volume{}, err
		}
		v[c] = g
	}
	return v, nil
}

// DecodeProblem reads a problem stream and returns the padded problem.
func (d *Decoder) DecodeProblem() (*tensor.Problem, error) {
	head, err := d.dims("header", 3)
	if err != nil {
		return nil, err
	}
	n, x, y := head[0], head[1], head[2]

	filters := make([]tensor.Volume, n)
	for i := range filters {
		f, err := d.volume(fmt.Sprintf("filter %d", i), x, y)
		if err != nil {
			return nil, err
		}
		filters[i] = f
	}

	in, err := d.dims("input header", 2)
	if err != nil {
		return nil, err
	}
	input, err := d.volume("input", in[0], in[1])
	if err != nil {
		return nil, err
	}

	p, err := tensor.NewProblem(tensor.Shape{x, y}, filters, input)
	if err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	return p, nil
}

// DecodeReport reads a report stream holding n results of the given shape.
//
// workers is the number of per-worker timings expected before the total;
// zero means the stream has no worker line.
func (d *Decoder) DecodeReport(n int, shape tensor.Shape, workers int) (*Report, error) {
	if len(shape) != 2 {
		return nil, fmt.Errorf("result shape must be 2D, got %v", shape)
	}

	r := &Report{Results: make([]tensor.Grid, n)}
	for i := range r.Results {
		g, err := d.grid(fmt.Sprintf("result %d", i), shape[0], shape[1])
		if err != nil {
			return nil, err
		}
		r.Results[i] = g
	}

	if workers > 0 {
		times, err := d.dims("worker times", workers)
		if err != nil {
			return nil, err
		}
		r.Workers = make([]time.Duration, workers)
		for i, ms := range times {
			r.Workers[i] = FromMillis(int64(ms))
		}
	}

	total, err := d.dims("total time", 1)
	if err != nil {
		return nil, err
	}
	r.Total = FromMillis(int64(total[0]))
	return r, nil
}
