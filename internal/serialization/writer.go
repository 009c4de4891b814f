package serialization

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/convbench/internal/tensor"
)

// Encoder writes problem and report streams.
//
// Output is buffered; every Encode call flushes before returning.
type Encoder struct {
	w   *bufio.Writer
	buf []byte
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), buf: make([]byte, 0, 24)}
}

func (e *Encoder) writeInt(v int64) {
	e.buf = strconv.AppendInt(e.buf[:0], v, 10)
	e.buf = append(e.buf, ' ')
	_, _ = e.w.Write(e.buf) // bufio.Writer keeps the first error for Flush
}

func (e *Encoder) grid(g tensor.Grid) {
	for i := 0; i < g.Rows(); i++ {
		for _, v := range g.Row(i) {
			e.writeInt(int64(v))
		}
		_ = e.w.WriteByte('\n')
	}
}

func (e *Encoder) flush() error {
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to write stream: %w", err)
	}
	return nil
}

// EncodeProblem writes p as a problem stream. The input is written unpadded.
func (e *Encoder) EncodeProblem(p *tensor.Problem) error {
	fs := p.FilterShape()
	fmt.Fprintf(e.w, "%d %d %d\n", p.NumFilters(), fs[0], fs[1])
	for i := 0; i < p.NumFilters(); i++ {
		for _, ch := range p.Filter(i) {
			e.grid(ch)
		}
	}

	is := p.InputShape()
	fmt.Fprintf(e.w, "%d %d\n", is[0], is[1])
	for _, ch := range p.Input().Unpad(tensor.Padding) {
		e.grid(ch)
	}
	return e.flush()
}

// EncodeReport writes r as a report stream. The worker line is omitted when
// r.Workers is nil.
func (e *Encoder) EncodeReport(r *Report) error {
	for _, g := range r.Results {
		e.grid(g)
		_ = e.w.WriteByte('\n')
	}
	if r.Workers != nil {
		for _, d := range r.Workers {
			e.writeInt(Millis(d))
		}
		_ = e.w.WriteByte('\n')
	}
	fmt.Fprintf(e.w, "%d\n", Millis(r.Total))
	return e.flush()
}
