package serialization

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convbench/internal/tensor"
)

const unitProblem = `1 1 1
1
1
1
2 2
1 1
1 1
1 1
1 1
1 1
1 1
`

func TestDecodeProblem(t *testing.T) {
	p, err := NewDecoder(strings.NewReader(unitProblem)).DecodeProblem()
	require.NoError(t, err)

	assert.Equal(t, 1, p.NumFilters())
	assert.Equal(t, tensor.Shape{1, 1}, p.FilterShape())
	assert.Equal(t, tensor.Shape{2, 2}, p.InputShape())
	assert.Equal(t, tensor.Shape{4, 4}, p.Input().Shape(), "input must be zero-padded")
	assert.Equal(t, tensor.Shape{4, 4}, p.ResultShape())
	assert.Equal(t, 0, p.Input()[0].At(0, 0))
	assert.Equal(t, 1, p.Input()[2].At(1, 1))
}

func TestDecodeProblem_FreeWhitespace(t *testing.T) {
	src := "1 1 1 5 6 7\n\n 1   1\t9 9 9 \n"
	p, err := NewDecoder(strings.NewReader(src)).DecodeProblem()
	require.NoError(t, err)

	assert.Equal(t, 6, p.Filter(0)[1].At(0, 0))
	assert.Equal(t, 9, p.Input()[2].At(1, 1))
}

func TestDecodeProblem_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		target  error
		section string
	}{
		{"empty", "", io.ErrUnexpectedEOF, "header"},
		{"bad token", "1 x 1", ErrMalformed, "header"},
		{"negative", "-1 1 1", ErrNegativeCount, "header"},
		{"truncated filter", "1 1 2 1 1 1", io.ErrUnexpectedEOF, "filter 0 channel 1"},
		{"truncated input", "0 1 1 2 2 1 1 1", io.ErrUnexpectedEOF, "input channel 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(strings.NewReader(tt.src)).DecodeProblem()
			require.ErrorIs(t, err, tt.target)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.section, pe.Section)
		})
	}
}

func TestDecodeProblem_FilterTooLarge(t *testing.T) {
	// 4x1 filter against a 1x1 input padded to 3x3.
	src := "1 4 1 " + strings.Repeat("1 ", 12) + "1 1 1 1 1"
	_, err := NewDecoder(strings.NewReader(src)).DecodeProblem()

	assert.ErrorIs(t, err, tensor.ErrFilterTooLarge)
}

func TestDecodeReport(t *testing.T) {
	src := "1 2 \n3 4 \n\n5 6 \n7 8 \n\n12 30 \n42\n"
	r, err := NewDecoder(strings.NewReader(src)).DecodeReport(2, tensor.Shape{2, 2}, 2)
	require.NoError(t, err)

	require.Len(t, r.Results, 2)
	assert.True(t, r.Results[1].Equal(tensor.MustGrid([][]int{{5, 6}, {7, 8}})))
	assert.Equal(t, []time.Duration{12 * time.Millisecond, 30 * time.Millisecond}, r.Workers)
	assert.Equal(t, 42*time.Millisecond, r.Total)
}

func TestDecodeReport_MissingTotal(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("1 2 3 4")).DecodeReport(1, tensor.Shape{2, 2}, 0)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Section: "header", Token: "x", Err: ErrMalformed}
	assert.Equal(t, `header: token "x": malformed stream`, err.Error())

	err = &ParseError{Section: "total time", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "total time: unexpected EOF", err.Error())
}
