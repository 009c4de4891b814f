package tensor

import "fmt"

// Padding is the number of zero cells added around each input channel.
const Padding = 1

// Problem is one convolution workload: N filters sharing one shape and a
// zero-padded input they are all applied to.
//
// A Problem is read-only once constructed and may be shared across
// goroutines.
type Problem struct {
	filterShape Shape
	filters     []Volume
	input       Volume // padded
}

// NewProblem validates filters against an unpadded input and pads the input.
//
// filterShape is needed separately because a problem may carry zero filters
// (an idle worker still receives a well-formed stream).
func NewProblem(filterShape Shape, filters []Volume, input Volume) (*Problem, error) {
	if len(filterShape) != 2 {
		return nil, fmt.Errorf("%w: filter shape must be 2D, got %v", ErrShapeMismatch, filterShape)
	}
	if err := filterShape.Validate(); err != nil {
		return nil, fmt.Errorf("filter shape: %w", err)
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	if err := input.Shape().Validate(); err != nil {
		return nil, fmt.Errorf("input shape: %w", err)
	}
	for i, f := range filters {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		if !f.Shape().Equal(filterShape) {
			return nil, fmt.Errorf("%w: filter %d is %v, expected %v", ErrShapeMismatch, i, f.Shape(), filterShape)
		}
	}

	padded := input.Pad(Padding)
	if _, ok := padded.Shape().ValidOutput(filterShape); !ok {
		return nil, fmt.Errorf("%w: filter %v, padded input %v", ErrFilterTooLarge, filterShape, padded.Shape())
	}

	return &Problem{
		filterShape: filterShape.Clone(),
		filters:     filters,
		input:       padded,
	}, nil
}

// NumFilters returns N.
func (p *Problem) NumFilters() int { return len(p.filters) }

// Filter returns filter id.
func (p *Problem) Filter(id int) Volume { return p.filters[id] }

// FilterShape returns the shared {x, y} filter shape.
func (p *Problem) FilterShape() Shape { return p.filterShape.Clone() }

// Input returns the zero-padded input.
func (p *Problem) Input() Volume { return p.input }

// InputShape returns the unpadded {X, Y} input shape.
func (p *Problem) InputShape() Shape {
	s := p.input.Shape()
	return Shape{s[0] - 2*Padding, s[1] - 2*Padding}
}

// ResultShape returns the {X-x+3, Y-y+3} shape of every filter's result.
func (p *Problem) ResultShape() Shape {
	s, _ := p.input.Shape().ValidOutput(p.filterShape)
	return s
}

// Subset returns a problem holding only the given filters, in the given
// order, over the same input.
func (p *Problem) Subset(ids []int) *Problem {
	filters := make([]Volume, len(ids))
	for k, id := range ids {
		filters[k] = p.filters[id]
	}
	return &Problem{
		filterShape: p.filterShape,
		filters:     filters,
		input:       p.input,
	}
}
