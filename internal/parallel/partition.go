package parallel

import (
	"errors"
	"fmt"
)

// ErrWorkerCount is returned for worker counts outside [1, MaxWorkers].
var ErrWorkerCount = errors.New("invalid worker count")

// Assignment is the ordered list of filter ids routed to one worker slot.
type Assignment struct {
	Slot int   // Worker slot index.
	IDs  []int // Filter ids in dispatch order.
}

// Len returns the number of filters in the assignment.
func (a Assignment) Len() int { return len(a.IDs) }

// Partition splits filter ids [0, n) across w slots round-robin: id i goes to
// slot i mod w.
//
// The split is static and load-oblivious. w may exceed n, in which case the
// trailing slots receive empty assignments.
func Partition(n, w int) ([]Assignment, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative filter count %d", n)
	}
	if err := checkWorkers(w); err != nil {
		return nil, err
	}

	out := make([]Assignment, w)
	for slot := range out {
		out[slot] = Assignment{Slot: slot, IDs: make([]int, 0, (n+w-1-slot)/w)}
	}
	for i := 0; i < n; i++ {
		s := i % w
		out[s].IDs = append(out[s].IDs, i)
	}
	return out, nil
}

// CheckCover verifies that assignments cover every filter id in [0, n)
// exactly once and that slot indices match positions.
func CheckCover(assignments []Assignment, n int) error {
	seen := make([]bool, n)
	for pos, a := range assignments {
		if a.Slot != pos {
			return fmt.Errorf("assignment at position %d carries slot %d", pos, a.Slot)
		}
		for _, id := range a.IDs {
			if id < 0 || id >= n {
				return fmt.Errorf("slot %d: filter id %d out of range [0, %d)", a.Slot, id, n)
			}
			if seen[id] {
				return fmt.Errorf("slot %d: filter id %d assigned twice", a.Slot, id)
			}
			seen[id] = true
		}
	}
	for id, ok := range seen {
		if !ok {
			return fmt.Errorf("filter id %d not assigned", id)
		}
	}
	return nil
}

func checkWorkers(w int) error {
	if w < 1 || w > MaxWorkers {
		return fmt.Errorf("%w: %d (must be in [1, %d])", ErrWorkerCount, w, MaxWorkers)
	}
	return nil
}
