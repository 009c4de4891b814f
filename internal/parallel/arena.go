package parallel

import (
	"errors"
	"fmt"
	"time"
)

// Arena holds one result slot per filter id and one timing slot per worker.
//
// Workers never see the arena directly. Each gets a Handle that can only
// write the result slots of its own assignment and its own timing slot, so
// concurrent writes are disjoint and need no lock. Contents are only handed
// back by Run, after every worker has returned.
type Arena[T any] struct {
	assignments []Assignment
	results     []T
	elapsed     []time.Duration
	used        bool
}

// NewArena creates an arena for n filter ids split by assignments.
// It panics if the assignments do not cover [0, n) exactly once.
func NewArena[T any](assignments []Assignment, n int) *Arena[T] {
	if err := CheckCover(assignments, n); err != nil {
		panic(fmt.Sprintf("parallel: %v", err))
	}
	return &Arena[T]{
		assignments: assignments,
		results:     make([]T, n),
		elapsed:     make([]time.Duration, len(assignments)),
	}
}

// Handle is a worker's exclusive view of the arena.
type Handle[T any] struct {
	arena *Arena[T]
	asg   Assignment
}

// Slot returns the worker slot index.
func (h *Handle[T]) Slot() int { return h.asg.Slot }

// IDs returns the filter ids owned by this worker, in dispatch order.
func (h *Handle[T]) IDs() []int { return h.asg.IDs }

// Store writes the result for the k-th owned filter id.
func (h *Handle[T]) Store(k int, v T) {
	h.arena.results[h.asg.IDs[k]] = v
}

// SetElapsed records this worker's compute time.
func (h *Handle[T]) SetElapsed(d time.Duration) {
	h.arena.elapsed[h.asg.Slot] = d
}

// Run starts one worker per assignment and waits for all of them.
//
// results is indexed by filter id and elapsed by slot. If any worker
// panicked, err joins one *PanicError per failed slot and the partial
// contents must not be used. An arena can only be run once.
func (a *Arena[T]) Run(lockThreads bool, work func(h *Handle[T])) (results []T, elapsed []time.Duration, err error) {
	if a.used {
		return nil, nil, errors.New("parallel: arena already run")
	}
	a.used = true

	handles := make([]*Handle[T], len(a.assignments))
	for i, asg := range a.assignments {
		handles[i] = &Handle[T]{arena: a, asg: asg}
	}

	errs := Launch(len(handles), lockThreads, func(slot int) {
		work(handles[slot])
	})
	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}
	return a.results, a.elapsed, nil
}
