package serialization

import (
	"time"

	"github.com/born-ml/convbench/internal/tensor"
)

// Report is the decoded form of a report stream.
type Report struct {
	Results []tensor.Grid   // One result per filter, in filter order.
	Workers []time.Duration // Per-worker elapsed time; nil in sequential and worker output.
	Total   time.Duration   // Total elapsed time excluding top-level I/O.
}

// Millis converts d to the whole milliseconds written on the wire.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// FromMillis converts a wire value back to a duration.
func FromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
