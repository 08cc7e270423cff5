// internal/pipeline/errors.go
package pipeline

import "fmt"

// TransformError wraps a worker's per-batch failure with the originating
// sequence number.
type TransformError struct {
	Seq int64
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("pipeline: transform failed on batch %d: %v", e.Seq, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// SinkError wraps a write or flush failure with the sequence number being
// written. Batches flushed before the failing one are not lost.
type SinkError struct {
	Seq int64
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("pipeline: sink failed on batch %d: %v", e.Seq, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// BackpressureError reports that the collector could not make progress:
// either its pending-result buffer exceeded the configured cap, or the
// next-expected batch did not arrive within the stall timeout. Seq is the
// sequence number the collector was blocked on.
type BackpressureError struct {
	Seq     int64
	Pending int
	Stalled bool
}

func (e *BackpressureError) Error() string {
	if e.Stalled {
		return fmt.Sprintf("pipeline: stalled waiting for batch %d (%d results buffered)", e.Seq, e.Pending)
	}
	return fmt.Sprintf("pipeline: pending results exceeded limit waiting for batch %d (%d buffered)", e.Seq, e.Pending)
}
