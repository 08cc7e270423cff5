// internal/pipeline/batch.go
package pipeline

import "context"

// Batch is an ordered group of records dispatched as one unit of work.
// Seq numbers are dense and monotonic within a run (0..N-1, no gaps).
// A batch is immutable once handed to a worker.
type Batch[T any] struct {
	Seq   int64
	Items []T
}

// Result is the transform output for one batch, tagged with the batch's
// sequence number. Item order is derived from the input order within the
// batch; transforms must not reorder.
type Result[R any] struct {
	Seq   int64
	Items []R
}

// Source yields records one at a time. io.EOF ends the stream; any other
// error aborts the run.
type Source[T any] interface {
	Next() (T, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func() (T, error)

func (f SourceFunc[T]) Next() (T, error) { return f() }

// Transform processes one batch of records. Each worker slot owns exactly
// one Transform instance for the whole run, so implementations may keep
// per-slot private state (lookup tables, counters) but must not share
// mutable state across slots.
type Transform[T, R any] interface {
	Process(ctx context.Context, items []T) ([]R, error)
}

// Factory builds one Transform per worker slot.
type Factory[T, R any] func() Transform[T, R]

// Sink receives results in strict sequence order. Close is called exactly
// once, on both normal completion and abort.
type Sink[R any] interface {
	Write(res Result[R]) error
	Close() error
}
