// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBatchSize is the records-per-batch default when Config.BatchSize
// is unset. Large enough to amortize channel overhead, small enough to keep
// W in-flight batches cheap in memory.
const DefaultBatchSize = 500

// FailPolicy decides what a per-batch transform failure does to the run.
type FailPolicy int

const (
	// Abort stops the run on the first batch failure (default: corrupted
	// output for one batch risks silent data loss).
	Abort FailPolicy = iota
	// Skip drops the failing batch, logs it, and continues.
	Skip
)

// Config controls one pipeline run.
type Config struct {
	Workers      int           // worker goroutines (<=0: all CPUs)
	BatchSize    int           // records per batch (<=0: DefaultBatchSize)
	MaxPending   int           // collector buffer cap (<=0: 4*Workers)
	StallTimeout time.Duration // max wait for the next-expected batch (0 disables)
	OnError      FailPolicy
	Limiter      *Limiter // shared worker budget across runs; nil = unlimited
	Observer     Observer // advisory; nil = no-op
	Log          *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxPending <= 0 {
		c.MaxPending = 4 * c.Workers
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	if c.Log == nil {
		nop := zerolog.Nop()
		c.Log = &nop
	}
	return c
}

// Report summarizes a completed (or aborted) run.
type Report struct {
	Records        int64 // records read from the source
	Batches        int64 // batches dispatched
	Written        int64 // result items delivered to the sink
	SkippedBatches int64 // batches dropped under FailPolicy Skip
}

type outcome[R any] struct {
	seq   int64
	items []R
	err   error
}

// Run drives src through a pool of cfg.Workers transforms and writes ordered
// results to sink. It blocks until the run completes or aborts, closes sink
// in both cases, and returns a single terminating error (nil on success).
//
// Ordering guarantee: sink.Write sees strictly increasing sequence numbers
// with no gaps among written batches; worker completion order is unspecified.
func Run[T, R any](ctx context.Context, cfg Config, src Source[T], factory Factory[T, R], sink Sink[R]) (Report, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan Batch[T], cfg.Workers)
	results := make(chan outcome[R], cfg.Workers)

	// Workers. Each slot owns one transform for the whole run.
	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		tr := factory()
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-jobs:
					if !ok {
						return
					}
					out := runBatch(ctx, cfg, tr, b)
					select {
					case results <- out:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reorders completions back into sequence order and feeds the
	// sink. First collector error cancels the run.
	var (
		cwg  sync.WaitGroup
		crep collectReport
		cerr error
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		crep, cerr = collect(ctx, cfg, results, sink)
		if cerr != nil {
			cancel()
		}
	}()

	// Feed work: read, batch, dispatch.
	var rep Report
	var ferr error
	batch := Batch[T]{Items: make([]T, 0, cfg.BatchSize)}
	flush := func() bool {
		if len(batch.Items) == 0 {
			return true
		}
		select {
		case jobs <- batch:
		case <-ctx.Done():
			return false
		}
		cfg.Observer.BatchDispatched(len(batch.Items))
		rep.Batches++
		batch = Batch[T]{Seq: batch.Seq + 1, Items: make([]T, 0, cfg.BatchSize)}
		return true
	}
feed:
	for {
		select {
		case <-ctx.Done():
			break feed
		default:
		}
		item, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			ferr = err
			break
		}
		batch.Items = append(batch.Items, item)
		rep.Records++
		if len(batch.Items) == cfg.BatchSize {
			if !flush() {
				break feed
			}
		}
	}
	if ferr == nil {
		flush()
	} else {
		cancel() // stop admitting new work
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	rep.Written = crep.written
	rep.SkippedBatches = crep.skipped

	closeErr := sink.Close()

	switch {
	case ferr != nil:
		return rep, ferr
	case cerr != nil:
		return rep, cerr
	case closeErr != nil:
		return rep, &SinkError{Seq: batch.Seq, Err: closeErr}
	default:
		return rep, ctx.Err()
	}
}

func runBatch[T, R any](ctx context.Context, cfg Config, tr Transform[T, R], b Batch[T]) outcome[R] {
	if err := cfg.Limiter.Acquire(ctx); err != nil {
		return outcome[R]{seq: b.Seq, err: err}
	}
	defer cfg.Limiter.Release()

	started := time.Now()
	items, err := tr.Process(ctx, b.Items)
	cfg.Observer.BatchDone(time.Since(started))
	return outcome[R]{seq: b.Seq, items: items, err: err}
}

type collectReport struct {
	written int64
	skipped int64
}

// collect re-linearizes out-of-order outcomes. Dense monotonic sequence
// numbers make a pending map plus a next-expected counter sufficient: O(1)
// amortized per batch, and at most W-1 entries buffered while workers keep
// pace (a stalled worker grows the buffer until MaxPending or StallTimeout
// trips).
func collect[R any](ctx context.Context, cfg Config, results <-chan outcome[R], sink Sink[R]) (collectReport, error) {
	var rep collectReport
	pending := make(map[int64]Result[R], cfg.Workers)
	next := int64(0)

	var timer *time.Timer
	var stallC <-chan time.Time
	resetStall := func() {
		if cfg.StallTimeout <= 0 {
			return
		}
		if timer == nil {
			timer = time.NewTimer(cfg.StallTimeout)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(cfg.StallTimeout)
		}
		stallC = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case out, ok := <-results:
			if !ok {
				if err := ctx.Err(); err != nil {
					return rep, err
				}
				if len(pending) > 0 {
					// Workers exited without completing the blocking batch.
					return rep, &BackpressureError{Seq: next, Pending: len(pending)}
				}
				return rep, nil
			}
			if out.err != nil {
				if cfg.OnError != Skip || errors.Is(out.err, context.Canceled) {
					return rep, &TransformError{Seq: out.seq, Err: out.err}
				}
				cfg.Log.Warn().Int64("seq", out.seq).Err(out.err).Msg("skipping failed batch")
				rep.skipped++
				pending[out.seq] = Result[R]{Seq: out.seq} // advances ordering, writes nothing
			} else {
				pending[out.seq] = Result[R]{Seq: out.seq, Items: out.items}
			}

			advanced := false
			for {
				res, ready := pending[next]
				if !ready {
					break
				}
				delete(pending, next)
				if len(res.Items) > 0 {
					if err := sink.Write(res); err != nil {
						return rep, &SinkError{Seq: res.Seq, Err: err}
					}
					rep.written += int64(len(res.Items))
				}
				next++
				advanced = true
			}
			if advanced || timer == nil {
				resetStall()
			}
			cfg.Observer.PendingResults(len(pending))
			if len(pending) > cfg.MaxPending {
				return rep, &BackpressureError{Seq: next, Pending: len(pending)}
			}
		case <-stallC:
			if len(pending) == 0 {
				// Nothing out of order; the pipeline is just idle.
				stallC = nil
				timer = nil
				continue
			}
			return rep, &BackpressureError{Seq: next, Pending: len(pending), Stalled: true}
		case <-ctx.Done():
			return rep, ctx.Err()
		}
	}
}
