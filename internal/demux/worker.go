// internal/demux/worker.go
package demux

import (
	"context"
	"sync"

	"fqdx-core/barcode"
	"fqdx-core/fastq"

	"fqdx/internal/pipeline"
)

// Classifier assigns a barcode label to a read pair, optionally trimming the
// reads in place (the worker owns the batch at that point). It returns the
// pair's label ("" for no match) and the per-mate matches for counting.
type Classifier interface {
	Assign(r1, r2 *fastq.Read) (label, m1, m2 string)
}

// Assignment is one classified read pair: the routing label plus the
// (possibly trimmed) pair.
type Assignment struct {
	Barcode string
	Pair    fastq.Pair
}

// Worker is one slot's transform: a private classifier plus private tallies.
type Worker struct {
	cls    Classifier
	counts Counts
}

// Process classifies a batch. Output order matches input order.
func (w *Worker) Process(_ context.Context, pairs []fastq.Pair) ([]Assignment, error) {
	out := make([]Assignment, 0, len(pairs))
	for _, p := range pairs {
		label, m1, m2 := w.cls.Assign(p.R1, p.R2)
		if m1 != "" {
			w.counts.Add(m1+"_1", 1)
		}
		if m2 != "" {
			w.counts.Add(m2+"_2", 1)
		}
		if label == "" {
			w.counts.Add(KeyUnmatched, 1)
			label = barcode.NoMatch
		} else {
			w.counts.Add(KeyMatched, 1)
			w.counts.Add(label, 1)
		}
		out = append(out, Assignment{Barcode: label, Pair: p})
	}
	w.counts.Add(KeyTotal, int64(len(pairs)))
	return out, nil
}

// Pool hands one Worker per pipeline slot and merges their tallies afterwards.
type Pool struct {
	mu            sync.Mutex
	newClassifier func() Classifier
	workers       []*Worker
}

func NewPool(newClassifier func() Classifier) *Pool {
	return &Pool{newClassifier: newClassifier}
}

// Factory is passed to pipeline.Run; each call builds a fresh slot.
func (p *Pool) Factory() pipeline.Transform[fastq.Pair, Assignment] {
	w := &Worker{cls: p.newClassifier(), counts: make(Counts)}
	p.mu.Lock()
	p.workers = append(p.workers, w)
	p.mu.Unlock()
	return w
}

// Counts merges every slot's tallies. Call only after the run has finished.
func (p *Pool) Counts() Counts {
	p.mu.Lock()
	defer p.mu.Unlock()
	merged := make(Counts)
	for _, w := range p.workers {
		merged.Merge(w.counts)
	}
	return merged
}
