// core/barcode/inline.go
package barcode

import (
	"fmt"
	"math"

	"fqdx-core/align"
	"fqdx-core/fastq"
)

// Inline defaults, matching the established demux behavior.
const (
	DefaultInlineErrorRate = 0.2
	DefaultScore           = 1
	DefaultPenalty         = 10

	// adapterWindow bounds the alignment to the 5' end of each read.
	adapterWindow = 20
)

// Inline classifies read pairs by inline barcode adapters at the start of the
// read. A matching adapter is trimmed off the read's sequence and qualities.
// Instances hold no mutable state and are safe to share read-only; Assign
// mutates only the reads it is given.
type Inline struct {
	adapters  []string
	errorRate float64
	maxDist   map[string]float64
	minMatch  int
	sc        align.Scoring
}

// NewInline builds an inline classifier over adapters. errorRate <= 0 picks
// the default; score/penalty <= 0 pick their defaults.
func NewInline(adapters []string, errorRate float64, score, penalty int) (*Inline, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("barcode: no adapters")
	}
	if errorRate <= 0 {
		errorRate = DefaultInlineErrorRate
	}
	if score <= 0 {
		score = DefaultScore
	}
	if penalty <= 0 {
		penalty = DefaultPenalty
	}

	minLen := len(adapters[0])
	maxDist := make(map[string]float64, len(adapters))
	for _, a := range adapters {
		if len(a) < minLen {
			minLen = len(a)
		}
		maxDist[a] = math.Floor(float64(len(a)) * errorRate)
	}
	return &Inline{
		adapters:  adapters,
		errorRate: errorRate,
		maxDist:   maxDist,
		minMatch:  int(math.Round(float64(minLen) / 2)),
		sc:        align.Scoring{Match: score, Penalty: penalty},
	}, nil
}

// matchOne finds the first adapter matching the start of read and trims it.
// Returns the adapter or "".
func (c *Inline) matchOne(read *fastq.Read) string {
	window := read.Seq
	if len(window) > adapterWindow {
		window = window[:adapterWindow]
	}
	for _, adapter := range c.adapters {
		r := align.SemiGlobal([]byte(adapter), window, c.sc)
		if r.Matches <= c.minMatch {
			continue
		}
		if align.Distance(r, c.sc) > c.maxDist[adapter] {
			continue
		}
		read.Seq = read.Seq[r.EndRef+1:]
		read.Qual = read.Qual[r.EndRef+1:]
		return adapter
	}
	return ""
}

// Assign classifies a pair and trims matching adapters in place. It returns
// the pair's label (the longer of the two mates' adapters, or "" when neither
// matches) plus the per-mate adapters for counting.
func (c *Inline) Assign(r1, r2 *fastq.Read) (label, m1, m2 string) {
	m1 = c.matchOne(r1)
	if r2 != nil {
		m2 = c.matchOne(r2)
	}
	if len(m1) > len(m2) {
		return m1, m1, m2
	}
	return m2, m1, m2
}
