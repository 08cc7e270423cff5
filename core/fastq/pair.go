// core/fastq/pair.go
package fastq

import "io"

// PairReader reads two FASTQ streams in lock-step. End-of-stream is declared
// only when both sources are exhausted simultaneously; anything else is a
// *DesyncError. With r2 == nil it operates single-end and pairs carry a nil R2.
type PairReader struct {
	r1, r2      *Reader
	validateIDs bool
	pairs       int64
}

// NewPairReader pairs r1 with r2 (r2 may be nil for single-end input).
// When validateIDs is set, mate identifiers must agree after stripping the
// /1 and /2 suffixes.
func NewPairReader(r1, r2 *Reader, validateIDs bool) *PairReader {
	return &PairReader{r1: r1, r2: r2, validateIDs: validateIDs}
}

// Pairs returns the number of pairs successfully returned so far.
func (p *PairReader) Pairs() int64 { return p.pairs }

// Next returns the next pair, io.EOF at end of both streams, a
// *DesyncError when the streams lose lock-step, or the underlying record
// error otherwise.
func (p *PairReader) Next() (Pair, error) {
	a, errA := p.r1.Next()
	if p.r2 == nil {
		if errA != nil {
			return Pair{}, errA
		}
		p.pairs++
		return Pair{R1: a}, nil
	}
	b, errB := p.r2.Next()

	switch {
	case errA != nil && errA != io.EOF:
		return Pair{}, errA
	case errB != nil && errB != io.EOF:
		return Pair{}, errB
	case errA == io.EOF && errB == io.EOF:
		return Pair{}, io.EOF
	case errA == io.EOF:
		return Pair{}, &DesyncError{Index: p.pairs + 1, Reason: "R1 ended before R2 (mate missing)"}
	case errB == io.EOF:
		return Pair{}, &DesyncError{Index: p.pairs + 1, Reason: "R2 ended before R1 (mate missing)"}
	}

	if p.validateIDs && a.BaseID() != b.BaseID() {
		return Pair{}, &DesyncError{
			Index:  p.pairs + 1,
			Reason: "mate identifiers disagree: " + a.BaseID() + " vs " + b.BaseID(),
		}
	}
	p.pairs++
	return Pair{R1: a, R2: b}, nil
}
