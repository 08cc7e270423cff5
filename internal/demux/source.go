// internal/demux/source.go
package demux

import (
	"errors"
	"sync/atomic"

	"fqdx-core/fastq"

	"github.com/rs/zerolog"
)

// LenientSource wraps a pair source and downgrades MalformedRecordError to a
// logged skip. Only errors detected after a complete 4-line frame was
// consumed are skipped: there the pair reader has advanced both streams by
// exactly one record, so pairing stays intact. Framing errors are never
// skipped — the failing reader is no longer known to sit on a record
// boundary, and resuming would pair later records with the wrong mates.
// DesyncError is never skipped either.
type LenientSource struct {
	src interface {
		Next() (fastq.Pair, error)
	}
	log     *zerolog.Logger
	skipped atomic.Int64
}

func NewLenientSource(src interface{ Next() (fastq.Pair, error) }, log *zerolog.Logger) *LenientSource {
	return &LenientSource{src: src, log: log}
}

func (s *LenientSource) Next() (fastq.Pair, error) {
	for {
		p, err := s.src.Next()
		var mErr *fastq.MalformedRecordError
		if errors.As(err, &mErr) && !mErr.Framing {
			s.skipped.Add(1)
			s.log.Warn().Int64("record", mErr.Index).Str("reason", mErr.Reason).Msg("skipping malformed record")
			continue
		}
		return p, err
	}
}

// Skipped returns how many records were dropped so far.
func (s *LenientSource) Skipped() int64 { return s.skipped.Load() }
