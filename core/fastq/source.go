// core/fastq/source.go
package fastq

import (
	"fmt"
	"io"
)

// PairSource reads pairs from a list of R1/R2 file pairs in order, opening
// each pair lazily and closing it when exhausted. Desync is checked per file
// pair; record indices restart per file.
type PairSource struct {
	r1Paths, r2Paths []string
	validateIDs      bool

	i       int
	cur     *PairReader
	closers []io.Closer
	total   int64
}

// NewPairSource builds a source over parallel path lists. r2Paths may be
// empty for single-end input; otherwise the lists must be the same length.
func NewPairSource(r1Paths, r2Paths []string, validateIDs bool) (*PairSource, error) {
	if len(r2Paths) != 0 && len(r1Paths) != len(r2Paths) {
		return nil, fmt.Errorf("fastq: %d R1 files but %d R2 files", len(r1Paths), len(r2Paths))
	}
	if len(r1Paths) == 0 {
		return nil, fmt.Errorf("fastq: no input files")
	}
	return &PairSource{r1Paths: r1Paths, r2Paths: r2Paths, validateIDs: validateIDs}, nil
}

func (s *PairSource) open() error {
	rc1, err := Open(s.r1Paths[s.i])
	if err != nil {
		return err
	}
	s.closers = []io.Closer{rc1}
	var r2 *Reader
	if len(s.r2Paths) != 0 {
		rc2, err := Open(s.r2Paths[s.i])
		if err != nil {
			_ = rc1.Close()
			s.closers = nil
			return err
		}
		s.closers = append(s.closers, rc2)
		r2 = NewReader(rc2)
	}
	s.cur = NewPairReader(NewReader(rc1), r2, s.validateIDs)
	return nil
}

// Next returns the next pair across all file pairs, io.EOF when every file
// is exhausted.
func (s *PairSource) Next() (Pair, error) {
	for {
		if s.cur == nil {
			if s.i >= len(s.r1Paths) {
				return Pair{}, io.EOF
			}
			if err := s.open(); err != nil {
				return Pair{}, err
			}
		}
		p, err := s.cur.Next()
		if err == io.EOF {
			s.closeCurrent()
			s.i++
			continue
		}
		if err != nil {
			return Pair{}, err
		}
		s.total++
		return p, nil
	}
}

// Total returns the number of pairs returned so far across all files.
func (s *PairSource) Total() int64 { return s.total }

func (s *PairSource) closeCurrent() {
	for _, c := range s.closers {
		_ = c.Close()
	}
	s.closers = nil
	s.cur = nil
}

// Close releases any open file handles. Safe to call more than once.
func (s *PairSource) Close() error {
	s.closeCurrent()
	return nil
}
