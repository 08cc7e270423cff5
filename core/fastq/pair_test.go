package fastq

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func record(id, seq string) string {
	qual := strings.Repeat("I", len(seq))
	return "@" + id + "\n" + seq + "\n+\n" + qual + "\n"
}

func TestPairReaderLockStep(t *testing.T) {
	r1 := NewReader(strings.NewReader(record("a/1", "ACGT") + record("b/1", "GGCC")))
	r2 := NewReader(strings.NewReader(record("a/2", "TTAA") + record("b/2", "CCGG")))
	pr := NewPairReader(r1, r2, true)

	p, err := pr.Next()
	if err != nil {
		t.Fatalf("first pair: %v", err)
	}
	if p.R1.ID != "a/1" || p.R2.ID != "a/2" {
		t.Fatalf("unexpected pair: %v / %v", p.R1.ID, p.R2.ID)
	}
	if _, err := pr.Next(); err != nil {
		t.Fatalf("second pair: %v", err)
	}
	if _, err := pr.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
	if pr.Pairs() != 2 {
		t.Fatalf("expected 2 pairs, got %d", pr.Pairs())
	}
}

func TestPairReaderDesyncOnLength(t *testing.T) {
	r1 := NewReader(strings.NewReader(record("a", "ACGT") + record("b", "GGCC")))
	r2 := NewReader(strings.NewReader(record("a", "TTAA")))
	pr := NewPairReader(r1, r2, false)

	if _, err := pr.Next(); err != nil {
		t.Fatalf("first pair: %v", err)
	}
	_, err := pr.Next()
	var dErr *DesyncError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DesyncError, got %v", err)
	}
	if dErr.Index != 2 {
		t.Fatalf("expected desync at pair 2, got %d", dErr.Index)
	}
}

func TestPairReaderDesyncOnIDs(t *testing.T) {
	r1 := NewReader(strings.NewReader(record("a/1", "ACGT")))
	r2 := NewReader(strings.NewReader(record("z/2", "TTAA")))
	pr := NewPairReader(r1, r2, true)

	_, err := pr.Next()
	var dErr *DesyncError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DesyncError, got %v", err)
	}
}

func TestPairReaderIDValidationOff(t *testing.T) {
	r1 := NewReader(strings.NewReader(record("a/1", "ACGT")))
	r2 := NewReader(strings.NewReader(record("z/2", "TTAA")))
	pr := NewPairReader(r1, r2, false)

	if _, err := pr.Next(); err != nil {
		t.Fatalf("expected pair despite ID mismatch, got %v", err)
	}
}

func TestPairReaderSingleEnd(t *testing.T) {
	r1 := NewReader(strings.NewReader(record("a", "ACGT")))
	pr := NewPairReader(r1, nil, false)

	p, err := pr.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if p.R2 != nil {
		t.Fatal("expected nil R2 in single-end mode")
	}
	if _, err := pr.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestPairReaderMalformedAdvancesBothStreams(t *testing.T) {
	// Record 1 in R1 has a bad quality length; both streams must still be
	// positioned at record 2 afterwards so lenient callers can resume.
	r1 := NewReader(strings.NewReader("@a\nACGT\n+\nII\n" + record("b", "GGCC")))
	r2 := NewReader(strings.NewReader(record("a", "TTAA") + record("b", "CCGG")))
	pr := NewPairReader(r1, r2, false)

	_, err := pr.Next()
	var mErr *MalformedRecordError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}

	p, err := pr.Next()
	if err != nil {
		t.Fatalf("expected resume at record 2, got %v", err)
	}
	if p.R1.ID != "b" || p.R2.ID != "b" {
		t.Fatalf("streams out of step after skip: %v / %v", p.R1.ID, p.R2.ID)
	}
}
