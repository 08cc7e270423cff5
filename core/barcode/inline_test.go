package barcode

import (
	"strings"
	"testing"

	"fqdx-core/fastq"
)

func read(seq string) *fastq.Read {
	return &fastq.Read{
		ID:   "r",
		Seq:  []byte(seq),
		Qual: []byte(strings.Repeat("I", len(seq))),
	}
}

func TestInlineExactMatchTrims(t *testing.T) {
	c, err := NewInline([]string{"ACGTACGT"}, 0, 0, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	r1 := read("ACGTACGTGGGGTTTT")
	r2 := read("TTTTTTTTTTTTTTTT")
	label, m1, m2 := c.Assign(r1, r2)
	if label != "ACGTACGT" || m1 != "ACGTACGT" || m2 != "" {
		t.Fatalf("unexpected assignment: %q %q %q", label, m1, m2)
	}
	if string(r1.Seq) != "GGGGTTTT" {
		t.Fatalf("adapter not trimmed: %q", r1.Seq)
	}
	if len(r1.Qual) != len(r1.Seq) {
		t.Fatalf("qualities out of step with sequence: %d vs %d", len(r1.Qual), len(r1.Seq))
	}
	if string(r2.Seq) != "TTTTTTTTTTTTTTTT" {
		t.Fatalf("non-matching read was modified: %q", r2.Seq)
	}
}

func TestInlineToleratesOneMismatch(t *testing.T) {
	// 8bp adapter at rate 0.2 allows distance floor(1.6) = 1.
	c, err := NewInline([]string{"ACGTACGT"}, 0, 0, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	r1 := read("ACGTACGAGGGGTTTT")
	label, _, _ := c.Assign(r1, read("TTTTTTTTTTTTTTTT"))
	if label != "ACGTACGT" {
		t.Fatalf("expected match with one mismatch, got %q", label)
	}
}

func TestInlineRejectsTooManyErrors(t *testing.T) {
	c, err := NewInline([]string{"ACGTACGT"}, 0, 0, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	r1 := read("ACGAAGGAGGGGTTTT")
	label, _, _ := c.Assign(r1, read("TTTTTTTTTTTTTTTT"))
	if label != "" {
		t.Fatalf("expected no match, got %q", label)
	}
	if string(r1.Seq) != "ACGAAGGAGGGGTTTT" {
		t.Fatalf("rejected read was trimmed: %q", r1.Seq)
	}
}

func TestInlineLongerMateWins(t *testing.T) {
	c, err := NewInline([]string{"ACGTACGTAC", "ACGT"}, 0, 0, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	r1 := read("ACGTTTTTTTTTTTTT")
	r2 := read("ACGTACGTACGGGGGG")
	label, m1, m2 := c.Assign(r1, r2)
	if m1 != "ACGT" || m2 != "ACGTACGTAC" {
		t.Fatalf("unexpected mate adapters: %q %q", m1, m2)
	}
	if label != "ACGTACGTAC" {
		t.Fatalf("expected the longer adapter as label, got %q", label)
	}
}

func TestInlineSingleEnd(t *testing.T) {
	c, err := NewInline([]string{"ACGTACGT"}, 0, 0, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	label, m1, m2 := c.Assign(read("ACGTACGTGGGGTTTT"), nil)
	if label != "ACGTACGT" || m1 != "ACGTACGT" || m2 != "" {
		t.Fatalf("unexpected assignment: %q %q %q", label, m1, m2)
	}
}

func TestInlineNoAdapters(t *testing.T) {
	if _, err := NewInline(nil, 0, 0, 0); err == nil {
		t.Fatal("expected error for empty adapter list")
	}
}
