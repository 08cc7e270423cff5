package barcode

import (
	"testing"

	"fqdx-core/fastq"
)

func TestHeaderBarcode(t *testing.T) {
	cases := map[string]string{
		"M001:1:000-ABCDE:1:1101:100:200 1:N:0:ACGTACGT": "ACGTACGT",
		"M001:1:x 2:N:0:ACGT+TTGC":                       "ACGT+TTGC",
		"nofield":                                        "nofield",
	}
	for in, want := range cases {
		if got := HeaderBarcode(in); got != want {
			t.Errorf("HeaderBarcode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDualIndex(t *testing.T) {
	cases := map[string]string{
		"ACGT+TTGC": "ACGT+GCAA",
		"acgt+ttgc": "ACGT+GCAA",
		"ACGTACGT":  "ACGTACGT",
		"ACGT+NNNN": "ACGT+NNNN",
	}
	for in, want := range cases {
		if got := NormalizeDualIndex(in); got != want {
			t.Errorf("NormalizeDualIndex(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIndexAssign(t *testing.T) {
	c := NewIndex([]string{"ACGTACGTAC", "TTGCATTGCA"}, 0)

	r1 := &fastq.Read{ID: "m:1:x 1:N:0:ACGTACGTAC", Seq: []byte("AAAA")}
	label, m1, m2 := c.Assign(r1, nil)
	if label != "ACGTACGTAC" || m1 != "" || m2 != "" {
		t.Fatalf("unexpected assignment: %q %q %q", label, m1, m2)
	}
	if string(r1.Seq) != "AAAA" {
		t.Fatalf("index mode must not modify reads: %q", r1.Seq)
	}
}

func TestIndexExactMatchAlwaysAccepted(t *testing.T) {
	// 8bp barcode at rate 0.1 has budget floor(0.8) = 0: only exact matches
	// qualify, and they must not be rejected by the strict threshold.
	c := NewIndex([]string{"ACGTACGT"}, 0)
	if got := c.match("ACGTACGT"); got != "ACGTACGT" {
		t.Fatalf("exact match rejected: %q", got)
	}
	if got := c.match("ACGTACGA"); got != "" {
		t.Fatalf("expected rejection at distance 1, got %q", got)
	}
}

func TestIndexBudgetIsFloored(t *testing.T) {
	// 17-char dual index at rate 0.1: budget floor(1.7) = 1, so distance 1
	// is rejected and only the exact barcode passes.
	bc := "ACGTACGT+ACGTACGT"
	c := NewIndex([]string{bc}, 0)
	if got := c.match(bc); got != bc {
		t.Fatalf("exact match rejected: %q", got)
	}
	if got := c.match("ACGTACGT+ACGTACGA"); got != "" {
		t.Fatalf("expected rejection at distance 1, got %q", got)
	}
}

func TestIndexToleratesErrorsWithinBudget(t *testing.T) {
	// 20bp barcode at rate 0.1 allows distance < 2.
	bc := "ACGTACGTACGTACGTACGT"
	c := NewIndex([]string{bc}, 0)
	if got := c.match("ACGTACGTACGTACGTACGA"); got != bc {
		t.Fatalf("expected match at distance 1, got %q", got)
	}
	if got := c.match("ACGTACGTACGTACGTATTA"); got == bc {
		t.Fatal("expected rejection at distance >= 2")
	}
}
