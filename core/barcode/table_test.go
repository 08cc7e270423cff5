package barcode

import "testing"

func TestParseAssignments(t *testing.T) {
	tab, err := ParseAssignments([]string{"ACGT=sampleA", "ttgc=sampleB"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tab.Barcodes) != 2 {
		t.Fatalf("expected 2 barcodes, got %v", tab.Barcodes)
	}
	if tab.Barcodes[0] != "ACGT" || tab.Barcodes[1] != "TTGC" {
		t.Fatalf("barcodes not uppercased or out of order: %v", tab.Barcodes)
	}
	if tab.Prefix["TTGC"] != "sampleB" {
		t.Fatalf("prefix lookup failed: %v", tab.Prefix)
	}
}

func TestParseAssignmentsSharedPrefix(t *testing.T) {
	tab, err := ParseAssignments([]string{"ACGT TTGC=pooled"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tab.Prefix["ACGT"] != "pooled" || tab.Prefix["TTGC"] != "pooled" {
		t.Fatalf("shared prefix not applied: %v", tab.Prefix)
	}
}

func TestParseAssignmentsNoPrefix(t *testing.T) {
	tab, err := ParseAssignments([]string{"ACGT"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tab.Prefix["ACGT"] != "" {
		t.Fatalf("expected empty prefix, got %q", tab.Prefix["ACGT"])
	}
}

func TestParseAssignmentsErrors(t *testing.T) {
	cases := []struct {
		name  string
		specs []string
	}{
		{"empty list", nil},
		{"empty spec", []string{"=sampleA"}},
		{"invalid base", []string{"ACXT=sampleA"}},
		{"duplicate", []string{"ACGT=a", "acgt=b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseAssignments(tc.specs); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
