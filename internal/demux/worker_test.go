package demux

import (
	"context"
	"testing"

	"fqdx-core/barcode"
	"fqdx-core/fastq"
)

// mapClassifier labels pairs by their R1 sequence.
type mapClassifier struct {
	labels map[string]string
}

func (c *mapClassifier) Assign(r1, r2 *fastq.Read) (label, m1, m2 string) {
	label = c.labels[string(r1.Seq)]
	if label != "" {
		m1, m2 = label, label
	}
	return label, m1, m2
}

func pair(seq string) fastq.Pair {
	return fastq.Pair{
		R1: &fastq.Read{ID: "p/1", Seq: []byte(seq)},
		R2: &fastq.Read{ID: "p/2", Seq: []byte("TTTT")},
	}
}

func TestWorkerProcessCounts(t *testing.T) {
	cls := &mapClassifier{labels: map[string]string{"AAAA": "ACGT", "CCCC": "TTGC"}}
	w := &Worker{cls: cls, counts: make(Counts)}

	in := []fastq.Pair{pair("AAAA"), pair("CCCC"), pair("GGGG"), pair("AAAA")}
	out, err := w.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(out))
	}

	wantBarcodes := []string{"ACGT", "TTGC", barcode.NoMatch, "ACGT"}
	for i, want := range wantBarcodes {
		if out[i].Barcode != want {
			t.Fatalf("assignment %d: got %q, want %q", i, out[i].Barcode, want)
		}
	}

	wantCounts := Counts{
		KeyTotal:     4,
		KeyMatched:   3,
		KeyUnmatched: 1,
		"ACGT":       2,
		"TTGC":       1,
		"ACGT_1":     2,
		"ACGT_2":     2,
		"TTGC_1":     1,
		"TTGC_2":     1,
	}
	for k, v := range wantCounts {
		if w.counts[k] != v {
			t.Errorf("count %q: got %d, want %d", k, w.counts[k], v)
		}
	}
}

func TestPoolMergesSlots(t *testing.T) {
	cls := &mapClassifier{labels: map[string]string{"AAAA": "ACGT"}}
	pool := NewPool(func() Classifier { return cls })

	w1 := pool.Factory()
	w2 := pool.Factory()
	if _, err := w1.Process(context.Background(), []fastq.Pair{pair("AAAA")}); err != nil {
		t.Fatalf("slot 1: %v", err)
	}
	if _, err := w2.Process(context.Background(), []fastq.Pair{pair("AAAA"), pair("GGGG")}); err != nil {
		t.Fatalf("slot 2: %v", err)
	}

	merged := pool.Counts()
	if merged[KeyTotal] != 3 || merged[KeyMatched] != 2 || merged[KeyUnmatched] != 1 {
		t.Fatalf("unexpected merged counts: %v", merged)
	}
	if merged["ACGT"] != 2 {
		t.Fatalf("expected 2 for ACGT, got %d", merged["ACGT"])
	}
}
