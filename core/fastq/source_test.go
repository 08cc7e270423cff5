package fastq

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeGz(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func TestOpenSniffsGzipWithoutSuffix(t *testing.T) {
	dir := t.TempDir()
	// Deliberately no .gz suffix: detection is by magic number.
	path := filepath.Join(dir, "reads.fastq")
	writeGz(t, path, record("a", "ACGT"))

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	r := NewReader(rc)
	rec, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if rec.ID != "a" {
		t.Fatalf("unexpected record %q", rec.ID)
	}
}

func TestCreateRoundTripsGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.fastq.gz")

	wc, err := Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	rec := &Read{ID: "x", Seq: []byte("ACGT"), Qual: []byte("IIII")}
	if err := WriteRead(wc, rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := wc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := NewReader(rc).Next()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.ID != "x" || string(got.Seq) != "ACGT" || string(got.Qual) != "IIII" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestPairSourceSpansFiles(t *testing.T) {
	dir := t.TempDir()
	r1a := filepath.Join(dir, "a.R1.fastq.gz")
	r2a := filepath.Join(dir, "a.R2.fastq.gz")
	r1b := filepath.Join(dir, "b.R1.fastq.gz")
	r2b := filepath.Join(dir, "b.R2.fastq.gz")
	writeGz(t, r1a, record("a1", "ACGT"))
	writeGz(t, r2a, record("a1", "TTAA"))
	writeGz(t, r1b, record("b1", "GGCC")+record("b2", "AATT"))
	writeGz(t, r2b, record("b1", "CCGG")+record("b2", "TTCC"))

	src, err := NewPairSource([]string{r1a, r1b}, []string{r2a, r2b}, false)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	defer src.Close()

	var ids []string
	for {
		p, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		ids = append(ids, p.R1.ID)
	}
	want := []string{"a1", "b1", "b2"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order mismatch at %d: %q vs %q", i, ids[i], want[i])
		}
	}
	if src.Total() != 3 {
		t.Fatalf("expected total 3, got %d", src.Total())
	}
}

func TestPairSourceMismatchedLists(t *testing.T) {
	if _, err := NewPairSource([]string{"a", "b"}, []string{"c"}, false); err == nil {
		t.Fatal("expected error for mismatched file lists")
	}
}
