// internal/writers/demux.go
package writers

import (
	"bufio"
	"io"

	"fqdx-core/barcode"
	"fqdx-core/fastq"

	"fqdx/internal/demux"
	"fqdx/internal/pipeline"
)

// PairedNames maps an output prefix to its R1/R2 filenames.
func PairedNames(prefix string) (string, string) {
	return prefix + ".R1.fastq.gz", prefix + ".R2.fastq.gz"
}

// SingleName maps an output prefix to its single-end filename.
func SingleName(prefix string) string {
	return prefix + ".R1.fastq.gz"
}

// pairTarget is one open output pair. r2 fields are nil in single-end mode.
type pairTarget struct {
	r1c, r2c io.WriteCloser
	r1, r2   *bufio.Writer
}

func openTarget(prefix string, singleEnd bool) (*pairTarget, error) {
	t := &pairTarget{}
	var p1 string
	if singleEnd {
		p1 = SingleName(prefix)
	} else {
		p1, _ = PairedNames(prefix)
	}
	wc1, err := fastq.Create(p1)
	if err != nil {
		return nil, err
	}
	t.r1c = wc1
	t.r1 = bufio.NewWriterSize(wc1, 128*1024)
	if !singleEnd {
		_, p2 := PairedNames(prefix)
		wc2, err := fastq.Create(p2)
		if err != nil {
			_ = wc1.Close()
			return nil, err
		}
		t.r2c = wc2
		t.r2 = bufio.NewWriterSize(wc2, 128*1024)
	}
	return t, nil
}

func (t *pairTarget) close() error {
	err := t.r1.Flush()
	if cerr := t.r1c.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if t.r2 != nil {
		if ferr := t.r2.Flush(); ferr != nil && err == nil {
			err = ferr
		}
		if cerr := t.r2c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Demux routes classified read pairs to per-prefix output file pairs. It
// implements pipeline.Sink[demux.Assignment]: writes arrive in sequence
// order, and Close runs on both normal completion and abort.
type Demux struct {
	byBarcode map[string]*pairTarget
	targets   []*pairTarget
	singleEnd bool
	closed    bool
}

// NewDemux opens every output pair up front. Barcodes with an empty prefix
// are discarded; unmatchedPrefix, when non-empty, captures NO_MATCH pairs.
func NewDemux(table barcode.Table, unmatchedPrefix string, singleEnd bool) (*Demux, error) {
	d := &Demux{byBarcode: make(map[string]*pairTarget), singleEnd: singleEnd}
	byPrefix := make(map[string]*pairTarget)

	open := func(bc, prefix string) error {
		if prefix == "" {
			return nil
		}
		t, ok := byPrefix[prefix]
		if !ok {
			var err error
			t, err = openTarget(prefix, singleEnd)
			if err != nil {
				_ = d.Close()
				return err
			}
			byPrefix[prefix] = t
			d.targets = append(d.targets, t)
		}
		d.byBarcode[bc] = t
		return nil
	}

	for _, bc := range table.Barcodes {
		if err := open(bc, table.Prefix[bc]); err != nil {
			return nil, err
		}
	}
	if err := open(barcode.NoMatch, unmatchedPrefix); err != nil {
		return nil, err
	}
	return d, nil
}

// Write appends every assignment in the result to its barcode's target.
func (d *Demux) Write(res pipeline.Result[demux.Assignment]) error {
	for _, a := range res.Items {
		t := d.byBarcode[a.Barcode]
		if t == nil {
			continue
		}
		if err := fastq.WriteRead(t.r1, a.Pair.R1); err != nil {
			return err
		}
		if !d.singleEnd && a.Pair.R2 != nil {
			if err := fastq.WriteRead(t.r2, a.Pair.R2); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close flushes and closes every target. Safe to call more than once.
func (d *Demux) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	var err error
	for _, t := range d.targets {
		if cerr := t.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
