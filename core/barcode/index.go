// core/barcode/index.go
package barcode

import (
	"math"
	"regexp"
	"strings"

	"fqdx-core/align"
	"fqdx-core/fastq"
)

// DefaultIndexErrorRate is the acceptance threshold for index barcodes.
const DefaultIndexErrorRate = 0.1

// dualIndexRe matches Illumina dual-index barcodes as they appear in read
// headers, e.g. "ATCACGTT+AGGCTATA".
var dualIndexRe = regexp.MustCompile(`^[ACGTN]+\+[ACGTN]+$`)

// Index classifies read pairs by the index barcode recorded in the read
// header (the last ':'-separated field), using edit distance against the
// known adapters.
type Index struct {
	adapters []string
	budget   map[string]int
}

// NewIndex builds an index classifier. errorRate <= 0 picks the default.
func NewIndex(adapters []string, errorRate float64) *Index {
	if errorRate <= 0 {
		errorRate = DefaultIndexErrorRate
	}
	budget := make(map[string]int, len(adapters))
	for _, a := range adapters {
		budget[a] = int(math.Floor(float64(len(a)) * errorRate))
	}
	return &Index{adapters: adapters, budget: budget}
}

// HeaderBarcode extracts the barcode from a read identifier: the last
// ':'-separated field of the header.
func HeaderBarcode(id string) string {
	if i := strings.IndexAny(id, " \t"); i >= 0 {
		id = id[i+1:]
	}
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// NormalizeDualIndex converts a header barcode into the orientation used by
// the barcode table: uppercased, with the i5 (second) index
// reverse-complemented. Non-dual-index strings are only uppercased.
func NormalizeDualIndex(bc string) string {
	bc = strings.ToUpper(bc)
	if !dualIndexRe.MatchString(bc) {
		return bc
	}
	i7, i5, _ := strings.Cut(bc, "+")
	return i7 + "+" + reverseComplement(i5)
}

func reverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		var c byte
		switch s[len(s)-1-i] {
		case 'A':
			c = 'T'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		case 'T':
			c = 'A'
		default:
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// match returns the first adapter within its error budget, or "". The edit
// distance must stay strictly under floor(len(adapter)*errorRate); an exact
// match always qualifies, so short barcodes whose budget floors to zero
// still accept their exact form.
func (c *Index) match(bc string) string {
	for _, adapter := range c.adapters {
		d := align.EditDistance(bc, adapter)
		if d == 0 || d < c.budget[adapter] {
			return adapter
		}
	}
	return ""
}

// Assign classifies a pair by its header barcode. Reads are not modified.
// The per-mate labels are always empty: index matching is a property of the
// pair, not of either mate.
func (c *Index) Assign(r1, r2 *fastq.Read) (label, m1, m2 string) {
	bc := NormalizeDualIndex(HeaderBarcode(r1.ID))
	return c.match(bc), "", ""
}
