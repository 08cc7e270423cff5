// core/barcode/detect.go
package barcode

import (
	"io"
	"sort"

	"fqdx-core/fastq"
)

// DetectSampleSize is how many reads Detect samples from the head of a
// stream when no limit is given.
const DetectSampleSize = 3000

// detectMinShare is the share of sampled reads a barcode must exceed to be
// reported; anything below it is treated as sequencing noise around the
// real indexes.
const detectMinShare = 0.01

// Detect samples up to limit reads from r and returns the major header
// barcodes, most frequent first. Barcodes are normalized with
// NormalizeDualIndex before counting, so i5 orientation variants collapse
// into one entry. limit <= 0 uses DetectSampleSize.
func Detect(r *fastq.Reader, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DetectSampleSize
	}
	counts := make(map[string]int)
	sampled := 0
	for sampled < limit {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		counts[NormalizeDualIndex(HeaderBarcode(rec.ID))]++
		sampled++
	}

	min := int(float64(sampled) * detectMinShare)
	var major []string
	for bc, n := range counts {
		if n > min {
			major = append(major, bc)
		}
	}
	sort.Slice(major, func(i, j int) bool {
		if counts[major[i]] != counts[major[j]] {
			return counts[major[i]] > counts[major[j]]
		}
		return major[i] < major[j]
	})
	return major, nil
}
