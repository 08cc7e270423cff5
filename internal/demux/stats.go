// internal/demux/stats.go
package demux

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"fqdx/pkg/api"
)

// Statistics renders merged counts into the stable per-barcode CSV rows.
type Statistics struct {
	Sample   string
	Barcodes []string
	Counts   Counts
}

// Rows builds one row per barcode. Percentages are fractions of the total
// pair count; an empty run produces no rows.
func (s Statistics) Rows() []api.StatsRowV1 {
	total := s.Counts[KeyTotal]
	if total == 0 {
		return nil
	}
	unmatched := s.Counts[KeyUnmatched]
	rows := make([]api.StatsRowV1, 0, len(s.Barcodes))
	for _, bc := range s.Barcodes {
		matched := s.Counts[bc]
		rows = append(rows, api.StatsRowV1{
			Sample:         s.Sample,
			Barcode:        bc,
			Read1Percent:   float64(s.Counts[bc+"_1"]) / float64(total),
			Read2Percent:   float64(s.Counts[bc+"_2"]) / float64(total),
			TotalPercent:   float64(matched) / float64(total),
			TotalReads:     total,
			MatchedReads:   matched,
			UnmatchedReads: unmatched,
		})
	}
	return rows
}

// WriteCSV writes the header plus one row per barcode.
func (s Statistics) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(api.StatsCSVHeaderV1); err != nil {
		return err
	}
	for _, r := range s.Rows() {
		rec := []string{
			r.Sample, r.Barcode,
			formatFrac(r.Read1Percent), formatFrac(r.Read2Percent), formatFrac(r.TotalPercent),
			strconv.FormatInt(r.TotalReads, 10),
			strconv.FormatInt(r.MatchedReads, 10),
			strconv.FormatInt(r.UnmatchedReads, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the statistics to path.
func (s Statistics) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	if err := s.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("stats: %w", err)
	}
	return f.Close()
}

func formatFrac(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
