// pkg/api/stats_v1.go
package api

// StatsRowV1 is the stable per-barcode statistics row written to CSV.
// Field order here defines the column order.
type StatsRowV1 struct {
	Sample         string  `json:"sample"`
	Barcode        string  `json:"barcode"`
	Read1Percent   float64 `json:"read1_percent"`
	Read2Percent   float64 `json:"read2_percent"`
	TotalPercent   float64 `json:"total_percent"`
	TotalReads     int64   `json:"total_reads"`
	MatchedReads   int64   `json:"matched_reads"`
	UnmatchedReads int64   `json:"unmatched_reads"`
}

// StatsCSVHeaderV1 is the CSV header matching StatsRowV1.
var StatsCSVHeaderV1 = []string{
	"sample", "barcode",
	"read1_percent", "read2_percent", "total_percent",
	"total_reads", "matched_reads", "unmatched_reads",
}
