// internal/demux/counts.go
package demux

// Count keys shared between workers and statistics.
const (
	KeyTotal     = "total"
	KeyMatched   = "matched"
	KeyUnmatched = "unmatched"
)

// Counts accumulates demultiplexing tallies. Each worker slot owns its own
// Counts; slots are merged after the run, so no locking is needed here.
type Counts map[string]int64

func (c Counts) Add(key string, n int64) {
	c[key] += n
}

// Merge folds other into c.
func (c Counts) Merge(other Counts) {
	for k, v := range other {
		c[k] += v
	}
}
