// core/align/sg.go
package align

// Result of a semi-global alignment of a query against a reference prefix.
type Result struct {
	Score   int // alignment score under the (Match, -Penalty) scheme
	Matches int // number of exactly matching positions
	EndRef  int // 0-based index of the last reference base covered; -1 if none
}

// Scoring holds the alignment parameters. Gaps cost Penalty per base, the
// same as a mismatch, mirroring a linear-gap substitution scheme.
type Scoring struct {
	Match   int
	Penalty int
}

// SemiGlobal aligns query against ref with the query fully aligned and gaps
// at the end of ref free. This places the query at the start of ref and lets
// the alignment stop early, which is the shape needed for inline adapters at
// the 5' end of a read: EndRef marks where the adapter ends so callers can
// trim ref[:EndRef+1].
func SemiGlobal(query, ref []byte, sc Scoring) Result {
	m, n := len(query), len(ref)
	if m == 0 || n == 0 {
		return Result{EndRef: -1}
	}

	// Two-row DP over (score, matches); matches follow the max-score path.
	type cell struct{ score, matches int }
	prev := make([]cell, n+1)
	cur := make([]cell, n+1)
	for j := 1; j <= n; j++ {
		prev[j] = cell{score: -j * sc.Penalty}
	}

	for i := 1; i <= m; i++ {
		cur[0] = cell{score: -i * sc.Penalty}
		for j := 1; j <= n; j++ {
			diag := prev[j-1]
			if query[i-1] == ref[j-1] {
				diag.score += sc.Match
				diag.matches++
			} else {
				diag.score -= sc.Penalty
			}
			best := diag
			if up := (cell{prev[j].score - sc.Penalty, prev[j].matches}); up.score > best.score {
				best = up
			}
			if left := (cell{cur[j-1].score - sc.Penalty, cur[j-1].matches}); left.score > best.score {
				best = left
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}

	// Free end gaps in ref: best cell anywhere in the last query row.
	best := Result{Score: prev[1].score, Matches: prev[1].matches, EndRef: 0}
	for j := 2; j <= n; j++ {
		if prev[j].score > best.Score {
			best = Result{Score: prev[j].score, Matches: prev[j].matches, EndRef: j - 1}
		}
	}
	return best
}

// Distance converts an alignment result into the mismatch-equivalent
// distance used for barcode acceptance: (Match*matches − score) / Penalty.
// A perfect alignment has distance 0; each mismatch or gap adds about 1.
func Distance(r Result, sc Scoring) float64 {
	if sc.Penalty == 0 {
		return 0
	}
	return float64(sc.Match*r.Matches-r.Score) / float64(sc.Penalty)
}
