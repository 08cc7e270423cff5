// core/fastq/record.go
package fastq

import "strings"

// Read is one parsed FASTQ record. ID excludes the leading '@'; Desc is the
// optional text after the '+' separator line.
type Read struct {
	ID   string
	Seq  []byte
	Desc string
	Qual []byte
}

// Pair holds a read and its mate. R2 is nil in single-end mode.
type Pair struct {
	R1 *Read
	R2 *Read
}

// BaseID strips the mate suffix ("/1", "/2") and any trailing description
// so mates from R1/R2 streams can be compared.
func (r *Read) BaseID() string {
	id := r.ID
	if i := strings.IndexAny(id, " \t"); i >= 0 {
		id = id[:i]
	}
	if n := len(id); n > 2 && id[n-2] == '/' && (id[n-1] == '1' || id[n-1] == '2') {
		id = id[:n-2]
	}
	return id
}
