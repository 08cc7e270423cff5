// core/fastq/errors.go
package fastq

import "fmt"

// MalformedRecordError reports an unparsable FASTQ record. Index is the
// 1-based record position within the stream where parsing failed.
//
// Framing marks errors where the 4-line record framing itself is broken
// (bad '@' or '+' anchor). After one, the reader is no longer known to sit
// on a record boundary, so the record cannot be skipped safely; in paired
// mode a skip would shift the mates out of register. Errors detected after
// a complete frame was consumed (quality-length mismatch, truncation at
// end of stream) leave Framing false and are skippable.
type MalformedRecordError struct {
	Index   int64
	Reason  string
	Framing bool
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("fastq: malformed record %d: %s", e.Index, e.Reason)
}

// DesyncError reports loss of lock-step between paired streams: one stream
// ended before the other, or mate identifiers disagree. Index is the 1-based
// pair position at which the streams diverged.
type DesyncError struct {
	Index  int64
	Reason string
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("fastq: paired streams desynced at pair %d: %s", e.Index, e.Reason)
}
