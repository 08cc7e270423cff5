// core/fastq/reader.go
package fastq

import (
	"bufio"
	"bytes"
	"io"
)

// Reader streams FASTQ records from r. It is forward-only and keeps no
// history beyond the current record; decoding errors are reported as
// *MalformedRecordError and are not skipped here, since skipping corrupts
// pairing. Callers that want lenient behavior wrap Next themselves.
type Reader struct {
	br    *bufio.Reader
	index int64 // records returned so far
	done  bool
}

// NewReader wraps r. Input is expected to be decompressed already (see Open).
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 256*1024)}
}

// Index returns the number of records successfully returned so far.
func (r *Reader) Index() int64 { return r.index }

// readLine returns the next line without the trailing newline. io.EOF is
// returned only for a clean end-of-stream with no partial line.
func (r *Reader) readLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	if len(line) > 0 {
		line = bytes.TrimRight(line, "\r\n")
		return line, nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

// Next returns the next record, io.EOF at end of stream, or
// *MalformedRecordError on invalid framing.
func (r *Reader) Next() (*Read, error) {
	if r.done {
		return nil, io.EOF
	}
	hdr, err := r.readLine()
	if err == io.EOF {
		r.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	idx := r.index + 1
	if len(hdr) == 0 || hdr[0] != '@' {
		return nil, &MalformedRecordError{Index: idx, Reason: "header does not start with '@'", Framing: true}
	}
	seq, err := r.readLine()
	if err != nil {
		return nil, &MalformedRecordError{Index: idx, Reason: "truncated record: missing sequence line"}
	}
	plus, err := r.readLine()
	if err != nil {
		return nil, &MalformedRecordError{Index: idx, Reason: "truncated record: missing '+' line"}
	}
	if len(plus) == 0 || plus[0] != '+' {
		return nil, &MalformedRecordError{Index: idx, Reason: "separator line does not start with '+'", Framing: true}
	}
	qual, err := r.readLine()
	if err != nil {
		return nil, &MalformedRecordError{Index: idx, Reason: "truncated record: missing quality line"}
	}
	if len(qual) != len(seq) {
		return nil, &MalformedRecordError{Index: idx, Reason: "quality length does not match sequence length"}
	}
	r.index = idx
	return &Read{
		ID:   string(hdr[1:]),
		Seq:  append([]byte(nil), seq...),
		Desc: string(plus[1:]),
		Qual: append([]byte(nil), qual...),
	}, nil
}
