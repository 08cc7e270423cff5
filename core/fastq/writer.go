// core/fastq/writer.go
package fastq

import "io"

// WriteRead serializes one record in 4-line FASTQ form with a single Write,
// so interleaved writers on the same underlying stream stay record-atomic.
func WriteRead(w io.Writer, r *Read) error {
	buf := make([]byte, 0, len(r.ID)+len(r.Seq)+len(r.Qual)+len(r.Desc)+8)
	buf = append(buf, '@')
	buf = append(buf, r.ID...)
	buf = append(buf, '\n')
	buf = append(buf, r.Seq...)
	buf = append(buf, '\n', '+')
	buf = append(buf, r.Desc...)
	buf = append(buf, '\n')
	buf = append(buf, r.Qual...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}
