// Package writers persists ordered demultiplexing results.
//
// Design:
//   - Writers own all file-layout knowledge (paired .R1/.R2 naming, gzip).
//   - The pipeline stays orchestration-only; classification stays in demux.
//   - Barcodes sharing a prefix share one output pair; intra-prefix record
//     order follows the ordered result stream. Cross-prefix order is not
//     guaranteed and not needed.
package writers
