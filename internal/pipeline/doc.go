// Package pipeline streams record batches from a Source through a bounded
// pool of Transform workers and re-linearizes the results in sequence order
// before handing them to a Sink.
//
// The only contracts to implement are Source, Transform and Sink.
// This keeps the scheduler swappable and testable: any per-record logic
// (demultiplexing, trimming, QC) plugs in without touching the dispatch loop.
package pipeline
