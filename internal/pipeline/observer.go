// internal/pipeline/observer.go
package pipeline

import "time"

// Observer receives advisory scheduling signals. Implementations must be
// fast and must never block; the pipeline's correctness does not depend on
// them. See internal/monitor for a prometheus-backed implementation.
type Observer interface {
	BatchDispatched(records int)
	BatchDone(d time.Duration)
	PendingResults(buffered int)
}

type nopObserver struct{}

func (nopObserver) BatchDispatched(int)     {}
func (nopObserver) BatchDone(time.Duration) {}
func (nopObserver) PendingResults(int)      {}
