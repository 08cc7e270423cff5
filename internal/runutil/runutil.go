// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveWorkers resolves the --threads knob: <=0 means all CPUs.
func EffectiveWorkers(threads int) int {
	if threads > 0 {
		return threads
	}
	return runtime.NumCPU()
}

// ValidateBatching normalizes batch-size and pending-cap knobs, returning
// the effective values plus warnings for anything it had to adjust.
// Rules:
//   - batchSize <= 0 → pipeline default (warn only if explicitly negative)
//   - maxPending > 0 but < workers → raised to workers (a full pool can
//     legitimately hold one result per worker minus the blocking one)
func ValidateBatching(batchSize, maxPending, workers int) (int, int, []string) {
	var warns []string
	if batchSize < 0 {
		warns = append(warns, "warning: --batch-size must be positive; using default")
		batchSize = 0
	}
	if maxPending > 0 && maxPending < workers {
		warns = append(warns, "warning: --max-pending below --threads; raising to thread count")
		maxPending = workers
	}
	return batchSize, maxPending, warns
}
