// internal/pipeline/limiter.go
package pipeline

import "context"

// Limiter is a counting semaphore bounding how many batches are processed
// concurrently across every run that shares it. Concurrent runs over many
// sample pairs pass the same Limiter so the process never oversubscribes the
// CPU budget. A nil *Limiter imposes no bound.
type Limiter struct {
	tokens chan struct{}
}

// NewLimiter builds a limiter with n slots; n <= 0 returns nil (unlimited).
func NewLimiter(n int) *Limiter {
	if n <= 0 {
		return nil
	}
	return &Limiter{tokens: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	select {
	case l.tokens <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot previously acquired.
func (l *Limiter) Release() {
	if l != nil {
		<-l.tokens
	}
}
