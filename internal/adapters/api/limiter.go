package api

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDispatchInterval is the minimum spacing between outbound calls,
// keeping the fleet just under the remote service's 2 req/s ceiling.
const DefaultDispatchInterval = 510 * time.Millisecond

// Limiter serializes every outbound remote call behind a single FIFO lane.
// Each caller chains behind the previous one; once it is a caller's turn,
// admission is further gated by a token bucket refilling at one token per
// interval. This guarantees both strict FIFO admission order and a hard
// floor on the spacing between consecutive admissions, no matter how many
// goroutines dispatch concurrently.
//
// Completion order is not guaranteed: network latency varies per call.
type Limiter struct {
	mu   sync.Mutex
	tail chan struct{}
	rl   *rate.Limiter
}

// NewLimiter creates a limiter with the given minimum inter-dispatch
// interval.
func NewLimiter(interval time.Duration) *Limiter {
	tail := make(chan struct{})
	close(tail) // the first caller has no predecessor
	return &Limiter{
		tail: tail,
		rl:   rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Acquire blocks until the caller is admitted to dispatch. Admission order
// is the order in which Acquire was entered. On cancellation the caller's
// slot in the lane is released so successors are not stranded; a cancelled
// caller dispatches nothing, so no spacing is consumed.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	prev := l.tail
	next := make(chan struct{})
	l.tail = next
	l.mu.Unlock()

	select {
	case <-prev:
	case <-ctx.Done():
		go func() {
			<-prev
			close(next)
		}()
		return ctx.Err()
	}

	err := l.rl.Wait(ctx)
	close(next)
	return err
}
