package trading

import "sync"

// Ledger tracks the operator's single spendable credit balance. Every write
// operation against the remote service returns the authoritative
// post-operation balance; callers record that value rather than computing
// deltas, because chunked order pricing is not guaranteed linear.
//
// The fleet cycle is the only writer. The mutex exists for the dashboard
// side, which reads the balance concurrently.
type Ledger struct {
	mu      sync.RWMutex
	credits int
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Credits returns the current balance.
func (l *Ledger) Credits() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.credits
}

// Record replaces the balance with the authoritative value returned by a
// confirmed remote operation.
func (l *Ledger) Record(balance int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credits = balance
}
