package trading

import (
	"time"

	"github.com/google/uuid"
)

// PendingTrade is the per-ship memo of the last purchase: which good was
// bought, what it cost, and when. It exists only to log realized profit and
// elapsed time when that cargo is later sold; it is created on buy and
// deleted on the matching sell.
type PendingTrade struct {
	ID        string
	Good      string
	Cost      int
	StartedAt time.Time
}

// PendingTrades keeps pending-trade memos keyed by ship ID. Owned by the
// fleet cycle; no locking needed.
type PendingTrades struct {
	byShip map[string]*PendingTrade
}

func NewPendingTrades() *PendingTrades {
	return &PendingTrades{byShip: make(map[string]*PendingTrade)}
}

// Open records a new memo for a ship, replacing any previous one.
func (p *PendingTrades) Open(shipID, good string, cost int, now time.Time) *PendingTrade {
	memo := &PendingTrade{
		ID:        uuid.NewString(),
		Good:      good,
		Cost:      cost,
		StartedAt: now,
	}
	p.byShip[shipID] = memo
	return memo
}

// Close removes and returns the memo for a ship, or nil if none exists.
func (p *PendingTrades) Close(shipID string) *PendingTrade {
	memo, ok := p.byShip[shipID]
	if !ok {
		return nil
	}
	delete(p.byShip, shipID)
	return memo
}

// RealizedGain computes the profit and elapsed duration for a completed
// round trip given the total sell proceeds.
func (m *PendingTrade) RealizedGain(proceeds int, now time.Time) (gain int, elapsed time.Duration) {
	return proceeds - m.Cost, now.Sub(m.StartedAt)
}
