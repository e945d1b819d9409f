package events

import (
	"sync"

	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/market"
)

// Type tags the variant carried by an Event.
type Type string

const (
	TypeInfo        Type = "info"
	TypeFlight      Type = "flight"
	TypeMarket      Type = "market"
	TypeLog         Type = "log"
	TypeLeaderboard Type = "leaderboard"
)

// Event is the envelope delivered to subscribers. Data holds one of the
// payload structs below, matching Type.
type Event struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}

// Info carries the fleet summary published at the start of every cycle.
type Info struct {
	Credits int           `json:"credits"`
	Ships   []*fleet.Ship `json:"ships"`
}

// Flight is published when a ship departs on a planned route.
type Flight struct {
	From *market.MarketLocation `json:"from"`
	To   *market.MarketLocation `json:"to"`
	Plan *fleet.FlightPlan      `json:"plan"`
	Ship *fleet.Ship            `json:"ship"`
	Gain float64                `json:"gain"`
}

// Market carries the locations refreshed during a snapshot rebuild.
type Market []*market.MarketLocation

// Log mirrors every log line onto the bus for dashboard consumption.
type Log struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Leaderboard is a timestamped leaderboard snapshot.
type Leaderboard struct {
	Time int64                    `json:"time"`
	Data []fleet.LeaderboardEntry `json:"data"`
}

// Bus fans events out to zero or more subscribers. Delivery is best-effort
// and never blocks the publisher: a subscriber whose buffer is full misses
// the event, and with no subscribers events are simply dropped.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a subscriber with the given channel buffer size and
// returns its channel plus a cancel function. Cancel closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	b.subscribers = append(b.subscribers, ch)

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, c := range b.subscribers {
			if c == ch {
				close(c)
				b.subscribers[i] = b.subscribers[len(b.subscribers)-1]
				b.subscribers = b.subscribers[:len(b.subscribers)-1]
				return
			}
		}
	}

	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow; drop rather than stall the cycle.
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
