package dashboard

import (
	"context"
	"time"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/common"
	"github.com/andrescamacho/spacetraders-fleet/internal/application/events"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
	"github.com/andrescamacho/spacetraders-fleet/internal/domain/shared"
)

// LeaderboardSource fetches the current remote net-worth standings.
type LeaderboardSource interface {
	GetLeaderboard(ctx context.Context) ([]fleet.LeaderboardEntry, error)
}

// SnapshotWriter appends one captured leaderboard to storage.
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, unixTime int64, entries []fleet.LeaderboardEntry) error
}

// LeaderboardPoller captures the remote leaderboard on a fixed interval,
// persists each snapshot, and publishes it for connected dashboards.
type LeaderboardPoller struct {
	source   LeaderboardSource
	writer   SnapshotWriter
	bus      *events.Bus
	logger   *common.Logger
	clock    shared.Clock
	interval time.Duration
}

func NewLeaderboardPoller(source LeaderboardSource, writer SnapshotWriter, bus *events.Bus, logger *common.Logger, clock shared.Clock, interval time.Duration) *LeaderboardPoller {
	return &LeaderboardPoller{
		source:   source,
		writer:   writer,
		bus:      bus,
		logger:   logger,
		clock:    clock,
		interval: interval,
	}
}

// Run polls until ctx is cancelled. Individual poll failures are logged and
// the loop keeps going.
func (p *LeaderboardPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *LeaderboardPoller) poll(ctx context.Context) {
	entries, err := p.source.GetLeaderboard(ctx)
	if err != nil {
		p.logger.Warnf("leaderboard poll failed: %v", err)
		return
	}

	now := p.clock.Now().Unix()
	if err := p.writer.SaveSnapshot(ctx, now, entries); err != nil {
		p.logger.LogError(err)
	}

	p.bus.Publish(events.Event{
		Type: events.TypeLeaderboard,
		Data: events.Leaderboard{Time: now, Data: entries},
	})
}
