package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-fleet/internal/domain/fleet"
)

// GormLeaderboardRepository persists polled leaderboard snapshots.
type GormLeaderboardRepository struct {
	db *gorm.DB
}

func NewGormLeaderboardRepository(db *gorm.DB) *GormLeaderboardRepository {
	return &GormLeaderboardRepository{db: db}
}

// SaveSnapshot appends one timestamped leaderboard snapshot.
func (r *GormLeaderboardRepository) SaveSnapshot(ctx context.Context, unixTime int64, entries []fleet.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	model := &LeaderboardSnapshotModel{Time: unixTime, Data: data}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return fmt.Errorf("failed to save leaderboard snapshot: %w", result.Error)
	}
	return nil
}

// ListSnapshots returns all stored snapshots in capture order.
func (r *GormLeaderboardRepository) ListSnapshots(ctx context.Context) ([]fleet.LeaderboardSnapshot, error) {
	var models []LeaderboardSnapshotModel
	if result := r.db.WithContext(ctx).Order("time asc").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to list leaderboard snapshots: %w", result.Error)
	}

	snapshots := make([]fleet.LeaderboardSnapshot, 0, len(models))
	for _, model := range models {
		var entries []fleet.LeaderboardEntry
		if err := json.Unmarshal(model.Data, &entries); err != nil {
			continue // Skip corrupt rows rather than failing the replay.
		}
		snapshots = append(snapshots, fleet.LeaderboardSnapshot{Time: model.Time, Data: entries})
	}
	return snapshots, nil
}
