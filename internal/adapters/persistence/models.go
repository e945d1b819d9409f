package persistence

// OperatorModel is the durable record of {operator identity, credential}.
// One row per username; the token is replaced on re-provisioning.
type OperatorModel struct {
	Username string `gorm:"primaryKey;column:username"`
	Token    string `gorm:"column:token"`
}

func (OperatorModel) TableName() string {
	return "operators"
}

// LeaderboardSnapshotModel is one polled net-worth leaderboard, stored as
// the JSON payload the dashboard replays on connect.
type LeaderboardSnapshotModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Time int64  `gorm:"column:time;index"`
	Data []byte `gorm:"column:data"`
}

func (LeaderboardSnapshotModel) TableName() string {
	return "leaderboard_snapshots"
}
