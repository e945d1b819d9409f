package fleet

// LeaderboardEntry is one operator's row in the remote net-worth
// leaderboard.
type LeaderboardEntry struct {
	Username string `json:"username"`
	NetWorth int    `json:"netWorth"`
	Rank     int    `json:"rank"`
}

// LeaderboardSnapshot is a leaderboard captured at a point in time.
type LeaderboardSnapshot struct {
	Time int64              `json:"time"`
	Data []LeaderboardEntry `json:"data"`
}
