package model

type GetStatsRequest struct{}

type GetStatsResponse struct {
	TotalPoints         float64      `json:"total_points"`
	SubmissionsCount    uint64       `json:"submissions_count"`
	ReferralPoints      float64      `json:"referral_points"`
	ReferralCount       uint64       `json:"referral_count"`
	RecentSubmissions   []Submission `json:"recent_submissions"`
	ReferralCode        string       `json:"referral_code"`
	LeaderboardPosition uint64       `json:"leaderboard_position"`
}

type UserStatistic struct {
	UserID      string  `json:"user_id"`
	Points      float64 `json:"points"`
	CurrentRank int     `json:"current_rank"`
}

type GetLeaderBoardRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStatistic `json:"leaderboard"`
}
