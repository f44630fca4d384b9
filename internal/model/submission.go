package model

const (
	SubmitStatusScored           = "scored"
	SubmitStatusAlreadySubmitted = "already_submitted"
	SubmitStatusDisqualified     = "disqualified"
)

type ScoreBreakdown struct {
	Verification  float64 `json:"verification"`
	Content       float64 `json:"content"`
	Engagement    float64 `json:"engagement"`
	BotPenalty    float64 `json:"bot_penalty"`
	ContentSource string  `json:"content_source"`
}

type Submission struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	PostID       string         `json:"post_id"`
	AuthorHandle string         `json:"author_handle"`
	Text         string         `json:"text"`
	Likes        int64          `json:"likes"`
	Reposts      int64          `json:"reposts"`
	Replies      int64          `json:"replies"`
	Impressions  int64          `json:"impressions"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
	TotalPoints  float64        `json:"total_points"`
	Status       string         `json:"status"`
	Rationale    string         `json:"rationale"`
	CreatedAt    string         `json:"created_at"`
}

type ReferralReward struct {
	UserID string  `json:"user_id"`
	Level  int     `json:"level"`
	Amount float64 `json:"amount"`
}

type SubmitPostRequest struct {
	PostReference string `json:"post_reference"`
}

// SubmitPostResponse carries one of the successful outcomes. Status is
// "scored", "already_submitted" or "disqualified", the failing outcomes are
// returned as errors with their own codes.
type SubmitPostResponse struct {
	Status      string           `json:"status"`
	Submission  Submission       `json:"submission"`
	TotalPoints float64          `json:"total_points"`
	Reason      string           `json:"reason,omitempty"`
	Referrals   []ReferralReward `json:"referrals,omitempty"`
}

type GetListSubmissionRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListSubmissionResponse struct {
	Submissions []Submission `json:"submissions"`
}
