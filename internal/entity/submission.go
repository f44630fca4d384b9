package entity

import "github.com/questx-lab/rewards/pkg/enum"

type SubmissionStatus string

var (
	SubmissionScored       = enum.New(SubmissionStatus("scored"))
	SubmissionDisqualified = enum.New(SubmissionStatus("disqualified"))
)

type ScoringSource string

var (
	ScoringAI       = enum.New(ScoringSource("ai"))
	ScoringFallback = enum.New(ScoringSource("fallback"))
	ScoringNone     = enum.New(ScoringSource("none"))
)

// Submission is immutable once created. PostID is globally unique, a post can
// be claimed by exactly one user.
type Submission struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	PostID       string `gorm:"unique"`
	AuthorHandle string
	Text         string

	Likes       int64
	Reposts     int64
	Replies     int64
	Impressions int64

	VerificationScore float64
	ContentScore      float64
	EngagementScore   float64
	BotPenalty        float64
	TotalPoints       Points

	Status        SubmissionStatus
	ScoringSource ScoringSource
	Rationale     string
}
