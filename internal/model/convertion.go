package model

import (
	"time"

	"github.com/questx-lab/rewards/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(u *entity.User) User {
	if u == nil {
		return User{}
	}

	return User{
		ID:            u.ID,
		Email:         u.Email,
		Kind:          string(u.Kind),
		EmailVerified: u.EmailVerified,
		TwitterHandle: u.TwitterHandle.String,
		CreatedAt:     u.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertSubmission(s *entity.Submission) Submission {
	if s == nil {
		return Submission{}
	}

	return Submission{
		ID:           s.ID,
		UserID:       s.UserID,
		PostID:       s.PostID,
		AuthorHandle: s.AuthorHandle,
		Text:         s.Text,
		Likes:        s.Likes,
		Reposts:      s.Reposts,
		Replies:      s.Replies,
		Impressions:  s.Impressions,
		Breakdown: ScoreBreakdown{
			Verification:  s.VerificationScore,
			Content:       s.ContentScore,
			Engagement:    s.EngagementScore,
			BotPenalty:    s.BotPenalty,
			ContentSource: string(s.ScoringSource),
		},
		TotalPoints: s.TotalPoints.Float(),
		Status:      string(s.Status),
		Rationale:   s.Rationale,
		CreatedAt:   s.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertSubmissions(submissions []entity.Submission) []Submission {
	result := []Submission{}
	for i := range submissions {
		result = append(result, ConvertSubmission(&submissions[i]))
	}
	return result
}
