package entity

import "github.com/questx-lab/rewards/pkg/enum"

type PointEventType string

var (
	SubmissionPointEvent = enum.New(PointEventType("submission"))
	ReferralPointEvent   = enum.New(PointEventType("referral"))
)

// PointEvent is the append-only audit trail of every ledger credit.
type PointEvent struct {
	SnowFlakeBase

	UserID       string `gorm:"index"`
	Type         PointEventType
	Delta        Points
	BalanceAfter Points
	Reference    string
}
