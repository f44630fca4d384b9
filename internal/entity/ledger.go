package entity

import (
	"database/sql"
	"time"
)

type PointsLedger struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time

	TotalPoints      Points `gorm:"index"`
	Submissions      uint64
	ReferralPoints   Points
	ReferralCount    uint64
	LastSubmissionAt sql.NullTime

	ReferralCode string         `gorm:"unique"`
	ReferredBy   sql.NullString `gorm:"index"`
}
