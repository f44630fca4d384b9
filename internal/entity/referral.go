package entity

type ReferralEdge struct {
	Base

	ReferrerID string `gorm:"index"`
	Referrer   User   `gorm:"foreignKey:ReferrerID"`

	ReferredID string `gorm:"unique"`
	Referred   User   `gorm:"foreignKey:ReferredID"`

	Code string
}
