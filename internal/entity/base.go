package entity

import (
	"time"

	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type SnowFlakeBase struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
}
