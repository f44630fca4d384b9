package entity

import (
	"database/sql"

	"github.com/questx-lab/rewards/pkg/enum"
)

type UserKind string

var (
	HumanUser = enum.New(UserKind("human"))
	AgentUser = enum.New(UserKind("agent"))
)

type User struct {
	Base

	Email                 string `gorm:"unique"`
	Kind                  UserKind
	EmailVerified         bool
	EmailVerificationCode string

	TwitterHandle sql.NullString `gorm:"index"`
	TwitterID     string
}
