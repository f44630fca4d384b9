package testutil

import (
	"context"
	"database/sql"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
)

var (
	// User1 is a verified human with a linked twitter account.
	User1 = &entity.User{
		Base:          entity.Base{ID: "user1"},
		Email:         "user1@example.com",
		Kind:          entity.HumanUser,
		EmailVerified: true,
		TwitterHandle: sql.NullString{String: "alice", Valid: true},
		TwitterID:     "1001",
	}

	// User2 is a verified human referred by User1.
	User2 = &entity.User{
		Base:          entity.Base{ID: "user2"},
		Email:         "user2@example.com",
		Kind:          entity.HumanUser,
		EmailVerified: true,
		TwitterHandle: sql.NullString{String: "bob", Valid: true},
		TwitterID:     "1002",
	}

	// User3 has not verified the email and has no linked account.
	User3 = &entity.User{
		Base:                  entity.Base{ID: "user3"},
		Email:                 "user3@example.com",
		Kind:                  entity.HumanUser,
		EmailVerificationCode: "CODE3",
	}

	Agent1 = &entity.User{
		Base:          entity.Base{ID: "agent1"},
		Email:         "agent1@example.com",
		Kind:          entity.AgentUser,
		EmailVerified: true,
		TwitterHandle: sql.NullString{String: "robot", Valid: true},
	}

	Users = []*entity.User{User1, User2, User3, Agent1}
)

// CreateFixtureDb inserts the fixture users and their ledgers. User2 is
// referred by User1.
func CreateFixtureDb(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	ledgerRepo := repository.NewLedgerRepository()
	referralRepo := repository.NewReferralRepository()

	for _, u := range Users {
		user := *u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}

		ledger := &entity.PointsLedger{UserID: u.ID}
		if u.ID == User2.ID {
			ledger.ReferredBy = sql.NullString{String: User1.ID, Valid: true}
		}

		if err := ledgerRepo.Create(ctx, ledger); err != nil {
			panic(err)
		}
	}

	err := referralRepo.Create(ctx, &entity.ReferralEdge{
		Base:       entity.Base{ID: "referral1"},
		ReferrerID: User1.ID,
		ReferredID: User2.ID,
		Code:       repository.ReferralCode(User1.ID),
	})
	if err != nil {
		panic(err)
	}

	if err := ledgerRepo.IncreaseReferralCount(ctx, User1.ID); err != nil {
		panic(err)
	}
}
