package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/migration"
	"github.com/questx-lab/rewards/pkg/authenticator"
	"github.com/questx-lab/rewards/pkg/logger"
	"github.com/questx-lab/rewards/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env:      "test",
		LogLevel: "silence",
		Database: config.DatabaseConfigs{Driver: "sqlite", Database: ":memory:"},
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Twitter: config.TwitterConfigs{
			Timeout:    time.Second,
			ProfileTTL: time.Minute,
		},
		Classifier: config.ClassifierConfigs{
			Timeout: time.Second,
		},
		Marketing: config.MarketingConfigs{
			Topic: "marketing",
		},
		Rewards: config.RewardsConfigs{
			VerificationBonus: 2,
			RecentSubmissions: 10,
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(cfg.LogLevel))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// WithRequestUser sets the request user as the auth middleware does.
func WithRequestUser(ctx context.Context, userID, kind string) context.Context {
	ctx = xcontext.WithRequestUserID(ctx, userID)
	return xcontext.WithRequestUserKind(ctx, kind)
}
