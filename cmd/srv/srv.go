package main

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/internal/domain"
	"github.com/questx-lab/rewards/internal/domain/fetcher"
	"github.com/questx-lab/rewards/internal/domain/postcommit"
	"github.com/questx-lab/rewards/internal/domain/referral"
	"github.com/questx-lab/rewards/internal/domain/scoring"
	"github.com/questx-lab/rewards/internal/domain/statistic"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/migration"
	"github.com/questx-lab/rewards/pkg/api/classifier"
	"github.com/questx-lab/rewards/pkg/authenticator"
	"github.com/questx-lab/rewards/pkg/kafka"
	"github.com/questx-lab/rewards/pkg/logger"
	"github.com/questx-lab/rewards/pkg/pubsub"
	"github.com/questx-lab/rewards/pkg/router"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/questx-lab/rewards/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stoppablePublisher interface {
	pubsub.Publisher
	Stop(ctx context.Context) error
}

type srv struct {
	app     *cli.App
	ctx     context.Context
	configs *config.Configs

	redisClient xredis.Client
	publisher   stoppablePublisher

	userRepo       repository.UserRepository
	ledgerRepo     repository.LedgerRepository
	referralRepo   repository.ReferralRepository
	submissionRepo repository.SubmissionRepository

	leaderboard statistic.Leaderboard
	hooks       *postcommit.Runner

	userDomain       domain.UserDomain
	submissionDomain domain.SubmissionDomain
	statisticDomain  domain.StatisticDomain

	router *router.Router
}

// loadContext builds the root context shared by every request.
func (s *srv) loadContext(service string) error {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(s.configs.LogLevel).With("service", service))

	if s.configs.Auth.TokenSecret == "" {
		if s.configs.IsProduction() {
			return errors.New("token secret is not configured")
		}

		xcontext.Logger(s.ctx).Warnf("Token secret is not configured, use an insecure default")
		s.configs.Auth.TokenSecret = "insecure-development-secret"
		s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	}

	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.AccessToken.Expiration))

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)

	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := s.configs.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql", "":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return nil, errors.New("unsupported database driver " + cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	}

	return gormlogger.Error
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	return migration.Migrate(s.ctx)
}

// loadRedisClient is optional, the leaderboard and the profile cache fall
// back to the database and memory without redis.
func (s *srv) loadRedisClient() {
	if s.configs.Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, use the database leaderboard")
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot connect to redis, use the database leaderboard: %v", err)
		return
	}

	s.redisClient = client
}

// loadPublisher is optional, submission events are not published without
// kafka.
func (s *srv) loadPublisher() {
	if s.configs.Kafka.Addr == "" {
		return
	}

	publisher, err := kafka.NewPublisher("rewards-api", []string{s.configs.Kafka.Addr})
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot create kafka publisher: %v", err)
		return
	}

	s.publisher = publisher
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.ledgerRepo = repository.NewLedgerRepository()
	s.referralRepo = repository.NewReferralRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
}

func (s *srv) profileCache() fetcher.ProfileCache {
	ttl := s.configs.Twitter.ProfileTTL
	if s.redisClient != nil {
		return fetcher.NewRedisProfileCache(s.redisClient, ttl)
	}

	return fetcher.NewMemoryProfileCache(ttl)
}

func (s *srv) loadDomains() error {
	postFetcher, profileResolver, err := fetcher.New(s.ctx, s.profileCache())
	if err != nil {
		return err
	}

	var contentClassifier classifier.IClassifier
	if s.configs.Classifier.APIKey != "" {
		contentClassifier = classifier.New(s.configs.Classifier)
	} else {
		xcontext.Logger(s.ctx).Warnf("Classifier is not configured, score content with keywords")
	}

	s.leaderboard = statistic.New(s.ledgerRepo, s.redisClient)

	hooks := []postcommit.Hook{postcommit.LeaderboardHook(s.leaderboard)}
	if s.publisher != nil {
		hooks = append(hooks, postcommit.MarketingHook(s.publisher))
	}
	s.hooks = postcommit.NewRunner(hooks...)

	s.userDomain = domain.NewUserDomain(s.userRepo, s.ledgerRepo, s.referralRepo, profileResolver)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.userRepo,
		s.submissionRepo,
		s.ledgerRepo,
		postFetcher,
		scoring.NewBrandGate(s.configs.Rewards.BrandTokens),
		scoring.NewContentScorer(contentClassifier, s.configs.Classifier.Timeout),
		referral.NewPropagator(s.userRepo, s.ledgerRepo),
		s.leaderboard,
		s.hooks,
	)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard)

	return nil
}

// shutdown waits for the running post-commit hooks and closes the publisher.
func (s *srv) shutdown(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		if s.hooks != nil {
			s.hooks.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		xcontext.Logger(s.ctx).Warnf("Post-commit hooks did not finish in %s", timeout)
	}

	if s.publisher != nil {
		if err := s.publisher.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop publisher: %v", err)
		}
	}
}
