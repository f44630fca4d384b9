package statistic

import (
	"context"
	"errors"

	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/questx-lab/rewards/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const loadBatchSize = 1000

type Leaderboard interface {
	GetLeaderBoard(ctx context.Context, offset, limit int) ([]model.UserStatistic, error)

	// GetRank returns the 1-based position of the user.
	GetRank(ctx context.Context, userID string) (uint64, error)

	ChangePointLeaderboard(ctx context.Context, value entity.Points, userID string) error
}

// leaderboard keeps the global points ranking in a redis sorted set scored by
// tenths of points. Without redis it reads the ledger table directly.
type leaderboard struct {
	ledgerRepo  repository.LedgerRepository
	redisClient xredis.Client
}

func New(ledgerRepo repository.LedgerRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{ledgerRepo: ledgerRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderBoard(ctx context.Context, offset, limit int) ([]model.UserStatistic, error) {
	if l.redisClient == nil {
		return l.getLeaderBoardFromDB(ctx, offset, limit)
	}

	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, common.RedisKeyPointLeaderBoard, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []model.UserStatistic{}
	for i, z := range results {
		member, _ := z.Member.(string)
		leaderboard = append(leaderboard, model.UserStatistic{
			UserID:      member,
			Points:      entity.Points(z.Score).Float(),
			CurrentRank: offset + i + 1,
		})
	}

	return leaderboard, nil
}

func (l *leaderboard) GetRank(ctx context.Context, userID string) (uint64, error) {
	if l.redisClient == nil {
		return l.getRankFromDB(ctx, userID)
	}

	if err := l.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, common.RedisKeyPointLeaderBoard, userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Users without any point are not in the sorted set yet.
			return l.getRankFromDB(ctx, userID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get rank from redis: %v", err)
		return 0, errorx.Unknown
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePointLeaderboard(ctx context.Context, value entity.Points, userID string) error {
	if l.redisClient == nil {
		return nil
	}

	// A missing key is loaded with the new value on the next read. The check
	// and the increment run as one script, so a reload can not slip between
	// them. A credit committed before a concurrent reload read the table is
	// still counted twice until the key is rebuilt.
	_, err := l.redisClient.ZIncrByIfExists(ctx, common.RedisKeyPointLeaderBoard, int64(value), userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) ensureLoaded(ctx context.Context) error {
	ok, err := l.redisClient.Exist(ctx, common.RedisKeyPointLeaderBoard)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		return l.loadLeaderboardFromDB(ctx)
	}

	return nil
}

func (l *leaderboard) loadLeaderboardFromDB(ctx context.Context) error {
	for offset := 0; ; offset += loadBatchSize {
		ledgers, err := l.ledgerRepo.GetList(ctx, offset, loadBatchSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load ledgers from database: %v", err)
			return errorx.Unknown
		}

		members := []redis.Z{}
		for _, ledger := range ledgers {
			if ledger.TotalPoints <= 0 {
				continue
			}
			members = append(members, redis.Z{Member: ledger.UserID, Score: float64(ledger.TotalPoints)})
		}

		if len(members) > 0 {
			if err := l.redisClient.ZAdd(ctx, common.RedisKeyPointLeaderBoard, members...); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
				return errorx.Unknown
			}
		}

		if len(ledgers) < loadBatchSize {
			return nil
		}
	}
}

func (l *leaderboard) getLeaderBoardFromDB(ctx context.Context, offset, limit int) ([]model.UserStatistic, error) {
	ledgers, err := l.ledgerRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledgers: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []model.UserStatistic{}
	for i, ledger := range ledgers {
		leaderboard = append(leaderboard, model.UserStatistic{
			UserID:      ledger.UserID,
			Points:      ledger.TotalPoints.Float(),
			CurrentRank: offset + i + 1,
		})
	}

	return leaderboard, nil
}

// getRankFromDB counts the ledgers ahead of the user. It scans the points
// index so it only suits small tables.
func (l *leaderboard) getRankFromDB(ctx context.Context, userID string) (uint64, error) {
	var total entity.Points
	ledger, err := l.ledgerRepo.Get(ctx, userID)
	if err == nil {
		total = ledger.TotalPoints
	}

	higher, err := l.ledgerRepo.CountHigher(ctx, total)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count higher ledgers: %v", err)
		return 0, errorx.Unknown
	}

	return uint64(higher) + 1, nil
}
