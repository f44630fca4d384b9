package postcommit

import (
	"context"

	"github.com/questx-lab/rewards/internal/domain/statistic"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// LeaderboardHook mirrors the ledger credits into the ranking.
func LeaderboardHook(leaderboard statistic.Leaderboard) Hook {
	return func(ctx context.Context, event SubmissionEvent) {
		if event.Points > 0 {
			if err := leaderboard.ChangePointLeaderboard(ctx, event.Points, event.UserID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot update leaderboard of %s: %v", event.UserID, err)
			}
		}

		for _, c := range event.Credits {
			if err := leaderboard.ChangePointLeaderboard(ctx, c.Amount, c.AncestorID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot update leaderboard of %s: %v", c.AncestorID, err)
			}
		}
	}
}
