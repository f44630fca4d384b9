package migration

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// When this migrator is called, no need to call the versioned migrations.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.PointsLedger{},
		&entity.ReferralEdge{},
		&entity.Submission{},
		&entity.PointEvent{},
	)
}
