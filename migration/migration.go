package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

//go:embed mysql/*.sql
var mysqlFS embed.FS

// Migrate applies the versioned SQL migrations. Only mysql keeps versioned
// migrations, other drivers are created by AutoMigrate.
func Migrate(ctx context.Context) error {
	cfg := xcontext.Configs(ctx).Database
	if cfg.Driver != "" && cfg.Driver != "mysql" {
		return AutoMigrate(ctx)
	}

	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(mysqlFS, "mysql")
	if err != nil {
		return err
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Database, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cannot migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Database is at version %d (dirty=%t)", version, dirty)
	return nil
}
