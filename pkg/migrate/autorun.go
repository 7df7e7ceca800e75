package migrate

import (
	"context"
	"fmt"

	"github.com/ppmsoft/pim-core/pkg/config"
	"github.com/ppmsoft/pim-core/pkg/db"
	"github.com/ppmsoft/pim-core/pkg/logger"
)

// MaybeRunDev applies pending migrations when running in dev mode with the
// auto-migrate flag enabled. Outside that combination it is a no-op.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "applying pending migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "migrations up to date")
	return nil
}
