package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ppmsoft/pim-core/pkg/config"
	"github.com/ppmsoft/pim-core/pkg/db"
	"github.com/ppmsoft/pim-core/pkg/logger"
	"github.com/ppmsoft/pim-core/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	command := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fatal(ctx, logg, "config", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *command,
		"dir": *dir,
	})

	// create and validate work on files alone
	switch *command {
	case "create":
		if *name == "" {
			fatal(ctx, logg, "flags", fmt.Errorf("missing -name for create"))
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fatal(ctx, logg, "create migration", err)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fatal(ctx, logg, "validate migrations", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		fatal(ctx, logg, "database", err)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		fatal(ctx, logg, "sql database", err)
	}

	switch *command {
	case "up", "down", "status":
		err = migrate.Run(ctx, sqlDB, *dir, *command)
	case "version":
		if *version == "" {
			fatal(ctx, logg, "flags", fmt.Errorf("missing -version for version command"))
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, *dir, *version)
	default:
		fatal(ctx, logg, "flags", fmt.Errorf("unknown -cmd value %q", *command))
	}
	if err != nil {
		fatal(ctx, logg, "goose "+*command, err)
	}
}

func fatal(ctx context.Context, logg *logger.Logger, step string, err error) {
	logg.Error(ctx, "migrate failed at "+step, err)
	os.Exit(1)
}
