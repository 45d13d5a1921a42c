package main

import (
	"errors"

	"github.com/spf13/cobra"

	"nutritrack/internal/application/services"
	"nutritrack/internal/infrastructure"
	"nutritrack/internal/infrastructure/db"
	"nutritrack/internal/infrastructure/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := db.NewProvider(cfg.Database, logger)
		if err := postgres.Migrate(cmd.Context(), provider); err != nil {
			return err
		}
		logger.Info("schema migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the admin user and the default meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Seed.AdminPassword == "" {
			return errors.New("SEED_ADMIN_PASSWORD must be set")
		}

		ctx := cmd.Context()
		provider := db.NewProvider(cfg.Database, logger)
		if err := postgres.Migrate(ctx, provider); err != nil {
			return err
		}

		cache := infrastructure.NewRedisService(cfg.Redis, logger)
		defer cache.Close()

		prov := services.NewProvisioningService(
			postgres.NewUserRepository(provider),
			postgres.NewMealRepository(provider),
			cache,
			logger,
		)
		return prov.Seed(ctx, []services.SeedUser{
			{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword},
		})
	},
}
