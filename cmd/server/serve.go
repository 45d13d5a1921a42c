package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nutritrack/internal/application/services"
	"nutritrack/internal/delivery/handler"
	"nutritrack/internal/infrastructure"
	"nutritrack/internal/infrastructure/db"
	"nutritrack/internal/infrastructure/db/postgres"
)

var (
	serveMigrate      bool
	serveSecureCookie bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider := db.NewProvider(cfg.Database, logger)
		if serveMigrate {
			if err := postgres.Migrate(ctx, provider); err != nil {
				return err
			}
		}

		cache := infrastructure.NewRedisService(cfg.Redis, logger)
		defer cache.Close()

		events, err := infrastructure.NewEventPublisher(cfg.Nats, logger)
		if err != nil {
			return err
		}
		defer events.Close()

		loginLimiter := infrastructure.NewRateLimiter(cfg.Limits.LoginWindow, cfg.Limits.LoginMax)
		go loginLimiter.RunCleanup(ctx, cfg.Limits.LoginWindow)

		jwtService := infrastructure.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)
		authService := services.NewAuthService(postgres.NewUserRepository(provider), jwtService, loginLimiter, events, logger)
		mealService := services.NewMealService(
			postgres.NewMealRepository(provider),
			postgres.NewIngredientRepository(provider),
			cache,
			cfg.Redis.MealsTTL,
			events,
			logger,
		)

		h := handler.NewHandler(authService, mealService, serveSecureCookie, logger)
		e := handler.NewRouter(h, jwtService, handler.RouterConfig{
			RequestsPerSecond: cfg.Limits.HTTPPerSecond,
			Burst:             cfg.Limits.HTTPBurst,
		}, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
			if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "run schema migration before serving")
	serveCmd.Flags().BoolVar(&serveSecureCookie, "secure-cookie", true, "mark the session cookie Secure")
}
