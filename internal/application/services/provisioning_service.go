package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"nutritrack/internal/application/interfaces"
	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
	"nutritrack/internal/domain/repositories"
)

// ProvisioningService creates the schema-level seed data: users with hashed
// passwords and the default meals.
type ProvisioningService struct {
	userRepo repositories.UserRepository
	mealRepo repositories.MealRepository
	cache    interfaces.MealCache
	logger   *zap.Logger
}

type SeedUser struct {
	Email    string
	Password string
}

// NewProvisioningService accepts a nil cache.
func NewProvisioningService(
	userRepo repositories.UserRepository,
	mealRepo repositories.MealRepository,
	cache interfaces.MealCache,
	logger *zap.Logger,
) *ProvisioningService {
	return &ProvisioningService{userRepo: userRepo, mealRepo: mealRepo, cache: cache, logger: logger.Named("seed")}
}

// Seed is idempotent: existing emails are skipped and meals are only
// inserted into an empty table. Inserting meals drops the cached meal list.
func (s *ProvisioningService) Seed(ctx context.Context, users []SeedUser) error {
	for _, u := range users {
		if err := s.seedUser(ctx, u); err != nil {
			return err
		}
	}

	count, err := s.mealRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count meals: %w", err)
	}
	if count > 0 {
		s.logger.Info("meals already provisioned", zap.Int64("count", count))
		return nil
	}

	for _, name := range entities.DefaultMeals {
		meal, err := entities.NewMeal(name)
		if err != nil {
			return err
		}
		if _, err := s.mealRepo.Create(ctx, meal); err != nil {
			return err
		}
	}
	s.logger.Info("meals provisioned", zap.Strings("names", entities.DefaultMeals))

	if s.cache != nil {
		if err := s.cache.InvalidateMeals(ctx); err != nil {
			s.logger.Warn("invalidate meal cache", zap.Error(err))
		}
	}
	return nil
}

func (s *ProvisioningService) seedUser(ctx context.Context, u SeedUser) error {
	_, err := s.userRepo.FindByEmail(ctx, u.Email)
	if err == nil {
		s.logger.Info("user already provisioned", zap.String("email", u.Email))
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	validated, err := entities.NewValidatedUser(entities.NewUser(u.Email, u.Password))
	if err != nil {
		return fmt.Errorf("seed user %q: %w", u.Email, err)
	}
	if _, err := s.userRepo.Create(ctx, validated); err != nil {
		return err
	}
	s.logger.Info("user provisioned", zap.String("email", u.Email))
	return nil
}
