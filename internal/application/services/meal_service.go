package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nutritrack/internal/application/command"
	"nutritrack/internal/application/interfaces"
	"nutritrack/internal/application/mapper"
	"nutritrack/internal/application/query"
	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
	"nutritrack/internal/domain/repositories"
	"nutritrack/internal/infrastructure"
)

type MealService struct {
	mealRepo       repositories.MealRepository
	ingredientRepo repositories.IngredientRepository
	cache          interfaces.MealCache
	cacheTTL       time.Duration
	events         interfaces.EventPublisher
	logger         *zap.Logger
}

func NewMealService(
	mealRepo repositories.MealRepository,
	ingredientRepo repositories.IngredientRepository,
	cache interfaces.MealCache,
	cacheTTL time.Duration,
	events interfaces.EventPublisher,
	logger *zap.Logger,
) interfaces.MealService {
	if events == nil {
		events = infrastructure.NopPublisher{}
	}
	return &MealService{
		mealRepo:       mealRepo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		events:         events,
		logger:         logger.Named("meals"),
	}
}

func (s *MealService) ListMeals(ctx context.Context) (*query.MealQueryListResult, error) {
	if s.cache != nil {
		cached, err := s.cache.GetMeals(ctx)
		if err != nil {
			s.logger.Warn("read meal cache", zap.Error(err))
		} else if cached != nil {
			return &query.MealQueryListResult{Result: mapper.NewMealResultsFromEntities(cached)}, nil
		}
	}

	meals, err := s.mealRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMeals(ctx, meals, s.cacheTTL); err != nil {
			s.logger.Warn("write meal cache", zap.Error(err))
		}
	}

	return &query.MealQueryListResult{Result: mapper.NewMealResultsFromEntities(meals)}, nil
}

func (s *MealService) ListIngredients(ctx context.Context, mealName string) (*query.IngredientQueryListResult, error) {
	meal, err := s.mealRepo.FindByName(ctx, mealName)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.ingredientRepo.FindByMealId(ctx, meal.Id)
	if err != nil {
		return nil, err
	}

	return &query.IngredientQueryListResult{
		Meal:   mapper.NewMealResultFromEntity(meal),
		Result: mapper.NewIngredientResultsFromEntities(ingredients),
	}, nil
}

func (s *MealService) AddIngredient(ctx context.Context, addCommand *command.AddIngredientCommand) (*command.AddIngredientCommandResult, error) {
	meal, err := s.mealRepo.FindByName(ctx, addCommand.MealName)
	if err != nil {
		return nil, err
	}

	ingredient, err := entities.NewIngredient(addCommand.Name, addCommand.Calories, meal.Id)
	if err != nil {
		return nil, err
	}

	created, err := s.ingredientRepo.Create(ctx, ingredient)
	if err != nil {
		return nil, err
	}

	return &command.AddIngredientCommandResult{
		Result: mapper.NewIngredientResultFromEntity(created),
	}, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, id uint) error {
	if err := s.mealRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateMeals(ctx); err != nil {
			s.logger.Warn("invalidate meal cache", zap.Error(err))
		}
	}

	event := domain.NewEvent(domain.EventMealDeleted)
	event.MealID = id
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", event.Type), zap.Error(err))
	}

	s.logger.Info("meal deleted", zap.Uint("meal_id", id))
	return nil
}
