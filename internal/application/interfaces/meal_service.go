package interfaces

import (
	"context"
	"time"

	"nutritrack/internal/application/command"
	"nutritrack/internal/application/query"
	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
)

type MealService interface {
	ListMeals(ctx context.Context) (*query.MealQueryListResult, error)
	ListIngredients(ctx context.Context, mealName string) (*query.IngredientQueryListResult, error)
	AddIngredient(ctx context.Context, addCommand *command.AddIngredientCommand) (*command.AddIngredientCommandResult, error)
	DeleteMeal(ctx context.Context, id uint) error
}

// MealCache returns nil meals on a miss.
type MealCache interface {
	GetMeals(ctx context.Context) ([]*entities.Meal, error)
	SetMeals(ctx context.Context, meals []*entities.Meal, ttl time.Duration) error
	InvalidateMeals(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
