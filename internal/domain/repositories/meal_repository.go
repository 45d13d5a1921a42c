package repositories

import (
	"context"

	"nutritrack/internal/domain/entities"
)

type MealRepository interface {
	Create(ctx context.Context, meal *entities.Meal) (*entities.Meal, error)
	// FindAll returns meals in insertion order.
	FindAll(ctx context.Context) ([]*entities.Meal, error)
	FindById(ctx context.Context, id uint) (*entities.Meal, error)
	FindByName(ctx context.Context, name string) (*entities.Meal, error)
	Count(ctx context.Context) (int64, error)
	// Delete removes the meal; its ingredients go with it.
	Delete(ctx context.Context, id uint) error
}

type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entities.Ingredient) (*entities.Ingredient, error)
	FindByMealId(ctx context.Context, mealID uint) ([]*entities.Ingredient, error)
}
