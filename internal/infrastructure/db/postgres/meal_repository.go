package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
	"nutritrack/internal/domain/repositories"
	"nutritrack/internal/infrastructure/db"
)

type MealRepository struct {
	provider db.Provider
}

func NewMealRepository(provider db.Provider) repositories.MealRepository {
	return &MealRepository{provider: provider}
}

func (r *MealRepository) Create(ctx context.Context, meal *entities.Meal) (*entities.Meal, error) {
	mealModel := MealModel{Name: meal.Name}
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Create(&mealModel).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create meal %s: %w", meal.Name, err)
	}
	return mapMeal(&mealModel), nil
}

func (r *MealRepository) FindAll(ctx context.Context) ([]*entities.Meal, error) {
	var mealModels []MealModel
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Order("id ASC").Find(&mealModels).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	meals := make([]*entities.Meal, 0, len(mealModels))
	for i := range mealModels {
		meals = append(meals, mapMeal(&mealModels[i]))
	}
	return meals, nil
}

func (r *MealRepository) FindById(ctx context.Context, id uint) (*entities.Meal, error) {
	return r.findOne(ctx, fmt.Sprintf("meal %d", id), "id = ?", id)
}

func (r *MealRepository) FindByName(ctx context.Context, name string) (*entities.Meal, error) {
	return r.findOne(ctx, fmt.Sprintf("meal %q", name), "name = ?", name)
}

func (r *MealRepository) findOne(ctx context.Context, what string, query string, args ...any) (*entities.Meal, error) {
	var mealModel MealModel
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Where(query, args...).Order("id ASC").First(&mealModel).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", what, domain.ErrNotFound)
		}
		return nil, err
	}
	return mapMeal(&mealModel), nil
}

func (r *MealRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Model(&MealModel{}).Count(&count).Error
	})
	return count, err
}

func (r *MealRepository) Delete(ctx context.Context, id uint) error {
	return db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		result := tx.Delete(&MealModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete meal %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("meal %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

type IngredientRepository struct {
	provider db.Provider
}

func NewIngredientRepository(provider db.Provider) repositories.IngredientRepository {
	return &IngredientRepository{provider: provider}
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *entities.Ingredient) (*entities.Ingredient, error) {
	model := IngredientModel{
		Name:     ingredient.Name,
		Calories: ingredient.Calories,
		MealId:   ingredient.MealId,
	}
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create ingredient %s: %w", ingredient.Name, err)
	}
	return mapIngredient(&model), nil
}

func (r *IngredientRepository) FindByMealId(ctx context.Context, mealID uint) ([]*entities.Ingredient, error) {
	var models []IngredientModel
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Where("meal_id = ?", mealID).Order("id ASC").Find(&models).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list ingredients of meal %d: %w", mealID, err)
	}

	ingredients := make([]*entities.Ingredient, 0, len(models))
	for i := range models {
		ingredients = append(ingredients, mapIngredient(&models[i]))
	}
	return ingredients, nil
}

func mapMeal(m *MealModel) *entities.Meal {
	return &entities.Meal{Id: m.Id, Name: m.Name}
}

func mapIngredient(m *IngredientModel) *entities.Ingredient {
	return &entities.Ingredient{
		Id:       m.Id,
		Name:     m.Name,
		Calories: m.Calories,
		MealId:   m.MealId,
	}
}
