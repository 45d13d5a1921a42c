package mapper

import (
	"nutritrack/internal/application/common"
	"nutritrack/internal/domain/entities"
)

func NewMealResultFromEntity(meal *entities.Meal) *common.MealResult {
	return &common.MealResult{
		Id:   meal.Id,
		Name: meal.Name,
	}
}

func NewMealResultsFromEntities(meals []*entities.Meal) []*common.MealResult {
	results := make([]*common.MealResult, 0, len(meals))
	for _, m := range meals {
		results = append(results, NewMealResultFromEntity(m))
	}
	return results
}

func NewIngredientResultFromEntity(ingredient *entities.Ingredient) *common.IngredientResult {
	return &common.IngredientResult{
		Id:       ingredient.Id,
		Name:     ingredient.Name,
		Calories: ingredient.Calories,
		MealId:   ingredient.MealId,
	}
}

func NewIngredientResultsFromEntities(ingredients []*entities.Ingredient) []*common.IngredientResult {
	results := make([]*common.IngredientResult, 0, len(ingredients))
	for _, i := range ingredients {
		results = append(results, NewIngredientResultFromEntity(i))
	}
	return results
}
