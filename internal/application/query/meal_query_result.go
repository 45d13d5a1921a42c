package query

import "nutritrack/internal/application/common"

type MealQueryListResult struct {
	Result []*common.MealResult `json:"result"`
}

type IngredientQueryListResult struct {
	Meal   *common.MealResult         `json:"meal"`
	Result []*common.IngredientResult `json:"result"`
}
