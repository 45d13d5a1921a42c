package command

import "nutritrack/internal/application/common"

type AddIngredientCommand struct {
	MealName string `json:"-" param:"name"`
	Name     string `json:"name" form:"name"`
	Calories int    `json:"calories" form:"calories"`
}

type AddIngredientCommandResult struct {
	Result *common.IngredientResult `json:"result"`
}
