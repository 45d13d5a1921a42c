package common

type MealResult struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

type IngredientResult struct {
	Id       uint   `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	MealId   uint   `json:"meal_id"`
}
