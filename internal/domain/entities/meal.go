package entities

import (
	"fmt"
	"strings"

	"nutritrack/internal/domain"
)

// DefaultMeals is the provisioned meal set, in insertion order.
var DefaultMeals = []string{"Breakfast", "Lunch", "Snacks", "Dinner"}

type Meal struct {
	Id   uint
	Name string
}

func NewMeal(name string) (*Meal, error) {
	m := &Meal{Name: strings.TrimSpace(name)}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: meal name must not be empty", domain.ErrValidation)
	}
	return m, nil
}

type Ingredient struct {
	Id       uint
	Name     string
	Calories int
	MealId   uint
}

func NewIngredient(name string, calories int, mealID uint) (*Ingredient, error) {
	i := &Ingredient{
		Name:     strings.TrimSpace(name),
		Calories: calories,
		MealId:   mealID,
	}
	if err := i.validate(); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Ingredient) validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: ingredient name must not be empty", domain.ErrValidation)
	}
	if i.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", domain.ErrValidation)
	}
	if i.MealId == 0 {
		return fmt.Errorf("%w: ingredient must belong to a meal", domain.ErrValidation)
	}
	return nil
}
