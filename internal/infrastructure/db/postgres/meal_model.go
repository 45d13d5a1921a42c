package postgres

type MealModel struct {
	Id   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"not null"`
}

func (MealModel) TableName() string {
	return "meals"
}

type IngredientModel struct {
	Id       uint      `gorm:"primaryKey;autoIncrement"`
	Name     string    `gorm:"not null"`
	Calories int       `gorm:"not null"`
	MealId   uint      `gorm:"not null;index"`
	Meal     MealModel `gorm:"foreignKey:MealId;constraint:OnDelete:CASCADE;"`
}

func (IngredientModel) TableName() string {
	return "ingredients"
}
