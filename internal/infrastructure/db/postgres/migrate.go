package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nutritrack/internal/infrastructure/db"
)

// Migrate creates or updates the users, meals and ingredients tables.
func Migrate(ctx context.Context, provider db.Provider) error {
	return db.WithConnection(ctx, provider, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&UserModel{}, &MealModel{}, &IngredientModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	})
}
