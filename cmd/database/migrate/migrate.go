package migration

import (
	"fmt"

	"foodgram/entities"
	"foodgram/internal/logging"

	"gorm.io/gorm"
)

// Migrate creates the uuid extension and brings every table up to the entity definitions.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Recipe{}, "Tags", &entities.RecipeTag{}); err != nil {
		return err
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"tag", &entities.Tag{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"recipe tag", &entities.RecipeTag{}},
		{"favorite", &entities.Favorite{}},
		{"shopping cart", &entities.ShoppingCartItem{}},
		{"follow", &entities.Follow{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}
