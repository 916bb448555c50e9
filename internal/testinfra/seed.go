//go:build integration

package testinfra

import (
	"testing"
	"time"

	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SeedUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "test",
		Password:  "x",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	i := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := db.Create(i).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	return i
}

func SeedTag(t *testing.T, db *gorm.DB, slug string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{ID: uuid.New(), Name: slug, Slug: slug, Color: "#E26C2D"}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	return tag
}

// SeedRecipe inserts a recipe with the given ingredient amounts, bypassing the service layer.
func SeedRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, amounts map[*entities.Ingredient]int) *entities.Recipe {
	t.Helper()
	now := time.Now()
	r := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        name,
		Text:        "test",
		Image:       "recipes/" + name + ".png",
		CookingTime: 10,
		PubDate:     now,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := db.Omit("Author", "Tags", "Ingredients").Create(r).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	for ing, amount := range amounts {
		row := &entities.RecipeIngredient{ID: uuid.New(), RecipeID: r.ID, IngredientID: ing.ID, Amount: amount}
		if err := db.Omit("Recipe", "Ingredient").Create(row).Error; err != nil {
			t.Fatalf("seed recipe ingredient: %v", err)
		}
	}
	return r
}
