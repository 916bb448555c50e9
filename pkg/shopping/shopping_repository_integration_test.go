//go:build integration

package shopping_test

import (
	"context"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testinfra"
	"foodgram/pkg/shopping"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsAcrossCartRecipes(t *testing.T) {
	db := testinfra.NewPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	repo := shopping.NewShoppingRepository(sqlx.NewDb(sqlDB, "pgx"))
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	shopper := testinfra.SeedUser(t, db, "shopper")
	flourG := testinfra.SeedIngredient(t, db, "flour", "g")
	flourCup := testinfra.SeedIngredient(t, db, "flour", "cup")
	eggs := testinfra.SeedIngredient(t, db, "eggs", "pcs")

	bread := testinfra.SeedRecipe(t, db, author, "bread", map[*entities.Ingredient]int{flourG: 100, eggs: 1})
	cake := testinfra.SeedRecipe(t, db, author, "cake", map[*entities.Ingredient]int{flourG: 50, flourCup: 2, eggs: 3})
	testinfra.SeedRecipe(t, db, author, "not in cart", map[*entities.Ingredient]int{flourG: 999})

	for _, r := range []*entities.Recipe{bread, cake} {
		require.NoError(t, db.Create(&entities.ShoppingCartItem{ID: uuid.New(), UserID: shopper.ID, RecipeID: r.ID}).Error)
	}

	items, err := repo.AggregateForUser(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "eggs", MeasurementUnit: "pcs", TotalAmount: 4},
		{Name: "flour", MeasurementUnit: "cup", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 150},
	}, items)

	empty, err := repo.AggregateForUser(ctx, author.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
