//go:build integration

package membership_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testinfra"
	"foodgram/pkg/membership"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentDuplicateAddsKeepOneRow(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := membership.NewMembershipRepository(db)
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	reader := testinfra.SeedUser(t, db, "reader")
	flour := testinfra.SeedIngredient(t, db, "flour", "g")
	r := testinfra.SeedRecipe(t, db, author, "cake", map[*entities.Ingredient]int{flour: 1})

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AddRecipe(ctx, domain.ListFavorite, reader.ID, r.ID)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)

	var count int64
	require.NoError(t, db.Model(&entities.Favorite{}).Where("user_id = ?", reader.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMembershipRepositoryLookups(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := membership.NewMembershipRepository(db)
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	reader := testinfra.SeedUser(t, db, "reader")
	other := testinfra.SeedUser(t, db, "other")
	flour := testinfra.SeedIngredient(t, db, "flour", "g")
	first := testinfra.SeedRecipe(t, db, author, "first", map[*entities.Ingredient]int{flour: 1})
	second := testinfra.SeedRecipe(t, db, author, "second", map[*entities.Ingredient]int{flour: 2})

	require.NoError(t, repo.AddRecipe(ctx, domain.ListShoppingCart, reader.ID, first.ID))
	require.NoError(t, repo.AddRecipe(ctx, domain.ListShoppingCart, other.ID, first.ID))
	require.NoError(t, repo.AddRecipe(ctx, domain.ListShoppingCart, other.ID, second.ID))

	in, err := repo.Exists(ctx, domain.ListShoppingCart, reader.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = repo.Exists(ctx, domain.ListFavorite, reader.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, in)

	ids, err := repo.RecipeIDsIn(ctx, domain.ListShoppingCart, reader.ID, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, ids)

	err = repo.AddRecipe(ctx, domain.ListFavorite, reader.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.RemoveRecipe(ctx, domain.ListShoppingCart, other.ID, first.ID))
	err = repo.RemoveRecipe(ctx, domain.ListShoppingCart, other.ID, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// removal touched only the one pair
	var count int64
	require.NoError(t, db.Model(&entities.ShoppingCartItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
