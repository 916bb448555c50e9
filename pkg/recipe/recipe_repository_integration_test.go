//go:build integration

package recipe_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testinfra"
	"foodgram/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredients(amounts map[uuid.UUID]int) []entities.RecipeIngredient {
	rows := make([]entities.RecipeIngredient, 0, len(amounts))
	for id, amount := range amounts {
		rows = append(rows, entities.RecipeIngredient{ID: uuid.New(), IngredientID: id, Amount: amount})
	}
	return rows
}

func newRecipe(author uuid.UUID, name string) *entities.Recipe {
	now := time.Now()
	return &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author,
		Name:        name,
		Text:        "text",
		Image:       "recipes/" + name + ".png",
		CookingTime: 5,
		PubDate:     now,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
}

func TestRecipeRepositoryCreateAndReplace(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := recipe.NewRecipeRepository(db)
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	flour := testinfra.SeedIngredient(t, db, "flour", "g")
	sugar := testinfra.SeedIngredient(t, db, "sugar", "g")
	lunch := testinfra.SeedTag(t, db, "lunch")
	dinner := testinfra.SeedTag(t, db, "dinner")

	r := newRecipe(author.ID, "cake")
	require.NoError(t, repo.CreateRecipe(ctx, r,
		ingredients(map[uuid.UUID]int{flour.ID: 100, sugar.ID: 50}),
		[]uuid.UUID{lunch.ID, dinner.ID}))

	got, err := repo.GetRecipeByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, got.Ingredients, 2)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "dinner", got.Tags[0].Slug)
	require.NotNil(t, got.Author)
	assert.Equal(t, "author", got.Author.Username)

	r.Name = "bread"
	require.NoError(t, repo.UpdateRecipe(ctx, r,
		ingredients(map[uuid.UUID]int{flour.ID: 200}),
		[]uuid.UUID{lunch.ID}))

	got, err = repo.GetRecipeByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "bread", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, 200, got.Ingredients[0].Amount)
	require.NotNil(t, got.Ingredients[0].Ingredient)
	assert.Equal(t, "flour", got.Ingredients[0].Ingredient.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "lunch", got.Tags[0].Slug)

	err = repo.UpdateRecipe(ctx, newRecipe(author.ID, "ghost"), nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeRepositoryRejectsBadRows(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := recipe.NewRecipeRepository(db)
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	flour := testinfra.SeedIngredient(t, db, "flour", "g")

	err := repo.CreateRecipe(ctx, newRecipe(author.ID, "too much"),
		ingredients(map[uuid.UUID]int{flour.ID: 1001}), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = repo.CreateRecipe(ctx, newRecipe(author.ID, "ghost"),
		ingredients(map[uuid.UUID]int{uuid.New(): 1}), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// neither failed create left a recipe row behind
	recipes, count, err := repo.GetRecipes(ctx, domain.RecipeFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, recipes)
}

type recipeVersion struct {
	name        string
	tag         string
	ingredients map[uuid.UUID]int
}

func versionOf(t *testing.T, got *entities.Recipe) recipeVersion {
	t.Helper()
	seen := map[uuid.UUID]int{}
	for _, ri := range got.Ingredients {
		seen[ri.IngredientID] = ri.Amount
	}
	require.Len(t, got.Tags, 1)
	return recipeVersion{name: got.Name, tag: got.Tags[0].Slug, ingredients: seen}
}

func TestReadersNeverSeeHalfReplacedRecipe(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := recipe.NewRecipeRepository(db)
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	a := testinfra.SeedIngredient(t, db, "a", "g")
	b := testinfra.SeedIngredient(t, db, "b", "g")
	c := testinfra.SeedIngredient(t, db, "c", "g")
	lunch := testinfra.SeedTag(t, db, "lunch")
	dinner := testinfra.SeedTag(t, db, "dinner")

	versions := []recipeVersion{
		{name: "one", tag: "lunch", ingredients: map[uuid.UUID]int{a.ID: 1, b.ID: 1}},
		{name: "two", tag: "dinner", ingredients: map[uuid.UUID]int{c.ID: 2}},
	}
	tagIDs := map[string]uuid.UUID{"lunch": lunch.ID, "dinner": dinner.ID}

	r := newRecipe(author.ID, versions[0].name)
	require.NoError(t, repo.CreateRecipe(ctx, r, ingredients(versions[0].ingredients), []uuid.UUID{lunch.ID}))

	var done atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer done.Store(true)
		for i := 0; i < 30; i++ {
			v := versions[(i+1)%2]
			next := *r
			next.Name = v.name
			if err := repo.UpdateRecipe(ctx, &next, ingredients(v.ingredients), []uuid.UUID{tagIDs[v.tag]}); err != nil {
				t.Errorf("update: %v", err)
				return
			}
		}
	}()

	for !done.Load() {
		got, err := repo.GetRecipeByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Contains(t, versions, versionOf(t, got))

		list, _, err := repo.GetRecipes(ctx, domain.RecipeFilter{}, 1, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Contains(t, versions, versionOf(t, list[0]))
	}
	wg.Wait()
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := recipe.NewRecipeRepository(db)
	ctx := context.Background()

	author := testinfra.SeedUser(t, db, "author")
	reader := testinfra.SeedUser(t, db, "reader")
	flour := testinfra.SeedIngredient(t, db, "flour", "g")
	r := testinfra.SeedRecipe(t, db, author, "cake", map[*entities.Ingredient]int{flour: 100})

	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: reader.ID, RecipeID: r.ID}).Error)
	require.NoError(t, db.Create(&entities.ShoppingCartItem{ID: uuid.New(), UserID: reader.ID, RecipeID: r.ID}).Error)

	require.NoError(t, repo.DeleteRecipe(ctx, r.ID))

	for _, model := range []any{&entities.Favorite{}, &entities.ShoppingCartItem{}, &entities.RecipeIngredient{}} {
		var count int64
		require.NoError(t, db.Model(model).Where("recipe_id = ?", r.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.ErrorIs(t, repo.DeleteRecipe(ctx, r.ID), domain.ErrNotFound)
}
