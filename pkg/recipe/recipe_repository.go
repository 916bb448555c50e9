package recipe

import (
	"context"
	"database/sql"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tagIDs []uuid.UUID) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tagIDs []uuid.UUID) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe inserts the recipe row, its ingredient amounts and its tags in one transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tagIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceIngredients(tx, recipe.ID, ingredients); err != nil {
			return err
		}
		return replaceTags(tx, recipe.ID, tagIDs)
	})
	return utils.TranslateDBError(err, domain.ErrRecipeNotFound, nil)
}

// UpdateRecipe rewrites the recipe columns and replaces its ingredient and tag sets.
// Concurrent readers observe either the previous or the new sets, never a mix.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.RecipeIngredient, tagIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"image":        recipe.Image,
				"cooking_time": recipe.CookingTime,
				"updated_at":   recipe.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := replaceIngredients(tx, recipe.ID, ingredients); err != nil {
			return err
		}
		return replaceTags(tx, recipe.ID, tagIDs)
	})
	return utils.TranslateDBError(err, domain.ErrRecipeNotFound, nil)
}

func replaceIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []entities.RecipeIngredient) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(ingredients) == 0 {
		return nil
	}
	rows := make([]entities.RecipeIngredient, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = entities.RecipeIngredient{
			ID:           ing.ID,
			RecipeID:     recipeID,
			IngredientID: ing.IngredientID,
			Amount:       ing.Amount,
		}
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return tx.Omit("Recipe", "Ingredient").Create(&rows).Error
}

func replaceTags(tx *gorm.DB, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]entities.RecipeTag, len(tagIDs))
	for i, id := range tagIDs {
		rows[i] = entities.RecipeTag{RecipeID: recipeID, TagID: id}
	}
	return tx.Omit("Recipe", "Tag").Create(&rows).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name asc") }).
		Preload("Ingredients.Ingredient")
}

// snapshot runs fn in a read-only REPEATABLE READ transaction so the recipe row and
// its preloaded associations come from a single snapshot.
func (r *recipeRepository) snapshot(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.snapshot(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(withDetails).
			Where("recipes.id = ?", id).
			First(&recipe).Error
	})
	if err != nil {
		return nil, utils.TranslateDBError(err, domain.ErrRecipeNotFound, nil)
	}
	return &recipe, nil
}

func filterRecipes(filter domain.RecipeFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.AuthorID != nil {
			db = db.Where("recipes.author_id = ?", *filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			db = db.Where(`EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
				WHERE rt.recipe_id = recipes.id AND t.slug IN ?)`, filter.TagSlugs)
		}
		if filter.FavoritedBy != nil {
			db = db.Where(`EXISTS (SELECT 1 FROM favorites f
				WHERE f.recipe_id = recipes.id AND f.user_id = ?)`, *filter.FavoritedBy)
		}
		if filter.InCartOf != nil {
			db = db.Where(`EXISTS (SELECT 1 FROM shopping_cart_items sc
				WHERE sc.recipe_id = recipes.id AND sc.user_id = ?)`, *filter.InCartOf)
		}
		return db
	}
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	err := r.snapshot(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{}).
			Scopes(filterRecipes(filter)).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Scopes(filterRecipes(filter), withDetails).
			Offset(offset).
			Limit(limit).
			Order("recipes.pub_date desc").
			Find(&recipes).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// GetRecipesByAuthor returns the newest recipes of an author; limit <= 0 means all.
func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, id := range authorIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}
