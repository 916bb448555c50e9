package membership

import (
	"context"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// MembershipRepository stores the favorite and shopping cart lists.
	// Both lists share one shape, selected by domain.ListKind.
	MembershipRepository interface {
		AddRecipe(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) error
		RemoveRecipe(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) error
		Exists(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) (bool, error)
		RecipeIDsIn(ctx context.Context, kind domain.ListKind, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error)
	}

	membershipRepository struct {
		db *gorm.DB
	}
)

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func modelFor(kind domain.ListKind) (any, error) {
	switch kind {
	case domain.ListFavorite:
		return &entities.Favorite{}, nil
	case domain.ListShoppingCart:
		return &entities.ShoppingCartItem{}, nil
	}
	return nil, domain.NewFieldError("list", "unknown list")
}

func rowFor(kind domain.ListKind, userID, recipeID uuid.UUID, now time.Time) any {
	if kind == domain.ListShoppingCart {
		return &entities.ShoppingCartItem{ID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: now}
	}
	return &entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: now}
}

// AddRecipe inserts the pair once. A second insert of the same pair, concurrent or not,
// reports ErrAlreadyInList without touching the existing row.
func (r *membershipRepository) AddRecipe(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) error {
	if _, err := modelFor(kind); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Recipe").
		Create(rowFor(kind, userID, recipeID, time.Now()))
	if res.Error != nil {
		return utils.TranslateDBError(res.Error, domain.ErrRecipeNotFound, domain.ErrAlreadyInList(kind))
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyInList(kind)
	}
	return nil
}

func (r *membershipRepository) RemoveRecipe(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) error {
	model, err := modelFor(kind)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotInList(kind)
	}
	return nil
}

func (r *membershipRepository) Exists(ctx context.Context, kind domain.ListKind, userID, recipeID uuid.UUID) (bool, error) {
	model, err := modelFor(kind)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepository) RecipeIDsIn(ctx context.Context, kind domain.ListKind, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error) {
	model, err := modelFor(kind)
	if err != nil {
		return nil, err
	}
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
